package pixhist

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// State is the lifecycle stage of a Session.
type State int

// Session states.
const (
	StateEmpty State = iota
	StateLoading
	StateReady
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	}
	return "unknown"
}

// Snapshot is an immutable view of a Session. Histogram is set only in
// StateReady.
type Snapshot struct {
	State     State
	ImageID   string
	Histogram *HistogramSet

	// gen identifies the submission that produced the snapshot.
	gen uint64
	// fallback is restored when a loading snapshot fails.
	fallback *Snapshot
}

type task struct {
	gen    uint64
	cancel context.CancelFunc
}

// Session tracks the histogram of the active image. Submitting a new image
// cancels the analysis in flight; only the last submitted image is ever
// committed. Snapshots are replaced atomically and never modified.
type Session struct {
	log      zerolog.Logger
	analyzer *ChannelAnalyzer

	gen  atomic.Uint64
	task atomic.Pointer[task]
	snap atomic.Pointer[Snapshot]
}

// NewSession returns an empty Session.
func NewSession(l zerolog.Logger) *Session {
	s := &Session{
		log:      l.With().Str("component", "session").Logger(),
		analyzer: NewChannelAnalyzer(l),
	}
	s.snap.Store(&Snapshot{State: StateEmpty})
	return s
}

// Snapshot returns the current state.
func (s *Session) Snapshot() *Snapshot {
	return s.snap.Load()
}

// Submit starts background analysis of buf identified by id.
//
// An invalid buffer is rejected immediately and the session is left as it
// was. Submitting the id that is already ready does nothing and the returned
// channel yields nil at once. Otherwise the returned channel yields nil when
// the histogram is committed, ErrSuperseded if a newer image replaced it, or
// the ctx error if ctx is cancelled first.
func (s *Session) Submit(ctx context.Context, id string, buf PixelBuffer) (<-chan error, error) {
	if err := buf.Validate(); err != nil {
		s.log.Error().Str("image", id).Str("errmsg", err.Error()).Msg("image rejected")
		return nil, err
	}

	done := make(chan error, 1)
	gen := s.gen.Add(1)

	for {
		cur := s.snap.Load()
		if cur.State == StateReady && cur.ImageID == id {
			done <- nil
			return done, nil
		}
		fallback := cur
		if cur.State == StateLoading {
			fallback = cur.fallback
		}
		if s.snap.CompareAndSwap(cur, &Snapshot{State: StateLoading, ImageID: id, gen: gen, fallback: fallback}) {
			break
		}
	}

	tctx, cancel := context.WithCancel(ctx)
	if prev := s.task.Swap(&task{gen: gen, cancel: cancel}); prev != nil && prev.gen != s.snap.Load().gen {
		prev.cancel()
	}

	go s.run(tctx, cancel, gen, id, buf, done)
	return done, nil
}

func (s *Session) run(ctx context.Context, cancel context.CancelFunc, gen uint64, id string, buf PixelBuffer, done chan<- error) {
	defer cancel()
	log := s.log.With().Str("image", id).Uint64("gen", gen).Logger()

	t := time.Now()
	primary, err := s.analyzer.AnalyzeContext(ctx, buf)
	if err != nil {
		done <- s.abort(gen, err, log)
		return
	}
	hs := DeriveSecondary(primary)

	cur := s.snap.Load()
	if cur.gen != gen || !s.snap.CompareAndSwap(cur, &Snapshot{State: StateReady, ImageID: id, Histogram: hs, gen: gen}) {
		log.Debug().Msg("result discarded")
		done <- ErrSuperseded
		return
	}

	log.Debug().Int("pixels", hs.PixelCount).Int("max", hs.MaxValue).
		Str("dur", time.Since(t).String()).Msg("histogram committed")
	done <- nil
}

// abort restores the pre-submit snapshot when the failed task is still the
// current one.
func (s *Session) abort(gen uint64, err error, log zerolog.Logger) error {
	cur := s.snap.Load()
	if cur.gen != gen || !s.snap.CompareAndSwap(cur, cur.fallback) {
		log.Debug().Msg("result discarded")
		return ErrSuperseded
	}
	log.Error().Str("errmsg", err.Error()).Msg("analysis failed")
	return err
}

// Dataset builds area geometry of the selected channels for surface from
// the committed histogram. It never re-runs analysis.
func (s *Session) Dataset(sel Selection, surface Surface) (ChannelPathDataset, Domain, error) {
	snap := s.snap.Load()
	if snap.State != StateReady {
		return nil, Domain{}, ErrNotReady
	}
	return snap.Histogram.Dataset(sel, surface)
}

// Dataset builds area geometry of the selected channels for surface.
func (hs *HistogramSet) Dataset(sel Selection, surface Surface) (ChannelPathDataset, Domain, error) {
	for _, c := range sel {
		if int(c) >= NumChannels {
			return nil, Domain{}, ErrUnknownChannel
		}
	}
	d := hs.Domain()
	return BuildAreas(hs.Series(sel), MakeScales(d, surface)), d, nil
}
