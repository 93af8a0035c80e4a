package pixhist

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// ImageProcessor implements core logic orchestration functionality.
// It reads image references from Inputer, loads and decodes them, submits the
// pixels to Session and uses Outputer to save every committed histogram.
// Histograms of superseded images are never saved.
type ImageProcessor struct {
	input   Inputer
	loader  Loader
	decoder *Decoder
	session *Session
	output  Outputer
	log     zerolog.Logger

	wg sync.WaitGroup
	// mux serializes the "is it still current" check with Save.
	mux sync.Mutex
}

// NewImageProcessor returns new instance of ImageProcessor.
func NewImageProcessor(l zerolog.Logger, in Inputer, ld Loader, d *Decoder, s *Session, o Outputer) *ImageProcessor {
	return &ImageProcessor{
		log:     l.With().Str("component", "imgproc").Logger(),
		input:   in,
		loader:  ld,
		decoder: d,
		session: s,
		output:  o}
}

// Start processes references until the input is exhausted or ctx is done,
// then waits for outstanding analyses.
func (ip *ImageProcessor) Start(ctx context.Context) {

	var (
		totalb int // total amount of bytes passed through the processor.
		cnt    int // amount of images submitted.
		failed int
	)
	started := time.Now()

	logstat := func(msg string) {
		ip.log.Info().Int("count", cnt).
			Int("failed", failed).
			Int("total-bytes", totalb).
			Str("dur", time.Since(started).String()).Msg(msg)
	}

	defer ip.wg.Wait()

	for {
		select {
		case <-ctx.Done():
			logstat("interrupted")
			return
		case ref, ok := <-ip.input.Next():
			if !ok {
				// Input is exhausted. Stop after pending analyses complete.
				logstat("reached EOF")
				return
			}

			size, err := ip.submit(ctx, ref)
			if err != nil {
				failed++
				break
			}
			totalb += size
			cnt++
		}
	}
}

func (ip *ImageProcessor) submit(ctx context.Context, ref string) (int, error) {
	t := time.Now()
	src, err := ip.loader.Load(ctx, ref)
	if err != nil {
		// loader logs details.
		return 0, err
	}

	data := src.Bytes()
	size := len(data)
	id := ImageID(ref, data)

	buf, err := ip.decoder.DecodeBytes(data)
	src.Reset() // return []byte to the pool.
	if err != nil {
		ip.log.Error().Str("ref", ref).Str("errmsg", err.Error()).Msg("decoding failed")
		return 0, err
	}
	ip.log.Debug().Str("ref", ref).Int("width", buf.Width).Int("height", buf.Height).
		Str("dur", time.Since(t).String()).Msg("image decoded")

	done, err := ip.session.Submit(ctx, id, buf)
	if err != nil {
		return 0, err
	}

	ip.wg.Add(1)
	go ip.await(ref, id, done)
	return size, nil
}

func (ip *ImageProcessor) await(ref, id string, done <-chan error) {
	defer ip.wg.Done()

	if err := <-done; err != nil {
		if !errors.Is(err, ErrSuperseded) {
			ip.log.Error().Str("ref", ref).Str("errmsg", err.Error()).Msg("analysis failed")
		}
		return
	}

	ip.mux.Lock()
	defer ip.mux.Unlock()

	snap := ip.session.Snapshot()
	if snap.State != StateReady || snap.ImageID != id {
		return
	}
	if err := ip.output.Save(snap.Histogram); err != nil {
		ip.log.Error().Str("ref", ref).Str("errmsg", err.Error()).Msg("result saving failed")
		return
	}
	ip.log.Info().Str("ref", ref).Int("pixels", snap.Histogram.PixelCount).
		Int("max", snap.Histogram.MaxValue).Msg("histogram saved")
}

// ImageID identifies an image by its reference and content, so that a file
// rewritten with identical bytes is not analyzed again.
func ImageID(ref string, data []byte) string {
	h := fnv.New64a()
	_, _ = h.Write(data)
	return ref + "#" + strconv.FormatUint(h.Sum64(), 16)
}
