package pixhist

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// WatchInput implements interface Inputer and emits the watched file path once
// on start and again every time the file is written or replaced.
type WatchInput struct {
	line    chan string
	log     zerolog.Logger
	watcher *fsnotify.Watcher
	changes int
}

// NewWatchInput returns new instance of WatchInput.
func NewWatchInput(l zerolog.Logger) *WatchInput {
	return &WatchInput{log: l.With().Str("component", "inputer").Logger(), line: make(chan string)}
}

// Start begins watching fname. The directory is watched rather than the file so
// that editors replacing the file by rename are noticed. Returns error if the
// watcher could not be created.
func (inp *WatchInput) Start(ctx context.Context, fname string) error {

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(fname)); err != nil {
		_ = w.Close()
		return err
	}
	inp.watcher = w

	go inp.runner(ctx, filepath.Clean(fname))
	return nil
}

func (inp *WatchInput) runner(ctx context.Context, fname string) {
	defer func() {
		_ = inp.watcher.Close()
		close(inp.line)
	}()

	if !inp.emit(ctx, fname) {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-inp.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != fname {
				break
			}
			if event.Op&fsnotify.Write == fsnotify.Write ||
				event.Op&fsnotify.Create == fsnotify.Create {
				inp.changes++
				inp.log.Debug().Str("file", fname).Str("op", event.Op.String()).Int("changes", inp.changes).Msg("file changed")
				if !inp.emit(ctx, fname) {
					return
				}
			}
		case err, ok := <-inp.watcher.Errors:
			if !ok {
				return
			}
			inp.log.Error().Str("errmsg", err.Error()).Msg("watcher failed")
		}
	}
}

// emit returns false if ctx was cancelled while the line chan was full.
func (inp *WatchInput) emit(ctx context.Context, fname string) bool {
	select {
	case inp.line <- fname:
		return true
	case <-ctx.Done():
		return false
	}
}

// Next returns chan with the watched path, one value per change.
func (inp *WatchInput) Next() <-chan string {
	return inp.line
}

// RefInput implements interface Inputer for a single image reference.
type RefInput struct {
	line chan string
}

// NewRefInput returns Inputer emitting ref once.
func NewRefInput(ref string) *RefInput {
	line := make(chan string, 1)
	line <- ref
	close(line)
	return &RefInput{line: line}
}

// Next returns chan with the reference.
func (inp *RefInput) Next() <-chan string {
	return inp.line
}
