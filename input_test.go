package pixhist_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/regorov/pixhist"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func next(t *testing.T, in pixhist.Inputer) (string, bool) {
	t.Helper()
	select {
	case s, ok := <-in.Next():
		return s, ok
	case <-time.After(5 * time.Second):
		t.Fatal("no value from input")
		return "", false
	}
}

func TestWatchInput(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, os.WriteFile(fname, []byte("v1"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	input := pixhist.NewWatchInput(zerolog.Nop())
	require.NoError(t, input.Start(ctx, fname))

	s, ok := next(t, input)
	require.True(t, ok)
	assert.Equal(t, fname, s)

	// unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(fname), "other.png"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(fname, []byte("v2"), 0644))

	s, ok = next(t, input)
	require.True(t, ok)
	assert.Equal(t, fname, s)

	cancel()
	// drain pending change events until the chan closes.
	for {
		if _, ok := next(t, input); !ok {
			break
		}
	}
}

func TestWatchInput_MissingDir(t *testing.T) {
	input := pixhist.NewWatchInput(zerolog.Nop())
	err := input.Start(context.Background(), filepath.Join(t.TempDir(), "none", "photo.png"))
	assert.Error(t, err)
}

func TestRefInput(t *testing.T) {
	in := pixhist.NewRefInput("a.png")
	s, ok := next(t, in)
	assert.True(t, ok)
	assert.Equal(t, "a.png", s)
	_, ok = next(t, in)
	assert.False(t, ok)
}
