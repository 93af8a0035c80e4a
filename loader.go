package pixhist

import (
	"context"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// FileMedia implements interface Source for an image read from the local file system.
type FileMedia struct {
	path string
	data []byte
}

// ReadFileMedia reads the whole file at path.
func ReadFileMedia(path string) (*FileMedia, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrMediaIsEmpty
	}
	return &FileMedia{path: path, data: data}, nil
}

// Bytes returns file content.
func (fm *FileMedia) Bytes() []byte {
	return fm.data
}

// Reset drops file content.
func (fm *FileMedia) Reset() {
	fm.data = nil
}

// URL returns the file path.
func (fm *FileMedia) URL() string {
	return fm.path
}

// RefLoader implements interface Loader. References starting with http:// or
// https:// are downloaded, anything else is read as a local file.
type RefLoader struct {
	log  zerolog.Logger
	down *MediaDownloader
}

// NewRefLoader returns new instance of RefLoader.
func NewRefLoader(l zerolog.Logger, d *MediaDownloader) *RefLoader {
	return &RefLoader{log: l.With().Str("component", "loader").Logger(), down: d}
}

// Load implements interface Loader.
func (rl *RefLoader) Load(ctx context.Context, ref string) (Source, error) {
	if IsURL(ref) {
		return rl.down.Load(ctx, ref)
	}
	fm, err := ReadFileMedia(ref)
	if err != nil {
		rl.log.Error().Str("path", ref).Str("errmsg", err.Error()).Msg("image read failed")
		return nil, err
	}
	rl.log.Debug().Str("path", ref).Int("size", len(fm.data)).Msg("read")
	return fm, nil
}

// IsURL reports whether ref is an http(s) URL.
func IsURL(ref string) bool {
	l := strings.ToLower(ref)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}
