package pixhist

import "errors"

var (
	// ErrInvalidBuffer is returned when buffer dimensions are not positive or
	// the pixel slice length does not match width*height*4.
	ErrInvalidBuffer = errors.New("invalid pixel buffer")

	// ErrUnknownChannel is returned when a selection names a channel outside
	// of the fixed channel set.
	ErrUnknownChannel = errors.New("unknown channel")

	// ErrDegenerateDomain reports a domain interval with equal bounds.
	ErrDegenerateDomain = errors.New("degenerate domain")

	// ErrNotReady is returned when geometry is requested before a histogram
	// has been committed.
	ErrNotReady = errors.New("histogram is not ready")

	// ErrSuperseded is delivered to a task whose result was discarded because
	// a newer image was submitted.
	ErrSuperseded = errors.New("analysis superseded by newer image")

	// ErrUnsupportedFormat is returned when the input bytes are not a known image type.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)
