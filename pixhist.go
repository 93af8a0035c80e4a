// Package pixhist provides per-channel intensity histograms of raster images
// and the area chart geometry needed to draw them.
package pixhist

import (
	"context"
)

// Resulter is the interface that wraps Result and Header methods.
//
// Result returns string representation of processing result.
//
// Header returns header if output format expects header (e.g. CSV file format).
// If output format does not requires header, method implementation can return
// empty string.
type Resulter interface {
	Result() string
	Header() string
}

// Outputer is the interface that wraps Save and Close method,
//
// Save receives a committed HistogramSet to be written to the output.
//
// Close flushes output buffer and closes output.
type Outputer interface {
	Save(*HistogramSet) error
	Close() error
}

// Inputer is the interface that wraps the basic Next method.
//
// Next returns channel of image references (file path or URL). Channel closes
// when input is exhausted or cancelled.
type Inputer interface {
	Next() <-chan string
}

// Loader is the interface that wraps the basic Load method.
//
// Load resolves an image reference into a Source.
type Loader interface {
	Load(ctx context.Context, ref string) (Source, error)
}

// Source is the interface that groups methods to deal with
// an encoded image held in memory.
//
// Bytes returns the encoded image as []byte.
//
// Reset releases the underlying buffer. Do not call Bytes() after
// calling Reset.
//
// URL returns the reference the image was loaded from.
type Source interface {
	Bytes() []byte
	Reset()
	URL() string
}
