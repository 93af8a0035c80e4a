package pixhist

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder

	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Decoder turns encoded image bytes into a PixelBuffer. It is the only place
// that knows about image formats; the analyzer consumes the result.
type Decoder struct {
	// MaxSide limits the longer image side. Larger images are downsized
	// before analysis, keeping the aspect ratio. Zero disables resizing.
	MaxSide int
}

// NewDecoder returns Decoder instance. maxSide <= 0 keeps original size.
func NewDecoder(maxSide int) *Decoder {
	if maxSide < 0 {
		maxSide = 0
	}
	return &Decoder{MaxSide: maxSide}
}

// Decode detects the image type of src, decodes it and returns RGBA pixels.
func (d *Decoder) Decode(src Source) (PixelBuffer, error) {
	return d.DecodeBytes(src.Bytes())
}

// DecodeBytes is Decode working on raw bytes.
func (d *Decoder) DecodeBytes(data []byte) (PixelBuffer, error) {
	if len(data) == 0 {
		return PixelBuffer{}, ErrMediaIsEmpty
	}

	kind, err := filetype.Match(data)
	if err != nil {
		return PixelBuffer{}, err
	}
	if !filetype.IsImage(data) {
		return PixelBuffer{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind.MIME.Value)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return PixelBuffer{}, fmt.Errorf("image could not be decoded [%s]: %w", kind.Extension, err)
	}

	if w, h, ok := d.fit(img.Bounds()); ok {
		img = transform.Resize(img, w, h, transform.Linear)
	}

	rgba := clone.AsRGBA(img)
	return NewPixelBuffer(rgba), nil
}

// fit returns the target size when b exceeds MaxSide.
func (d *Decoder) fit(b image.Rectangle) (int, int, bool) {
	w, h := b.Dx(), b.Dy()
	if d.MaxSide <= 0 || (w <= d.MaxSide && h <= d.MaxSide) {
		return w, h, false
	}
	if w >= h {
		nh := h * d.MaxSide / w
		if nh < 1 {
			nh = 1
		}
		return d.MaxSide, nh, true
	}
	nw := w * d.MaxSide / h
	if nw < 1 {
		nw = 1
	}
	return nw, d.MaxSide, true
}
