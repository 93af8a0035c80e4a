package pixhist

import (
	"fmt"
	"image"
)

// PixelBuffer is a decoded image: Pix holds Width*Height pixels in R, G, B, A
// order without row padding. The analyzer only reads it.
type PixelBuffer struct {
	Width  int
	Height int
	Pix    []byte
}

// NewPixelBuffer wraps img. Pix is shared when rows are not padded, otherwise
// rows are copied into a tight buffer.
func NewPixelBuffer(img *image.RGBA) PixelBuffer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if off := img.PixOffset(b.Min.X, b.Min.Y); img.Stride == w*4 && len(img.Pix)-off >= w*h*4 {
		return PixelBuffer{Width: w, Height: h, Pix: img.Pix[off : off+w*h*4]}
	}

	pix := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		off := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(pix[y*w*4:(y+1)*w*4], img.Pix[off:off+w*4])
	}
	return PixelBuffer{Width: w, Height: h, Pix: pix}
}

// Validate returns ErrInvalidBuffer if dimensions are not positive or Pix
// length is not Width*Height*4.
func (pb PixelBuffer) Validate() error {
	if pb.Width <= 0 || pb.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidBuffer, pb.Width, pb.Height)
	}
	if want := pb.Width * pb.Height * 4; len(pb.Pix) != want {
		return fmt.Errorf("%w: got %d bytes, expected %d", ErrInvalidBuffer, len(pb.Pix), want)
	}
	return nil
}

// PixelCount returns Width*Height.
func (pb PixelBuffer) PixelCount() int {
	return pb.Width * pb.Height
}
