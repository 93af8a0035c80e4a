package pixhist_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/regorov/pixhist"
)

// solid returns a w x h buffer filled with one color.
func solid(w, h int, r, g, b byte) pixhist.PixelBuffer {
	pix := make([]byte, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = r, g, b, 0xFF
	}
	return pixhist.PixelBuffer{Width: w, Height: h, Pix: pix}
}

// noise returns a w x h buffer with deterministic pseudo random colors.
func noise(w, h int, seed uint32) pixhist.PixelBuffer {
	pix := make([]byte, w*h*4)
	x := seed | 1
	for i := range pix {
		// xorshift32
		x ^= x << 13
		x ^= x >> 17
		x ^= x << 5
		pix[i] = byte(x)
	}
	return pixhist.PixelBuffer{Width: w, Height: h, Pix: pix}
}

// encodePNG encodes an opaque image of w x h where each pixel color is
// produced by fn.
func encodePNG(t *testing.T, w, h int, fn func(x, y int) color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, fn(x, y))
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encoding failed: %s", err.Error())
	}
	return buf.Bytes()
}
