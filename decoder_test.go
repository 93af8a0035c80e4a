package pixhist_test

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/regorov/pixhist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoder_PNG(t *testing.T) {
	data := encodePNG(t, 3, 2, func(x, y int) color.RGBA {
		return color.RGBA{R: uint8(x * 100), G: uint8(y * 100), B: 7, A: 0xFF}
	})

	buf, err := pixhist.NewDecoder(0).DecodeBytes(data)
	require.NoError(t, err)
	require.NoError(t, buf.Validate())
	assert.Equal(t, 3, buf.Width)
	assert.Equal(t, 2, buf.Height)

	// pixel (2, 1)
	off := (1*3 + 2) * 4
	assert.Equal(t, []byte{200, 100, 7, 0xFF}, buf.Pix[off:off+4])
}

func TestDecoder_Resize(t *testing.T) {
	data := encodePNG(t, 40, 10, func(x, y int) color.RGBA {
		return color.RGBA{R: 50, G: 60, B: 70, A: 0xFF}
	})

	buf, err := pixhist.NewDecoder(20).DecodeBytes(data)
	require.NoError(t, err)
	assert.Equal(t, 20, buf.Width)
	assert.Equal(t, 5, buf.Height)
	for i, want := range []byte{50, 60, 70, 0xFF} {
		assert.InDelta(t, want, buf.Pix[i], 1)
	}

	// smaller images keep their size.
	buf, err = pixhist.NewDecoder(100).DecodeBytes(data)
	require.NoError(t, err)
	assert.Equal(t, 40, buf.Width)
	assert.Equal(t, 10, buf.Height)
}

func TestDecoder_Errors(t *testing.T) {
	d := pixhist.NewDecoder(0)

	_, err := d.DecodeBytes(nil)
	assert.True(t, errors.Is(err, pixhist.ErrMediaIsEmpty))

	_, err = d.DecodeBytes([]byte("plain text is not an image"))
	assert.True(t, errors.Is(err, pixhist.ErrUnsupportedFormat))

	// PNG signature with a broken body.
	_, err = d.DecodeBytes([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0dIHDR"))
	assert.Error(t, err)
}

func TestNewPixelBuffer_Stride(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	img.SetRGBA(3, 1, color.RGBA{R: 1, G: 2, B: 3, A: 4})
	sub := img.SubImage(image.Rect(2, 1, 5, 3)).(*image.RGBA)

	buf := pixhist.NewPixelBuffer(sub)
	require.NoError(t, buf.Validate())
	assert.Equal(t, 3, buf.Width)
	assert.Equal(t, 2, buf.Height)
	// (3, 1) is the second pixel of the first row of sub.
	assert.Equal(t, []byte{1, 2, 3, 4}, buf.Pix[4:8])

	whole := pixhist.NewPixelBuffer(img)
	assert.Equal(t, 8*4*4, len(whole.Pix))
}
