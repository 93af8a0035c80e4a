package pixhist_test

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/regorov/pixhist"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redHistogram(t *testing.T) *pixhist.HistogramSet {
	t.Helper()
	p, err := pixhist.NewChannelAnalyzer(zerolog.Nop()).Analyze(solid(4, 4, 200, 30, 30))
	require.NoError(t, err)
	return pixhist.DeriveSecondary(p)
}

func TestChartRenderer_PNG(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "chart.png")
	surface := pixhist.Surface{Width: 256, Height: 100}

	cr, err := pixhist.NewChartRenderer(zerolog.Nop(), fname, "", surface, pixhist.Selection{pixhist.Red}, nil)
	require.NoError(t, err)

	// a flat full-height area covering the whole surface.
	ds := pixhist.BuildAreas([]pixhist.ChannelSeries{{
		Channel: pixhist.Red,
		Points:  []pixhist.Point{{X: 0, Y: 10}, {X: 255, Y: 10}},
	}}, pixhist.MakeScales(pixhist.Domain{X: [2]float64{0, 255}, Y: [2]float64{0, 10}}, surface))

	var buf bytes.Buffer
	require.NoError(t, cr.Render(&buf, ds))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())

	r, g, b, _ := img.At(128, 50).RGBA()
	br, bg, bb := pixhist.DefaultBackground.Components()
	assert.False(t, uint8(r>>8) == br && uint8(g>>8) == bg && uint8(b>>8) == bb, "area is not painted")
	assert.Greater(t, r>>8, g>>8, "red fill expected")

	require.NoError(t, cr.Save(redHistogram(t)))
	require.NoError(t, cr.Close())
	data, err := os.ReadFile(fname)
	require.NoError(t, err)
	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

func TestChartRenderer_SVG(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "chart.out")
	sel, err := pixhist.ParseSelection("all")
	require.NoError(t, err)

	cr, err := pixhist.NewChartRenderer(zerolog.Nop(), fname, pixhist.FormatSVG, pixhist.Surface{Width: 300, Height: 120}, sel, pixhist.DefaultStyles())
	require.NoError(t, err)
	require.NoError(t, cr.Save(redHistogram(t)))

	data, err := os.ReadFile(fname)
	require.NoError(t, err)
	svg := string(data)
	assert.True(t, strings.Contains(svg, "<svg"))
	// background plus one path per channel.
	assert.GreaterOrEqual(t, strings.Count(svg, "<path"), len(sel)+1)
}

func TestNewChartRenderer_Errors(t *testing.T) {
	s := pixhist.Surface{Width: 10, Height: 10}
	sel := pixhist.Selection{pixhist.Red}

	_, err := pixhist.NewChartRenderer(zerolog.Nop(), "chart.gif", "", s, sel, nil)
	assert.True(t, errors.Is(err, pixhist.ErrUnsupportedFormat))

	_, err = pixhist.NewChartRenderer(zerolog.Nop(), "chart.png", "", pixhist.Surface{}, sel, nil)
	assert.Error(t, err)

	_, err = pixhist.NewChartRenderer(zerolog.Nop(), "chart.png", "", s, nil, nil)
	assert.True(t, errors.Is(err, pixhist.ErrUnknownChannel))
}
