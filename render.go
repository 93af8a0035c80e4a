package pixhist

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Image formats supported by ChartRenderer.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// DefaultBackground is the chart background color.
const DefaultBackground RGB = 0x282C34

// DefaultStrokeWidth is the width of the curve outline.
const DefaultStrokeWidth = 1.5

// ChartRenderer implements Outputer interface. It paints the area of every
// selected channel with go-chart and writes PNG or SVG to a file, replacing
// it on every Save.
type ChartRenderer struct {
	log        zerolog.Logger
	mux        sync.Mutex
	fname      string
	format     string
	provider   chart.RendererProvider
	surface    Surface
	selection  Selection
	styles     Styles
	background RGB
}

// NewChartRenderer returns ChartRenderer writing to fname. The format is
// taken from format, or from the fname extension if format is empty.
func NewChartRenderer(l zerolog.Logger, fname, format string, surface Surface, sel Selection, styles Styles) (*ChartRenderer, error) {
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(fname)), ".")
	}
	if surface.Width < 1 || surface.Height < 1 {
		return nil, fmt.Errorf("chart size %gx%g is too small", surface.Width, surface.Height)
	}
	if len(sel) == 0 {
		return nil, fmt.Errorf("%w: empty selection", ErrUnknownChannel)
	}
	if styles == nil {
		styles = DefaultStyles()
	}

	cr := &ChartRenderer{
		log:        l.With().Str("component", "renderer").Logger(),
		fname:      fname,
		format:     format,
		surface:    surface,
		selection:  sel,
		styles:     styles,
		background: DefaultBackground,
	}

	switch format {
	case FormatPNG:
		cr.provider = chart.PNG
	case FormatSVG:
		cr.provider = chart.SVG
	default:
		return nil, fmt.Errorf("%w: output format %q", ErrUnsupportedFormat, format)
	}
	return cr, nil
}

// SetBackground changes the background color.
func (cr *ChartRenderer) SetBackground(c RGB) {
	cr.background = c
}

// Save implements interface Outputer.
func (cr *ChartRenderer) Save(hs *HistogramSet) error {
	cr.mux.Lock()
	defer cr.mux.Unlock()

	ds, _, err := hs.Dataset(cr.selection, cr.surface)
	if err != nil {
		return err
	}

	f, err := os.Create(cr.fname)
	if err != nil {
		return err
	}
	if err := cr.Render(f, ds); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	cr.log.Debug().Str("file", cr.fname).Str("channels", cr.selection.String()).Msg("chart written")
	return nil
}

// Render paints ds on a new surface and writes the encoded image to w.
func (cr *ChartRenderer) Render(w io.Writer, ds ChannelPathDataset) error {
	width, height := int(math.Ceil(cr.surface.Width)), int(math.Ceil(cr.surface.Height))
	r, err := cr.provider(width, height)
	if err != nil {
		return err
	}

	r.SetFillColor(toDrawing(cr.background, 1))
	r.SetStrokeWidth(0)
	r.MoveTo(0, 0)
	r.LineTo(width, 0)
	r.LineTo(width, height)
	r.LineTo(0, height)
	r.Close()
	r.Fill()

	for _, ap := range ds {
		if len(ap.Points) == 0 {
			continue
		}
		st := cr.styles.Of(ap.Channel)
		r.ResetStyle()
		r.SetClassName(ap.Channel.String() + "-channel")
		r.SetStrokeColor(toDrawing(st.Stroke, 1))
		r.SetFillColor(toDrawing(st.Stroke, st.FillOpacity))
		r.SetStrokeWidth(DefaultStrokeWidth)

		r.MoveTo(px(ap.Points[0].X), px(ap.Points[0].Y))
		for _, p := range ap.Points[1:] {
			r.LineTo(px(p.X), px(p.Y))
		}
		r.Close()
		r.FillStroke()
	}

	return r.Save(w)
}

// Close implements interface Outputer. Every Save writes a complete file, so
// there is nothing to flush.
func (cr *ChartRenderer) Close() error {
	return nil
}

func toDrawing(c RGB, opacity float64) drawing.Color {
	r, g, b := c.Components()
	return drawing.Color{R: r, G: g, B: b, A: uint8(math.Round(opacity * 255))}
}

func px(v float64) int {
	return int(math.Round(v))
}
