package pixhist

import (
	"fmt"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pelletier/go-toml/v2"
)

// Style describes how a channel area is painted: an opaque stroke and a fill
// of the same color at FillOpacity.
type Style struct {
	Stroke      RGB
	FillOpacity float64
}

// Styles maps channels to their paint style.
type Styles map[Channel]Style

// DefaultFillOpacity is the fill alpha used when a style does not set one.
const DefaultFillOpacity = 0.3

// DefaultStyles returns the stock palette.
func DefaultStyles() Styles {
	return Styles{
		Grayscale: {Stroke: 0xDDDDDD, FillOpacity: DefaultFillOpacity},
		Red:       {Stroke: 0xFF6347, FillOpacity: DefaultFillOpacity},
		Green:     {Stroke: 0x32CD32, FillOpacity: DefaultFillOpacity},
		Blue:      {Stroke: 0x1E90FF, FillOpacity: DefaultFillOpacity},
		Yellow:    {Stroke: 0xFFD700, FillOpacity: DefaultFillOpacity},
		Cyan:      {Stroke: 0x00CED1, FillOpacity: DefaultFillOpacity},
		Magenta:   {Stroke: 0xDA70D6, FillOpacity: DefaultFillOpacity},
		White:     {Stroke: 0xF5F5F5, FillOpacity: DefaultFillOpacity},
	}
}

// Of returns the style of c, falling back to the stock palette.
func (s Styles) Of(c Channel) Style {
	if st, ok := s[c]; ok {
		return st
	}
	return DefaultStyles()[c]
}

type styleEntry struct {
	Stroke      string   `toml:"stroke"`
	FillOpacity *float64 `toml:"fill_opacity"`
}

// ParseStyles reads a TOML document of per-channel tables and applies it on
// top of DefaultStyles:
//
//	[red]
//	stroke = "#ff6347"
//	fill_opacity = 0.3
func ParseStyles(data []byte) (Styles, error) {
	var doc map[string]styleEntry
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	styles := DefaultStyles()
	for name, e := range doc {
		c, err := ParseChannel(name)
		if err != nil {
			return nil, err
		}
		st := styles[c]
		if e.Stroke != "" {
			col, err := colorful.Hex(e.Stroke)
			if err != nil {
				return nil, fmt.Errorf("channel %s: stroke %q: %w", c, e.Stroke, err)
			}
			r, g, b := col.RGB255()
			st.Stroke = ToRGB(uint32(r), uint32(g), uint32(b))
		}
		if e.FillOpacity != nil {
			if *e.FillOpacity < 0 || *e.FillOpacity > 1 {
				return nil, fmt.Errorf("channel %s: fill_opacity %g out of [0, 1]", c, *e.FillOpacity)
			}
			st.FillOpacity = *e.FillOpacity
		}
		styles[c] = st
	}
	return styles, nil
}

// LoadStyles reads a styles file, see ParseStyles.
func LoadStyles(fname string) (Styles, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	return ParseStyles(data)
}
