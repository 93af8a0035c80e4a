package pixhist

import "math"

// HeadroomFactor leaves a little space above the highest bucket so the
// chart does not touch the top edge.
const HeadroomFactor = 1.05

// HistogramSet holds frequency arrays for all channels of one image.
// It is never modified after DeriveSecondary returns it.
type HistogramSet struct {
	Channels   [NumChannels]FrequencyArray
	PixelCount int
	// MaxValue is the highest bucket over all channels times HeadroomFactor,
	// rounded half up.
	MaxValue int
}

// DeriveSecondary builds the full HistogramSet from primary channels.
//
// Secondary channels are computed per bucket from the red, green and blue
// counts at that bucket, not from pixel colors. White is the minimum of the
// three. Yellow, magenta and cyan take the minimum of their two components
// when both strictly exceed the third one, otherwise they fall back to white.
func DeriveSecondary(p *Primary) *HistogramSet {
	hs := &HistogramSet{PixelCount: p.PixelCount}
	hs.Channels[Grayscale] = p.Grayscale
	hs.Channels[Red] = p.Red
	hs.Channels[Green] = p.Green
	hs.Channels[Blue] = p.Blue

	yellow, cyan := &hs.Channels[Yellow], &hs.Channels[Cyan]
	magenta, white := &hs.Channels[Magenta], &hs.Channels[White]

	for i := 0; i < 256; i++ {
		r, g, b := p.Red[i], p.Green[i], p.Blue[i]
		w := min(r, g, b)
		white[i], yellow[i], magenta[i], cyan[i] = w, w, w, w

		switch {
		case r > b && g > b:
			yellow[i] = min(r, g)
		case r > g && b > g:
			magenta[i] = min(r, b)
		case g > r && b > r:
			cyan[i] = min(g, b)
		}
	}

	top := 0
	for i := range hs.Channels {
		if m := hs.Channels[i].Max(); m > top {
			top = m
		}
	}
	hs.MaxValue = int(math.Floor(float64(top)*HeadroomFactor + 0.5))

	return hs
}

// Channel returns the frequency array of c.
func (hs *HistogramSet) Channel(c Channel) *FrequencyArray {
	return &hs.Channels[c]
}

// Domain returns the data extent of the histogram: all 256 levels on x and
// zero to MaxValue on y.
func (hs *HistogramSet) Domain() Domain {
	return Domain{X: [2]float64{0, 255}, Y: [2]float64{0, float64(hs.MaxValue)}}
}

// Series returns the (level, count) curve of every selected channel in
// selection order.
func (hs *HistogramSet) Series(sel Selection) []ChannelSeries {
	out := make([]ChannelSeries, 0, len(sel))
	for _, c := range sel {
		out = append(out, ChannelSeries{Channel: c, Points: hs.Channels[c].Points()})
	}
	return out
}
