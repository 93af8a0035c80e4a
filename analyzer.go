package pixhist

import (
	"context"

	"github.com/rs/zerolog"
)

// FrequencyArray holds pixel counts per intensity level 0..255.
type FrequencyArray [256]int

// Max returns the largest bucket value.
func (fa *FrequencyArray) Max() int {
	m := 0
	for _, v := range fa {
		if v > m {
			m = v
		}
	}
	return m
}

// Sum returns the total of all buckets.
func (fa *FrequencyArray) Sum() int {
	s := 0
	for _, v := range fa {
		s += v
	}
	return s
}

// Points returns (bucket, count) pairs in ascending bucket order.
func (fa *FrequencyArray) Points() []Point {
	pts := make([]Point, len(fa))
	for i, v := range fa {
		pts[i] = Point{X: float64(i), Y: float64(v)}
	}
	return pts
}

// Primary holds the channels counted directly from pixels.
type Primary struct {
	Grayscale  FrequencyArray
	Red        FrequencyArray
	Green      FrequencyArray
	Blue       FrequencyArray
	PixelCount int
}

// ChannelAnalyzer counts red, green, blue and grayscale intensities walking
// through the array of pixels once.
type ChannelAnalyzer struct {
	log zerolog.Logger
}

// NewChannelAnalyzer returns ChannelAnalyzer instance.
func NewChannelAnalyzer(l zerolog.Logger) *ChannelAnalyzer {
	return &ChannelAnalyzer{log: l.With().Str("component", "analyzer").Logger()}
}

// Analyze counts primary channels of buf.
func (ca *ChannelAnalyzer) Analyze(buf PixelBuffer) (*Primary, error) {
	return ca.AnalyzeContext(context.Background(), buf)
}

// AnalyzeContext counts primary channels of buf, checking ctx once per row.
// Returns ctx.Err() if cancelled before the scan completes.
func (ca *ChannelAnalyzer) AnalyzeContext(ctx context.Context, buf PixelBuffer) (*Primary, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}

	p := &Primary{PixelCount: buf.PixelCount()}
	row := buf.Width * 4
	done := ctx.Done()

	var r, g, b int
	// Pix holds the image's pixels, in R, G, B, A order.
	for y := 0; y < buf.Height; y++ {
		if done != nil {
			select {
			case <-done:
				ca.log.Debug().Int("row", y).Msg("analysis interrupted")
				return nil, ctx.Err()
			default:
			}
		}
		pix := buf.Pix[y*row : (y+1)*row]
		for i := 0; i < len(pix); i += 4 {
			r, g, b = int(pix[i]), int(pix[i+1]), int(pix[i+2])
			p.Red[r]++
			p.Green[g]++
			p.Blue[b]++
			// round((r+g+b)/3) half up; the quotient of an integer by 3
			// never ends in .5, so (s+1)/3 is exact.
			p.Grayscale[(r+g+b+1)/3]++
		}
	}

	return p, nil
}
