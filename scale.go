package pixhist

import "fmt"

// Domain is the data extent of a chart.
type Domain struct {
	X [2]float64
	Y [2]float64
}

// Validate returns ErrDegenerateDomain if either interval has equal bounds.
func (d Domain) Validate() error {
	if d.X[0] == d.X[1] {
		return fmt.Errorf("%w: x [%g, %g]", ErrDegenerateDomain, d.X[0], d.X[1])
	}
	if d.Y[0] == d.Y[1] {
		return fmt.Errorf("%w: y [%g, %g]", ErrDegenerateDomain, d.Y[0], d.Y[1])
	}
	return nil
}

// Surface is the size of the drawing area in pixels.
type Surface struct {
	Width  float64
	Height float64
}

// Point is a chart sample. Before scaling X is an intensity level and Y a
// count, after scaling both are surface coordinates.
type Point struct {
	X float64
	Y float64
}

// LinearScale maps Domain onto Range linearly. Values outside Domain are
// extrapolated, not clamped.
type LinearScale struct {
	Domain [2]float64
	Range  [2]float64
}

// Map returns the range value of v. A degenerate domain maps every value to
// the middle of the range.
func (ls LinearScale) Map(v float64) float64 {
	d0, d1 := ls.Domain[0], ls.Domain[1]
	r0, r1 := ls.Range[0], ls.Range[1]
	if d0 == d1 {
		return (r0 + r1) / 2
	}
	t := (v - d0) / (d1 - d0)
	return r0*(1-t) + r1*t
}

// Scales is the pair of mappings used to place chart points on a surface.
type Scales struct {
	X LinearScale
	Y LinearScale
}

// MakeScales builds x and y scales for d on s. Y is inverted: the lower domain
// bound lands on the bottom edge of the surface.
func MakeScales(d Domain, s Surface) Scales {
	return Scales{
		X: LinearScale{Domain: d.X, Range: [2]float64{0, s.Width}},
		Y: LinearScale{Domain: d.Y, Range: [2]float64{s.Height, 0}},
	}
}

// Map applies both scales to p.
func (sc Scales) Map(p Point) Point {
	return Point{X: sc.X.Map(p.X), Y: sc.Y.Map(p.Y)}
}
