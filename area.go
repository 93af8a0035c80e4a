package pixhist

// ChannelSeries is the unscaled curve of one channel.
type ChannelSeries struct {
	Channel Channel
	Points  []Point
}

// AreaPath is the closed polygon of one channel in surface coordinates: the
// curve from left to right, then the baseline from right to left.
type AreaPath struct {
	Channel  Channel
	Points   []Point
	Baseline float64
}

// Upper returns the curve part of the polygon.
func (ap AreaPath) Upper() []Point {
	return ap.Points[:len(ap.Points)/2]
}

// ChannelPathDataset is the list of areas to draw, in display order.
type ChannelPathDataset []AreaPath

// BuildAreas scales every series and closes it down to the y=0 baseline.
// Series order and point order are kept as given.
func BuildAreas(series []ChannelSeries, sc Scales) ChannelPathDataset {
	base := sc.Y.Map(0)
	out := make(ChannelPathDataset, 0, len(series))

	for _, s := range series {
		n := len(s.Points)
		pts := make([]Point, 2*n)
		for i, p := range s.Points {
			x := sc.X.Map(p.X)
			pts[i] = Point{X: x, Y: sc.Y.Map(p.Y)}
			pts[2*n-1-i] = Point{X: x, Y: base}
		}
		out = append(out, AreaPath{Channel: s.Channel, Points: pts, Baseline: base})
	}

	return out
}
