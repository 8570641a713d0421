package nimsforestgallery

// Layout holds the geometric configuration of a chart's drawing area.
// Margins are absolute pixel positions on the surface, not widths.
type Layout struct {
	MarginSize float64

	LeftMargin   float64
	RightMargin  float64
	TopMargin    float64
	BottomMargin float64

	Pad float64

	// Grid enables background grid lines at each tick.
	Grid bool

	// Tick label counts, chosen so labels are not drawn on top of one
	// another.
	NumXTickLabels int
	NumYTickLabels int
}

// NewLayout returns the standard chart layout for a width x height
// surface. Left and bottom get a double margin to make room for the axis
// and tick labels.
func NewLayout(width, height, marginSize float64) Layout {
	return Layout{
		MarginSize:     marginSize,
		LeftMargin:     marginSize * 2,
		RightMargin:    width - marginSize,
		TopMargin:      marginSize,
		BottomMargin:   height - marginSize*2,
		Pad:            5,
		NumXTickLabels: 8,
		NumYTickLabels: 8,
	}
}

// PlotWidth returns the horizontal extent between the left and right
// margins.
func (l Layout) PlotWidth() float64 {
	return l.RightMargin - l.LeftMargin
}

// PlotHeight returns the vertical extent between the top and bottom
// margins.
func (l Layout) PlotHeight() float64 {
	return l.BottomMargin - l.TopMargin
}

// LayoutSpec overrides parts of a chart kind's default layout. Nil or
// zero fields keep the default.
type LayoutSpec struct {
	MarginSize float64 `yaml:"margin_size,omitempty"`
	Pad        float64 `yaml:"pad,omitempty"`
	Grid       *bool   `yaml:"grid,omitempty"`
	XTicks     int     `yaml:"x_ticks,omitempty"`
	YTicks     int     `yaml:"y_ticks,omitempty"`
}

// apply returns l with the overrides in s, recomputing margins for a
// width x height surface when the margin size changes.
func (s *LayoutSpec) apply(l Layout, width, height float64) Layout {
	if s == nil {
		return l
	}
	if s.MarginSize > 0 && s.MarginSize != l.MarginSize {
		grid, xt, yt, pad := l.Grid, l.NumXTickLabels, l.NumYTickLabels, l.Pad
		l = NewLayout(width, height, s.MarginSize)
		l.Grid, l.NumXTickLabels, l.NumYTickLabels, l.Pad = grid, xt, yt, pad
	}
	if s.Pad > 0 {
		l.Pad = s.Pad
	}
	if s.Grid != nil {
		l.Grid = *s.Grid
	}
	if s.XTicks > 0 {
		l.NumXTickLabels = s.XTicks
	}
	if s.YTicks > 0 {
		l.NumYTickLabels = s.YTicks
	}
	return l
}
