package nimsforestgallery

import "math"

const (
	dotSizeMin = 15
	dotSizeMax = 40
)

// ScatterChart places one dot per row on a pair of centred axes, sized by
// a third column.
type ScatterChart struct {
	BaseVisual

	xLabel, yLabel      string
	xCol, yCol, sizeCol string
	layout              Layout

	xMin, xMax float64
	yMin, yMax float64

	xs, ys Scale
	sizes  Scale
}

// NewScatterChart builds a scatter chart. Column roles: "x", "y" and
// "size". The x domain is 0..100 and the y domain -20..20, with positive
// y values drawn towards the top.
func NewScatterChart(spec VisualSpec, width, height float64) (*ScatterChart, error) {
	l := NewLayout(width, height, 35)
	l.Pad = 20
	l.LeftMargin = l.Pad
	l.RightMargin = width - l.Pad
	l.TopMargin = l.Pad
	l.BottomMargin = height - l.Pad
	return &ScatterChart{
		BaseVisual: NewBaseVisual(spec.ID, spec.Name, spec.Dataset),
		xLabel:     orDefault(spec.XLabel, "Proportion of women"),
		yLabel:     orDefault(spec.YLabel, "Pay gap"),
		xCol:       spec.column("x", "proportion_female"),
		yCol:       spec.column("y", "pay_gap"),
		sizeCol:    spec.column("size", "num_jobs"),
		layout:     spec.Layout.apply(l, width, height),
		xMin:       0,
		xMax:       100,
		yMin:       -20,
		yMax:       20,
	}, nil
}

// Setup implements Visual.
func (c *ScatterChart) Setup(env *Env) {
	c.BaseVisual.Setup(env)
	c.checkColumns(env, c.xCol, c.yCol, c.sizeCol)
	lo, hi := Bounds(c.Table().NumColumn(c.sizeCol))
	c.sizes = NewScale(lo, hi, dotSizeMin, dotSizeMax)
}

// Draw implements Visual.
func (c *ScatterChart) Draw(cv Canvas) {
	if !c.ready() {
		return
	}
	l := c.layout
	c.xs = NewScale(c.xMin, c.xMax, l.LeftMargin, l.RightMargin)
	// Positive y values towards the top.
	c.ys = NewScale(c.yMin, c.yMax, l.BottomMargin, l.TopMargin)
	c.drawAxes(cv)

	t := c.Table()
	style := Style{Fill: White, Stroke: Black}
	for i := 0; i < t.RowCount(); i++ {
		x, y := t.Num(i, c.xCol), t.Num(i, c.yCol)
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		d := c.mapSizeToDiameter(t.Num(i, c.sizeCol))
		cv.Ellipse(c.xs.Map(x), c.ys.Map(y), d, d, style)
	}
}

// drawAxes crosses the axes at the centre of the plot area.
func (c *ScatterChart) drawAxes(cv Canvas) {
	l := c.layout
	axis := Style{Stroke: Grey(200)}
	midX := l.LeftMargin + l.PlotWidth()/2
	midY := l.TopMargin + l.PlotHeight()/2
	cv.Line(midX, l.TopMargin, midX, l.BottomMargin, axis)
	cv.Line(l.LeftMargin, midY, l.RightMargin, midY, axis)

	label := TextStyle{Fill: Grey(120), Align: AlignLeft, VAlign: AlignTop}
	cv.Text(c.xLabel, l.LeftMargin, midY+l.Pad/2, label)
	cv.Text(c.yLabel, midX+l.Pad/2, l.TopMargin, label)
}

// mapSizeToDiameter falls back to the smallest dot when every row has the
// same size or the size is missing.
func (c *ScatterChart) mapSizeToDiameter(v float64) float64 {
	if math.IsNaN(v) || math.IsNaN(c.sizes.DomainMin) || c.sizes.Degenerate() {
		return dotSizeMin
	}
	return c.sizes.Map(v)
}
