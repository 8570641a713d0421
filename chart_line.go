package nimsforestgallery

import "slices"

// LineChart plots one numeric column against a year column, with the
// value axis anchored at zero.
type LineChart struct {
	BaseVisual

	title          string
	xLabel, yLabel string
	xCol, yCol     string
	layout         Layout

	startYear, endYear float64
	minValue, maxValue float64
	years, values      Scale
}

// NewLineChart builds a line chart. Column roles: "x" (year, sorted
// ascending) and "y" (value).
func NewLineChart(spec VisualSpec, width, height float64) (*LineChart, error) {
	l := NewLayout(width, height, 35)
	l.Grid = true
	l.NumXTickLabels = 10
	return &LineChart{
		BaseVisual: NewBaseVisual(spec.ID, spec.Name, spec.Dataset),
		title:      spec.Title,
		xLabel:     orDefault(spec.XLabel, "year"),
		yLabel:     orDefault(spec.YLabel, "%"),
		xCol:       spec.column("x", "year"),
		yCol:       spec.column("y", "pay_gap"),
		layout:     spec.Layout.apply(l, width, height),
	}, nil
}

// Setup implements Visual.
func (c *LineChart) Setup(env *Env) {
	c.BaseVisual.Setup(env)
	c.checkColumns(env, c.xCol, c.yCol)
	t := c.Table()
	if t.RowCount() == 0 {
		return
	}
	c.startYear = t.Num(0, c.xCol)
	c.endYear = t.Num(t.RowCount()-1, c.xCol)

	// Zero is equality; the axis runs from there to the largest value.
	c.minValue = 0
	_, c.maxValue = Bounds(t.NumColumn(c.yCol))
}

// Draw implements Visual.
func (c *LineChart) Draw(cv Canvas) {
	if !c.ready() {
		return
	}
	l := c.layout
	t := c.Table()
	c.years = NewScale(c.startYear, c.endYear, l.LeftMargin, l.RightMargin)
	// Smaller values at the bottom.
	c.values = NewScale(c.minValue, c.maxValue, l.BottomMargin, l.TopMargin)

	c.drawTitle(cv)
	if t.RowCount() > 0 {
		DrawYAxisTickLabels(cv, c.minValue, c.maxValue, l, c.values.Map, 0)
	}
	DrawAxis(cv, l, Black)
	DrawAxisLabels(cv, c.xLabel, c.yLabel, l)
	if t.RowCount() < 2 {
		return
	}

	numYears := int(c.endYear - c.startYear)
	labelled := CategoryTickIndices(numYears, l.NumXTickLabels, false)

	prevYear, prevValue := t.Num(0, c.xCol), t.Num(0, c.yCol)
	for i := 1; i < t.RowCount(); i++ {
		year, value := t.Num(i, c.xCol), t.Num(i, c.yCol)
		cv.Line(c.years.Map(prevYear), c.values.Map(prevValue),
			c.years.Map(year), c.values.Map(value), Style{Stroke: Black})
		if slices.Contains(labelled, i-1) {
			DrawXAxisTickLabel(cv, prevYear, l, c.years.Map)
		}
		prevYear, prevValue = year, value
	}
}

func (c *LineChart) drawTitle(cv Canvas) {
	if c.title == "" {
		return
	}
	l := c.layout
	cv.Text(c.title, l.PlotWidth()/2+l.LeftMargin, l.TopMargin-l.MarginSize/2,
		TextStyle{Fill: Black, Size: 16, Align: AlignCenter, VAlign: AlignMiddle})
}
