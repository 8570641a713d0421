package nimsforestgallery

import (
	"image/color"
	"math"
	"slices"
)

// ClimateChart plots a temperature series over a year range picked with
// two sliders. Each frame reveals one more year until the whole range is
// drawn.
type ClimateChart struct {
	BaseVisual

	xLabel, yLabel   string
	yearCol, tempCol string
	layout           Layout

	minYear, maxYear   float64
	minTemp, maxTemp   float64
	meanTemp           float64
	startYear, endYear float64
	frameCount         int

	// Rebuilt each draw from the slider range and data bounds.
	years, temps Scale

	startSlider, endSlider *Slider
}

// NewClimateChart builds a climate chart. Columns roles: "x" (year,
// sorted ascending) and "y" (temperature).
func NewClimateChart(spec VisualSpec, width, height float64) (*ClimateChart, error) {
	return &ClimateChart{
		BaseVisual: NewBaseVisual(spec.ID, spec.Name, spec.Dataset),
		xLabel:     orDefault(spec.XLabel, "year"),
		yLabel:     orDefault(spec.YLabel, "℃"),
		yearCol:    spec.column("x", "year"),
		tempCol:    spec.column("y", "temperature"),
		layout:     spec.Layout.apply(NewLayout(width, height, 35), width, height),
	}, nil
}

// Setup implements Visual.
func (c *ClimateChart) Setup(env *Env) {
	c.BaseVisual.Setup(env)
	c.checkColumns(env, c.yearCol, c.tempCol)
	t := c.Table()
	c.frameCount = 0
	if t.RowCount() < 2 {
		env.logger().Warn("not enough years to plot", "id", c.ID(), "rows", t.RowCount())
		return
	}

	c.minYear = t.Num(0, c.yearCol)
	c.maxYear = t.Num(t.RowCount()-1, c.yearCol)

	temps := t.NumColumn(c.tempCol)
	c.minTemp, c.maxTemp = Bounds(temps)
	c.meanTemp = Mean(temps)

	c.startSlider = env.Controls.Slider(c.ID()+"/start-year", c.minYear, c.maxYear-1, c.minYear, 1, 400, 10)
	c.endSlider = env.Controls.Slider(c.ID()+"/end-year", c.minYear+1, c.maxYear, c.maxYear, 1, 600, 10)
}

// Destroy implements Visual.
func (c *ClimateChart) Destroy() {
	if c.startSlider != nil {
		c.startSlider.Remove()
		c.startSlider = nil
	}
	if c.endSlider != nil {
		c.endSlider.Remove()
		c.endSlider = nil
	}
}

type yearSample struct {
	year, temperature float64
}

// Draw implements Visual.
func (c *ClimateChart) Draw(cv Canvas) {
	if !c.ready() {
		return
	}
	l := c.layout
	if c.startSlider == nil {
		DrawAxis(cv, l, Black)
		DrawAxisLabels(cv, c.xLabel, c.yLabel, l)
		return
	}

	// Keep the range at least one year wide.
	if c.startSlider.Float() >= c.endSlider.Float() {
		c.startSlider.SetFloat(c.endSlider.Float() - 1)
	}
	c.startYear = c.startSlider.Float()
	c.endYear = c.endSlider.Float()
	c.years = NewScale(c.startYear, c.endYear, l.LeftMargin, l.RightMargin)
	// Lower temperatures at the bottom.
	c.temps = NewScale(c.minTemp, c.maxTemp, l.BottomMargin, l.TopMargin)

	DrawYAxisTickLabels(cv, c.minTemp, c.maxTemp, l, c.temps.Map, 1)
	DrawAxis(cv, l, Black)
	DrawAxisLabels(cv, c.xLabel, c.yLabel, l)

	mean := c.temps.Map(c.meanTemp)
	cv.Line(l.LeftMargin, mean, l.RightMargin, mean, Style{Stroke: Grey(200), StrokeWidth: 1})

	numYears := int(math.Round(c.endYear - c.startYear))
	segmentWidth := l.PlotWidth() / float64(numYears)
	labelled := CategoryTickIndices(numYears, l.NumXTickLabels, true)

	t := c.Table()
	var previous *yearSample
	yearCount := 0
	for i := 0; i < t.RowCount(); i++ {
		current := &yearSample{
			year:        t.Num(i, c.yearCol),
			temperature: t.Num(i, c.tempCol),
		}
		if previous != nil && current.year > c.startYear && current.year <= c.endYear {
			// Background band coloured by this year's temperature.
			cv.Rect(c.years.Map(previous.year), l.TopMargin, segmentWidth, l.PlotHeight(),
				Style{Fill: c.mapTemperatureToColour(current.temperature)})

			cv.Line(c.years.Map(previous.year), c.temps.Map(previous.temperature),
				c.years.Map(current.year), c.temps.Map(current.temperature),
				Style{Stroke: Black})

			if slices.Contains(labelled, yearCount) {
				DrawXAxisTickLabel(cv, previous.year, l, c.years.Map)
			}
			if yearCount == numYears-1 && slices.Contains(labelled, numYears) {
				DrawXAxisTickLabel(cv, current.year, l, c.years.Map)
			}
			yearCount++
		}

		// Only as many years as frames drawn so far.
		if yearCount >= c.frameCount {
			break
		}
		previous = current
	}

	if c.frameCount >= numYears {
		c.Env().NoLoop()
		return
	}
	c.frameCount++
}

// FrameCount returns the number of years the animation has revealed.
func (c *ClimateChart) FrameCount() int {
	return c.frameCount
}

// mapTemperatureToColour runs from translucent blue for the coldest year
// to translucent red for the warmest.
func (c *ClimateChart) mapTemperatureToColour(v float64) color.Color {
	red := Map(v, c.minTemp, c.maxTemp, 0, 255)
	return RGBA(red, 0, 255-red, 100)
}
