package nimsforestgallery

import (
	"image/color"
	"math"
	"strconv"
)

// Axis and grid colours.
var (
	gridColour  = Grey(200)
	xGridColour = Grey(220)
)

// DrawAxis draws the x axis along the bottom margin and the y axis along
// the left margin.
func DrawAxis(c Canvas, l Layout, colour color.Color) {
	if colour == nil {
		colour = Black
	}
	s := Style{Stroke: colour}
	c.Line(l.LeftMargin, l.BottomMargin, l.RightMargin, l.BottomMargin, s)
	c.Line(l.LeftMargin, l.TopMargin, l.LeftMargin, l.BottomMargin, s)
}

// DrawAxisLabels draws the x axis label centred below the plot and the
// y axis label rotated alongside it.
func DrawAxisLabels(c Canvas, xLabel, yLabel string, l Layout) {
	style := TextStyle{Fill: Black, Size: 16, Align: AlignCenter, VAlign: AlignMiddle}
	c.Text(xLabel, l.PlotWidth()/2+l.LeftMargin, l.BottomMargin+l.MarginSize*1.5, style)

	style.Rotation = -math.Pi / 2
	c.Text(yLabel, l.LeftMargin-l.MarginSize*1.5, l.BottomMargin/2, style)
}

// YTickValues returns n+1 evenly spaced values from min to max
// inclusive. It returns nil when n is not positive.
func YTickValues(min, max float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	step := (max - min) / float64(n)
	vals := make([]float64, n+1)
	for i := range vals {
		vals[i] = min + float64(i)*step
	}
	return vals
}

// DrawYAxisTickLabels draws layout.NumYTickLabels+1 labels spanning
// [min, max] on the y axis, positioned by mapFn, with grid lines when the
// layout enables them. Degenerate bounds draw nothing.
func DrawYAxisTickLabels(c Canvas, min, max float64, l Layout, mapFn func(float64) float64, decimals int) {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) || min == max {
		return
	}
	style := TextStyle{Fill: Black, Align: AlignRight, VAlign: AlignMiddle}
	for _, v := range YTickValues(min, max, l.NumYTickLabels) {
		y := mapFn(v)
		c.Text(strconv.FormatFloat(v, 'f', decimals, 64), l.LeftMargin-l.Pad, y, style)
		if l.Grid {
			c.Line(l.LeftMargin, y, l.RightMargin, y, Style{Stroke: gridColour})
		}
	}
}

// DrawXAxisTickLabel draws one category/time tick label below the x axis
// at mapFn(value), with a vertical grid line when the layout enables it.
func DrawXAxisTickLabel(c Canvas, value float64, l Layout, mapFn func(float64) float64) {
	x := mapFn(value)
	c.Text(strconv.FormatFloat(value, 'f', -1, 64), x, l.BottomMargin+l.MarginSize/2,
		TextStyle{Fill: Black, Align: AlignCenter, VAlign: AlignMiddle})
	if l.Grid {
		c.Line(x, l.TopMargin, x, l.BottomMargin, Style{Stroke: xGridColour})
	}
}

// XLabelSkip returns how many categories to step between x tick labels
// so that at most about numTicks labels are drawn. It is never less than
// one.
func XLabelSkip(numCategories, numTicks int) int {
	if numTicks <= 0 || numCategories <= 0 {
		return 1
	}
	skip := int(math.Ceil(float64(numCategories) / float64(numTicks)))
	if skip < 1 {
		skip = 1
	}
	return skip
}

// smallCategoryCount is the interval count at or below which a chart
// may force the closing label so the axis does not end in a gap.
const smallCategoryCount = 6

// CategoryTickIndices returns which of the n+1 points bounding n
// consecutive intervals get a tick label: the first point of each skip
// interval, plus the closing point n when forceLast is set and n is
// small.
func CategoryTickIndices(n, numTicks int, forceLast bool) []int {
	if n <= 0 {
		return nil
	}
	skip := XLabelSkip(n, numTicks)
	var idx []int
	for i := 0; i < n; i += skip {
		idx = append(idx, i)
	}
	if forceLast && n <= smallCategoryCount {
		idx = append(idx, n)
	}
	return idx
}
