package nimsforestgallery

import (
	"image/color"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"
)

// StackedBarChart draws one horizontal bar per row split into two
// percentages that together make up the full plot width.
type StackedBarChart struct {
	BaseVisual

	labelCol, leftCol, rightCol string
	leftColour, rightColour     color.Color
	layout                      Layout
}

// NewStackedBarChart builds a stacked bar chart. Column roles: "label",
// "left" and "right". The two value columns are percentages.
func NewStackedBarChart(spec VisualSpec, width, height float64) (*StackedBarChart, error) {
	cols, err := spec.colours("#ff0000", "#00ff00")
	if err != nil {
		return nil, err
	}
	if len(cols) < 2 {
		return nil, &ConfigError{ID: spec.ID, Name: spec.Name, Err: ErrLengthMismatch}
	}
	l := Layout{
		MarginSize:     35,
		LeftMargin:     130,
		RightMargin:    width,
		TopMargin:      30,
		BottomMargin:   height,
		Pad:            5,
		Grid:           true,
		NumXTickLabels: 10,
		NumYTickLabels: 8,
	}
	return &StackedBarChart{
		BaseVisual:  NewBaseVisual(spec.ID, spec.Name, spec.Dataset),
		labelCol:    spec.column("label", "company"),
		leftCol:     spec.column("left", "female"),
		rightCol:    spec.column("right", "male"),
		leftColour:  cols[0],
		rightColour: cols[1],
		layout:      spec.Layout.apply(l, width, height),
	}, nil
}

// Setup implements Visual.
func (c *StackedBarChart) Setup(env *Env) {
	c.BaseVisual.Setup(env)
	c.checkColumns(env, c.labelCol, c.leftCol, c.rightCol)
}

// Draw implements Visual.
func (c *StackedBarChart) Draw(cv Canvas) {
	if !c.ready() {
		return
	}
	l := c.layout
	t := c.Table()
	c.drawCategoryLabels(cv)

	if n := t.RowCount(); n > 0 {
		lineHeight := (l.BottomMargin - l.TopMargin) / float64(n)
		label := TextStyle{Fill: Black, Align: AlignRight, VAlign: AlignTop}
		for i := 0; i < n; i++ {
			y := lineHeight*float64(i) + l.TopMargin
			left := c.mapPercentToWidth(t.Num(i, c.leftCol))
			right := c.mapPercentToWidth(t.Num(i, c.rightCol))

			cv.Text(t.String(i, c.labelCol), l.LeftMargin-l.Pad, y, label)
			cv.Rect(l.LeftMargin, y, left, lineHeight-l.Pad, Style{Fill: c.leftColour})
			cv.Rect(l.LeftMargin+left, y, right, lineHeight-l.Pad, Style{Fill: c.rightColour})
		}
	}

	mid := c.midX()
	cv.Line(mid, l.TopMargin, mid, l.BottomMargin, Style{Stroke: Grey(150)})
}

func (c *StackedBarChart) drawCategoryLabels(cv Canvas) {
	l := c.layout
	style := TextStyle{Fill: Black, Align: AlignLeft, VAlign: AlignTop}
	cv.Text(capitalise(c.leftCol), l.LeftMargin, l.Pad, style)
	style.Align = AlignCenter
	cv.Text("50%", c.midX(), l.Pad, style)
	style.Align = AlignRight
	cv.Text(capitalise(c.rightCol), l.RightMargin, l.Pad, style)
}

func (c *StackedBarChart) midX() float64 {
	return c.layout.PlotWidth()/2 + c.layout.LeftMargin
}

// mapPercentToWidth treats a missing value as zero width.
func (c *StackedBarChart) mapPercentToWidth(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return Map(p, 0, 100, 0, c.layout.PlotWidth())
}

func capitalise(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[n:]
}
