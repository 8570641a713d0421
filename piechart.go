package nimsforestgallery

import (
	"fmt"
	"image/color"
	"math"
)

// sliceOverlap widens each slice slightly so adjacent slices leave no
// hairline gap, and zero-valued slices still draw.
const sliceOverlap = 0.001

// PieChart draws proportional slices of a data series with a legend.
type PieChart struct {
	X, Y       float64
	Diameter   float64
	LabelSpace float64

	// Alerter, if set, is told about input that cannot be drawn.
	Alerter Alerter
}

// NewPieChart returns a pie chart centred on (x, y).
func NewPieChart(x, y, diameter float64) *PieChart {
	return &PieChart{X: x, Y: y, Diameter: diameter, LabelSpace: 30}
}

// Radians returns each value's share of a full turn. For non-empty
// positive input the result sums to 2π.
func (p *PieChart) Radians(data []float64) []float64 {
	total := Sum(data)
	radians := make([]float64, len(data))
	for i, v := range data {
		radians[i] = v / total * 2 * math.Pi
	}
	return radians
}

// Validate checks that data can be drawn with the given labels and
// colours. Nil labels or colours are allowed; present ones must match
// data in length.
func (p *PieChart) Validate(data []float64, labels []string, colours []color.Color) error {
	switch {
	case len(data) == 0:
		return fmt.Errorf("pie chart: %w: data has length zero", ErrEmptyData)
	case labels != nil && len(labels) != len(data),
		colours != nil && len(colours) != len(data):
		return fmt.Errorf("pie chart: %w: data %d, labels %d, colours %d",
			ErrLengthMismatch, len(data), len(labels), len(colours))
	case !(Sum(data) > 0):
		return fmt.Errorf("pie chart: %w: data does not sum to a positive total", ErrEmptyData)
	}
	return nil
}

// Draw draws the slices, a legend entry per label, and the title. Invalid
// input is reported to the alerter and returned without drawing.
func (p *PieChart) Draw(c Canvas, data []float64, labels []string, colours []color.Color, title string) error {
	if err := p.Validate(data, labels, colours); err != nil {
		if p.Alerter != nil {
			p.Alerter.Alert(err.Error())
		}
		return err
	}

	angles := p.Radians(data)
	last := 0.0
	for i := range data {
		var col color.Color
		if colours != nil {
			col = colours[i]
		} else {
			col = Grey(uint8(Map(float64(i), 0, float64(len(data)), 0, 255)))
		}
		c.Arc(p.X, p.Y, p.Diameter, p.Diameter, last, last+angles[i]+sliceOverlap,
			Style{Fill: col, Stroke: Black, StrokeWidth: 1})
		if labels != nil {
			p.legendItem(c, labels[i], i, col)
		}
		last += angles[i]
	}

	if title != "" {
		c.Text(title, p.X, p.Y-p.Diameter*0.6,
			TextStyle{Fill: Black, Size: 24, Align: AlignCenter, VAlign: AlignMiddle})
	}
	return nil
}

func (p *PieChart) legendItem(c Canvas, label string, i int, col color.Color) {
	x := p.X + 50 + p.Diameter/2
	y := p.Y + p.LabelSpace*float64(i) - p.Diameter/3
	box := p.LabelSpace / 2

	c.Rect(x, y, box, box, Style{Fill: col})
	c.Text(label, x+box+10, y+box/2, TextStyle{Fill: Black, Size: 12, Align: AlignLeft, VAlign: AlignMiddle})
}
