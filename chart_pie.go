package nimsforestgallery

import (
	"image/color"
)

// PieVisual shows one column of a table as a pie chart. A select control
// picks the column; the first column supplies the slice labels.
type PieVisual struct {
	BaseVisual

	titlePrefix string
	palette     []color.Color

	pie       *PieChart
	picker    *Select
	lastAlert string
}

// NewPieVisual builds a pie visual. spec.Title is used as the title
// prefix and spec.Colours as the slice palette.
func NewPieVisual(spec VisualSpec, width, height float64) (*PieVisual, error) {
	palette, err := spec.colours("blue", "red", "green", "pink", "purple", "yellow")
	if err != nil {
		return nil, err
	}
	return &PieVisual{
		BaseVisual:  NewBaseVisual(spec.ID, spec.Name, spec.Dataset),
		titlePrefix: orDefault(spec.Title, "Employee diversity at"),
		palette:     palette,
		pie:         NewPieChart(width/2, height/2, width*0.4),
	}, nil
}

// Setup implements Visual.
func (v *PieVisual) Setup(env *Env) {
	v.BaseVisual.Setup(env)
	v.lastAlert = ""
	// Report each distinct problem once rather than on every frame.
	v.pie.Alerter = AlertFunc(func(msg string) {
		if msg == v.lastAlert {
			return
		}
		v.lastAlert = msg
		env.Alert(msg)
	})

	cols := v.Table().Columns()
	if len(cols) < 2 {
		env.logger().Warn("no columns to choose from", "id", v.ID())
		return
	}
	v.picker = env.Controls.Select(v.ID()+"/column", 350, 40, cols[1:]...)
}

// Destroy implements Visual.
func (v *PieVisual) Destroy() {
	if v.picker != nil {
		v.picker.Remove()
		v.picker = nil
	}
}

// Draw implements Visual.
func (v *PieVisual) Draw(c Canvas) {
	if !v.ready() || v.picker == nil {
		return
	}
	t := v.Table()
	name := v.picker.Value()
	data := t.NumColumn(name)
	labels := t.ColumnAt(0)

	colours := v.palette
	if len(colours) > len(data) {
		colours = colours[:len(data)]
	}

	if err := v.pie.Draw(c, data, labels, colours, v.titlePrefix+" "+name); err == nil {
		v.lastAlert = ""
	}
}

// Selected returns the column currently shown.
func (v *PieVisual) Selected() string {
	if v.picker == nil {
		return ""
	}
	return v.picker.Value()
}
