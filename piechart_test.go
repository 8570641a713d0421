package nimsforestgallery

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func TestPieRadians(t *testing.T) {
	p := NewPieChart(500, 300, 400)
	for _, data := range [][]float64{
		{1, 1, 1, 1},
		{45, 3, 12, 7, 0, 33},
		{0.1},
	} {
		total := 0.0
		for _, r := range p.Radians(data) {
			total += r
		}
		if math.Abs(total-2*math.Pi) > 1e-9 {
			t.Errorf("%v: radians sum to %v", data, total)
		}
	}
	if have := p.Radians([]float64{1, 3}); math.Abs(have[1]-1.5*math.Pi) > 1e-9 {
		t.Errorf("share of 3/4: have %v", have[1])
	}
}

func TestPieValidate(t *testing.T) {
	p := NewPieChart(0, 0, 100)
	red := color.RGBA{R: 255, A: 255}
	tests := []struct {
		name    string
		data    []float64
		labels  []string
		colours []color.Color
		want    error
	}{
		{"ok", []float64{1, 2}, []string{"a", "b"}, []color.Color{red, red}, nil},
		{"nil labels and colours", []float64{1, 2}, nil, nil, nil},
		{"empty", nil, nil, nil, ErrEmptyData},
		{"zero total", []float64{0, 0}, nil, nil, ErrEmptyData},
		{"short labels", []float64{1, 2, 3}, []string{"a", "b"}, nil, ErrLengthMismatch},
		{"long colours", []float64{1}, nil, []color.Color{red, red}, ErrLengthMismatch},
	}
	for _, tt := range tests {
		err := p.Validate(tt.data, tt.labels, tt.colours)
		if !errors.Is(err, tt.want) || (tt.want == nil) != (err == nil) {
			t.Errorf("%s: want %v, have %v", tt.name, tt.want, err)
		}
	}
}

func TestPieDraw(t *testing.T) {
	p := NewPieChart(512, 288, 400)
	dl := NewDisplayList(1024, 576)
	data := []float64{50, 30, 20}
	labels := []string{"asian", "black", "white"}
	colours := []color.Color{Black, White, Grey(100)}

	if err := p.Draw(dl, data, labels, colours, "Employee diversity at Apple"); err != nil {
		t.Fatal(err)
	}
	if have := dl.Count(OpArc); have != 3 {
		t.Errorf("arcs: want 3, have %d", have)
	}
	// One legend box per label.
	if have := dl.Count(OpRect); have != 3 {
		t.Errorf("legend boxes: want 3, have %d", have)
	}
	// Labels plus the title.
	if have := dl.Count(OpText); have != 4 {
		t.Errorf("text: want 4, have %d", have)
	}

	var arcs []Op
	for _, op := range dl.Ops() {
		if op.Kind == OpArc {
			arcs = append(arcs, op)
		}
	}
	if arcs[0].Start != 0 || math.Abs(arcs[1].Start-math.Pi) > 1e-9 {
		t.Errorf("slice starts: %v, %v", arcs[0].Start, arcs[1].Start)
	}
	if have := arcs[0].End - arcs[0].Start; math.Abs(have-(math.Pi+sliceOverlap)) > 1e-9 {
		t.Errorf("first slice should overlap its neighbour, sweep %v", have)
	}
}

func TestPieDrawInvalid(t *testing.T) {
	var alerts alertLog
	p := NewPieChart(0, 0, 100)
	p.Alerter = &alerts
	dl := NewDisplayList(100, 100)

	err := p.Draw(dl, []float64{1, 2}, []string{"a"}, nil, "")
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("want ErrLengthMismatch, have %v", err)
	}
	if len(dl.Ops()) != 0 {
		t.Errorf("nothing should be drawn, have %d ops", len(dl.Ops()))
	}
	if len(alerts) != 1 {
		t.Errorf("want one alert, have %q", alerts)
	}
}

func TestPieDrawNoLabels(t *testing.T) {
	p := NewPieChart(0, 0, 100)
	dl := NewDisplayList(100, 100)
	if err := p.Draw(dl, []float64{1, 2, 3}, nil, nil, ""); err != nil {
		t.Fatal(err)
	}
	if dl.Count(OpArc) != 3 || dl.Count(OpRect) != 0 || dl.Count(OpText) != 0 {
		t.Errorf("want arcs only, have %d ops", len(dl.Ops()))
	}
}
