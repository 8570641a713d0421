package nimsforestgallery

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"slices"
	"strings"
	"testing"
)

func csvTable(t *testing.T, doc string) *Table {
	t.Helper()
	tbl, err := ParseCSV(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

// activate registers v with data already supplied and selects it.
func activate(t *testing.T, v Visual, data *Table) (*Gallery, *alertLog) {
	t.Helper()
	if s, ok := v.(interface{ SetTable(*Table) }); ok {
		s.SetTable(data)
	}
	g, alerts := newTestGallery()
	if err := g.Register(v); err != nil {
		t.Fatal(err)
	}
	g.Select(v.ID())
	return g, alerts
}

func diagonalLines(dl *DisplayList) int {
	n := 0
	for _, op := range dl.Ops() {
		if op.Kind == OpLine && op.X != op.X2 && op.Y != op.Y2 {
			n++
		}
	}
	return n
}

const climateCSV = `year,temperature
2000,0.40
2001,0.52
2002,0.61
2003,0.60
2004,0.53
`

func TestClimateAnimation(t *testing.T) {
	c, err := NewClimateChart(VisualSpec{ID: "climate", Name: "Climate"}, 1024, 576)
	if err != nil {
		t.Fatal(err)
	}
	g, _ := activate(t, c, csvTable(t, climateCSV))

	for frame := 1; frame <= 5; frame++ {
		if !g.Looping() {
			t.Fatalf("frame %d: stopped looping early", frame)
		}
		dl := NewDisplayList(1024, 576)
		g.Draw(dl)
		if have, want := dl.Count(OpRect), frame-1; have != want {
			t.Errorf("frame %d: want %d bands, have %d", frame, want, have)
		}
		if have, want := diagonalLines(dl), frame-1; have != want {
			t.Errorf("frame %d: want %d segments, have %d", frame, want, have)
		}
	}
	if g.Looping() {
		t.Error("animation should stop once every year is drawn")
	}
	if c.FrameCount() != 4 {
		t.Errorf("frame count: want 4, have %d", c.FrameCount())
	}
}

func TestClimateSliders(t *testing.T) {
	c, _ := NewClimateChart(VisualSpec{ID: "climate", Name: "Climate"}, 1024, 576)
	g, _ := activate(t, c, csvTable(t, climateCSV))

	start, ok := g.Controls().Lookup("climate/start-year")
	if !ok || start.Value() != "2000" {
		t.Fatalf("start slider: %v %v", start, ok)
	}
	end, ok := g.Controls().Lookup("climate/end-year")
	if !ok || end.Value() != "2004" {
		t.Fatalf("end slider: %v %v", end, ok)
	}

	// A start at or past the end is pulled back one year.
	g.SetControl("climate/start-year", "2003")
	g.SetControl("climate/end-year", "2002")
	g.Draw(NewDisplayList(1024, 576))
	if start.Value() != "2001" {
		t.Errorf("start: want 2001, have %s", start.Value())
	}

	g.Close()
	if len(g.Controls().Live()) != 0 {
		t.Error("destroy should remove both sliders")
	}
}

func TestClimateTooFewRows(t *testing.T) {
	c, _ := NewClimateChart(VisualSpec{ID: "climate", Name: "Climate"}, 1024, 576)
	g, _ := activate(t, c, csvTable(t, "year,temperature\n2000,0.4\n"))
	dl := NewDisplayList(1024, 576)
	g.Draw(dl)
	if dl.Count(OpRect) != 0 {
		t.Error("nothing should be plotted")
	}
	if dl.Count(OpLine) != 2 {
		t.Errorf("want bare axes, have %d lines", dl.Count(OpLine))
	}
}

func TestLineChart(t *testing.T) {
	c, err := NewLineChart(VisualSpec{ID: "gap", Name: "Gap", Title: "Pay gap"}, 1024, 576)
	if err != nil {
		t.Fatal(err)
	}
	g, _ := activate(t, c, csvTable(t, "year,pay_gap\n2000,10\n2001,12\n2002,9\n2003,15\n2004,11\n"))
	dl := NewDisplayList(1024, 576)
	g.Draw(dl)

	if have := diagonalLines(dl); have != 4 {
		t.Errorf("segments: want 4, have %d", have)
	}
	var texts []string
	for _, op := range dl.Ops() {
		if op.Kind == OpText {
			texts = append(texts, op.Text)
		}
	}
	for _, want := range []string{"Pay gap", "2000", "2003", "0", "15", "year", "%"} {
		if !slices.Contains(texts, want) {
			t.Errorf("missing text %q in %v", want, texts)
		}
	}
	if slices.Contains(texts, "2004") {
		t.Error("last year should not be labelled")
	}
	if !g.Looping() {
		t.Error("line chart keeps looping")
	}
}

func TestScatterChart(t *testing.T) {
	c, err := NewScatterChart(VisualSpec{ID: "jobs", Name: "Jobs"}, 1024, 576)
	if err != nil {
		t.Fatal(err)
	}
	g, _ := activate(t, c, csvTable(t, `job_type,num_jobs,pay_gap,proportion_female
a,100,5,50
b,300,-10,20
c,200,,80
d,150,2,
`))
	dl := NewDisplayList(1024, 576)
	g.Draw(dl)

	var dots []Op
	for _, op := range dl.Ops() {
		if op.Kind == OpEllipse {
			dots = append(dots, op)
		}
	}
	// Blank cells parse as zero so every row is plotted.
	if len(dots) != 4 {
		t.Fatalf("dots: want 4, have %d", len(dots))
	}
	if dots[0].W != dotSizeMin || dots[1].W != dotSizeMax {
		t.Errorf("diameters: have %v, %v", dots[0].W, dots[1].W)
	}
	// 50% women and a 5 point gap sit right of centre, above the axis.
	midX, midY := 512.0, 288.0
	if dots[0].X != midX || dots[0].Y >= midY {
		t.Errorf("first dot at %v, %v", dots[0].X, dots[0].Y)
	}
	if dots[1].Y <= midY {
		t.Errorf("negative gap should sit below the axis, have y %v", dots[1].Y)
	}
}

func TestScatterSkipsUnparsable(t *testing.T) {
	c, _ := NewScatterChart(VisualSpec{ID: "jobs", Name: "Jobs"}, 1024, 576)
	g, _ := activate(t, c, csvTable(t, "num_jobs,pay_gap,proportion_female\n1,2,3\n1,x,3\n"))
	dl := NewDisplayList(1024, 576)
	g.Draw(dl)
	if have := dl.Count(OpEllipse); have != 1 {
		t.Errorf("dots: want 1, have %d", have)
	}
}

func TestScatterWithoutDataset(t *testing.T) {
	v, err := NewVisual(VisualSpec{Kind: KindScatter, ID: "s", Name: "S"}, 1024, 576)
	if err != nil {
		t.Fatal(err)
	}
	g, _ := newTestGallery()
	if err := g.Register(v); err != nil {
		t.Fatal(err)
	}
	g.Select("s")
	dl := NewDisplayList(1024, 576)
	g.Draw(dl)
	if have := dl.Count(OpEllipse); have != 0 {
		t.Errorf("dots: want 0, have %d", have)
	}
}

func TestVisualsWithoutDataset(t *testing.T) {
	for _, kind := range Kinds() {
		v, err := NewVisual(VisualSpec{Kind: kind, ID: string(kind), Name: string(kind)}, 1024, 576)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		g, _ := newTestGallery()
		if err := g.Register(v); err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		g.Select(v.ID())
		for i := 0; i < 3; i++ {
			g.Draw(NewDisplayList(1024, 576))
		}
		g.Close()
	}
}

func TestMissingColumnWarning(t *testing.T) {
	var buf bytes.Buffer
	g, _ := newTestGallery(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	c, err := NewClimateChart(VisualSpec{ID: "climate", Name: "Climate", Dataset: "warming.csv"}, 1024, 576)
	if err != nil {
		t.Fatal(err)
	}
	c.SetTable(csvTable(t, "year,anomaly\n2000,0.4\n2001,0.5\n"))
	if err := g.Register(c); err != nil {
		t.Fatal(err)
	}
	g.Select("climate")

	out := buf.String()
	for _, want := range []string{"column=temperature", "dataset=warming.csv"} {
		if !strings.Contains(out, want) {
			t.Errorf("want %q in log, have %q", want, out)
		}
	}
	if strings.Contains(out, "column=year") {
		t.Errorf("present column reported missing: %q", out)
	}
}

func TestStackedBarChart(t *testing.T) {
	c, err := NewStackedBarChart(VisualSpec{ID: "gender", Name: "Gender"}, 1024, 576)
	if err != nil {
		t.Fatal(err)
	}
	g, _ := activate(t, c, csvTable(t, "company,female,male\nApple,32,68\nCisco,25,75\nDell,n/a,70\n"))
	dl := NewDisplayList(1024, 576)
	g.Draw(dl)

	if have := dl.Count(OpRect); have != 6 {
		t.Errorf("bars: want 6, have %d", have)
	}
	var rects []Op
	var texts []string
	for _, op := range dl.Ops() {
		switch op.Kind {
		case OpRect:
			rects = append(rects, op)
		case OpText:
			texts = append(texts, op.Text)
		}
	}
	plot := 1024.0 - 130
	if math.Abs(rects[0].W+rects[1].W-plot) > 1e-9 {
		t.Errorf("bar should span the plot width, have %v", rects[0].W+rects[1].W)
	}
	if rects[1].X != 130+rects[0].W {
		t.Errorf("right part should start where the left ends")
	}
	if rects[4].W != 0 {
		t.Errorf("missing value should have zero width, have %v", rects[4].W)
	}
	for _, want := range []string{"Female", "50%", "Male", "Apple", "Dell"} {
		if !slices.Contains(texts, want) {
			t.Errorf("missing text %q", want)
		}
	}
}

func TestStackedBarColours(t *testing.T) {
	_, err := NewStackedBarChart(VisualSpec{ID: "g", Name: "G", Colours: []string{"red"}}, 100, 100)
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("want ErrLengthMismatch, have %v", err)
	}
	if _, err := NewStackedBarChart(VisualSpec{ID: "g", Name: "G", Colours: []string{"red", "nope"}}, 100, 100); err == nil {
		t.Error("want colour parse error")
	}
}

func TestCapitalise(t *testing.T) {
	for in, want := range map[string]string{"female": "Female", "pay_gap": "Pay gap", "": ""} {
		if have := capitalise(in); have != want {
			t.Errorf("capitalise(%q): want %q, have %q", in, want, have)
		}
	}
}

const raceCSV = `,Apple,Cisco,Empty
asian,18,37,0
black,9,4,0
white,56,53,0
`

func TestPieVisual(t *testing.T) {
	v, err := NewPieVisual(VisualSpec{ID: "race", Name: "Race"}, 1024, 576)
	if err != nil {
		t.Fatal(err)
	}
	g, alerts := activate(t, v, csvTable(t, raceCSV))

	c, ok := g.Controls().Lookup("race/column")
	if !ok {
		t.Fatal("want column picker")
	}
	if v.Selected() != "Apple" {
		t.Errorf("initial column: have %q", v.Selected())
	}
	dl := NewDisplayList(1024, 576)
	g.Draw(dl)
	if have := dl.Count(OpArc); have != 3 {
		t.Errorf("slices: want 3, have %d", have)
	}
	if !hasText(dl, "Employee diversity at Apple") {
		t.Error("missing title")
	}

	if err := g.SetControl("race/column", "Cisco"); err != nil {
		t.Fatal(err)
	}
	dl = NewDisplayList(1024, 576)
	g.Draw(dl)
	if !hasText(dl, "Employee diversity at Cisco") {
		t.Error("title should follow the picker")
	}

	g.SetControl("race/column", "Empty")
	for range 3 {
		g.Draw(NewDisplayList(1024, 576))
	}
	if len(*alerts) != 1 {
		t.Errorf("a repeated problem should alert once, have %q", *alerts)
	}

	g.Close()
	if !c.Removed() {
		t.Error("destroy should remove the picker")
	}
}

func TestPieVisualPalette(t *testing.T) {
	v, _ := NewPieVisual(VisualSpec{ID: "race", Name: "Race", Colours: []string{"red", "blue"}}, 1024, 576)
	g, alerts := activate(t, v, csvTable(t, raceCSV))
	g.Draw(NewDisplayList(1024, 576))
	if len(*alerts) != 1 {
		t.Errorf("three slices with two colours should alert, have %q", *alerts)
	}
}

func hasText(dl *DisplayList, s string) bool {
	for _, op := range dl.Ops() {
		if op.Kind == OpText && op.Text == s {
			return true
		}
	}
	return false
}

func TestNewVisualUnknownKind(t *testing.T) {
	_, err := NewVisual(VisualSpec{Kind: "radar", ID: "r", Name: "R"}, 100, 100)
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("want ErrUnknownKind, have %v", err)
	}
	if want := []Kind{KindClimate, KindLine, KindPie, KindScatter, KindStackedBar}; !slices.Equal(Kinds(), want) {
		t.Errorf("kinds: want %v, have %v", want, Kinds())
	}
}
