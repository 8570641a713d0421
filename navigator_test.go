package nimsforestgallery

import "testing"

func TestNavigatorSelectIndex(t *testing.T) {
	src := testSource(t)
	n := NewNavigator(src)
	if !n.SelectIndex(1) {
		t.Fatal("select failed")
	}
	f, _ := src.NextFrame()
	if f.Selected != "line" {
		t.Errorf("selected: have %s", f.Selected)
	}
	if n.SelectIndex(2) || n.SelectIndex(-1) {
		t.Error("out of range index should fail")
	}
}

func TestNavigatorFocus(t *testing.T) {
	src := testSource(t)
	n := NewNavigator(src)
	if n.FocusNext() != "" {
		t.Error("nothing to focus without controls")
	}
	n.SelectIndex(0)

	if have := n.FocusNext(); have != "climate/start-year" {
		t.Errorf("first focus: have %s", have)
	}
	if have := n.FocusNext(); have != "climate/end-year" {
		t.Errorf("second focus: have %s", have)
	}
	if have := n.FocusNext(); have != "climate/start-year" {
		t.Errorf("focus should wrap, have %s", have)
	}
	if have := n.FocusPrev(); have != "climate/end-year" {
		t.Errorf("prev should wrap, have %s", have)
	}

	// Switching visuals removes the focused control.
	n.SelectIndex(1)
	if n.Focused() != "" {
		t.Errorf("focus should clear, have %s", n.Focused())
	}
}

func TestNavigatorAdjust(t *testing.T) {
	src := testSource(t)
	n := NewNavigator(src)
	n.SelectIndex(0)

	if err := n.Adjust(1); err != nil {
		t.Fatal(err)
	}
	if n.Focused() != "climate/start-year" {
		t.Errorf("adjust should focus the first control, have %q", n.Focused())
	}
	value := func(name string) string {
		var v string
		src.Do(func(g *Gallery) {
			c, _ := g.Controls().Lookup(name)
			v = c.Value()
		})
		return v
	}
	if have := value("climate/start-year"); have != "2001" {
		t.Errorf("start year: want 2001, have %s", have)
	}
	n.Adjust(-1)
	n.Adjust(-1)
	if have := value("climate/start-year"); have != "2000" {
		t.Errorf("start year should clamp at 2000, have %s", have)
	}
}

func TestNavigatorAdjustSelect(t *testing.T) {
	g, _ := newTestGallery()
	v, _ := NewPieVisual(VisualSpec{ID: "race", Name: "Race"}, DefaultWidth, DefaultHeight)
	v.SetTable(csvTable(t, raceCSV))
	g.Register(v)
	src := NewGallerySource(g)
	n := NewNavigator(src)
	n.SelectIndex(0)

	n.Adjust(-1)
	if v.Selected() != "Empty" {
		t.Errorf("select should wrap backwards, have %s", v.Selected())
	}
	n.Adjust(1)
	n.Adjust(1)
	if v.Selected() != "Cisco" {
		t.Errorf("want Cisco, have %s", v.Selected())
	}
}
