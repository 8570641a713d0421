package nimsforestgallery

import (
	"bytes"
	"image/color"
	"math"
	"strings"
	"testing"
)

func drawSample(c Canvas) {
	c.Clear(White)
	c.Rect(10, 10, 20, 20, Style{Fill: Black})
	c.Line(0, 50, 100, 50, Style{Stroke: Black, StrokeWidth: 2})
	c.Ellipse(70, 20, 10, 10, Style{Fill: White, Stroke: Black})
	c.Arc(50, 80, 30, 30, 0, 1.5, Style{Fill: Grey(100)})
	c.Text("year", 50, 95, TextStyle{Fill: Black, Align: AlignCenter})
}

func TestDisplayListReplay(t *testing.T) {
	dl := NewDisplayList(100, 100)
	drawSample(dl)
	if have := len(dl.Ops()); have != 6 {
		t.Fatalf("want 6 ops, have %d", have)
	}

	dup := NewDisplayList(100, 100)
	dl.Replay(dup)
	if len(dup.Ops()) != len(dl.Ops()) {
		t.Fatalf("replay: want %d ops, have %d", len(dl.Ops()), len(dup.Ops()))
	}
	for i, op := range dup.Ops() {
		if op.Kind != dl.Ops()[i].Kind {
			t.Errorf("op %d: want %v, have %v", i, dl.Ops()[i].Kind, op.Kind)
		}
	}
}

func TestDisplayListClearResets(t *testing.T) {
	dl := NewDisplayList(100, 100)
	drawSample(dl)
	dl.Clear(Black)
	if have := len(dl.Ops()); have != 1 {
		t.Errorf("clear should drop earlier ops, have %d", have)
	}
}

func TestSVGCanvas(t *testing.T) {
	var buf bytes.Buffer
	c := NewSVGCanvas(&buf, 100, 100)
	drawSample(c)
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
	c.Close()

	out := buf.String()
	for _, want := range []string{"<svg", "<rect", "<line", "<ellipse", "<path", ">year<", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q", want)
		}
	}
	if n := strings.Count(out, "</svg>"); n != 1 {
		t.Errorf("document should be closed once, have %d", n)
	}
}

func TestRasterCanvas(t *testing.T) {
	c := NewRasterCanvas(100, 100)
	if w, h := c.Size(); w != 100 || h != 100 {
		t.Errorf("size: have %vx%v", w, h)
	}
	drawSample(c)

	img := c.Image()
	if have := color.RGBAModel.Convert(img.At(20, 20)).(color.RGBA); have.R > 10 || have.A != 255 {
		t.Errorf("inside the rect: want black, have %v", have)
	}
	if have := color.RGBAModel.Convert(img.At(95, 5)).(color.RGBA); have.R != 255 || have.G != 255 || have.B != 255 {
		t.Errorf("background: want white, have %v", have)
	}
	if have := color.RGBAModel.Convert(img.At(50, 50)).(color.RGBA); have.R > 128 {
		t.Errorf("on the line: want dark, have %v", have)
	}
}

func rgbaAt(c *RasterCanvas, x, y int) color.RGBA {
	return color.RGBAModel.Convert(c.Image().At(x, y)).(color.RGBA)
}

func TestRasterLineLeavingImage(t *testing.T) {
	c := NewRasterCanvas(100, 100)
	c.Clear(White)
	// y = 50 + x/2, starting well left of the image.
	c.Line(-100, 0, 100, 100, Style{Stroke: Black, StrokeWidth: 2})

	if have := rgbaAt(c, 20, 60); have.R > 128 {
		t.Errorf("on the line: want dark, have %v", have)
	}
	if have := rgbaAt(c, 0, 50); have.R > 128 {
		t.Errorf("where the line enters: want dark, have %v", have)
	}
	for _, p := range [][2]int{{20, 20}, {0, 0}, {0, 10}, {99, 99}} {
		if have := rgbaAt(c, p[0], p[1]); have.R != 255 {
			t.Errorf("off the line at %v: want white, have %v", p, have)
		}
	}
}

func TestRasterRectBeyondEdges(t *testing.T) {
	c := NewRasterCanvas(100, 100)
	c.Clear(White)
	c.Rect(-50, 40, 1000, 20, Style{Fill: Black})

	for _, p := range [][2]int{{0, 50}, {50, 50}, {99, 50}} {
		if have := rgbaAt(c, p[0], p[1]); have.R > 10 {
			t.Errorf("inside at %v: want black, have %v", p, have)
		}
	}
	if have := rgbaAt(c, 50, 30); have.R != 255 {
		t.Errorf("above: want white, have %v", have)
	}
}

func TestRasterNonFiniteShapes(t *testing.T) {
	c := NewRasterCanvas(50, 50)
	c.Clear(White)
	nan, inf := math.NaN(), math.Inf(1)
	c.Rect(nan, 10, 20, 20, Style{Fill: Black, Stroke: Black})
	c.Rect(10, 10, inf, 20, Style{Fill: Black})
	c.Line(0, 0, nan, 40, Style{Stroke: Black})
	c.Ellipse(25, 25, nan, 10, Style{Fill: Black})

	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			if have := rgbaAt(c, x, y); have != (color.RGBA{255, 255, 255, 255}) {
				t.Fatalf("pixel %d,%d: want white, have %v", x, y, have)
			}
		}
	}
}

func TestClipHalf(t *testing.T) {
	square := [][2]float64{{-10, 0}, {10, 0}, {10, 10}, {-10, 10}}
	have := clipHalf(square, 0, 0, false)
	if len(have) != 4 {
		t.Fatalf("want 4 vertices, have %v", have)
	}
	for _, p := range have {
		if p[0] < 0 {
			t.Errorf("vertex %v left of the clip line", p)
		}
	}
	if have := clipHalf(square, 0, 20, false); len(have) != 0 {
		t.Errorf("fully outside: want nothing, have %v", have)
	}
}

func TestParseColour(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"red", color.RGBA{255, 0, 0, 255}, true},
		{"#00ff00", color.RGBA{0, 255, 0, 255}, true},
		{"0000FF", color.RGBA{0, 0, 255, 255}, true},
		{" Blue ", color.RGBA{0, 0, 255, 255}, true},
		{"#12345", color.RGBA{}, false},
		{"teal-ish", color.RGBA{}, false},
	}
	for _, tt := range tests {
		c, err := ParseColour(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseColour(%q): error %v", tt.in, err)
			continue
		}
		if !tt.ok {
			continue
		}
		if have := color.RGBAModel.Convert(c).(color.RGBA); have != tt.want {
			t.Errorf("ParseColour(%q): want %v, have %v", tt.in, tt.want, have)
		}
	}
}
