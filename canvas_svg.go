package nimsforestgallery

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// SVGCanvas renders onto an SVG document. Call Close to finish the
// document.
type SVGCanvas struct {
	svg           *svg.SVG
	width, height float64
	closed        bool
}

// NewSVGCanvas starts a width x height SVG document on w.
func NewSVGCanvas(w io.Writer, width, height float64) *SVGCanvas {
	c := &SVGCanvas{svg: svg.New(w), width: width, height: height}
	c.svg.Start(px(width), px(height), `font-family="Helvetica,Arial,sans-serif"`)
	return c
}

// Close ends the SVG document.
func (c *SVGCanvas) Close() error {
	if !c.closed {
		c.svg.End()
		c.closed = true
	}
	return nil
}

// Size implements Canvas.
func (c *SVGCanvas) Size() (float64, float64) { return c.width, c.height }

// Clear implements Canvas.
func (c *SVGCanvas) Clear(col color.Color) {
	c.svg.Rect(0, 0, px(c.width), px(c.height), svgStyle(Style{Fill: col}))
}

// Line implements Canvas.
func (c *SVGCanvas) Line(x0, y0, x1, y1 float64, s Style) {
	if s.Stroke == nil {
		return
	}
	c.svg.Line(px(x0), px(y0), px(x1), px(y1), svgStyle(Style{Stroke: s.Stroke, StrokeWidth: s.StrokeWidth}))
}

// Rect implements Canvas. Negative sizes are normalised.
func (c *SVGCanvas) Rect(x, y, w, h float64, s Style) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	c.svg.Rect(px(x), px(y), px(w), px(h), svgStyle(s))
}

// Ellipse implements Canvas.
func (c *SVGCanvas) Ellipse(cx, cy, w, h float64, s Style) {
	c.svg.Ellipse(px(cx), px(cy), px(w/2), px(h/2), svgStyle(s))
}

// Arc implements Canvas.
func (c *SVGCanvas) Arc(cx, cy, w, h, start, end float64, s Style) {
	if end-start >= 2*math.Pi {
		c.Ellipse(cx, cy, w, h, s)
		return
	}
	rx, ry := w/2, h/2
	x0, y0 := cx+rx*math.Cos(start), cy+ry*math.Sin(start)
	x1, y1 := cx+rx*math.Cos(end), cy+ry*math.Sin(end)
	large := 0
	if end-start > math.Pi {
		large = 1
	}
	d := fmt.Sprintf("M%.2f %.2f L%.2f %.2f A%.2f %.2f 0 %d 1 %.2f %.2f Z",
		cx, cy, x0, y0, rx, ry, large, x1, y1)
	c.svg.Path(d, svgStyle(s))
}

// Text implements Canvas.
func (c *SVGCanvas) Text(str string, x, y float64, s TextStyle) {
	attrs := []string{
		fmt.Sprintf(`font-size="%.6g"`, s.size()),
		`text-anchor="` + svgAnchor(s.Align) + `"`,
		`dominant-baseline="` + svgBaseline(s.VAlign) + `"`,
	}
	fill := s.Fill
	if fill == nil {
		fill = Black
	}
	attrs = append(attrs, svgStyle(Style{Fill: fill}))
	if s.Rotation != 0 {
		c.svg.Gtransform(fmt.Sprintf("translate(%.2f,%.2f) rotate(%.4g)", x, y, s.Rotation*180/math.Pi))
		c.svg.Text(0, 0, str, attrs...)
		c.svg.Gend()
		return
	}
	c.svg.Text(px(x), px(y), str, attrs...)
}

func px(v float64) int {
	return int(math.Round(v))
}

func svgAnchor(a HAlign) string {
	switch a {
	case AlignCenter:
		return "middle"
	case AlignRight:
		return "end"
	}
	return "start"
}

func svgBaseline(a VAlign) string {
	switch a {
	case AlignTop:
		return "hanging"
	case AlignMiddle:
		return "central"
	case AlignBottom:
		return "text-after-edge"
	}
	return "alphabetic"
}

// svgStyle renders s as an inline CSS declaration list.
func svgStyle(s Style) string {
	var b strings.Builder
	if s.Fill == nil {
		b.WriteString("fill:none")
	} else {
		c := nrgba(s.Fill)
		fmt.Fprintf(&b, "fill:rgb(%d,%d,%d)", c.R, c.G, c.B)
		if c.A != 255 {
			fmt.Fprintf(&b, ";fill-opacity:%.3g", float64(c.A)/255)
		}
	}
	if s.Stroke != nil {
		c := nrgba(s.Stroke)
		fmt.Fprintf(&b, ";stroke:rgb(%d,%d,%d);stroke-width:%.3g", c.R, c.G, c.B, s.strokeWidth())
		if c.A != 255 {
			fmt.Fprintf(&b, ";stroke-opacity:%.3g", float64(c.A)/255)
		}
	}
	return b.String()
}
