package nimsforestgallery

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// RasterCanvas renders onto an in-memory RGBA image. Text uses a fixed
// 7x13 bitmap face, so TextStyle.Size is ignored.
type RasterCanvas struct {
	img  *image.RGBA
	face font.Face
}

// NewRasterCanvas returns a white width x height raster canvas.
func NewRasterCanvas(width, height int) *RasterCanvas {
	c := &RasterCanvas{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		face: basicfont.Face7x13,
	}
	c.Clear(White)
	return c
}

// Image returns the backing image.
func (c *RasterCanvas) Image() *image.RGBA {
	return c.img
}

// Size implements Canvas.
func (c *RasterCanvas) Size() (float64, float64) {
	b := c.img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Clear implements Canvas.
func (c *RasterCanvas) Clear(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// Line implements Canvas.
func (c *RasterCanvas) Line(x0, y0, x1, y1 float64, s Style) {
	if s.Stroke == nil {
		return
	}
	c.stroke(x0, y0, x1, y1, s.strokeWidth(), s.Stroke)
}

// Rect implements Canvas.
func (c *RasterCanvas) Rect(x, y, w, h float64, s Style) {
	pts := [][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	c.shape(pts, s)
}

// Ellipse implements Canvas.
func (c *RasterCanvas) Ellipse(cx, cy, w, h float64, s Style) {
	c.shape(arcPoints(cx, cy, w/2, h/2, 0, 2*math.Pi), s)
}

// Arc implements Canvas.
func (c *RasterCanvas) Arc(cx, cy, w, h, start, end float64, s Style) {
	pts := append([][2]float64{{cx, cy}}, arcPoints(cx, cy, w/2, h/2, start, end)...)
	c.shape(pts, s)
}

// Text implements Canvas.
func (c *RasterCanvas) Text(str string, x, y float64, s TextStyle) {
	if str == "" {
		return
	}
	fill := s.Fill
	if fill == nil {
		fill = Black
	}
	m := c.face.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	tw := font.MeasureString(c.face, str).Ceil()

	// Offset of the anchor point from the text's top-left corner.
	var ox, oy int
	switch s.Align {
	case AlignCenter:
		ox = tw / 2
	case AlignRight:
		ox = tw
	}
	switch s.VAlign {
	case AlignTop:
		oy = 0
	case AlignMiddle:
		oy = (ascent + descent) / 2
	case AlignBottom:
		oy = ascent + descent
	case AlignBaseline:
		oy = ascent
	}

	if s.Rotation == 0 {
		d := &font.Drawer{
			Dst:  c.img,
			Src:  image.NewUniform(fill),
			Face: c.face,
			Dot:  fixed.Point26_6{X: fixed.I(px(x) - ox), Y: fixed.I(px(y) - oy + ascent)},
		}
		d.DrawString(str)
		return
	}

	// Rotated text is drawn into a mask and copied pixel by pixel.
	mask := image.NewAlpha(image.Rect(0, 0, tw, ascent+descent))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: c.face,
		Dot:  fixed.Point26_6{X: 0, Y: fixed.I(ascent)},
	}
	d.DrawString(str)
	sin, cos := math.Sincos(s.Rotation)
	b := mask.Bounds()
	for ty := b.Min.Y; ty < b.Max.Y; ty++ {
		for tx := b.Min.X; tx < b.Max.X; tx++ {
			a := mask.AlphaAt(tx, ty).A
			if a == 0 {
				continue
			}
			rx := float64(tx-ox)*cos - float64(ty-oy)*sin
			ry := float64(tx-ox)*sin + float64(ty-oy)*cos
			c.blend(px(x+rx), px(y+ry), fill, a)
		}
	}
}

func (c *RasterCanvas) blend(x, y int, col color.Color, coverage uint8) {
	if !(image.Point{X: x, Y: y}).In(c.img.Bounds()) {
		return
	}
	src := nrgba(col)
	a := uint32(src.A) * uint32(coverage) / 255
	dst := c.img.RGBAAt(x, y)
	mix := func(s, d uint8) uint8 {
		return uint8((uint32(s)*a + uint32(d)*(255-a)) / 255)
	}
	c.img.SetRGBA(x, y, color.RGBA{
		R: mix(src.R, dst.R),
		G: mix(src.G, dst.G),
		B: mix(src.B, dst.B),
		A: uint8(a + uint32(dst.A)*(255-a)/255),
	})
}

// shape fills and then outlines a closed polygon.
func (c *RasterCanvas) shape(pts [][2]float64, s Style) {
	if s.Fill != nil {
		c.fill(pts, s.Fill)
	}
	if s.Stroke != nil {
		w := s.strokeWidth()
		for i := range pts {
			j := (i + 1) % len(pts)
			c.stroke(pts[i][0], pts[i][1], pts[j][0], pts[j][1], w, s.Stroke)
		}
	}
}

// stroke fills the quad covering a width-w segment from (x0, y0) to
// (x1, y1).
func (c *RasterCanvas) stroke(x0, y0, x1, y1, w float64, col color.Color) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*w/2, dx/l*w/2
	c.fill([][2]float64{
		{x0 + nx, y0 + ny},
		{x1 + nx, y1 + ny},
		{x1 - nx, y1 - ny},
		{x0 - nx, y0 - ny},
	}, col)
}

// fill rasterises a polygon clipped to the image. Shapes with a
// non-finite vertex are skipped.
func (c *RasterCanvas) fill(pts [][2]float64, col color.Color) {
	for _, p := range pts {
		if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
			return
		}
	}
	b := c.img.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	pts = clipHalf(pts, 0, 0, false)
	pts = clipHalf(pts, 0, w, true)
	pts = clipHalf(pts, 1, 0, false)
	pts = clipHalf(pts, 1, h, true)
	if len(pts) < 3 {
		return
	}

	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	z.MoveTo(float32(pts[0][0]), float32(pts[0][1]))
	for _, p := range pts[1:] {
		z.LineTo(float32(p[0]), float32(p[1]))
	}
	z.ClosePath()
	z.Draw(c.img, b, image.NewUniform(col), image.Point{})
}

// clipHalf clips a polygon to one side of the line where coordinate axis
// equals limit: at or below it when below is set, otherwise at or above.
func clipHalf(pts [][2]float64, axis int, limit float64, below bool) [][2]float64 {
	inside := func(p [2]float64) bool {
		if below {
			return p[axis] <= limit
		}
		return p[axis] >= limit
	}
	var out [][2]float64
	for i, cur := range pts {
		prev := pts[(i+len(pts)-1)%len(pts)]
		if inside(cur) != inside(prev) {
			t := (limit - prev[axis]) / (cur[axis] - prev[axis])
			out = append(out, [2]float64{
				prev[0] + t*(cur[0]-prev[0]),
				prev[1] + t*(cur[1]-prev[1]),
			})
		}
		if inside(cur) {
			out = append(out, cur)
		}
	}
	return out
}

// arcPoints approximates an elliptical arc with line segments.
func arcPoints(cx, cy, rx, ry, start, end float64) [][2]float64 {
	n := int(math.Ceil(math.Abs(end-start) / (2 * math.Pi) * 72))
	if n < 2 {
		n = 2
	}
	pts := make([][2]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		a := start + (end-start)*float64(i)/float64(n)
		pts = append(pts, [2]float64{cx + rx*math.Cos(a), cy + ry*math.Sin(a)})
	}
	return pts
}
