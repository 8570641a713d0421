package nimsforestgallery

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Canvas is a drawing surface using absolute pixel coordinates with Y
// growing downward. Visuals draw through it; backends decide how the
// primitives are realised.
type Canvas interface {
	// Size returns the surface dimensions in pixels.
	Size() (width, height float64)

	// Clear fills the whole surface with c.
	Clear(c color.Color)

	Line(x0, y0, x1, y1 float64, s Style)
	Rect(x, y, w, h float64, s Style)

	// Ellipse draws an ellipse centred on (cx, cy) with diameters w and h.
	Ellipse(cx, cy, w, h float64, s Style)

	// Arc draws a pie slice centred on (cx, cy) with diameters w and h,
	// from angle start to end in radians, clockwise on screen.
	Arc(cx, cy, w, h, start, end float64, s Style)

	Text(str string, x, y float64, s TextStyle)
}

// Style describes how a shape is filled and outlined. A nil colour
// disables that part.
type Style struct {
	Fill        color.Color
	Stroke      color.Color
	StrokeWidth float64
}

// strokeWidth returns the effective outline width.
func (s Style) strokeWidth() float64 {
	if s.StrokeWidth <= 0 {
		return 1
	}
	return s.StrokeWidth
}

// HAlign is horizontal text alignment relative to the anchor point.
type HAlign int

const (
	AlignLeft HAlign = iota
	AlignCenter
	AlignRight
)

// VAlign is vertical text alignment relative to the anchor point.
type VAlign int

const (
	AlignTop VAlign = iota
	AlignMiddle
	AlignBottom
	AlignBaseline
)

// TextStyle describes how text is drawn.
type TextStyle struct {
	Fill   color.Color
	Size   float64
	Align  HAlign
	VAlign VAlign

	// Rotation in radians about the anchor point.
	Rotation float64
}

func (s TextStyle) size() float64 {
	if s.Size <= 0 {
		return 12
	}
	return s.Size
}

// Common colours.
var (
	White = drawing.Color{R: 255, G: 255, B: 255, A: 255}
	Black = drawing.Color{R: 0, G: 0, B: 0, A: 255}
)

// Grey returns an opaque grey of brightness v.
func Grey(v uint8) drawing.Color {
	return drawing.Color{R: v, G: v, B: v, A: 255}
}

// RGBA returns a colour from 0-255 channel values. Out of range values
// are clamped.
func RGBA(r, g, b, a float64) drawing.Color {
	return drawing.Color{R: channel(r), G: channel(g), B: channel(b), A: channel(a)}
}

func channel(v float64) uint8 {
	switch {
	case v != v, v <= 0:
		return 0
	case v >= 255:
		return 255
	}
	return uint8(v + 0.5)
}

var namedColours = map[string]string{
	"black":  "000000",
	"white":  "ffffff",
	"red":    "ff0000",
	"green":  "008000",
	"blue":   "0000ff",
	"yellow": "ffff00",
	"pink":   "ffc0cb",
	"purple": "800080",
	"orange": "ffa500",
	"grey":   "808080",
	"gray":   "808080",
}

// ParseColour parses a CSS colour name or a hex colour ("#rrggbb" or
// "rrggbb").
func ParseColour(s string) (drawing.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColours[s]; ok {
		return drawing.ColorFromHex(hex), nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 3 {
		return drawing.Color{}, fmt.Errorf("unknown colour %q", s)
	}
	for _, r := range hex {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return drawing.Color{}, fmt.Errorf("unknown colour %q", s)
		}
	}
	return drawing.ColorFromHex(hex), nil
}

// nrgba converts any colour to non-premultiplied 8-bit channels.
func nrgba(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
