package nimsforestgallery

import "image/color"

// OpKind identifies a recorded drawing operation.
type OpKind int

const (
	OpClear OpKind = iota
	OpLine
	OpRect
	OpEllipse
	OpArc
	OpText
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpLine:
		return "line"
	case OpRect:
		return "rect"
	case OpEllipse:
		return "ellipse"
	case OpArc:
		return "arc"
	case OpText:
		return "text"
	}
	return "unknown"
}

// Op is one recorded drawing operation. Which fields are meaningful
// depends on Kind.
type Op struct {
	Kind OpKind

	X, Y   float64 // line start, rect origin, shape centre, text anchor
	X2, Y2 float64 // line end
	W, H   float64

	Start, End float64 // arc angles

	Text      string
	Colour    color.Color // clear colour
	Style     Style
	TextStyle TextStyle
}

// DisplayList is a Canvas that records operations so a frame drawn once
// can be replayed onto any number of backends.
type DisplayList struct {
	width, height float64
	ops           []Op
}

// NewDisplayList returns an empty display list for a width x height
// surface.
func NewDisplayList(width, height float64) *DisplayList {
	return &DisplayList{width: width, height: height}
}

// Size implements Canvas.
func (d *DisplayList) Size() (float64, float64) { return d.width, d.height }

// Clear implements Canvas. Clearing discards everything recorded so far.
func (d *DisplayList) Clear(c color.Color) {
	d.ops = append(d.ops[:0], Op{Kind: OpClear, Colour: c})
}

// Line implements Canvas.
func (d *DisplayList) Line(x0, y0, x1, y1 float64, s Style) {
	d.ops = append(d.ops, Op{Kind: OpLine, X: x0, Y: y0, X2: x1, Y2: y1, Style: s})
}

// Rect implements Canvas.
func (d *DisplayList) Rect(x, y, w, h float64, s Style) {
	d.ops = append(d.ops, Op{Kind: OpRect, X: x, Y: y, W: w, H: h, Style: s})
}

// Ellipse implements Canvas.
func (d *DisplayList) Ellipse(cx, cy, w, h float64, s Style) {
	d.ops = append(d.ops, Op{Kind: OpEllipse, X: cx, Y: cy, W: w, H: h, Style: s})
}

// Arc implements Canvas.
func (d *DisplayList) Arc(cx, cy, w, h, start, end float64, s Style) {
	d.ops = append(d.ops, Op{Kind: OpArc, X: cx, Y: cy, W: w, H: h, Start: start, End: end, Style: s})
}

// Text implements Canvas.
func (d *DisplayList) Text(str string, x, y float64, s TextStyle) {
	d.ops = append(d.ops, Op{Kind: OpText, Text: str, X: x, Y: y, TextStyle: s})
}

// Ops returns the recorded operations. The slice must not be modified.
func (d *DisplayList) Ops() []Op {
	return d.ops
}

// Count returns the number of recorded operations of kind k.
func (d *DisplayList) Count(k OpKind) int {
	n := 0
	for _, op := range d.ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Replay draws the recorded operations onto dst in order.
func (d *DisplayList) Replay(dst Canvas) {
	for _, op := range d.ops {
		switch op.Kind {
		case OpClear:
			dst.Clear(op.Colour)
		case OpLine:
			dst.Line(op.X, op.Y, op.X2, op.Y2, op.Style)
		case OpRect:
			dst.Rect(op.X, op.Y, op.W, op.H, op.Style)
		case OpEllipse:
			dst.Ellipse(op.X, op.Y, op.W, op.H, op.Style)
		case OpArc:
			dst.Arc(op.X, op.Y, op.W, op.H, op.Start, op.End, op.Style)
		case OpText:
			dst.Text(op.Text, op.X, op.Y, op.TextStyle)
		}
	}
}
