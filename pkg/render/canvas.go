// Package render turns the visible part of the map into a stream of drawing
// primitives. Backends implement Canvas.
package render

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Circle is a marker disc in pixel space.
type Circle struct {
	X, Y   float64
	Radius float64
	Fill   colorful.Color
	Stroke colorful.Color
	// Outline is the stroke width in pixels. Zero draws no stroke.
	Outline float64
	// Opacity in [0,1] applies to fill and stroke.
	Opacity float64
}

// Canvas receives drawing primitives in paint order. Coordinates are pixels
// with Y growing downward.
type Canvas interface {
	Clear(bg colorful.Color)
	Line(x1, y1, x2, y2 float64, c colorful.Color)
	Circle(c Circle)
	// Text draws s centred on (x, y).
	Text(x, y float64, s string, c colorful.Color)
}

// OpType names a recorded primitive.
type OpType string

const (
	OpClear  OpType = "clear"
	OpLine   OpType = "line"
	OpCircle OpType = "circle"
	OpText   OpType = "text"
)

// Op is one recorded primitive. Only the fields of its type are set.
type Op struct {
	Type           OpType
	X1, Y1, X2, Y2 float64
	Circle         Circle
	Text           string
	Color          colorful.Color
}

// Recorder is a Canvas that keeps every primitive it receives.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) Clear(bg colorful.Color) {
	r.Ops = append(r.Ops, Op{Type: OpClear, Color: bg})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64, c colorful.Color) {
	r.Ops = append(r.Ops, Op{Type: OpLine, X1: x1, Y1: y1, X2: x2, Y2: y2, Color: c})
}

func (r *Recorder) Circle(c Circle) {
	r.Ops = append(r.Ops, Op{Type: OpCircle, X1: c.X, Y1: c.Y, Circle: c, Color: c.Fill})
}

func (r *Recorder) Text(x, y float64, s string, c colorful.Color) {
	r.Ops = append(r.Ops, Op{Type: OpText, X1: x, Y1: y, Text: s, Color: c})
}

// Count returns how many primitives of type t were recorded.
func (r *Recorder) Count(t OpType) int {
	n := 0
	for _, op := range r.Ops {
		if op.Type == t {
			n++
		}
	}
	return n
}

// Filter returns the recorded primitives of type t in order.
func (r *Recorder) Filter(t OpType) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Type == t {
			out = append(out, op)
		}
	}
	return out
}
