// Package gesture turns pointer, touch and wheel input into camera changes
// and marker activations.
package gesture

import (
	"math"

	"github.com/TetuPalomydes/dam-map/pkg/record"
	"github.com/TetuPalomydes/dam-map/pkg/viewport"
)

// DefaultTapThreshold is the displacement in pixels below which a press and
// release count as a tap rather than a drag.
const DefaultTapThreshold = 10.0

// State is the phase of the active input sequence.
type State int

const (
	Idle State = iota
	Dragging
	Pinching
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Pinching:
		return "pinching"
	}
	return "idle"
}

// ActivationKind distinguishes the two marker actions.
type ActivationKind int

const (
	// Primary opens the record's associated action.
	Primary ActivationKind = iota
	// Secondary opens the record's reference view.
	Secondary
)

func (k ActivationKind) String() string {
	if k == Secondary {
		return "secondary"
	}
	return "primary"
}

// Activation is emitted when a tap or secondary click lands on a marker.
type Activation struct {
	Kind   ActivationKind
	Record record.Record
	// Target is the record identifier for Kind, passed through unchanged.
	Target string
}

// Outcome reports what one event did.
type Outcome struct {
	// ViewChanged is set when the camera moved and the surface needs a redraw.
	ViewChanged bool
	Activation  *Activation
	// HoverTested is set when the event probed the marker under the pointer;
	// Hover then holds the result, nil meaning no marker.
	HoverTested bool
	Hover       *record.Record
}

// Picker finds the marker under a surface pixel.
type Picker interface {
	Pick(sx, sy float64) (record.Record, bool)
}

// PickerFunc adapts a function to Picker.
type PickerFunc func(sx, sy float64) (record.Record, bool)

// Pick implements Picker.
func (f PickerFunc) Pick(sx, sy float64) (record.Record, bool) { return f(sx, sy) }

// Option configures a Machine.
type Option func(*Machine)

// WithTapThreshold sets the tap displacement threshold in pixels.
func WithTapThreshold(px float64) Option {
	return func(m *Machine) {
		if px > 0 {
			m.threshold = px
		}
	}
}

type dragSnapshot struct {
	start viewport.Point
	pan   viewport.Point
	// afterPinch marks a drag re-synced when a pinch lost a finger; it never
	// becomes a tap.
	afterPinch bool
}

type pinchSnapshot struct {
	dist   float64
	scale  float64
	pan    viewport.Point
	anchor viewport.Point // world point under the midpoint at start
}

// Machine is the gesture state machine. It is driven from a single event
// loop and is not safe for concurrent use.
type Machine struct {
	vp        *viewport.Controller
	picker    Picker
	threshold float64

	state         State
	drag          dragSnapshot
	pinch         pinchSnapshot
	secondaryDown bool
	last          viewport.Point
}

// New returns an idle machine driving vp. picker may be nil, in which case
// taps never activate and hover is never reported.
func New(vp *viewport.Controller, picker Picker, opts ...Option) *Machine {
	m := &Machine{
		vp:        vp,
		picker:    picker,
		threshold: DefaultTapThreshold,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// State returns the current phase.
func (m *Machine) State() State { return m.state }

// Threshold returns the tap threshold in pixels.
func (m *Machine) Threshold() float64 { return m.threshold }

// Reset drops any active sequence without side effects.
func (m *Machine) Reset() {
	m.state = Idle
	m.drag = dragSnapshot{}
	m.pinch = pinchSnapshot{}
	m.secondaryDown = false
}

// Handle applies one event.
func (m *Machine) Handle(ev Event) Outcome {
	switch e := ev.(type) {
	case PointerDown:
		return m.pointerDown(e)
	case PointerMove:
		return m.pointerMove(e)
	case PointerUp:
		return m.pointerUp(e)
	case TouchStart:
		return m.touchStart(e)
	case TouchMove:
		return m.touchMove(e)
	case TouchEnd:
		return m.touchEnd(e)
	case Cancel:
		m.Reset()
		return Outcome{}
	case Wheel:
		return m.wheel(e)
	}
	return Outcome{}
}

func (m *Machine) pointerDown(e PointerDown) Outcome {
	p := viewport.Point{X: e.X, Y: e.Y}
	m.last = p
	if e.Button == ButtonSecondary {
		m.secondaryDown = true
		return Outcome{}
	}
	// A press while a sequence is active means a release was lost; start over.
	m.beginDrag(p, false)
	return Outcome{}
}

func (m *Machine) pointerMove(e PointerMove) Outcome {
	p := viewport.Point{X: e.X, Y: e.Y}
	m.last = p
	switch m.state {
	case Dragging:
		return m.dragTo(p)
	case Idle:
		return m.hover(p)
	}
	return Outcome{}
}

func (m *Machine) pointerUp(e PointerUp) Outcome {
	p := viewport.Point{X: e.X, Y: e.Y}
	m.last = p
	if e.Button == ButtonSecondary {
		if !m.secondaryDown {
			return Outcome{}
		}
		m.secondaryDown = false
		if m.state == Pinching {
			return Outcome{}
		}
		return Outcome{Activation: m.activate(Secondary, p)}
	}

	switch m.state {
	case Dragging:
		out := m.dragTo(p)
		out.Activation = m.endDrag(p)
		return out
	case Pinching:
		m.Reset()
	}
	return Outcome{}
}

func (m *Machine) touchStart(e TouchStart) Outcome {
	switch len(e.Touches) {
	case 0:
		return Outcome{}
	case 1:
		if m.state == Idle {
			t := e.Touches[0]
			m.beginDrag(viewport.Point{X: t.X, Y: t.Y}, false)
		}
		return Outcome{}
	}
	m.beginPinch(e.Touches[0], e.Touches[1])
	return Outcome{}
}

func (m *Machine) touchMove(e TouchMove) Outcome {
	switch {
	case m.state == Pinching && len(e.Touches) >= 2:
		return m.pinchTo(e.Touches[0], e.Touches[1])
	case m.state == Dragging && len(e.Touches) == 1:
		t := e.Touches[0]
		p := viewport.Point{X: t.X, Y: t.Y}
		m.last = p
		return m.dragTo(p)
	}
	return Outcome{}
}

func (m *Machine) touchEnd(e TouchEnd) Outcome {
	switch len(e.Touches) {
	case 0:
		switch m.state {
		case Dragging:
			p := m.last
			if len(e.Ended) > 0 {
				p = viewport.Point{X: e.Ended[0].X, Y: e.Ended[0].Y}
			}
			return Outcome{Activation: m.endDrag(p)}
		default:
			m.Reset()
		}
	case 1:
		if m.state == Pinching {
			t := e.Touches[0]
			m.beginDrag(viewport.Point{X: t.X, Y: t.Y}, true)
		}
	default:
		if m.state != Pinching {
			m.beginPinch(e.Touches[0], e.Touches[1])
		}
	}
	return Outcome{}
}

func (m *Machine) wheel(e Wheel) Outcome {
	dir, ok := viewport.DirectionFor(e.Delta)
	if !ok {
		return Outcome{}
	}
	before := m.vp.State()
	m.vp.ZoomAbout(&viewport.Point{X: e.X, Y: e.Y}, dir)
	return Outcome{ViewChanged: m.vp.State() != before}
}

func (m *Machine) beginDrag(p viewport.Point, afterPinch bool) {
	st := m.vp.State()
	m.state = Dragging
	m.drag = dragSnapshot{
		start:      p,
		pan:        viewport.Point{X: st.PanX, Y: st.PanY},
		afterPinch: afterPinch,
	}
	m.last = p
}

// dragTo recomputes the pan from the drag start so repeated moves do not
// accumulate rounding error.
func (m *Machine) dragTo(p viewport.Point) Outcome {
	before := m.vp.State()
	m.vp.SetPan(m.drag.pan.X+(p.X-m.drag.start.X), m.drag.pan.Y+(p.Y-m.drag.start.Y))
	return Outcome{ViewChanged: m.vp.State() != before}
}

func (m *Machine) endDrag(p viewport.Point) *Activation {
	snap := m.drag
	m.Reset()
	if snap.afterPinch {
		return nil
	}
	dx := p.X - snap.start.X
	dy := p.Y - snap.start.Y
	if dx*dx+dy*dy >= m.threshold*m.threshold {
		return nil
	}
	return m.activate(Primary, p)
}

func (m *Machine) beginPinch(a, b Touch) {
	st := m.vp.State()
	mid := midpoint(a, b)
	wx, wy := m.vp.ScreenToWorld(mid.X, mid.Y)
	m.state = Pinching
	m.pinch = pinchSnapshot{
		dist:   distance(a, b),
		scale:  st.Scale,
		pan:    viewport.Point{X: st.PanX, Y: st.PanY},
		anchor: viewport.Point{X: wx, Y: wy},
	}
}

func (m *Machine) pinchTo(a, b Touch) Outcome {
	ratio := 1.0
	if m.pinch.dist > 0 {
		ratio = distance(a, b) / m.pinch.dist
	}
	before := m.vp.State()
	m.vp.ZoomTo(m.pinch.scale*ratio, m.pinch.anchor, midpoint(a, b))
	return Outcome{ViewChanged: m.vp.State() != before}
}

func (m *Machine) hover(p viewport.Point) Outcome {
	if m.picker == nil {
		return Outcome{}
	}
	out := Outcome{HoverTested: true}
	if r, ok := m.picker.Pick(p.X, p.Y); ok {
		out.Hover = &r
	}
	return out
}

func (m *Machine) activate(kind ActivationKind, p viewport.Point) *Activation {
	if m.picker == nil {
		return nil
	}
	r, ok := m.picker.Pick(p.X, p.Y)
	if !ok {
		return nil
	}
	target := r.Action
	if kind == Secondary {
		target = r.Reference
	}
	if target == "" {
		return nil
	}
	return &Activation{Kind: kind, Record: r, Target: target}
}

func midpoint(a, b Touch) viewport.Point {
	return viewport.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func distance(a, b Touch) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
