package gesture

// Button identifies a pointer button.
type Button int

const (
	// ButtonPrimary pans on drag and activates on tap.
	ButtonPrimary Button = iota
	// ButtonSecondary activates the reference view on release.
	ButtonSecondary
)

func (b Button) String() string {
	if b == ButtonSecondary {
		return "secondary"
	}
	return "primary"
}

// Event is a raw input event. The set is closed to the types below.
type Event interface {
	event()
}

// PointerDown is a mouse button press at a surface pixel.
type PointerDown struct {
	X, Y   float64
	Button Button
}

// PointerMove is mouse motion, with or without a held button.
type PointerMove struct {
	X, Y float64
}

// PointerUp is a mouse button release.
type PointerUp struct {
	X, Y   float64
	Button Button
}

// Touch is one contact point.
type Touch struct {
	ID   int
	X, Y float64
}

// TouchStart reports the touches active after a new contact began.
type TouchStart struct {
	Touches []Touch
}

// TouchMove reports the touches active after they moved.
type TouchMove struct {
	Touches []Touch
}

// TouchEnd reports the touches still active and the ones that just ended.
type TouchEnd struct {
	Touches []Touch
	Ended   []Touch
}

// Cancel aborts the active sequence.
type Cancel struct{}

// Wheel is one discrete wheel tick at a surface pixel. Positive Delta zooms in.
type Wheel struct {
	X, Y  float64
	Delta float64
}

func (PointerDown) event() {}
func (PointerMove) event() {}
func (PointerUp) event()   {}
func (TouchStart) event()  {}
func (TouchMove) event()   {}
func (TouchEnd) event()    {}
func (Cancel) event()      {}
func (Wheel) event()       {}
