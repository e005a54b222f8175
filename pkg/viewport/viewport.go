// Package viewport owns the map camera and converts between world units and
// screen pixels. World north is up; pixel Y grows downward.
package viewport

import "math"

const (
	// MinScale and MaxScale bound the user zoom factor.
	MinScale = 0.1
	MaxScale = 8.0
	// ZoomStep is the factor applied by one zoom step.
	ZoomStep = 1.2
)

// Direction selects zoom in or out.
type Direction int

const (
	ZoomOut Direction = -1
	ZoomIn  Direction = 1
)

// DirectionFor maps a wheel-style delta to a direction; positive zooms in.
// A zero delta yields no direction.
func DirectionFor(delta float64) (Direction, bool) {
	switch {
	case delta > 0:
		return ZoomIn, true
	case delta < 0:
		return ZoomOut, true
	}
	return 0, false
}

// ViewState is the camera. Effective world-to-pixel scale is
// BaseScale * Scale.
type ViewState struct {
	Scale     float64 `json:"scale"`
	PanX      float64 `json:"panX"`
	PanY      float64 `json:"panY"`
	BaseScale float64 `json:"baseScale"`
}

// Controller mutates a single ViewState. It is not safe for concurrent
// writers; the interaction loop is its only writer.
type Controller struct {
	state  ViewState
	extent Extent
}

// New returns a controller at 100% zoom with no pan.
func New(extent Extent) *Controller {
	return &Controller{
		state:  ViewState{Scale: 1, BaseScale: 1},
		extent: extent,
	}
}

// State returns a copy of the current camera.
func (c *Controller) State() ViewState { return c.state }

// Extent returns the world extent the controller maps.
func (c *Controller) Extent() Extent { return c.extent }

// Effective returns the world-to-pixel scale.
func (c *Controller) Effective() float64 {
	return c.state.BaseScale * c.state.Scale
}

// ZoomPercent returns the user zoom factor as a rounded percentage.
func (c *Controller) ZoomPercent() int {
	return int(math.Round(c.state.Scale * 100))
}

// Fit recomputes the base scale so the whole extent fits a container of the
// given size. A container without area leaves the base scale untouched.
// It reports whether the base scale changed.
func (c *Controller) Fit(containerW, containerH float64) bool {
	if containerW <= 0 || containerH <= 0 || c.extent.Width <= 0 || c.extent.Height <= 0 {
		return false
	}
	base := math.Min(containerW/c.extent.Width, containerH/c.extent.Height)
	if base == c.state.BaseScale {
		return false
	}
	c.state.BaseScale = base
	return true
}

// WorldToScreen projects a world point to pixels.
func (c *Controller) WorldToScreen(x, y float64) (float64, float64) {
	s := c.Effective()
	return (x-c.extent.XMin)*s + c.state.PanX, (c.extent.YMax-y)*s + c.state.PanY
}

// ScreenToWorld is the inverse of WorldToScreen.
func (c *Controller) ScreenToWorld(sx, sy float64) (float64, float64) {
	s := c.Effective()
	return (sx-c.state.PanX)/s + c.extent.XMin, c.extent.YMax - (sy-c.state.PanY)/s
}

// ZoomAbout multiplies the zoom by one step in dir. When anchor is non-nil
// the world point under that pixel stays under it.
func (c *Controller) ZoomAbout(anchor *Point, dir Direction) {
	factor := ZoomStep
	if dir < 0 {
		factor = 1 / ZoomStep
	}
	next := clampScale(c.state.Scale * factor)
	if anchor == nil {
		c.state.Scale = next
		return
	}
	wx, wy := c.ScreenToWorld(anchor.X, anchor.Y)
	c.ZoomTo(next, Point{X: wx, Y: wy}, *anchor)
}

// ZoomTo sets the zoom factor (clamped) and pans so that world lands on the
// screen pixel.
func (c *Controller) ZoomTo(scale float64, world, screen Point) {
	c.state.Scale = clampScale(scale)
	s := c.Effective()
	c.state.PanX = screen.X - (world.X-c.extent.XMin)*s
	c.state.PanY = screen.Y - (c.extent.YMax-world.Y)*s
}

// Pan shifts the view by a pixel delta. Panning past the extent is allowed.
func (c *Controller) Pan(dx, dy float64) {
	c.state.PanX += dx
	c.state.PanY += dy
}

// SetPan places the view at an absolute pixel offset.
func (c *Controller) SetPan(x, y float64) {
	c.state.PanX = x
	c.state.PanY = y
}

// Reset returns to 100% zoom with no pan, keeping the base scale.
func (c *Controller) Reset() {
	c.state.Scale = 1
	c.state.PanX = 0
	c.state.PanY = 0
}

// Visible returns the world rectangle shown by a surface of the given size.
func (c *Controller) Visible(w, h float64) Rect {
	s := c.Effective()
	return Rect{
		XMin: c.extent.XMin - c.state.PanX/s,
		XMax: c.extent.XMin + (w-c.state.PanX)/s,
		YMin: c.extent.YMax + (c.state.PanY-h)/s,
		YMax: c.extent.YMax + c.state.PanY/s,
	}
}

func clampScale(s float64) float64 {
	if math.IsNaN(s) {
		return 1
	}
	return math.Max(MinScale, math.Min(MaxScale, s))
}
