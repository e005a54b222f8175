package render

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/TetuPalomydes/dam-map/pkg/marker"
	"github.com/TetuPalomydes/dam-map/pkg/record"
	"github.com/TetuPalomydes/dam-map/pkg/status"
	"github.com/TetuPalomydes/dam-map/pkg/viewport"
)

const (
	// CullMargin keeps markers just outside the surface so their edges show.
	CullMargin = 50
	// MinVisibleRadius drops markers that would be smaller than this.
	MinVisibleRadius = 0.5
	// MinDrawRadius is the smallest radius a drawn marker gets.
	MinDrawRadius = 2
	// LabelMinScale and LabelMinRadius gate tier labels.
	LabelMinScale  = 0.3
	LabelMinRadius = 6

	outlineNormal = 1
	outlineHover  = 2
)

// Palette holds the frame colours.
type Palette struct {
	Background colorful.Color
	Grid       colorful.Color
	Label      colorful.Color
	Stroke     colorful.Color
	Hover      colorful.Color
	Kinds      map[record.Kind]colorful.Color
	// Fallback is used for kinds missing from Kinds.
	Fallback colorful.Color
}

// DefaultPalette is a dark map with orange A markers and blue B markers.
func DefaultPalette() Palette {
	return Palette{
		Background: colorful.MustParseHex("#14161c"),
		Grid:       colorful.MustParseHex("#2c313c"),
		Label:      colorful.MustParseHex("#f5f5f5"),
		Stroke:     colorful.MustParseHex("#0b0c10"),
		Hover:      colorful.MustParseHex("#ffd75f"),
		Kinds: map[record.Kind]colorful.Color{
			record.KindA: colorful.MustParseHex("#e8833a"),
			record.KindB: colorful.MustParseHex("#4aa3df"),
		},
		Fallback: colorful.MustParseHex("#9e9e9e"),
	}
}

// KindColor returns the marker colour for k.
func (p Palette) KindColor(k record.Kind) colorful.Color {
	if c, ok := p.Kinds[k]; ok {
		return c
	}
	return p.Fallback
}

// Frame is everything one draw needs besides the camera.
type Frame struct {
	Width, Height float64
	// Records are the candidates in paint order.
	Records []record.Record
	// Kind limits markers to one source list. Empty draws all kinds.
	Kind   record.Kind
	Hover  *record.Record
	Status status.Map
}

// Renderer draws frames.
type Renderer struct {
	Palette Palette
	Overlay status.Overlay
}

// New returns a renderer with the default palette and resolved tags.
func New() *Renderer {
	return &Renderer{Palette: DefaultPalette(), Overlay: status.NewOverlay()}
}

// Draw paints the grid and every visible marker of the frame.
func (r *Renderer) Draw(c Canvas, vp *viewport.Controller, f Frame) {
	c.Clear(r.Palette.Background)
	if vp == nil {
		return
	}
	r.grid(c, vp)

	eff := vp.Effective()
	visible := vp.Visible(f.Width, f.Height)
	for _, rec := range f.Records {
		if f.Kind != "" && rec.Kind != f.Kind {
			continue
		}
		if !visible.Contains(viewport.Point{X: float64(rec.X), Y: float64(rec.Y)}, CullMargin) {
			continue
		}
		rad := marker.Radius(rec.Tier) * eff
		if rad < MinVisibleRadius {
			continue
		}
		rad = math.Max(rad, MinDrawRadius)
		sx, sy := vp.WorldToScreen(float64(rec.X), float64(rec.Y))

		circle := Circle{
			X:       sx,
			Y:       sy,
			Radius:  rad,
			Fill:    r.Palette.KindColor(rec.Kind),
			Stroke:  r.Palette.Stroke,
			Outline: outlineNormal,
			Opacity: r.Overlay.OpacityFor(rec.Name, f.Status),
		}
		if f.Hover != nil && *f.Hover == rec {
			circle.Stroke = r.Palette.Hover
			circle.Outline = outlineHover
		}
		c.Circle(circle)

		if eff > LabelMinScale && rad >= LabelMinRadius {
			c.Text(sx, sy, rec.Label(), r.Palette.Label)
		}
	}
}

// grid draws lines at every multiple of the grid step inside the extent.
func (r *Renderer) grid(c Canvas, vp *viewport.Controller) {
	ext := vp.Extent()
	step := ext.GridStep
	if step <= 0 {
		return
	}
	xMax, yMin := ext.XMax(), ext.YMin()
	for x := math.Floor(ext.XMin/step) * step; x <= xMax; x += step {
		if x < ext.XMin {
			continue
		}
		x1, y1 := vp.WorldToScreen(x, ext.YMax)
		x2, y2 := vp.WorldToScreen(x, yMin)
		c.Line(x1, y1, x2, y2, r.Palette.Grid)
	}
	for y := math.Floor(yMin/step) * step; y <= ext.YMax; y += step {
		if y < yMin {
			continue
		}
		x1, y1 := vp.WorldToScreen(ext.XMin, y)
		x2, y2 := vp.WorldToScreen(xMax, y)
		c.Line(x1, y1, x2, y2, r.Palette.Grid)
	}
}
