package viewport

import "math"

const (
	extentPad     = 80
	extentMinSide = 800
	gridStepSmall = 200
	gridStepLarge = 400
	// gridLargeAbove switches to the coarse grid once either side exceeds it.
	gridLargeAbove = 2000
)

// Point is a 2D position, in world units or pixels depending on context.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned world rectangle.
type Rect struct {
	XMin float64
	XMax float64
	YMin float64
	YMax float64
}

// Contains reports whether p lies in the rectangle grown by margin.
func (r Rect) Contains(p Point, margin float64) bool {
	return p.X >= r.XMin-margin && p.X <= r.XMax+margin &&
		p.Y >= r.YMin-margin && p.Y <= r.YMax+margin
}

// Extent is the world area the map shows when fully zoomed out. Screen
// coordinates are anchored at its north-west corner.
type Extent struct {
	XMin     float64
	YMax     float64
	Width    float64
	Height   float64
	GridStep float64
}

// XMax returns the eastern edge.
func (e Extent) XMax() float64 { return e.XMin + e.Width }

// YMin returns the southern edge.
func (e Extent) YMin() float64 { return e.YMax - e.Height }

// Rect returns the extent as a rectangle.
func (e Extent) Rect() Rect {
	return Rect{XMin: e.XMin, XMax: e.XMax(), YMin: e.YMin(), YMax: e.YMax}
}

// ExtentFor returns the padded bounding box of pts. Each side is at least
// 800 units, centred on the data, and the grid step grows to 400 once
// either side exceeds 2000.
func ExtentFor(pts []Point) Extent {
	if len(pts) == 0 {
		half := float64(extentMinSide) / 2
		return Extent{XMin: -half, YMax: half, Width: extentMinSide, Height: extentMinSide, GridStep: gridStepSmall}
	}
	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		xMin = math.Min(xMin, p.X)
		xMax = math.Max(xMax, p.X)
		yMin = math.Min(yMin, p.Y)
		yMax = math.Max(yMax, p.Y)
	}
	xMin -= extentPad
	xMax += extentPad
	yMin -= extentPad
	yMax += extentPad

	w, h := xMax-xMin, yMax-yMin
	if w < extentMinSide {
		w = extentMinSide
		xMin = (xMin+xMax)/2 - extentMinSide/2
	}
	if h < extentMinSide {
		h = extentMinSide
		yMin = (yMin+yMax)/2 - extentMinSide/2
		yMax = yMin + extentMinSide
	}

	step := float64(gridStepSmall)
	if w > gridLargeAbove || h > gridLargeAbove {
		step = gridStepLarge
	}
	return Extent{XMin: xMin, YMax: yMax, Width: w, Height: h, GridStep: step}
}
