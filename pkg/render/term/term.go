// Package term rasterises render primitives onto terminal cells. Each cell
// is one pixel wide and two pixels tall, drawn with an upper half block.
package term

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/TetuPalomydes/dam-map/pkg/render"
)

const halfBlock = "▀"

var width = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

type glyph struct {
	s  string
	fg colorful.Color
	// cont marks the second column of a wide rune.
	cont bool
}

// Canvas is a render.Canvas backed by a cell grid.
type Canvas struct {
	cols, rows int
	bg         colorful.Color
	px         []colorful.Color
	text       []*glyph
}

var _ render.Canvas = (*Canvas)(nil)

// New returns a canvas of cols by rows cells.
func New(cols, rows int) *Canvas {
	cols = max(cols, 0)
	rows = max(rows, 0)
	return &Canvas{
		cols: cols,
		rows: rows,
		px:   make([]colorful.Color, cols*rows*2),
		text: make([]*glyph, cols*rows),
	}
}

// PixelSize returns the drawable size in pixels.
func (c *Canvas) PixelSize() (w, h float64) {
	return float64(c.cols), float64(c.rows * 2)
}

// Pixel returns the colour at a pixel; out of range reads the background.
func (c *Canvas) Pixel(x, y int) colorful.Color {
	if !c.inside(x, y) {
		return c.bg
	}
	return c.px[y*c.cols+x]
}

// Glyph returns the text drawn in a cell, if any.
func (c *Canvas) Glyph(col, row int) (string, bool) {
	if col < 0 || row < 0 || col >= c.cols || row >= c.rows {
		return "", false
	}
	g := c.text[row*c.cols+col]
	if g == nil || g.cont {
		return "", false
	}
	return g.s, true
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.cols && y < c.rows*2
}

func (c *Canvas) blend(x, y int, col colorful.Color, opacity float64) {
	if !c.inside(x, y) {
		return
	}
	i := y*c.cols + x
	if opacity >= 1 {
		c.px[i] = col
		return
	}
	c.px[i] = c.px[i].BlendRgb(col, math.Max(opacity, 0)).Clamped()
}

// Clear fills every pixel and drops all text.
func (c *Canvas) Clear(bg colorful.Color) {
	c.bg = bg
	for i := range c.px {
		c.px[i] = bg
	}
	for i := range c.text {
		c.text[i] = nil
	}
}

// Line draws a one pixel line, clipped to the canvas.
func (c *Canvas) Line(x1, y1, x2, y2 float64, col colorful.Color) {
	w, h := c.PixelSize()
	x1, y1, x2, y2, ok := clip(x1, y1, x2, y2, 0, 0, w-1, h-1)
	if !ok {
		return
	}
	dx, dy := x2-x1, y2-y1
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		c.blend(int(math.Round(x1)), int(math.Round(y1)), col, 1)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c.blend(int(math.Round(x1+dx*t)), int(math.Round(y1+dy*t)), col, 1)
	}
}

// Circle fills a disc and strokes its rim.
func (c *Canvas) Circle(circle render.Circle) {
	r := circle.Radius
	if r <= 0 {
		return
	}
	w, h := c.PixelSize()
	x0 := int(math.Max(math.Floor(circle.X-r), 0))
	x1 := int(math.Min(math.Ceil(circle.X+r), w-1))
	y0 := int(math.Max(math.Floor(circle.Y-r), 0))
	y1 := int(math.Min(math.Ceil(circle.Y+r), h-1))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			d := math.Hypot(float64(x)+0.5-circle.X, float64(y)+0.5-circle.Y)
			if d > r {
				continue
			}
			col := circle.Fill
			if circle.Outline > 0 && d > r-circle.Outline {
				col = circle.Stroke
			}
			c.blend(x, y, col, circle.Opacity)
		}
	}
}

// Text writes s centred on the pixel (x, y). Cells past the edge are dropped.
func (c *Canvas) Text(x, y float64, s string, col colorful.Color) {
	row := int(math.Floor(y / 2))
	if row < 0 || row >= c.rows || s == "" {
		return
	}
	start := int(math.Round(x)) - width.StringWidth(s)/2
	pos := start
	for _, r := range s {
		rw := width.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if pos >= 0 && pos+rw <= c.cols {
			base := row * c.cols
			for k := 0; k < rw; k++ {
				c.unset(base, pos+k)
			}
			c.text[base+pos] = &glyph{s: string(r), fg: col}
			for k := 1; k < rw; k++ {
				c.text[base+pos+k] = &glyph{cont: true}
			}
		}
		pos += rw
	}
}

// unset empties a cell in the row starting at base, along with the rest of
// any wide rune it belongs to.
func (c *Canvas) unset(base, col int) {
	g := c.text[base+col]
	if g == nil {
		return
	}
	c.text[base+col] = nil
	if g.cont {
		for k := col - 1; k >= 0; k-- {
			head := c.text[base+k]
			c.text[base+k] = nil
			if head == nil || !head.cont {
				break
			}
		}
	}
	for k := col + 1; k < c.cols && c.text[base+k] != nil && c.text[base+k].cont; k++ {
		c.text[base+k] = nil
	}
}

type cellStyle struct {
	fg, bg colorful.Color
}

// String renders the canvas as rows of styled cells joined by newlines.
func (c *Canvas) String() string {
	lines := make([]string, c.rows)
	for row := 0; row < c.rows; row++ {
		var b strings.Builder
		var run strings.Builder
		var cur cellStyle
		open := false
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(lipgloss.NewStyle().Foreground(cur.fg).Background(cur.bg).Render(run.String()))
			run.Reset()
		}
		for col := 0; col < c.cols; col++ {
			top := c.px[(row*2)*c.cols+col]
			bottom := c.px[(row*2+1)*c.cols+col]
			st := cellStyle{fg: top, bg: bottom}
			s := halfBlock
			if g := c.text[row*c.cols+col]; g != nil {
				if g.cont {
					continue
				}
				st = cellStyle{fg: g.fg, bg: top.BlendRgb(bottom, 0.5)}
				s = g.s
			}
			if !open || st != cur {
				flush()
				cur = st
				open = true
			}
			run.WriteString(s)
		}
		flush()
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}

// clip is Liang-Barsky line clipping against an inclusive rectangle.
func clip(x1, y1, x2, y2, xmin, ymin, xmax, ymax float64) (float64, float64, float64, float64, bool) {
	if xmax < xmin || ymax < ymin {
		return 0, 0, 0, 0, false
	}
	dx, dy := x2-x1, y2-y1
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x1 - xmin},
		{dx, xmax - x1},
		{-dy, y1 - ymin},
		{dy, ymax - y1},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return x1 + t0*dx, y1 + t0*dy, x1 + t1*dx, y1 + t1*dy, true
}
