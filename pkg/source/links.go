package source

import (
	"fmt"
	"strings"

	"github.com/TetuPalomydes/dam-map/pkg/record"
)

// Remap rewrites single coordinate values, applied to X and Y independently.
type Remap map[int]int

// LegacyRemap moves the old 1180-based grid points onto the 1100 grid.
func LegacyRemap() Remap {
	return Remap{
		1180: 1100, 1288: 1208, 1072: 992,
		-1180: -1100, -1288: -1208, -1072: -992,
	}
}

// Coord returns the remapped value of v.
func (m Remap) Coord(v int) int {
	if to, ok := m[v]; ok {
		return to
	}
	return v
}

// Apply returns inputs with remapped coordinates.
func (m Remap) Apply(in []record.Input) []record.Input {
	if len(m) == 0 {
		return in
	}
	out := make([]record.Input, len(in))
	for i, r := range in {
		r.X = m.Coord(r.X)
		r.Y = m.Coord(r.Y)
		out[i] = r
	}
	return out
}

// Links builds the per-record activation URLs from two base URLs.
type Links struct {
	// Map is the base of the reference view (secondary activation).
	Map string
	// Action is the base of the troop dispatch page (primary activation).
	Action string
}

// MapURL returns the reference view URL for a coordinate, or "" without a base.
func (l Links) MapURL(x, y int) string { return withXY(l.Map, x, y) }

// ActionURL returns the action URL for a coordinate, or "" without a base.
func (l Links) ActionURL(x, y int) string { return withXY(l.Action, x, y) }

// Apply fills Action and Reference on inputs that do not carry them yet.
func (l Links) Apply(in []record.Input) []record.Input {
	out := make([]record.Input, len(in))
	for i, r := range in {
		if r.Action == "" {
			r.Action = l.ActionURL(r.X, r.Y)
		}
		if r.Reference == "" {
			r.Reference = l.MapURL(r.X, r.Y)
		}
		out[i] = r
	}
	return out
}

func withXY(base string, x, y int) string {
	if base == "" {
		return ""
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%sx=%d&y=%d", base, sep, x, y)
}
