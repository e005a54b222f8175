// Package region buckets world points into named rectangles.
package region

// UnknownPriority is the rank reported for names that are not part of the
// configured sequence.
const UnknownPriority = 99

// DefaultOrder is the compass sequence used to rank regions when no explicit
// order is configured.
func DefaultOrder() []string {
	return []string{"北西", "北", "北東", "西", "中原", "東", "南西", "南", "南東"}
}

// Region is an inclusive axis-aligned rectangle in world units.
type Region struct {
	Name     string `json:"name"`
	XMin     int    `json:"xMin"`
	XMax     int    `json:"xMax"`
	YMin     int    `json:"yMin"`
	YMax     int    `json:"yMax"`
	Priority int    `json:"priority"`
}

// New returns a region spanning the two corners in any order.
func New(name string, x1, y1, x2, y2 int) Region {
	r := Region{Name: name, XMin: x1, XMax: x2, YMin: y1, YMax: y2}
	return r.Normalize()
}

// Normalize swaps inverted bounds so that min <= max on both axes.
func (r Region) Normalize() Region {
	if r.XMin > r.XMax {
		r.XMin, r.XMax = r.XMax, r.XMin
	}
	if r.YMin > r.YMax {
		r.YMin, r.YMax = r.YMax, r.YMin
	}
	return r
}

// Contains reports whether (x, y) lies inside the rectangle, edges included.
func (r Region) Contains(x, y int) bool {
	return r.XMin <= x && x <= r.XMax && r.YMin <= y && y <= r.YMax
}

// Priorities ranks region names by their position in a named sequence.
type Priorities struct {
	order []string
	index map[string]int
}

// NewPriorities builds a ranking from names in priority order. Repeated
// names keep their first position.
func NewPriorities(order []string) Priorities {
	p := Priorities{
		order: make([]string, 0, len(order)),
		index: make(map[string]int, len(order)),
	}
	for _, name := range order {
		if _, ok := p.index[name]; ok {
			continue
		}
		p.index[name] = len(p.order)
		p.order = append(p.order, name)
	}
	return p
}

// Rank returns the position of name in the sequence and whether it was found.
// Unrecognised names rank as UnknownPriority, or one past the sequence when
// the sequence is longer than that.
func (p Priorities) Rank(name string) (int, bool) {
	if i, ok := p.index[name]; ok {
		return i, true
	}
	return p.Unknown(), false
}

// Unknown is the rank shared by every unrecognised name.
func (p Priorities) Unknown() int {
	if len(p.order) >= UnknownPriority {
		return len(p.order)
	}
	return UnknownPriority
}

// Names returns the ranked names in order.
func (p Priorities) Names() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Apply stamps each region with its rank.
func (p Priorities) Apply(regions []Region) []Region {
	out := make([]Region, len(regions))
	for i, r := range regions {
		r.Priority, _ = p.Rank(r.Name)
		out[i] = r
	}
	return out
}
