// Package status loads the externally maintained name to status mapping and
// turns it into marker opacity.
package status

import "sort"

const (
	// FullOpacity is used for markers without a resolved status.
	FullOpacity = 1.0
	// DimOpacity de-emphasises markers whose status is resolved.
	DimOpacity = 0.4
)

// DefaultResolved returns the status tags that dim a marker.
func DefaultResolved() []string {
	return []string{"攻略済", "失"}
}

// Map maps a record name to its status tag. A nil Map is empty.
type Map map[string]string

// Lookup returns the status for name.
func (m Map) Lookup(name string) (string, bool) {
	s, ok := m[name]
	return s, ok
}

// Names returns the mapped names sorted.
func (m Map) Names() []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Overlay decides marker opacity from a status map.
type Overlay struct {
	resolved map[string]struct{}
}

// NewOverlay returns an overlay that dims the given tags, or the default
// tags when none are given.
func NewOverlay(resolved ...string) Overlay {
	if len(resolved) == 0 {
		resolved = DefaultResolved()
	}
	o := Overlay{resolved: make(map[string]struct{}, len(resolved))}
	for _, tag := range resolved {
		o.resolved[tag] = struct{}{}
	}
	return o
}

// Resolved reports whether name carries a resolved status in m.
func (o Overlay) Resolved(name string, m Map) bool {
	s, ok := m.Lookup(name)
	if !ok {
		return false
	}
	if o.resolved == nil {
		return NewOverlay().Resolved(name, m)
	}
	_, hit := o.resolved[s]
	return hit
}

// OpacityFor returns DimOpacity for resolved records and FullOpacity
// otherwise, including when the map or entry is missing.
func (o Overlay) OpacityFor(name string, m Map) float64 {
	if o.Resolved(name, m) {
		return DimOpacity
	}
	return FullOpacity
}
