package record

import (
	"sort"

	"github.com/TetuPalomydes/dam-map/pkg/region"
)

// Orderer produces a deterministic total order over records: region
// priority, then north to south, then west to east.
type Orderer struct {
	priorities region.Priorities
	pinned     []string
}

// DefaultPinned is the fixed head of a rebuilt fort list: the capital, the
// eight ★8 cities, the ★7 great forts and the ★6 palace forts.
func DefaultPinned() []string {
	return []string{
		"洛陽",
		"許昌", "建業", "成都", "長安", "鄴", "下邳", "長沙", "天水",
		"玄武大砦", "青龍大砦", "朱雀大砦", "白虎大砦",
		"霊亀大砦", "応龍大砦", "麒麟大砦", "鳳凰大砦",
		"坎宮砦", "一白砦", "艮宮砦", "八白砦", "震宮砦", "三碧砦",
		"巽宮砦", "四緑砦", "離宮砦", "九紫砦", "坤宮砦", "二黒砦",
		"兌宮砦", "七赤砦", "乾宮砦", "六白砦",
	}
}

// NewOrderer returns an orderer ranking regions by p. The pinned names are
// only used by OrderPinned.
func NewOrderer(p region.Priorities, pinned ...string) *Orderer {
	o := &Orderer{priorities: p}
	o.pinned = append(o.pinned, pinned...)
	return o
}

// Pinned returns the configured pinned-prefix names.
func (o *Orderer) Pinned() []string {
	out := make([]string, len(o.pinned))
	copy(out, o.pinned)
	return out
}

// Order returns a sorted copy of records. The result does not depend on
// the order of the input.
func (o *Orderer) Order(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return o.less(out[i], out[j])
	})
	return out
}

// OrderPinned pulls the first record carrying each pinned name to the front,
// in pinned-list order, and orders everything else with Order. Later records
// sharing a pinned name are ordered with the rest.
func (o *Orderer) OrderPinned(records []Record) []Record {
	if len(o.pinned) == 0 {
		return o.Order(records)
	}
	wanted := make(map[string]struct{}, len(o.pinned))
	for _, name := range o.pinned {
		wanted[name] = struct{}{}
	}

	byName := make(map[string]Record, len(o.pinned))
	rest := make([]Record, 0, len(records))
	for _, r := range records {
		if _, ok := wanted[r.Name]; ok {
			if _, taken := byName[r.Name]; !taken {
				byName[r.Name] = r
				continue
			}
		}
		rest = append(rest, r)
	}

	out := make([]Record, 0, len(records))
	for _, name := range o.pinned {
		if r, ok := byName[name]; ok {
			out = append(out, r)
			delete(byName, name)
		}
	}
	return append(out, o.Order(rest)...)
}

func (o *Orderer) less(a, b Record) bool {
	ra, knownA := o.priorities.Rank(a.Region)
	rb, knownB := o.priorities.Rank(b.Region)
	if ra != rb {
		return ra < rb
	}
	if !knownA && !knownB && a.Region != b.Region {
		return a.Region < b.Region
	}
	if a.Y != b.Y {
		return a.Y > b.Y
	}
	if a.X != b.X {
		return a.X < b.X
	}
	// Same spot: fall back to the remaining fields so equal positions still
	// order the same way every run.
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}
	if a.Tier != b.Tier {
		return a.Tier < b.Tier
	}
	if a.Star != b.Star {
		return a.Star < b.Star
	}
	if a.Action != b.Action {
		return a.Action < b.Action
	}
	return a.Reference < b.Reference
}
