// Package marker sizes map markers and answers which marker sits under a
// screen position.
package marker

import (
	"github.com/TetuPalomydes/dam-map/pkg/record"
	"github.com/TetuPalomydes/dam-map/pkg/viewport"
)

const (
	// MaxTier caps the tier used for sizing.
	MaxTier = 9
	// PickSlack is added to the drawn radius to form the pick radius.
	PickSlack = 4
)

// Radius returns the drawn marker radius in world units.
func Radius(tier int) float64 {
	if tier > MaxTier {
		tier = MaxTier
	}
	return float64(3 + tier)
}

// PickRadius returns the clickable radius at effective scale 1. Lookup
// multiplies it by the current effective scale.
func PickRadius(tier int) float64 {
	return Radius(tier) + PickSlack
}

// Index hit-tests the active records against the current camera. A linear
// scan is enough for a few thousand markers.
type Index struct {
	// MinRadiusPx widens the pick radius to at least this many pixels.
	// Coarse surfaces such as a terminal grid use it so small markers stay
	// clickable when zoomed out. Zero keeps the scaled pick radius.
	MinRadiusPx float64
}

// Lookup returns the position in records of the marker nearest the screen
// point, or -1 when none lies strictly inside its pick radius. Ties keep the
// earliest record.
func (ix Index) Lookup(sx, sy float64, records []record.Record, vp *viewport.Controller) int {
	if len(records) == 0 || vp == nil {
		return -1
	}
	eff := vp.Effective()
	if eff <= 0 {
		return -1
	}
	wx, wy := vp.ScreenToWorld(sx, sy)
	minWorld := ix.MinRadiusPx / eff

	best := -1
	bestD2 := 0.0
	for i, r := range records {
		dx := wx - float64(r.X)
		dy := wy - float64(r.Y)
		d2 := dx*dx + dy*dy
		rad := PickRadius(r.Tier) * eff
		if rad < minWorld {
			rad = minWorld
		}
		if d2 >= rad*rad {
			continue
		}
		if best < 0 || d2 < bestD2 {
			best = i
			bestD2 = d2
		}
	}
	return best
}

// HitTest returns the record under the screen point, if any.
func (ix Index) HitTest(sx, sy float64, records []record.Record, vp *viewport.Controller) (record.Record, bool) {
	i := ix.Lookup(sx, sy, records, vp)
	if i < 0 {
		return record.Record{}, false
	}
	return records[i], true
}
