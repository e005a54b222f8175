package region

// Classifier assigns points to the first region, in list order, that
// contains them.
type Classifier struct {
	regions []Region
}

// NewClassifier normalises the regions and keeps their order. Overlapping
// rectangles are allowed; the earlier one wins.
func NewClassifier(regions []Region) *Classifier {
	c := &Classifier{regions: make([]Region, len(regions))}
	for i, r := range regions {
		c.regions[i] = r.Normalize()
	}
	return c
}

// Classify returns the name of the first region containing (x, y), or the
// empty string when none does.
func (c *Classifier) Classify(x, y int) string {
	if c == nil {
		return ""
	}
	for _, r := range c.regions {
		if r.Contains(x, y) {
			return r.Name
		}
	}
	return ""
}

// Regions returns a copy of the classifier's regions.
func (c *Classifier) Regions() []Region {
	if c == nil {
		return nil
	}
	out := make([]Region, len(c.regions))
	copy(out, c.regions)
	return out
}
