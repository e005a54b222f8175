// Package record defines classified map points and their ordering.
package record

import (
	"errors"
	"fmt"
	"strings"

	"github.com/TetuPalomydes/dam-map/pkg/region"
)

// Kind identifies which of the two source lists a record came from.
type Kind string

const (
	// KindA is the first source list (the cw2 fort list).
	KindA Kind = "A"
	// KindB is the second source list (the em6 fort list).
	KindB Kind = "B"
)

// AllKinds returns the supported kinds in display order.
func AllKinds() []Kind {
	return []Kind{KindA, KindB}
}

// ParseKind converts a string to a Kind or returns an error for unknown values.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "A", "CW", "CW2":
		return KindA, nil
	case "B", "EM", "EM6":
		return KindB, nil
	case "":
		return "", errors.New("record: empty kind")
	}
	return "", fmt.Errorf("record: unknown kind %q", raw)
}

// Other returns the opposite kind.
func (k Kind) Other() Kind {
	if k == KindA {
		return KindB
	}
	return KindA
}

// Input is one already-parsed row handed over by a source loader.
type Input struct {
	X    int
	Y    int
	Name string
	// Star is the raw tier label, e.g. "★8".
	Star string
	Tier int
	Kind Kind
	// Action is the identifier carried by a primary activation.
	Action string
	// Reference is the identifier carried by a secondary activation.
	Reference string
}

// Record is a classified point. Records are values and are not mutated after
// classification.
type Record struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Name      string `json:"name"`
	Star      string `json:"star,omitempty"`
	Tier      int    `json:"tier"`
	Kind      Kind   `json:"kind"`
	Region    string `json:"region"`
	Action    string `json:"action,omitempty"`
	Reference string `json:"reference,omitempty"`
}

// Label returns the tier label, falling back to "★<tier>".
func (r Record) Label() string {
	if r.Star != "" {
		return r.Star
	}
	return fmt.Sprintf("★%d", r.Tier)
}

func (r Record) String() string {
	return fmt.Sprintf("%s (%d,%d) %s", r.Name, r.X, r.Y, r.Label())
}

// Classify turns inputs into records using the classifier for the region.
// Tiers below one are raised to one.
func Classify(inputs []Input, c *region.Classifier) []Record {
	out := make([]Record, 0, len(inputs))
	for _, in := range inputs {
		tier := in.Tier
		if tier < 1 {
			tier = 1
		}
		out = append(out, Record{
			X:         in.X,
			Y:         in.Y,
			Name:      in.Name,
			Star:      in.Star,
			Tier:      tier,
			Kind:      in.Kind,
			Region:    c.Classify(in.X, in.Y),
			Action:    in.Action,
			Reference: in.Reference,
		})
	}
	return out
}
