package region

import "testing"

func TestNewNormalizesCorners(t *testing.T) {
	r := New("north", 100, -50, -100, 50)
	if r.XMin != -100 || r.XMax != 100 || r.YMin != -50 || r.YMax != 50 {
		t.Fatalf("expected normalised bounds, got %+v", r)
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	c := NewClassifier([]Region{
		New("北西", 0, 0, 999, 999),
		New("中原", 1000, 0, 1999, 999),
		New("wide", 0, 0, 1999, 999),
	})

	tests := []struct {
		name string
		x, y int
		want string
	}{
		{name: "first rectangle", x: 500, y: 500, want: "北西"},
		{name: "second rectangle", x: 1500, y: 500, want: "中原"},
		{name: "inclusive edge", x: 999, y: 999, want: "北西"},
		{name: "next edge", x: 1000, y: 0, want: "中原"},
		{name: "outside", x: 2500, y: 500, want: ""},
		{name: "negative outside", x: -1, y: 10, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Classify(tt.x, tt.y); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestClassifyOverlapUsesListOrder(t *testing.T) {
	a := New("a", 0, 0, 10, 10)
	b := New("b", 5, 5, 15, 15)

	if got := NewClassifier([]Region{a, b}).Classify(7, 7); got != "a" {
		t.Fatalf("expected a, got %q", got)
	}
	if got := NewClassifier([]Region{b, a}).Classify(7, 7); got != "b" {
		t.Fatalf("expected b, got %q", got)
	}
}

func TestClassifyEmpty(t *testing.T) {
	if got := NewClassifier(nil).Classify(0, 0); got != "" {
		t.Fatalf("expected empty region, got %q", got)
	}
	var c *Classifier
	if got := c.Classify(1, 1); got != "" {
		t.Fatalf("expected empty region from nil classifier, got %q", got)
	}
}

func TestClassifierNormalizesInvertedInput(t *testing.T) {
	c := NewClassifier([]Region{{Name: "flip", XMin: 10, XMax: 0, YMin: 10, YMax: 0}})
	if got := c.Classify(5, 5); got != "flip" {
		t.Fatalf("expected flip, got %q", got)
	}
}

func TestPriorities(t *testing.T) {
	p := NewPriorities(DefaultOrder())
	if rank, ok := p.Rank("北西"); !ok || rank != 0 {
		t.Fatalf("expected 北西 at 0, got %d %v", rank, ok)
	}
	if rank, ok := p.Rank("中原"); !ok || rank != 4 {
		t.Fatalf("expected 中原 at 4, got %d %v", rank, ok)
	}
	if rank, ok := p.Rank("nowhere"); ok || rank != UnknownPriority {
		t.Fatalf("expected unknown rank %d, got %d %v", UnknownPriority, rank, ok)
	}

	dup := NewPriorities([]string{"a", "b", "a"})
	if got := dup.Names(); len(got) != 2 {
		t.Fatalf("expected duplicates collapsed, got %v", got)
	}

	regions := p.Apply([]Region{New("東", 0, 0, 1, 1), New("x", 0, 0, 1, 1)})
	if regions[0].Priority != 5 || regions[1].Priority != UnknownPriority {
		t.Fatalf("unexpected applied priorities: %+v", regions)
	}
}
