package render

import (
	"testing"

	"github.com/TetuPalomydes/dam-map/pkg/record"
	"github.com/TetuPalomydes/dam-map/pkg/status"
	"github.com/TetuPalomydes/dam-map/pkg/viewport"
)

func testViewport() *viewport.Controller {
	vp := viewport.New(viewport.Extent{XMin: 0, YMax: 1000, Width: 1000, Height: 1000, GridStep: 200})
	vp.Fit(1000, 1000)
	return vp
}

func TestDrawEmptyGrid(t *testing.T) {
	var rec Recorder
	New().Draw(&rec, testViewport(), Frame{Width: 1000, Height: 1000})
	if rec.Ops[0].Type != OpClear {
		t.Fatalf("expected clear first, got %s", rec.Ops[0].Type)
	}
	if got := rec.Count(OpLine); got != 12 {
		t.Fatalf("expected 12 grid lines, got %d", got)
	}
	if got := rec.Count(OpCircle); got != 0 {
		t.Fatalf("expected no markers, got %d", got)
	}
	for _, l := range rec.Filter(OpLine) {
		if l.X1 < 0 || l.X1 > 1000 || l.Y2 < 0 || l.Y2 > 1000 {
			t.Fatalf("expected grid within the surface, got %+v", l)
		}
	}
}

func TestDrawNilViewport(t *testing.T) {
	var rec Recorder
	New().Draw(&rec, nil, Frame{Width: 10, Height: 10})
	if len(rec.Ops) != 1 || rec.Ops[0].Type != OpClear {
		t.Fatalf("expected only a clear, got %+v", rec.Ops)
	}
}

func TestDrawMarkers(t *testing.T) {
	hover := record.Record{Name: "洛陽", X: 500, Y: 500, Tier: 9, Star: "★9", Kind: record.KindA}
	records := []record.Record{
		{Name: "許昌", X: 100, Y: 900, Tier: 3, Star: "★3", Kind: record.KindA},
		hover,
		{Name: "鄴", X: 300, Y: 300, Tier: 5, Kind: record.KindB},
		{Name: "far", X: 5000, Y: 5000, Tier: 5, Kind: record.KindA},
		{Name: "edge", X: 1040, Y: 500, Tier: 1, Kind: record.KindA},
	}
	var rec Recorder
	r := New()
	r.Draw(&rec, testViewport(), Frame{
		Width:   1000,
		Height:  1000,
		Records: records,
		Kind:    record.KindA,
		Hover:   &hover,
		Status:  status.Map{"許昌": "攻略済"},
	})

	circles := rec.Filter(OpCircle)
	if len(circles) != 3 {
		t.Fatalf("expected 3 markers, got %d", len(circles))
	}
	first := circles[0].Circle
	if first.X != 100 || first.Y != 100 || first.Radius != 6 {
		t.Fatalf("unexpected first marker %+v", first)
	}
	if first.Opacity != status.DimOpacity {
		t.Fatalf("expected resolved marker dimmed, got %v", first.Opacity)
	}
	if first.Outline != 1 {
		t.Fatalf("expected normal outline, got %v", first.Outline)
	}
	second := circles[1].Circle
	if second.Outline != 2 || second.Stroke != r.Palette.Hover {
		t.Fatalf("expected hovered marker outline, got %+v", second)
	}
	if second.Opacity != status.FullOpacity {
		t.Fatalf("expected full opacity, got %v", second.Opacity)
	}
	if circles[2].Circle.X != 1040 {
		t.Fatalf("expected marker inside the cull margin, got %+v", circles[2].Circle)
	}
	if circles[0].Circle.Fill != r.Palette.KindColor(record.KindA) {
		t.Fatalf("expected kind colour")
	}

	texts := rec.Filter(OpText)
	if len(texts) != 2 || texts[0].Text != "★3" || texts[1].Text != "★9" {
		t.Fatalf("expected labels for the two large markers, got %+v", texts)
	}
}

func TestDrawZoomedOut(t *testing.T) {
	vp := testViewport()
	vp.ZoomTo(0.1, viewport.Point{X: 500, Y: 500}, viewport.Point{X: 500, Y: 500})
	records := []record.Record{
		{Name: "small", X: 500, Y: 500, Tier: 1, Kind: record.KindA},
		{Name: "big", X: 500, Y: 500, Tier: 9, Kind: record.KindA},
	}
	var rec Recorder
	New().Draw(&rec, vp, Frame{Width: 1000, Height: 1000, Records: records})
	circles := rec.Filter(OpCircle)
	if len(circles) != 1 {
		t.Fatalf("expected the small marker skipped, got %d markers", len(circles))
	}
	if circles[0].Circle.Radius != MinDrawRadius {
		t.Fatalf("expected minimum radius, got %v", circles[0].Circle.Radius)
	}
	if rec.Count(OpText) != 0 {
		t.Fatalf("expected no labels when zoomed out")
	}
}

func TestKindColorFallback(t *testing.T) {
	p := DefaultPalette()
	if p.KindColor(record.Kind("Z")) != p.Fallback {
		t.Fatalf("expected fallback colour for unknown kind")
	}
}
