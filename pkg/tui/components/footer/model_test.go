package footer

import (
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"

	"github.com/TetuPalomydes/dam-map/pkg/tui/theme"
)

func TestViewSegments(t *testing.T) {
	m := New(theme.Default().Footer)
	m.SetView("120%", "w", "中原")
	m.SetStatus("status 3 (source)")
	m.SetHelp("q quit")

	lines := strings.Split(m.View(0), "\n")
	if len(lines) != Height {
		t.Fatalf("expected %d lines, got %d", Height, len(lines))
	}
	for _, want := range []string{"120%", "w", "中原", "status 3 (source)"} {
		if !strings.Contains(lines[0], want) {
			t.Fatalf("expected %q in %q", want, lines[0])
		}
	}
	if !strings.Contains(lines[1], "q quit") {
		t.Fatalf("expected help line, got %q", lines[1])
	}
}

func TestTooltipWins(t *testing.T) {
	m := New(theme.Default().Footer)
	m.SetStatus("status 3 (source)")
	m.SetTooltip("洛陽 (0,0) ★9")
	top := strings.Split(m.View(0), "\n")[0]
	if !strings.Contains(top, "洛陽") || strings.Contains(top, "status 3") {
		t.Fatalf("expected tooltip instead of status, got %q", top)
	}
	m.SetTooltip("")
	top = strings.Split(m.View(0), "\n")[0]
	if !strings.Contains(top, "status 3") {
		t.Fatalf("expected status after tooltip cleared, got %q", top)
	}
}

func TestError(t *testing.T) {
	m := New(theme.Default().Footer)
	m.SetError("ERR: boom")
	if m.Status() != "ERR: boom" {
		t.Fatalf("expected error status, got %q", m.Status())
	}
	m.SetStatus("ok")
	if m.isError {
		t.Fatalf("expected SetStatus to clear the error flag")
	}
}

func TestTruncate(t *testing.T) {
	m := New(theme.Default().Footer)
	m.SetTooltip(strings.Repeat("砦", 40))
	m.SetHelp(strings.Repeat("x", 100))
	for i, line := range strings.Split(m.View(20), "\n") {
		if w := ansi.PrintableRuneWidth(line); w > 20 {
			t.Fatalf("line %d: expected width <= 20, got %d", i, w)
		}
	}
}
