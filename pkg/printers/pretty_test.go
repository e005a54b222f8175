package printers

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/TetuPalomydes/dam-map/pkg/record"
	"github.com/TetuPalomydes/dam-map/pkg/status"
)

func init() {
	color.NoColor = true
}

func TestRecords(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{
		Out:       &buf,
		ShowLinks: true,
		Label: func(k record.Kind) string {
			if k == record.KindA {
				return "E1"
			}
			return "w"
		},
		Status:  status.Map{"許昌": "攻略済"},
		Overlay: status.NewOverlay(),
	}
	pp.Records(
		record.Record{Name: "洛陽", X: 0, Y: 0, Tier: 9, Kind: record.KindB, Region: "中原", Reference: "m?x=0&y=0", Action: "a?x=0&y=0"},
		record.Record{Name: "許昌", X: 1100, Y: 0, Tier: 8, Kind: record.KindA},
	)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "自動出兵SC") {
		t.Fatalf("expected link columns in header, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "中原") || !strings.Contains(lines[1], "★9") || !strings.Contains(lines[1], "a?x=0&y=0") {
		t.Fatalf("unexpected first row %q", lines[1])
	}
	if !strings.Contains(lines[2], "許昌 [攻略済]") || !strings.Contains(lines[2], "E1") || !strings.HasPrefix(lines[2], "-") {
		t.Fatalf("unexpected second row %q", lines[2])
	}
}

func TestRecordsEmpty(t *testing.T) {
	var buf bytes.Buffer
	(&PrettyPrint{Out: &buf}).Records()
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("expected none marker, got %q", buf.String())
	}
}

func TestTitleWithCount(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.TitleWithCount("w", 1)
	pp.TitleWithCount("E1", 3)
	if buf.String() != "w - 1 fort\nE1 - 3 forts\n" {
		t.Fatalf("unexpected titles %q", buf.String())
	}
}
