package source

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TetuPalomydes/dam-map/pkg/record"
)

func TestParseRegions(t *testing.T) {
	in := "\ufeff北西(-1500,1500)(-500,500)\n" +
		"# comment line\n" +
		"  中原 (-499,-499)(499,499)  \n" +
		"南東(1500,-1500)(500,-500)\n" +
		"broken(1,2)\n"
	regions, err := ParseRegions(strings.NewReader(in))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(regions) != 3 {
		t.Fatalf("expected 3 regions, got %d: %+v", len(regions), regions)
	}
	nw := regions[0]
	if nw.Name != "北西" || nw.XMin != -1500 || nw.XMax != -500 || nw.YMin != 500 || nw.YMax != 1500 {
		t.Fatalf("unexpected first region %+v", nw)
	}
	if regions[1].Name != "中原" {
		t.Fatalf("expected trimmed name, got %q", regions[1].Name)
	}
	se := regions[2]
	if se.XMin != 500 || se.XMax != 1500 || se.YMin != -1500 || se.YMax != -500 {
		t.Fatalf("expected normalised corners, got %+v", se)
	}
}

func TestLoadRegionsMissingFile(t *testing.T) {
	if _, err := LoadRegions(filepath.Join(t.TempDir(), "none.txt")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestParseTSV(t *testing.T) {
	in := TSVHeader + "\r\n" +
		"洛陽\t0\t0\t★9\r\n" +
		"許昌\t1100\t-1100\t★8\n" +
		"\n" +
		"short\t1\t2\n" +
		"bad\tx\t2\t★1\n" +
		"無印\t5\t6\t?\n"
	res, err := ParseTSV(strings.NewReader("\ufeff"+in), record.KindB)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(res.Inputs) != 3 {
		t.Fatalf("expected 3 rows, got %d: %+v", len(res.Inputs), res.Inputs)
	}
	if res.Skipped != 2 {
		t.Fatalf("expected 2 skipped rows, got %d", res.Skipped)
	}
	first := res.Inputs[0]
	if first.Name != "洛陽" || first.Tier != 9 || first.Star != "★9" || first.Kind != record.KindB {
		t.Fatalf("unexpected first row %+v", first)
	}
	if got := res.Inputs[1]; got.X != 1100 || got.Y != -1100 {
		t.Fatalf("unexpected coordinates %+v", got)
	}
	if got := res.Inputs[2]; got.Tier != 1 {
		t.Fatalf("expected tier 1 for unlabelled row, got %d", got.Tier)
	}
}

func TestParseCSV(t *testing.T) {
	in := "\ufeffnpc_name,base1_x,base1_y,level,event_id\n" +
		"許昌,1100,1100,8,1\n" +
		"砦A,10,-20,,2\n" +
		"砦B,oops,1,3,3\n" +
		"砦C,1,1,high,4\n" +
		"砦D,7,8,0,5\n"
	res, err := ParseCSV(strings.NewReader(in), record.KindB)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(res.Inputs) != 3 || res.Skipped != 2 {
		t.Fatalf("expected 3 rows and 2 skipped, got %d and %d", len(res.Inputs), res.Skipped)
	}
	if got := res.Inputs[0]; got.Star != "★8" || got.Tier != 8 || got.Name != "許昌" {
		t.Fatalf("unexpected first row %+v", got)
	}
	if got := res.Inputs[1]; got.Star != "★1" || got.Y != -20 {
		t.Fatalf("expected default level, got %+v", got)
	}
	if got := res.Inputs[2]; got.Star != "★1" || got.Tier != 1 {
		t.Fatalf("expected level 0 shown as ★1, got %+v", got)
	}
}

func TestParseCSVMissingColumns(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("name,x,y\n"), record.KindA); err == nil {
		t.Fatalf("expected error for missing columns")
	}
	res, err := ParseCSV(strings.NewReader(""), record.KindA)
	if err != nil || len(res.Inputs) != 0 {
		t.Fatalf("expected empty result for empty input, got %+v (%v)", res, err)
	}
}

func TestStarLevel(t *testing.T) {
	tests := map[string]int{"★8": 8, "8": 8, "★10": 10, "": 1, "★": 1, "lv★3": 3, "★0": 1}
	for in, want := range tests {
		if got := StarLevel(in); got != want {
			t.Fatalf("StarLevel(%q): expected %d, got %d", in, want, got)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatTSV, "TSV": FormatTSV, "txt": FormatTSV, "csv": FormatCSV} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q): expected %q, got %q (%v)", in, want, got, err)
		}
	}
	if _, err := ParseFormat("xlsx"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestRemap(t *testing.T) {
	in := []record.Input{{X: 1180, Y: -1288, Name: "鄴"}, {X: 5, Y: 1072}}
	out := LegacyRemap().Apply(in)
	if out[0].X != 1100 || out[0].Y != -1208 || out[1].X != 5 || out[1].Y != 992 {
		t.Fatalf("unexpected remap %+v", out)
	}
	if in[0].X != 1180 {
		t.Fatalf("expected input untouched")
	}
	if got := Remap(nil).Apply(in); got[0].X != 1180 {
		t.Fatalf("expected empty remap to be a no-op")
	}
}

func TestLinks(t *testing.T) {
	l := Links{Map: "https://w1.example.jp/map.php", Action: "https://w1.example.jp/auto_send_troop/index.php?v=2"}
	if got := l.MapURL(-12, 34); got != "https://w1.example.jp/map.php?x=-12&y=34" {
		t.Fatalf("unexpected map url %q", got)
	}
	if got := l.ActionURL(1, 2); got != "https://w1.example.jp/auto_send_troop/index.php?v=2&x=1&y=2" {
		t.Fatalf("unexpected action url %q", got)
	}
	in := []record.Input{{X: 1, Y: 2}, {X: 3, Y: 4, Action: "keep"}}
	out := l.Apply(in)
	if out[0].Reference == "" || out[0].Action == "" {
		t.Fatalf("expected links filled, got %+v", out[0])
	}
	if out[1].Action != "keep" {
		t.Fatalf("expected existing action kept, got %q", out[1].Action)
	}
	if got := (Links{}).MapURL(1, 2); got != "" {
		t.Fatalf("expected empty url without base, got %q", got)
	}
}

func TestLoadListAndWriteTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "em6.txt")
	body := TSVHeader + "\n洛陽\t0\t0\t★9\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	res, err := LoadList(path, FormatTSV, record.KindB)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Inputs) != 1 {
		t.Fatalf("expected 1 row, got %d", len(res.Inputs))
	}

	var buf bytes.Buffer
	recs := []record.Record{{Name: "洛陽", X: 0, Y: 0, Star: "★9"}, {Name: "砦", X: 1, Y: -2, Tier: 3}}
	if err := WriteTSV(&buf, recs); err != nil {
		t.Fatalf("write tsv: %v", err)
	}
	want := TSVHeader + "\n洛陽\t0\t0\t★9\n砦\t1\t-2\t★3\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}
