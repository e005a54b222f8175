package dataset

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/TetuPalomydes/dam-map/pkg/logger"
	"github.com/TetuPalomydes/dam-map/pkg/record"
	"github.com/TetuPalomydes/dam-map/pkg/source"
	"github.com/TetuPalomydes/dam-map/pkg/store"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func fixture(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()
	regions := writeFile(t, dir, "regions.txt",
		"北(-500,1500)(500,500)\n中原(-499,-499)(499,499)\n東(1500,-500)(500,500)\n")
	cw2 := writeFile(t, dir, "cw2.txt", source.TSVHeader+"\n北砦\t0\t600\t★3\n中原砦\t10\t10\t★2\n")
	em6 := writeFile(t, dir, "em6.txt", source.TSVHeader+"\n許昌\t1180\t0\t★8\n洛陽\t0\t0\t★9\nbad\tx\t1\t★1\n")
	return Options{
		RegionsPath: regions,
		Lists: []store.ListSource{
			{Path: cw2, Kind: "A", Format: "tsv"},
			{Path: em6, Kind: "B", Format: "tsv", Remap: true},
			{Path: filepath.Join(dir, "missing.txt"), Kind: "B"},
		},
		Pinned: []string{"洛陽", "許昌"},
		Remap:  source.LegacyRemap(),
		Links:  source.Links{Map: "https://example.com/map.php", Action: "https://example.com/send"},
		Labels: map[record.Kind]string{record.KindA: "E1", record.KindB: "w"},
		Log:    logger.Setup(io.Discard, "debug", "text"),
	}
}

func names(rs []record.Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name
	}
	return out
}

func TestLoad(t *testing.T) {
	d, err := Load(fixture(t))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if d.Skipped != 1 {
		t.Fatalf("expected 1 skipped row, got %d", d.Skipped)
	}
	if want := []string{"北砦", "中原砦", "洛陽", "許昌"}; !reflect.DeepEqual(names(d.Records), want) {
		t.Fatalf("expected %v, got %v", want, names(d.Records))
	}
	xu := d.Records[3]
	if xu.X != 1100 || xu.Region != "東" {
		t.Fatalf("expected remapped record in 東, got %+v", xu)
	}
	if xu.Action != "https://example.com/send?x=1100&y=0" || xu.Reference != "https://example.com/map.php?x=1100&y=0" {
		t.Fatalf("unexpected links %+v", xu)
	}
	if got := d.Select(record.Filter{Kind: record.KindA}, false); len(got) != 2 {
		t.Fatalf("expected 2 A records, got %d", len(got))
	}
	pinned := d.Select(record.Filter{Kind: record.KindB}, true)
	if want := []string{"洛陽", "許昌"}; !reflect.DeepEqual(names(pinned), want) {
		t.Fatalf("expected pinned %v, got %v", want, names(pinned))
	}
	if got := d.RegionNames(); !reflect.DeepEqual(got, []string{"北", "中原", "東"}) {
		t.Fatalf("unexpected region names %v", got)
	}
	if got := d.Kinds(); !reflect.DeepEqual(got, []record.Kind{record.KindA, record.KindB}) {
		t.Fatalf("unexpected kinds %v", got)
	}
	if d.Label(record.KindA) != "E1" || d.Label(record.Kind("Z")) != "Z" {
		t.Fatalf("unexpected labels")
	}
}

func TestLoadMissingRegions(t *testing.T) {
	opts := fixture(t)
	opts.RegionsPath = filepath.Join(t.TempDir(), "none.txt")
	d, err := Load(opts)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, r := range d.Records {
		if r.Region != "" {
			t.Fatalf("expected unclassified records, got %+v", r)
		}
	}
	if len(d.RegionNames()) != 0 {
		t.Fatalf("expected no region names")
	}
}

func TestLoadBadKind(t *testing.T) {
	opts := fixture(t)
	opts.Lists = []store.ListSource{{Path: "x", Kind: "Q"}}
	if _, err := Load(opts); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestEmptyDataset(t *testing.T) {
	d := New(nil, nil, nil, nil, nil)
	if len(d.Records) != 0 {
		t.Fatalf("expected no records")
	}
	ext := d.Extent()
	if ext.Width != 800 || ext.Height != 800 {
		t.Fatalf("expected default extent, got %+v", ext)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := &store.Config{
		Regions:   "r.txt",
		MapURL:    "m",
		ActionURL: "a",
		Labels:    map[string]string{"A": "E1", "B": ""},
		Remap:     map[int]int{1: 2},
	}
	opts := OptionsFromConfig(cfg)
	if opts.RegionsPath != "r.txt" || opts.Links.Map != "m" || opts.Links.Action != "a" {
		t.Fatalf("unexpected options %+v", opts)
	}
	if opts.Labels[record.KindA] != "E1" {
		t.Fatalf("expected A label")
	}
	if _, ok := opts.Labels[record.KindB]; ok {
		t.Fatalf("expected empty label dropped")
	}
	if opts.Remap.Coord(1) != 2 {
		t.Fatalf("expected remap carried over")
	}
}
