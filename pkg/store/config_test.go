package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("FORTMAP_CONFIG_PATH", t.TempDir())
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.File != "" {
		t.Fatalf("expected no config file, got %q", cfg.File)
	}
	if len(cfg.Lists) != 2 || cfg.Lists[0].Kind != "A" || cfg.Lists[1].Path != "em6.txt" {
		t.Fatalf("unexpected default lists %+v", cfg.Lists)
	}
	if len(cfg.RegionOrder) != 9 || cfg.RegionOrder[0] != "北西" {
		t.Fatalf("unexpected default region order %v", cfg.RegionOrder)
	}
	if cfg.Status.File != "fort_status.json" || cfg.Status.Timeout != 5*time.Second {
		t.Fatalf("unexpected status defaults %+v", cfg.Status)
	}
	if !reflect.DeepEqual(cfg.Status.Resolved, []string{"攻略済", "失"}) {
		t.Fatalf("unexpected resolved tags %v", cfg.Status.Resolved)
	}
	if cfg.UI.TapThreshold != 2 || cfg.UI.MinHitRadius != 1.5 {
		t.Fatalf("unexpected ui defaults %+v", cfg.UI)
	}
	if len(cfg.Pinned) == 0 || cfg.Pinned[0] != "洛陽" {
		t.Fatalf("expected default pinned list, got %v", cfg.Pinned)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `regions: regions.txt
lists:
  - path: cw2.txt
    kind: A
  - path: em6.csv
    kind: B
    format: csv
order:
  pinned: [許昌, 北西砦1442]
remap:
  1180: 1100
labels:
  a: cw
status:
  file: status.json
  timeout: 2s
`
	if err := os.WriteFile(filepath.Join(dir, ".fortmap.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FORTMAP_CONFIG_PATH", dir)
	t.Setenv("FORTMAP_STATUS_URL", "https://example.test/status.json")
	t.Setenv("FORTMAP_DEFAULT_KIND", "A")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if filepath.Base(cfg.File) != ".fortmap.yaml" {
		t.Fatalf("expected config file to be recorded, got %q", cfg.File)
	}
	if len(cfg.Lists) != 2 || cfg.Lists[1].Format != "csv" || cfg.Lists[1].Path != "em6.csv" {
		t.Fatalf("unexpected lists %+v", cfg.Lists)
	}
	if !reflect.DeepEqual(cfg.Pinned, []string{"許昌", "北西砦1442"}) {
		t.Fatalf("unexpected pinned %v", cfg.Pinned)
	}
	if cfg.Remap[1180] != 1100 {
		t.Fatalf("expected remap 1180->1100, got %v", cfg.Remap)
	}
	if cfg.Labels["A"] != "cw" || cfg.Labels["B"] != "w" {
		t.Fatalf("unexpected labels %v", cfg.Labels)
	}
	if cfg.Status.URL != "https://example.test/status.json" {
		t.Fatalf("expected env override for status url, got %q", cfg.Status.URL)
	}
	if cfg.Status.Timeout != 2*time.Second || cfg.Status.File != "status.json" {
		t.Fatalf("unexpected status config %+v", cfg.Status)
	}
	if cfg.DefaultKind != "A" {
		t.Fatalf("expected env default kind A, got %q", cfg.DefaultKind)
	}
}

func TestExpandHome(t *testing.T) {
	got, err := expand("~/fort_status.json")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got == "~/fort_status.json" || filepath.Base(got) != "fort_status.json" {
		t.Fatalf("expected home expansion, got %q", got)
	}
	if got, _ := expand(""); got != "" {
		t.Fatalf("expected empty path to stay empty, got %q", got)
	}
}
