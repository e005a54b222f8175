package store

import (
	"errors"
	"reflect"
	"testing"
)

func TestSnapshotsRoundTrip(t *testing.T) {
	s, err := OpenSnapshots(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	key := "url https://example.test/fort_status.json?v=1"
	want := map[string]string{"許昌": "攻略済", "北西砦1442": "失"}
	if err := s.Put(key, want); err != nil {
		t.Fatalf("put: %v", err)
	}

	var got map[string]string
	if err := s.Get(key, &got); err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if keys := s.Keys(); len(keys) != 1 || keys[0] != key {
		t.Fatalf("expected keys [%q], got %v", key, keys)
	}

	if err := s.Delete(key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Get(key, &got); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(key); err != nil {
		t.Fatalf("expected deleting a missing key to succeed, got %v", err)
	}
}

func TestOpenSnapshotsRequiresPath(t *testing.T) {
	if _, err := OpenSnapshots("  "); err == nil {
		t.Fatalf("expected error for empty base path")
	}
}

func TestSnapshotKeyTransform(t *testing.T) {
	k := toKey("redis fort-status")
	pk := keyToPathTransform(k)
	if len(pk.Path) != 1 || pk.Path[0] != snapshotBucket {
		t.Fatalf("expected bucket path, got %v", pk.Path)
	}
	if back := pathToKeyTransform(pk); back != k {
		t.Fatalf("expected %q, got %q", k, back)
	}
	if name, ok := fromKey(k); !ok || name != "redis fort-status" {
		t.Fatalf("expected decoded key, got %q (%v)", name, ok)
	}
}
