package store

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// snapshotBucket is the directory snapshots live under.
const snapshotBucket = "snapshots"

// ErrNotFound is returned by Get for unknown keys.
var ErrNotFound = errors.New("store: snapshot not found")

// Snapshots persists JSON documents under opaque keys, such as the last good
// status snapshot per source.
type Snapshots struct {
	d        *diskv.Diskv
	basePath string
}

// OpenSnapshots returns a snapshot store rooted at basePath.
func OpenSnapshots(basePath string) (*Snapshots, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("store: snapshot base path is empty")
	}
	return &Snapshots{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

// BasePath returns the root directory.
func (s *Snapshots) BasePath() string { return s.basePath }

// Put stores v as JSON under key.
func (s *Snapshots) Put(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	if err := s.d.Write(toKey(key), b); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

// Get decodes the document stored under key into v.
func (s *Snapshots) Get(key string, v any) error {
	k := toKey(key)
	if !s.d.Has(k) {
		return ErrNotFound
	}
	b, err := s.d.Read(k)
	if err != nil {
		return fmt.Errorf("store: read %s: %w", key, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("store: decode %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Unknown keys are not an error.
func (s *Snapshots) Delete(key string) error {
	k := toKey(key)
	if !s.d.Has(k) {
		return nil
	}
	return s.d.Erase(k)
}

// Keys lists the stored keys.
func (s *Snapshots) Keys() []string {
	var out []string
	for k := range s.d.Keys(nil) {
		if name, ok := fromKey(k); ok {
			out = append(out, name)
		}
	}
	return out
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `snapshots-<hex key>.json`.
func toKey(key string) string {
	return snapshotBucket + "-" + hex.EncodeToString([]byte(key)) + ".json"
}

func fromKey(k string) (string, bool) {
	rest, ok := strings.CutPrefix(k, snapshotBucket+"-")
	if !ok {
		return "", false
	}
	rest = strings.TrimSuffix(rest, ".json")
	b, err := hex.DecodeString(rest)
	if err != nil {
		return "", false
	}
	return string(b), true
}
