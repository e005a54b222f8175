package status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDecode(t *testing.T) {
	m, err := Decode([]byte("\xef\xbb\xbf{\"許昌\":\"攻略済\"}"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if m["許昌"] != "攻略済" {
		t.Fatalf("unexpected map %v", m)
	}
	for _, bad := range []string{"", "null", "[1,2]", `{"a":1}`, "{"} {
		if _, err := Decode([]byte(bad)); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"許昌":"攻略済","成都":"未"}`))
		case "/bad":
			_, _ = w.Write([]byte(`not json`))
		case "/slow":
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		default:
			http.Error(w, "boom", http.StatusInternalServerError)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	m, err := HTTPSource{URL: srv.URL + "/ok"}.Fetch(ctx)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(m) != 2 || m["成都"] != "未" {
		t.Fatalf("unexpected map %v", m)
	}
	if _, err := (HTTPSource{URL: srv.URL + "/fail"}).Fetch(ctx); err == nil {
		t.Fatalf("expected error for 500")
	}
	if _, err := (HTTPSource{URL: srv.URL + "/bad"}).Fetch(ctx); err == nil {
		t.Fatalf("expected error for malformed body")
	}
	start := time.Now()
	if _, err := (HTTPSource{URL: srv.URL + "/slow", Timeout: 50 * time.Millisecond}).Fetch(ctx); err == nil {
		t.Fatalf("expected timeout error")
	}
	if time.Since(start) > time.Second {
		t.Fatalf("expected timeout to bound the fetch")
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fort_status.json")
	if err := os.WriteFile(path, []byte(`{"鄴":"失"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, err := FileSource{Path: path}.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if m["鄴"] != "失" {
		t.Fatalf("unexpected map %v", m)
	}
	if _, err := (FileSource{Path: path + ".missing"}).Fetch(context.Background()); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestRedisSourceWithoutClient(t *testing.T) {
	if _, err := (RedisSource{Key: "fort_status"}).Fetch(context.Background()); err == nil {
		t.Fatalf("expected error without client")
	}
	if c := OpenRedis("", "", 0); c != nil {
		t.Fatalf("expected nil client for empty address")
	}
}

func TestRedisSourceClose(t *testing.T) {
	if err := (RedisSource{Key: "fort_status"}).Close(); err != nil {
		t.Fatalf("expected nil error without client, got %v", err)
	}
	src := RedisSource{Client: OpenRedis("127.0.0.1:0", "", 0), Key: "fort_status"}
	if err := src.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := src.Close(); err == nil {
		t.Fatalf("expected error closing an already closed client")
	}
}

func TestNewSource(t *testing.T) {
	if s, ok := NewSource(Settings{URL: "http://x", File: "f.json"}).(HTTPSource); !ok || s.URL != "http://x" {
		t.Fatalf("expected http source to win")
	}
	if s, ok := NewSource(Settings{RedisAddr: "localhost:6379", RedisKey: "k", File: "f.json"}).(RedisSource); !ok || s.Key != "k" || s.Client == nil {
		t.Fatalf("expected redis source")
	}
	if s, ok := NewSource(Settings{File: "f.json"}).(FileSource); !ok || s.Path != "f.json" {
		t.Fatalf("expected file source")
	}
	if s, ok := NewSource(Settings{}).(FileSource); !ok || s.Path != DefaultFile {
		t.Fatalf("expected default file source")
	}
}
