package status

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultTimeout bounds a remote status fetch.
const DefaultTimeout = 5 * time.Second

// maxPayload caps the status document size.
const maxPayload = 8 << 20

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Source fetches a status snapshot.
type Source interface {
	Fetch(ctx context.Context) (Map, error)
	String() string
}

// Decode parses a JSON object of name to status string.
func Decode(data []byte) (Map, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("status: decode: %w", err)
	}
	if raw == nil {
		return nil, errors.New("status: decode: not an object")
	}
	return Map(raw), nil
}

// HTTPSource fetches the snapshot with a GET request.
type HTTPSource struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
}

func (s HTTPSource) String() string { return "url " + s.URL }

// Fetch implements Source.
func (s HTTPSource) Fetch(ctx context.Context) (Map, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("status: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("status: fetch %s: %w", s.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status: fetch %s: unexpected status %d", s.URL, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("status: read %s: %w", s.URL, err)
	}
	return Decode(body)
}

// FileSource reads the snapshot from a local JSON file.
type FileSource struct {
	Path string
}

func (s FileSource) String() string { return "file " + s.Path }

// Fetch implements Source.
func (s FileSource) Fetch(ctx context.Context) (Map, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("status: read %s: %w", s.Path, err)
	}
	return Decode(data)
}

// RedisSource reads the snapshot from a hash of name to status.
type RedisSource struct {
	Client redis.Cmdable
	Key    string
}

func (s RedisSource) String() string { return "redis " + s.Key }

// Fetch implements Source.
func (s RedisSource) Fetch(ctx context.Context) (Map, error) {
	if s.Client == nil {
		return nil, errors.New("status: redis client not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()
	vals, err := s.Client.HGetAll(ctx, s.Key).Result()
	if err != nil {
		return nil, fmt.Errorf("status: redis hgetall %s: %w", s.Key, err)
	}
	return Map(vals), nil
}

// Close releases the client's connection pool.
func (s RedisSource) Close() error {
	if c, ok := s.Client.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// OpenRedis returns a client for addr, or nil when addr is empty.
func OpenRedis(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

// Settings selects and configures a source.
type Settings struct {
	URL       string
	File      string
	Timeout   time.Duration
	RedisAddr string
	RedisPass string
	RedisDB   int
	RedisKey  string
}

// DefaultFile is the local snapshot used when nothing else is configured.
const DefaultFile = "fort_status.json"

// NewSource picks the configured source: url, then redis, then file.
func NewSource(s Settings) Source {
	switch {
	case s.URL != "":
		return HTTPSource{URL: s.URL, Timeout: s.Timeout}
	case s.RedisAddr != "" && s.RedisKey != "":
		return RedisSource{Client: OpenRedis(s.RedisAddr, s.RedisPass, s.RedisDB), Key: s.RedisKey}
	}
	path := s.File
	if path == "" {
		path = DefaultFile
	}
	return FileSource{Path: path}
}
