package status

import (
	"context"
	"io"
	"log/slog"

	"github.com/TetuPalomydes/dam-map/pkg/logger"
)

// Cache keeps the last good snapshot between runs.
type Cache interface {
	Put(key string, v any) error
	Get(key string, v any) error
}

// Loader fetches a snapshot and never fails: errors fall back to the cached
// snapshot when a cache is configured, and to an empty map otherwise.
type Loader struct {
	Source Source
	Cache  Cache
	// CacheKey names the snapshot in Cache. Defaults to the source description.
	CacheKey string
	Log      *slog.Logger
}

func (l Loader) log() *slog.Logger {
	if l.Log != nil {
		return l.Log
	}
	return logger.L()
}

func (l Loader) cacheKey() string {
	if l.CacheKey != "" {
		return l.CacheKey
	}
	if l.Source != nil {
		return l.Source.String()
	}
	return "status"
}

// Close releases the source when it holds connections.
func (l Loader) Close() error {
	if c, ok := l.Source.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Load returns the current snapshot.
func (l Loader) Load(ctx context.Context) Map {
	m, _ := l.LoadWithOrigin(ctx)
	return m
}

// Origin tells where a loaded snapshot came from.
type Origin int

const (
	OriginNone Origin = iota
	OriginSource
	OriginCache
)

func (o Origin) String() string {
	switch o {
	case OriginSource:
		return "source"
	case OriginCache:
		return "cache"
	}
	return "none"
}

// LoadWithOrigin is Load that also reports which path produced the map.
func (l Loader) LoadWithOrigin(ctx context.Context) (Map, Origin) {
	log := l.log()
	if l.Source == nil {
		return Map{}, OriginNone
	}
	m, err := l.Source.Fetch(ctx)
	if err == nil {
		log.Debug("status_load_ok", "source", l.Source.String(), "count", len(m))
		if l.Cache != nil {
			if err := l.Cache.Put(l.cacheKey(), m); err != nil {
				log.Warn("status_cache_write_error", "err", err)
			}
		}
		return m, OriginSource
	}
	log.Debug("status_fetch_error", "source", l.Source.String(), "err", err)

	if l.Cache != nil {
		var cached Map
		if cerr := l.Cache.Get(l.cacheKey(), &cached); cerr == nil && cached != nil {
			log.Debug("status_cache_hit", "count", len(cached))
			return cached, OriginCache
		}
	}
	return Map{}, OriginNone
}
