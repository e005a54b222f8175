// Package setup builds the pieces every runner needs from the resolved
// configuration.
package setup

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/TetuPalomydes/dam-map/pkg/dataset"
	"github.com/TetuPalomydes/dam-map/pkg/logger"
	"github.com/TetuPalomydes/dam-map/pkg/record"
	"github.com/TetuPalomydes/dam-map/pkg/status"
	"github.com/TetuPalomydes/dam-map/pkg/store"
)

// ErrNoConfig is returned when a runner is invoked without configuration.
var ErrNoConfig = errors.New("no configuration")

// Logger installs the process logger. When toFile is set the log goes to
// log.file, or nowhere if that is empty; otherwise it goes to stderr. The
// returned func closes the log file.
func Logger(cfg store.LogConfig, toFile bool) (*slog.Logger, func(), error) {
	if !toFile {
		return logger.Setup(os.Stderr, cfg.Level, cfg.Format), func() {}, nil
	}
	if cfg.File == "" {
		return logger.Setup(io.Discard, cfg.Level, cfg.Format), func() {}, nil
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logger.Setup(f, cfg.Level, cfg.Format), func() { _ = f.Close() }, nil
}

// Dataset loads every configured file.
func Dataset(cfg *store.Config, log *slog.Logger) (*dataset.Dataset, error) {
	if cfg == nil {
		return nil, ErrNoConfig
	}
	opts := dataset.OptionsFromConfig(cfg)
	opts.Log = log
	return dataset.Load(opts)
}

// Kinds parses a --kind value. Empty selects every kind.
func Kinds(raw string) ([]record.Kind, error) {
	if raw == "" {
		return record.AllKinds(), nil
	}
	k, err := record.ParseKind(raw)
	if err != nil {
		return nil, err
	}
	return []record.Kind{k}, nil
}

// Settings maps the status configuration onto source settings.
func Settings(cfg store.StatusConfig) status.Settings {
	return status.Settings{
		URL:       cfg.URL,
		File:      cfg.File,
		Timeout:   cfg.Timeout,
		RedisAddr: cfg.RedisAddr,
		RedisPass: cfg.RedisPass,
		RedisDB:   cfg.RedisDB,
		RedisKey:  cfg.RedisKey,
	}
}

// StatusLoader builds the status loader, with a snapshot cache when
// status.cache_dir is set.
func StatusLoader(cfg *store.Config, log *slog.Logger) (status.Loader, error) {
	if cfg == nil {
		return status.Loader{}, ErrNoConfig
	}
	l := status.Loader{Source: status.NewSource(Settings(cfg.Status)), Log: log}
	if cfg.Status.CacheDir != "" {
		snaps, err := store.OpenSnapshots(cfg.Status.CacheDir)
		if err != nil {
			return status.Loader{}, err
		}
		l.Cache = snaps
	}
	return l, nil
}

// WatchPath returns the file to watch for status changes, or "" when the
// active source is not a local file or watching is off.
func WatchPath(cfg *store.Config, src status.Source) string {
	if cfg == nil || !cfg.Status.Watch {
		return ""
	}
	if f, ok := src.(status.FileSource); ok {
		return f.Path
	}
	return ""
}
