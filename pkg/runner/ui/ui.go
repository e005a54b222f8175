// Package ui launches the interactive fort map.
package ui

import (
	"context"

	"github.com/TetuPalomydes/dam-map/pkg/record"
	"github.com/TetuPalomydes/dam-map/pkg/runner/internal/setup"
	"github.com/TetuPalomydes/dam-map/pkg/store"
	"github.com/TetuPalomydes/dam-map/pkg/tui/app"
)

type UI struct {
	Config *store.Config
	// Kind overrides default_kind.
	Kind   string
	Pinned bool
}

// Options resolves the map program options. Logs go to log.file since the
// terminal belongs to the program. The returned func closes the status
// source and the log file.
func (u *UI) Options(ctx context.Context) (app.Options, func(), error) {
	if u.Config == nil {
		return app.Options{}, nil, setup.ErrNoConfig
	}
	cfg := u.Config
	log, closeLog, err := setup.Logger(cfg.Log, true)
	if err != nil {
		return app.Options{}, nil, err
	}

	raw := u.Kind
	if raw == "" {
		raw = cfg.DefaultKind
	}
	var kind record.Kind
	if raw != "" {
		if kind, err = record.ParseKind(raw); err != nil {
			closeLog()
			return app.Options{}, nil, err
		}
	}

	d, err := setup.Dataset(cfg, log)
	if err != nil {
		closeLog()
		return app.Options{}, nil, err
	}
	loader, err := setup.StatusLoader(cfg, log)
	if err != nil {
		closeLog()
		return app.Options{}, nil, err
	}
	cleanup := func() {
		if err := loader.Close(); err != nil {
			log.Warn("ui_status_close", "err", err)
		}
		closeLog()
	}
	log.Info("ui_start", "config", cfg.File, "records", len(d.Records), "skipped", d.Skipped, "status", loader.Source.String())

	return app.Options{
		Context:      ctx,
		Dataset:      d,
		Loader:       loader,
		WatchPath:    setup.WatchPath(cfg, loader.Source),
		Kind:         kind,
		Pinned:       u.Pinned || cfg.UI.Pinned,
		TapThreshold: cfg.UI.TapThreshold,
		MinHitRadius: cfg.UI.MinHitRadius,
		Resolved:     cfg.Status.Resolved,
		Log:          log,
	}, cleanup, nil
}

func (u *UI) Do(ctx context.Context) error {
	opts, cleanup, err := u.Options(ctx)
	if err != nil {
		return err
	}
	defer cleanup()
	return app.Run(opts)
}
