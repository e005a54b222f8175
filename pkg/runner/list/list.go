// Package list prints the ordered fort lists.
package list

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/fatih/color"

	"github.com/TetuPalomydes/dam-map/pkg/printers"
	"github.com/TetuPalomydes/dam-map/pkg/record"
	"github.com/TetuPalomydes/dam-map/pkg/runner/internal/setup"
	"github.com/TetuPalomydes/dam-map/pkg/status"
	"github.com/TetuPalomydes/dam-map/pkg/store"
)

type List struct {
	Config *store.Config
	Kind   string
	Region string
	Pinned bool
	// ShowLinks adds the map and action URL columns.
	ShowLinks bool
	// Status dims resolved forts using the configured status source.
	Status bool
	JSON   bool
	Out    io.Writer
	Log    *slog.Logger
}

func (l *List) out() io.Writer {
	if l.Out != nil {
		return l.Out
	}
	return color.Output
}

// Do prints one table per kind, or a single JSON array.
func (l *List) Do(ctx context.Context) error {
	kinds, err := setup.Kinds(l.Kind)
	if err != nil {
		return err
	}
	d, err := setup.Dataset(l.Config, l.Log)
	if err != nil {
		return err
	}

	if l.JSON {
		rows := make([]record.Record, 0, len(d.Records))
		for _, k := range kinds {
			rows = append(rows, d.Select(record.Filter{Kind: k, Region: l.Region}, l.Pinned)...)
		}
		enc := json.NewEncoder(l.out())
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	pp := printers.PrettyPrint{Out: l.out(), ShowLinks: l.ShowLinks, Label: d.Label}
	if l.Status {
		loader, err := setup.StatusLoader(l.Config, l.Log)
		if err != nil {
			return err
		}
		defer loader.Close()
		pp.Status = loader.Load(ctx)
		pp.Overlay = status.NewOverlay(l.Config.Status.Resolved...)
	}

	pp.NewLine()
	for _, k := range kinds {
		rows := d.Select(record.Filter{Kind: k, Region: l.Region}, l.Pinned)
		pp.TitleWithCount(d.Label(k), len(rows))
		pp.Records(rows...)
	}
	return nil
}
