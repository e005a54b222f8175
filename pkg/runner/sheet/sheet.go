// Package sheet exports the ordered forts as a planning sheet.
package sheet

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/TetuPalomydes/dam-map/pkg/logger"
	"github.com/TetuPalomydes/dam-map/pkg/record"
	"github.com/TetuPalomydes/dam-map/pkg/runner/internal/setup"
	"github.com/TetuPalomydes/dam-map/pkg/sheet"
	"github.com/TetuPalomydes/dam-map/pkg/store"
)

type Sheet struct {
	Config *store.Config
	Kind   string
	Region string
	Pinned bool
	Format string
	// Output is the destination file. Empty writes to Out.
	Output string
	// Status fills the note column with each fort's status.
	Status bool
	Out    io.Writer
	Log    *slog.Logger
}

func (s *Sheet) Do(ctx context.Context) error {
	format, err := sheet.ParseFormat(s.Format)
	if err != nil {
		return err
	}
	kinds, err := setup.Kinds(s.Kind)
	if err != nil {
		return err
	}
	d, err := setup.Dataset(s.Config, s.Log)
	if err != nil {
		return err
	}

	var rows []record.Record
	for _, k := range kinds {
		rows = append(rows, d.Select(record.Filter{Kind: k, Region: s.Region}, s.Pinned)...)
	}

	w := sheet.Writer{Format: format, Label: d.Label}
	if s.Status {
		loader, err := setup.StatusLoader(s.Config, s.Log)
		if err != nil {
			return err
		}
		defer loader.Close()
		st := loader.Load(ctx)
		w.Note = func(r record.Record) string {
			v, _ := st.Lookup(r.Name)
			return v
		}
	}

	out := s.Out
	if out == nil {
		out = os.Stdout
	}
	if s.Output != "" {
		f, err := os.Create(s.Output)
		if err != nil {
			return fmt.Errorf("create %s: %w", s.Output, err)
		}
		defer f.Close()
		out = f
	}
	if err := w.Write(out, rows); err != nil {
		return err
	}
	log := s.Log
	if log == nil {
		log = logger.L()
	}
	log.Info("sheet_written", "rows", len(rows), "format", string(format), "path", s.Output)
	return nil
}
