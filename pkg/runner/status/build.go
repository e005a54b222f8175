// Package status converts an exported strategy CSV into the status snapshot.
package status

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/TetuPalomydes/dam-map/pkg/logger"
	"github.com/TetuPalomydes/dam-map/pkg/status"
)

type Build struct {
	// Input is the strategy CSV.
	Input string
	// Output is the JSON snapshot written.
	Output string
	Log    *slog.Logger
}

// Do reads Input and writes a name to status JSON object to Output.
func (b *Build) Do(_ context.Context) error {
	if b.Input == "" {
		return errors.New("an input csv is required")
	}
	if b.Output == "" {
		b.Output = status.DefaultFile
	}
	in, err := os.Open(b.Input)
	if err != nil {
		return fmt.Errorf("open %s: %w", b.Input, err)
	}
	defer in.Close()

	m, err := status.FromCSV(in)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode status: %w", err)
	}
	if err := os.WriteFile(b.Output, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", b.Output, err)
	}

	log := b.Log
	if log == nil {
		log = logger.L()
	}
	log.Info("status_built", "input", b.Input, "output", b.Output, "count", len(m))
	return nil
}
