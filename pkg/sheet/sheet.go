// Package sheet writes ordered records as a one-page planning sheet.
package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/TetuPalomydes/dam-map/pkg/record"
	"github.com/TetuPalomydes/dam-map/pkg/source"
)

// Header is the column row of a CSV sheet.
var Header = []string{"地域", "X", "Y", "種別", "名称", "★", "MAP", "自動出兵SC", "備考"}

const bom = "\ufeff"

// Format selects the sheet layout.
type Format string

const (
	// FormatCSV is the spreadsheet import with a byte order mark.
	FormatCSV Format = "csv"
	// FormatTSV is a fort list that can be loaded back as a source.
	FormatTSV Format = "tsv"
)

// ParseFormat validates a sheet format. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatTSV:
		return FormatTSV, nil
	}
	return "", fmt.Errorf("sheet: unknown format %q", s)
}

// Writer writes records in one format.
type Writer struct {
	Format Format
	// Label names a kind in the 種別 column. Nil writes the kind.
	Label func(record.Kind) string
	// Note fills the 備考 column. Nil leaves it empty.
	Note func(record.Record) string
}

// Write emits rows in the order given.
func (w Writer) Write(out io.Writer, rows []record.Record) error {
	if w.Format == FormatTSV {
		return source.WriteTSV(out, rows)
	}
	if _, err := io.WriteString(out, bom); err != nil {
		return fmt.Errorf("sheet: write: %w", err)
	}
	cw := csv.NewWriter(out)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("sheet: write header: %w", err)
	}
	for _, r := range rows {
		kind := string(r.Kind)
		if w.Label != nil {
			kind = w.Label(r.Kind)
		}
		note := ""
		if w.Note != nil {
			note = w.Note(r)
		}
		row := []string{
			r.Region,
			strconv.Itoa(r.X),
			strconv.Itoa(r.Y),
			kind,
			r.Name,
			r.Label(),
			r.Reference,
			r.Action,
			note,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("sheet: write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("sheet: flush: %w", err)
	}
	return nil
}
