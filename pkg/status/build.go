package status

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/TetuPalomydes/dam-map/pkg/source"
)

const (
	nameColumn   = "npc_name"
	statusColumn = "strategy_status"
)

// ErrColumns is returned when a CSV has no usable name or status column.
var ErrColumns = errors.New("status: name or status column not found")

// Columns picks the name and status columns from a header. Exact column
// names win; otherwise the first header mentioning "name" (or NPC名) and the
// first mentioning "status" (or 攻略) are used.
func Columns(header []string) (nameIdx, statusIdx int, err error) {
	nameIdx, statusIdx = -1, -1
	for i, h := range header {
		switch h {
		case nameColumn:
			nameIdx = i
		case statusColumn:
			statusIdx = i
		}
	}
	if nameIdx < 0 {
		for i, h := range header {
			if strings.Contains(strings.ToLower(h), "name") || h == "NPC名" {
				nameIdx = i
				break
			}
		}
	}
	if statusIdx < 0 {
		for i, h := range header {
			if strings.Contains(strings.ToLower(h), "status") || strings.Contains(h, "攻略") {
				statusIdx = i
				break
			}
		}
	}
	if nameIdx < 0 || statusIdx < 0 {
		return -1, -1, fmt.Errorf("%w in %v", ErrColumns, header)
	}
	return nameIdx, statusIdx, nil
}

// FromCSV builds a status map from an exported strategy CSV. Rows with an
// empty name or status are skipped; later rows win.
func FromCSV(r io.Reader) (Map, error) {
	cr := csv.NewReader(source.NewReader(r))
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New("status: csv has no header")
	}
	if err != nil {
		return nil, fmt.Errorf("status: read header: %w", err)
	}
	nameIdx, statusIdx, err := Columns(header)
	if err != nil {
		return nil, err
	}
	out := Map{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("status: read row: %w", err)
		}
		name := field(row, nameIdx)
		st := field(row, statusIdx)
		if name == "" || st == "" {
			continue
		}
		out[name] = st
	}
	return out, nil
}

func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
