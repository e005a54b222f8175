package source

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/TetuPalomydes/dam-map/pkg/record"
)

// TSVHeader is the header line of a fort list.
const TSVHeader = "NPC名\tX座標\tY座標\t★"

// Format is the on-disk layout of a fort list.
type Format string

const (
	// FormatTSV is `NPC名 X座標 Y座標 ★` separated by tabs.
	FormatTSV Format = "tsv"
	// FormatCSV is an export with npc_name, base1_x, base1_y and level columns.
	FormatCSV Format = "csv"
)

// ParseFormat validates a format name. Empty means TSV.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tsv", "txt":
		return FormatTSV, nil
	case "csv":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("source: unknown list format %q", s)
}

var starDigits = regexp.MustCompile(`★?(\d+)`)

// StarLevel extracts the tier from a label such as "★8". Labels without a
// number are tier 1.
func StarLevel(label string) int {
	m := starDigits.FindStringSubmatch(label)
	if m == nil {
		return 1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// StarLabel formats a tier as a label. Tiers below 1 are shown as ★1.
func StarLabel(level int) string {
	if level < 1 {
		level = 1
	}
	return "★" + strconv.Itoa(level)
}

// Result is the outcome of parsing one list.
type Result struct {
	Inputs []record.Input
	// Skipped counts malformed rows that were dropped.
	Skipped int
}

// ParseTSV reads a tab separated fort list. The first line is the header.
// Rows with fewer than four fields or non-integer coordinates are skipped.
func ParseTSV(r io.Reader, kind record.Kind) (Result, error) {
	var res Result
	sc := bufio.NewScanner(NewReader(r))
	first := true
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if first {
			first = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 4 {
			res.Skipped++
			continue
		}
		x, errX := strconv.Atoi(strings.TrimSpace(parts[1]))
		y, errY := strconv.Atoi(strings.TrimSpace(parts[2]))
		if errX != nil || errY != nil {
			res.Skipped++
			continue
		}
		star := strings.TrimSpace(parts[3])
		res.Inputs = append(res.Inputs, record.Input{
			X:    x,
			Y:    y,
			Name: strings.TrimSpace(parts[0]),
			Star: star,
			Tier: StarLevel(star),
			Kind: kind,
		})
	}
	if err := sc.Err(); err != nil {
		return Result{}, fmt.Errorf("source: read tsv: %w", err)
	}
	return res, nil
}

// ParseCSV reads a fort export with npc_name, base1_x, base1_y and level
// columns. A missing level means tier 1.
func ParseCSV(r io.Reader, kind record.Kind) (Result, error) {
	cr := csv.NewReader(NewReader(r))
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return Result{}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("source: read csv header: %w", err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	for _, need := range []string{"npc_name", "base1_x", "base1_y"} {
		if _, ok := col[need]; !ok {
			return Result{}, fmt.Errorf("source: csv missing column %q", need)
		}
	}
	get := func(row []string, name string) (string, bool) {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return "", false
		}
		return strings.TrimSpace(row[i]), true
	}

	var res Result
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				res.Skipped++
				continue
			}
			return Result{}, fmt.Errorf("source: read csv: %w", err)
		}
		name, _ := get(row, "npc_name")
		xs, _ := get(row, "base1_x")
		ys, _ := get(row, "base1_y")
		x, errX := strconv.Atoi(xs)
		y, errY := strconv.Atoi(ys)
		if errX != nil || errY != nil {
			res.Skipped++
			continue
		}
		level := 1
		if ls, ok := get(row, "level"); ok && ls != "" {
			n, err := strconv.Atoi(ls)
			if err != nil {
				res.Skipped++
				continue
			}
			level = n
		}
		star := StarLabel(level)
		res.Inputs = append(res.Inputs, record.Input{
			X:    x,
			Y:    y,
			Name: name,
			Star: star,
			Tier: StarLevel(star),
			Kind: kind,
		})
	}
	return res, nil
}

// Parse reads a list in the given format.
func Parse(r io.Reader, format Format, kind record.Kind) (Result, error) {
	if format == FormatCSV {
		return ParseCSV(r, kind)
	}
	return ParseTSV(r, kind)
}

// LoadList reads a list file.
func LoadList(path string, format Format, kind record.Kind) (Result, error) {
	f, err := open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()
	res, err := Parse(f, format, kind)
	if err != nil {
		return Result{}, fmt.Errorf("source: %s: %w", path, err)
	}
	return res, nil
}

// WriteTSV writes records as a fort list with the standard header.
func WriteTSV(w io.Writer, rows []record.Record) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, TSVHeader); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(bw, "%s\t%d\t%d\t%s\n", r.Name, r.X, r.Y, r.Label()); err != nil {
			return err
		}
	}
	return bw.Flush()
}
