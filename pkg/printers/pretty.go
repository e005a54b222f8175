// Package printers renders records for the command line.
package printers

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/TetuPalomydes/dam-map/pkg/record"
	"github.com/TetuPalomydes/dam-map/pkg/status"
)

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out       io.Writer
	ShowLinks bool
	// Label names a kind in the 種別 column. Nil prints the kind.
	Label func(record.Kind) string
	// Status dims resolved records when set.
	Status  status.Map
	Overlay status.Overlay
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " fort")
	default:
		_, _ = c.Fprintln(pp.out(), " forts")
	}
}

func (pp *PrettyPrint) label(k record.Kind) string {
	if pp.Label != nil {
		return pp.Label(k)
	}
	return string(k)
}

// Records prints rows as an aligned table in the order given.
func (pp *PrettyPrint) Records(rows ...record.Record) {
	if len(rows) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	star := color.New(color.FgHiYellow)

	tbl := uitable.New()
	tbl.Separator = "  "
	header := []interface{}{
		bold.Sprint("地域"), bold.Sprint("X"), bold.Sprint("Y"),
		bold.Sprint("種別"), bold.Sprint("名称"), bold.Sprint("★"),
	}
	if pp.ShowLinks {
		header = append(header, bold.Sprint("MAP"), bold.Sprint("自動出兵SC"))
	}
	tbl.AddRow(header...)

	for _, r := range rows {
		region := r.Region
		if region == "" {
			region = faint.Sprint("-")
		}
		name := r.Name
		if pp.Status != nil && pp.Overlay.Resolved(r.Name, pp.Status) {
			st, _ := pp.Status.Lookup(r.Name)
			name = faint.Sprintf("%s [%s]", r.Name, st)
		}
		row := []interface{}{region, r.X, r.Y, pp.label(r.Kind), name, star.Sprint(r.Label())}
		if pp.ShowLinks {
			row = append(row, r.Reference, r.Action)
		}
		tbl.AddRow(row...)
	}
	tbl.RightAlign(1)
	tbl.RightAlign(2)

	_, _ = fmt.Fprintln(pp.out(), tbl)
}
