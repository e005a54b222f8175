// Package dataset loads the configured region file and fort lists and turns
// them into classified, ordered records.
package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"

	"github.com/TetuPalomydes/dam-map/pkg/logger"
	"github.com/TetuPalomydes/dam-map/pkg/record"
	"github.com/TetuPalomydes/dam-map/pkg/region"
	"github.com/TetuPalomydes/dam-map/pkg/source"
	"github.com/TetuPalomydes/dam-map/pkg/store"
	"github.com/TetuPalomydes/dam-map/pkg/viewport"
)

// Options describes what to load.
type Options struct {
	RegionsPath string
	Lists       []store.ListSource
	RegionOrder []string
	Pinned      []string
	Remap       source.Remap
	Links       source.Links
	Labels      map[record.Kind]string
	Log         *slog.Logger
}

// OptionsFromConfig maps the resolved configuration onto load options.
func OptionsFromConfig(cfg *store.Config) Options {
	labels := map[record.Kind]string{}
	for k, v := range cfg.Labels {
		if kind, err := record.ParseKind(k); err == nil && v != "" {
			labels[kind] = v
		}
	}
	return Options{
		RegionsPath: cfg.Regions,
		Lists:       cfg.Lists,
		RegionOrder: cfg.RegionOrder,
		Pinned:      cfg.Pinned,
		Remap:       source.Remap(cfg.Remap),
		Links:       source.Links{Map: cfg.MapURL, Action: cfg.ActionURL},
		Labels:      labels,
	}
}

// Dataset is the loaded, ordered record set.
type Dataset struct {
	Regions []region.Region
	// Records are in default order.
	Records []record.Record
	// Skipped counts malformed list rows.
	Skipped int

	priorities region.Priorities
	orderer    *record.Orderer
	labels     map[record.Kind]string
}

// Load reads every configured file. A missing region file or list is logged
// and treated as empty; any other read error fails the load.
func Load(opts Options) (*Dataset, error) {
	log := opts.Log
	if log == nil {
		log = logger.L()
	}

	var regions []region.Region
	if opts.RegionsPath != "" {
		rs, err := source.LoadRegions(opts.RegionsPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.Warn("dataset_regions_missing", "path", opts.RegionsPath)
		case err != nil:
			return nil, fmt.Errorf("dataset: %w", err)
		default:
			regions = rs
		}
	}

	var inputs []record.Input
	skipped := 0
	for _, l := range opts.Lists {
		kind, err := record.ParseKind(l.Kind)
		if err != nil {
			return nil, fmt.Errorf("dataset: list %s: %w", l.Path, err)
		}
		format, err := source.ParseFormat(l.Format)
		if err != nil {
			return nil, fmt.Errorf("dataset: list %s: %w", l.Path, err)
		}
		res, err := source.LoadList(l.Path, format, kind)
		if errors.Is(err, fs.ErrNotExist) {
			log.Warn("dataset_list_missing", "path", l.Path, "kind", kind)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: %w", err)
		}
		if res.Skipped > 0 {
			log.Warn("dataset_rows_skipped", "path", l.Path, "count", res.Skipped)
		}
		rows := res.Inputs
		if l.Remap {
			rows = opts.Remap.Apply(rows)
		}
		inputs = append(inputs, opts.Links.Apply(rows)...)
		skipped += res.Skipped
		log.Debug("dataset_list_loaded", "path", l.Path, "kind", kind, "count", len(res.Inputs))
	}

	d := New(regions, inputs, opts.RegionOrder, opts.Pinned, opts.Labels)
	d.Skipped = skipped
	return d, nil
}

// New classifies and orders inputs without touching the filesystem.
func New(regions []region.Region, inputs []record.Input, regionOrder, pinned []string, labels map[record.Kind]string) *Dataset {
	if len(regionOrder) == 0 {
		regionOrder = region.DefaultOrder()
	}
	p := region.NewPriorities(regionOrder)
	o := record.NewOrderer(p, pinned...)
	c := region.NewClassifier(p.Apply(regions))
	if labels == nil {
		labels = map[record.Kind]string{}
	}
	return &Dataset{
		Regions:    c.Regions(),
		Records:    o.Order(record.Classify(inputs, c)),
		priorities: p,
		orderer:    o,
		labels:     labels,
	}
}

// Select returns the records matching f, in default order or with the pinned
// names first.
func (d *Dataset) Select(f record.Filter, pinned bool) []record.Record {
	rows := f.Apply(d.Records)
	if pinned {
		return d.orderer.OrderPinned(rows)
	}
	return rows
}

// Extent is the world area covering every record of every kind.
func (d *Dataset) Extent() viewport.Extent {
	pts := make([]viewport.Point, len(d.Records))
	for i, r := range d.Records {
		pts[i] = viewport.Point{X: float64(r.X), Y: float64(r.Y)}
	}
	return viewport.ExtentFor(pts)
}

// Label returns the display label of a kind, or the kind itself.
func (d *Dataset) Label(k record.Kind) string {
	if l, ok := d.labels[k]; ok {
		return l
	}
	return string(k)
}

// Kinds returns the kinds that have at least one record, in display order.
func (d *Dataset) Kinds() []record.Kind {
	seen := map[record.Kind]bool{}
	for _, r := range d.Records {
		seen[r.Kind] = true
	}
	var out []record.Kind
	for _, k := range record.AllKinds() {
		if seen[k] {
			out = append(out, k)
		}
	}
	return out
}

// RegionNames returns the regions that hold records: ranked names first in
// priority order, then unranked names sorted. Unclassified records are not
// listed.
func (d *Dataset) RegionNames() []string {
	present := map[string]bool{}
	for _, r := range d.Records {
		if r.Region != "" {
			present[r.Region] = true
		}
	}
	var out []string
	for _, name := range d.priorities.Names() {
		if present[name] {
			out = append(out, name)
			delete(present, name)
		}
	}
	var rest []string
	for name := range present {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	return append(out, rest...)
}
