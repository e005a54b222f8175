// Package footer renders the two-line status and help bar under the map.
package footer

import (
	"strings"

	"github.com/muesli/reflow/truncate"

	"github.com/TetuPalomydes/dam-map/pkg/tui/theme"
)

// Height is the number of lines the footer occupies.
const Height = 2

const separator = " │ "

// Model tracks footer rendering state.
type Model struct {
	theme    theme.FooterTheme
	zoom     string
	kind     string
	region   string
	tooltip  string
	status   string
	isError  bool
	helpLine string
}

// New returns a footer styled by th.
func New(th theme.FooterTheme) Model {
	return Model{theme: th}
}

// SetView sets the zoom, active list and region filter segments.
func (m *Model) SetView(zoom, kind, region string) {
	m.zoom = zoom
	m.kind = kind
	m.region = region
}

// SetTooltip sets the hover text. Empty clears it.
func (m *Model) SetTooltip(s string) {
	m.tooltip = s
}

// SetStatus sets the status message shown when nothing is hovered.
func (m *Model) SetStatus(s string) {
	m.status = s
	m.isError = false
}

// SetError shows s as an error status.
func (m *Model) SetError(s string) {
	m.status = s
	m.isError = true
}

// Status returns the current status message.
func (m Model) Status() string { return m.status }

// Tooltip returns the current hover text.
func (m Model) Tooltip() string { return m.tooltip }

// SetHelp sets the rendered key help line.
func (m *Model) SetHelp(help string) {
	m.helpLine = help
}

// View renders the footer truncated to width.
func (m Model) View(width int) string {
	th := m.theme
	var segments []string
	if m.zoom != "" {
		segments = append(segments, th.Zoom.Render(m.zoom))
	}
	if m.kind != "" {
		segments = append(segments, th.Kind.Render(m.kind))
	}
	if m.region != "" {
		segments = append(segments, th.Region.Render(m.region))
	}
	switch {
	case m.tooltip != "":
		segments = append(segments, th.Tooltip.Render(m.tooltip))
	case m.status != "" && m.isError:
		segments = append(segments, th.Error.Render(m.status))
	case m.status != "":
		segments = append(segments, th.Status.Render(m.status))
	}
	top := " "
	if len(segments) > 0 {
		top = strings.Join(segments, th.Separator.Render(separator))
	}
	bottom := m.helpLine
	if bottom == "" {
		bottom = " "
	}
	return fit(top, width) + "\n" + fit(bottom, width)
}

func fit(s string, width int) string {
	if width <= 0 {
		return s
	}
	return truncate.StringWithTail(s, uint(width), "…")
}
