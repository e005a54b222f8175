package theme

import (
	"github.com/charmbracelet/lipgloss/v2"

	"github.com/TetuPalomydes/dam-map/pkg/render"
)

// Theme centralizes Lip Gloss styles for the map program.
type Theme struct {
	Footer FooterTheme
	Map    render.Palette
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help      lipgloss.Style
	Status    lipgloss.Style
	Separator lipgloss.Style
	Zoom      lipgloss.Style
	Kind      lipgloss.Style
	Region    lipgloss.Style
	Tooltip   lipgloss.Style
	Error     lipgloss.Style
}

// Default returns the built-in theme.
func Default() Theme {
	return Theme{
		Footer: FooterTheme{
			Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Separator: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Zoom:      lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Kind:      lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
			Region:    lipgloss.NewStyle().Foreground(lipgloss.Color("150")),
			Tooltip:   lipgloss.NewStyle().Foreground(lipgloss.Color("230")),
			Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Map: render.DefaultPalette(),
	}
}
