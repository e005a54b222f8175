package app

import "github.com/charmbracelet/bubbles/v2/key"

type keyMap struct {
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Kind    key.Binding
	Region  key.Binding
	Reset   key.Binding
	Reload  key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("←↓↑→/hjkl", "pan")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "pan down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "pan left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "pan right")),
		Kind:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "list")),
		Region:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "region")),
		Reset:   key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset")),
		Reload:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "reload status")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap. Paired bindings show once.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ZoomIn, k.Up, k.Kind, k.Region, k.Reset, k.Reload, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ZoomIn, k.ZoomOut, k.Reset},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Kind, k.Region, k.Reload, k.Quit},
	}
}
