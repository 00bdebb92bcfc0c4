package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the dashboard-wide bindings. Arrow keys belong to the
// parameter list and are listed here only for help.
type keyMap struct {
	Select       key.Binding
	Adjust       key.Binding
	NextView     key.Binding
	PrevView     key.Binding
	JumpView     key.Binding
	Conservative key.Binding
	Reset        key.Binding
	Save         key.Binding
	Help         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Select:       key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "select input")),
		Adjust:       key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "adjust")),
		NextView:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
		PrevView:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev view")),
		JumpView:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6"), key.WithHelp("1-6", "jump to view")),
		Conservative: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "conservative")),
		Reset:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset inputs")),
		Save:         key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save plan")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.Adjust, k.NextView, k.Conservative, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Select, k.Adjust, k.Reset, k.Save},
		{k.NextView, k.PrevView, k.JumpView},
		{k.Conservative, k.Help, k.Quit},
	}
}
