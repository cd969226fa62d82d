package viz

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Up, Down         key.Binding
	Inc, Dec         key.Binding
	IncFast, DecFast key.Binding
	Edit             key.Binding
	View             key.Binding
	Reset            key.Binding
	Theme            key.Binding
	Rotate           key.Binding
	Zoom             key.Binding
	Help             key.Binding
	Quit             key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k", "shift+tab"), key.WithHelp("↑/k", "prev slider")),
		Down:    key.NewBinding(key.WithKeys("down", "j", "tab"), key.WithHelp("↓/j", "next slider")),
		Inc:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "increase")),
		Dec:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "decrease")),
		IncFast: key.NewBinding(key.WithKeys("shift+right", "L"), key.WithHelp("L", "increase ×10")),
		DecFast: key.NewBinding(key.WithKeys("shift+left", "H"), key.WithHelp("H", "decrease ×10")),
		Edit:    key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "type value")),
		View:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "series/phase")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Rotate:  key.NewBinding(key.WithKeys("x", "X", "y", "Y", "z", "Z"), key.WithHelp("x/y/z", "rotate")),
		Zoom:    key.NewBinding(key.WithKeys("+", "=", "-", "_"), key.WithHelp("+/-", "zoom")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Inc, k.Dec, k.View, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Inc, k.Dec, k.IncFast, k.DecFast},
		{k.Edit, k.View, k.Reset, k.Theme},
		{k.Rotate, k.Zoom, k.Help, k.Quit},
	}
}
