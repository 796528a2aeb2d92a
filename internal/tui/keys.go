package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Left, Right key.Binding
	Home, End             key.Binding
	Like                  key.Binding
	Refresh               key.Binding
	Layout                key.Binding
	Search                key.Binding
	Help                  key.Binding
	Quit                  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Home:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		End:     key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Like:    key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "like")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Layout:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "layout")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Like, k.Refresh, k.Layout, k.Search, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Home, k.End, k.Like, k.Refresh},
		{k.Layout, k.Search, k.Help, k.Quit},
	}
}
