package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Tabs   [4]key.Binding
	Next   key.Binding
	Prev   key.Binding
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Tabs: [4]key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "welcome")),
			key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "shop")),
			key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "guide")),
			key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "reviews")),
		},
		Next:   key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next section")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "previous section")),
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}
