package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Focus  key.Binding
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding
	More   key.Binding
	Cancel key.Binding
	Submit key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
	Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
	Focus:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "post/comments")),
	New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new comment")),
	Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	More:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "load more")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "send")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func helpLine(bindings ...key.Binding) string {
	var s string
	for i, b := range bindings {
		if i > 0 {
			s += "  "
		}
		h := b.Help()
		s += h.Key + ": " + h.Desc
	}
	return navStyle.Render(s)
}
