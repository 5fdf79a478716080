package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up, down, top, bottom key.Binding
	toggle, add, edit     key.Binding
	tag, filter, reset    key.Binding
	del, open, quit       key.Binding
}

var keys = keyMap{
	up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
	down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
	top:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	bottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done")),
	add:    key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add")),
	edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	tag:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "tag")),
	filter: key.NewBinding(key.WithKeys("f", "/"), key.WithHelp("f", "filter")),
	reset:  key.NewBinding(key.WithKeys("F", "r"), key.WithHelp("F", "clear filter")),
	del:    key.NewBinding(key.WithKeys("d", "D"), key.WithHelp("d", "del")),
	open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
	quit:   key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
}

// shortHelp lists the bindings shown in the status bar.
func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.add, k.toggle, k.edit, k.tag, k.filter, k.reset, k.del, k.open, k.quit}
}
