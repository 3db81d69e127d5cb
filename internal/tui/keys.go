package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Top        key.Binding
	Bottom     key.Binding
	NextFilter key.Binding
	PrevFilter key.Binding
	Search     key.Binding
	Add        key.Binding
	Edit       key.Binding
	Delete     key.Binding
	ClearAll   key.Binding
	Reset      key.Binding
	Theme      key.Binding
	Export     key.Binding
	Import     key.Binding
	Help       key.Binding
	Quit       key.Binding
	Escape     key.Binding
	Enter      key.Binding
	Submit     key.Binding
	Yes        key.Binding
	No         key.Binding
	ColorNext  key.Binding
	ColorPrev  key.Binding
}

var keys = keyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Top:        key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	Bottom:     key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	NextFilter: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next filter")),
	PrevFilter: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev filter")),
	Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add note")),
	Edit:       key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
	Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	ClearAll:   key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "clear all")),
	Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "re-arm reminder")),
	Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Export:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
	Import:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
	Submit:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Yes:        key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	No:         key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
	ColorNext:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next color")),
	ColorPrev:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev color")),
}
