package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for every view.
type KeyMap struct {
	// Forms.
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Back   key.Binding
	Cycle  key.Binding // choice fields: next option
	Switch key.Binding // login <-> register

	// Ticket list.
	Up      key.Binding
	Down    key.Binding
	New     key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Status  key.Binding
	Search  key.Binding
	Refresh key.Binding
	Profile key.Binding
	Logout  key.Binding

	Quit      key.Binding
	ForceQuit key.Binding
}

var DefaultKeyMap = KeyMap{
	Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("S-tab", "prev field")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Cycle:  key.NewBinding(key.WithKeys("right", "left", " "), key.WithHelp("←/→", "change")),
	Switch: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("C-r", "login/register")),

	Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Edit:    key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit")),
	Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d d", "delete")),
	Status:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "next status")),
	Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Profile: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile")),
	Logout:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),

	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("C-c", "quit")),
}
