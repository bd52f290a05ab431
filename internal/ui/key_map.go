package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	favorite key.Binding
	genre    key.Binding
	director key.Binding
	profile  key.Binding
	edit     key.Binding
	remove   key.Binding
	yes      key.Binding
	no       key.Binding
	logout   key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		genre:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "genre")),
		director: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "director")),
		profile:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile")),
		edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		remove:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete account")),
		yes:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		logout:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.back, k.favorite, k.genre, k.director},
		{k.profile, k.edit, k.remove},
		{k.yes, k.no, k.logout, k.quit},
	}
}
