package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	enter     key.Binding
	save      key.Binding
	back      key.Binding
	cancel    key.Binding
	dismiss   key.Binding
	next      key.Binding
	prev      key.Binding
	switchTo  key.Binding
	newParty  key.Binding
	add       key.Binding
	edit      key.Binding
	del       key.Binding
	toggle    key.Binding
	refresh   key.Binding
	quit      key.Binding
	forceQuit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		save:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear selection")),
		cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		dismiss:   key.NewBinding(key.WithKeys("enter", "esc"), key.WithHelp("enter", "dismiss")),
		next:      key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		prev:      key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		switchTo:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		newParty:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new party")),
		add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add attendee")),
		edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		del:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		forceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.switchTo},
		{k.newParty, k.add, k.edit, k.del},
		{k.toggle, k.save, k.cancel},
		{k.refresh, k.quit},
	}
}
