package ui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit    key.Binding
	Back    key.Binding
	Refresh key.Binding
	Reload  key.Binding
	Logout  key.Binding
	Signup  key.Binding
	Login   key.Binding
}

var Keys = KeyMap{
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh token")),
	Reload:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "reload user")),
	Logout:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
	Signup:  key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "sign up")),
	Login:   key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "log in")),
}
