// Package view holds the terminal screens of the back-office client: the
// loan ledger, the period summary and the settlement import flow.
package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// CommonModel carries the terminal dimensions shared by every screen.
type CommonModel struct {
	Width  int
	Height int
}

// BackMsg tells the shell to return to the menu.
type BackMsg struct{}

// Back is the tea.Cmd form of BackMsg, for returning straight from a key
// handler.
func Back() tea.Msg {
	return BackMsg{}
}
