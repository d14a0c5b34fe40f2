package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgLoaded MsgKind = iota
	MsgPartyCreated
	MsgPartyEdited
	MsgDeleted
	MsgSaved
)

// opResult is the payload of every [Msg]: which panel operation ran and how it ended.
type opResult struct {
	op  string
	err error
}

// opDoneMsg is the constructor for every [MsgKind]
func opDoneMsg(kind MsgKind, op string, err error) Msg {
	return Msg{kind: kind, data: opResult{op: op, err: err}}
}
