package ui

import (
	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/festa/internal/models"
)

var (
	_ list.Item = partyItem{}
)

// partyItem wraps [models.Party] to implement [list.Item].
type partyItem struct {
	party    models.Party
	selected bool
}

func (i partyItem) FilterValue() string { return i.party.Name }
func (i partyItem) Title() string {
	if i.selected {
		return "● " + i.party.Name
	}
	return i.party.Name
}
func (i partyItem) Description() string {
	if i.party.Date.IsZero() {
		return "no date"
	}
	return i.party.Date.Local().Format("2006-01-02 15:04")
}
