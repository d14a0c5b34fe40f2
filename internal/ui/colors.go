package ui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	purple = "#7D56F4"
	green  = "#04B575"
	red    = "#FF0000"
	orange = "#FFA500"
	gray   = "#626262"
	gold   = "#FFD700"
)

var styles = NewPalette(purple, green, red, orange, gray)

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title    lipgloss.Style
	ok       lipgloss.Style
	err      lipgloss.Style
	warn     lipgloss.Style
	help     lipgloss.Style
	host     lipgloss.Style
	card     lipgloss.Style
	hostCard lipgloss.Style
	modal    lipgloss.Style
	alert    lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(h)).
		Padding(0, 1).
		Width(28)

	return &Palette{
		title:    NewBold(t).MarginBottom(1),
		ok:       NewBold(s),
		err:      NewBold(e),
		warn:     NewStyle(w),
		help:     NewEm(h),
		host:     NewBold(gold),
		card:     card,
		hostCard: card.Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color(gold)),
		modal:    lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color(t)).Padding(1, 2),
		alert:    lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(lipgloss.Color(e)).Padding(1, 3),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
