// Package ui implements the interactive party dashboard using bubbletea's Elm architecture.
//
// The screen has two panes driven by a [panels.Dashboard]:
//  1. Party list : browse, select, create, rename and delete parties
//  2. Attendee cards : the guests of the selected party, hosts drawn with a thick gold border
//
// Adding or editing an attendee opens a modal form. Failed requests raise a blocking alert
// that must be dismissed before anything else responds.
//
// Panel operations that reach the collection service run as [tea.Cmd] values and report back
// through the Msg union type; the [Model] then re-reads the panel snapshots.
//
// Keyboard navigation uses vim-style bindings with contextual help displayed via charmbracelet/bubbles/help.
package ui
