package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/festa/internal/models"
)

// formField indexes the rows of the attendee modal. Text inputs come first.
type formField int

const (
	fieldName formField = iota
	fieldFullName
	fieldAge
	fieldPhoto
	fieldHost
	fieldPresent
	fieldInvited
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name", "Full name", "Age", "Photo URL", "Host", "Present", "Invited",
}

// attendeeForm holds the text inputs of the modal. Toggles live on the draft itself.
type attendeeForm struct {
	inputs []textinput.Model
	focus  formField
}

func newAttendeeForm(f models.AttendeeFields) *attendeeForm {
	inputs := make([]textinput.Model, fieldHost)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 30
		inputs[i] = ti
	}

	inputs[fieldName].SetValue(f.Name)
	inputs[fieldFullName].SetValue(f.FullName)
	inputs[fieldAge].CharLimit = 3
	if f.Age != 0 {
		inputs[fieldAge].SetValue(strconv.Itoa(f.Age))
	}
	inputs[fieldPhoto].SetValue(f.PhotoURL)

	return &attendeeForm{inputs: inputs}
}

func (f *attendeeForm) onInput() bool {
	return f.focus < fieldHost
}

// focusField moves focus to field and returns the cursor blink command of a text input.
func (f *attendeeForm) focusField(field formField) tea.Cmd {
	if f.onInput() {
		f.inputs[f.focus].Blur()
	}
	f.focus = field
	if f.onInput() {
		return f.inputs[f.focus].Focus()
	}
	return nil
}

func (f *attendeeForm) move(delta int) tea.Cmd {
	next := (int(f.focus) + delta + int(fieldCount)) % int(fieldCount)
	return f.focusField(formField(next))
}

func (f *attendeeForm) update(msg tea.Msg) tea.Cmd {
	if !f.onInput() {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// apply copies the text inputs into fields.
func (f *attendeeForm) apply(fields *models.AttendeeFields) {
	fields.Name = f.inputs[fieldName].Value()
	fields.FullName = f.inputs[fieldFullName].Value()
	fields.PhotoURL = strings.TrimSpace(f.inputs[fieldPhoto].Value())

	fields.Age = models.ParseAge(f.inputs[fieldAge].Value())
}

// toggle flips the boolean behind the focused row.
func (f *attendeeForm) toggle(fields *models.AttendeeFields) {
	switch f.focus {
	case fieldHost:
		fields.Host = !fields.Host
	case fieldPresent:
		fields.Present = !fields.Present
	case fieldInvited:
		fields.Invited = !fields.Invited
	}
}

func (f *attendeeForm) view(title string, fields models.AttendeeFields) string {
	var b strings.Builder
	b.WriteString(styles.title.Render(title))
	b.WriteString("\n")

	checks := map[formField]bool{fieldHost: fields.Host, fieldPresent: fields.Present, fieldInvited: fields.Invited}
	for i := range fieldCount {
		marker := "  "
		if i == f.focus {
			marker = "▸ "
		}
		if i < fieldHost {
			b.WriteString(fmt.Sprintf("%s%-10s %s\n", marker, fieldLabels[i]+":", f.inputs[i].View()))
			continue
		}
		box := "[ ]"
		if checks[i] {
			box = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", marker, box, fieldLabels[i]))
	}
	return b.String()
}
