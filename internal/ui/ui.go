package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/festa/internal/models"
	"github.com/desertthunder/festa/internal/panels"
	"github.com/desertthunder/festa/internal/shared"
)

// Focus names the component receiving key presses.
type Focus int

const (
	PartyListFocus Focus = iota
	NewPartyFocus
	EditPartyFocus
	AttendeeFocus
	ModalFocus
)

const cardsPerRow = 3

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	dash   *panels.Dashboard
	logger *log.Logger

	width     int
	height    int
	focus     Focus
	parties   list.Model
	newParty  textinput.Model
	editParty textinput.Model
	form      *attendeeForm
	cursor    int
	help      help.Model
	keys      keyMap

	partyState    panels.PartyState
	attendeeState panels.AttendeeState
}

// NewModel creates a TUI model over dash. A nil logger discards output.
func NewModel(ctx context.Context, dash *panels.Dashboard, logger *log.Logger) *Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	parties := list.New(nil, list.NewDefaultDelegate(), 40, 20)
	parties.Title = "Parties"
	parties.SetShowHelp(false)
	parties.SetShowStatusBar(false)
	parties.SetFilteringEnabled(false)

	newParty := textinput.New()
	newParty.Prompt = "+ "
	newParty.Placeholder = "New party name"
	newParty.CharLimit = 80

	editParty := textinput.New()
	editParty.Prompt = "✎ "
	editParty.CharLimit = 80

	m := &Model{
		ctx:       ctx,
		dash:      dash,
		logger:    logger,
		parties:   parties,
		newParty:  newParty,
		editParty: editParty,
		help:      help.New(),
		keys:      newKeyMap(),
	}
	m.sync()
	return m
}

// Init loads the party list.
func (m *Model) Init() tea.Cmd {
	return m.run(MsgLoaded, "load parties", m.dash.Mount)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.parties.SetSize(m.listWidth(), max(msg.Height-8, 5))
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.forceQuit) {
			return m, tea.Quit
		}
		if m.dash.Alert() != "" {
			return m.handleAlertKeys(msg)
		}

		switch m.focus {
		case PartyListFocus:
			return m.handlePartyListKeys(msg)
		case NewPartyFocus:
			return m.handleNewPartyKeys(msg)
		case EditPartyFocus:
			return m.handleEditPartyKeys(msg)
		case AttendeeFocus:
			return m.handleAttendeeKeys(msg)
		case ModalFocus:
			return m.handleModalKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateInputs(msg)
}

// View renders the dashboard, or only the alert while one is pending.
func (m *Model) View() string {
	if alert := m.dash.Alert(); alert != "" {
		return m.renderAlert(alert)
	}

	right := m.renderAttendees()
	if m.focus == ModalFocus && m.form != nil && m.attendeeState.Draft != nil {
		right = m.renderModal()
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderParties(), "  ", right)
	return fmt.Sprintf("%s\n\n%s", body, m.renderHelp())
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	if res, ok := msg.data.(opResult); ok && res.err != nil {
		m.logger.Debug("operation failed", "op", res.op, "error", res.err)
	}
	m.sync()

	switch msg.kind {
	case MsgPartyCreated:
		m.newParty.SetValue(m.partyState.NewName)
	case MsgSaved:
		if m.attendeeState.Draft == nil && m.focus == ModalFocus {
			m.form = nil
			m.focus = AttendeeFocus
		}
	}
	return m, nil
}

// sync re-reads both panel snapshots and rebuilds the party list items.
func (m *Model) sync() {
	m.partyState = m.dash.Parties.State()
	m.attendeeState = m.dash.Attendees.State()

	items := make([]list.Item, len(m.partyState.Parties))
	for i, p := range m.partyState.Parties {
		items[i] = partyItem{party: p, selected: m.partyState.HasSelection && m.partyState.Selected == p.ID}
	}
	m.parties.SetItems(items)

	if n := len(m.attendeeState.Attendees); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}

	if !m.attendeeState.Visible && (m.focus == AttendeeFocus || m.focus == ModalFocus) {
		m.form = nil
		m.focus = PartyListFocus
	}
	if m.focus == EditPartyFocus && !m.partyState.Editing {
		m.editParty.Blur()
		m.focus = PartyListFocus
	}
}

// run wraps a panel operation that talks to the collection service in a [tea.Cmd].
func (m *Model) run(kind MsgKind, op string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg(kind, op, fn(ctx))
	}
}

func (m *Model) highlighted() (models.Party, bool) {
	if item, ok := m.parties.SelectedItem().(partyItem); ok {
		return item.party, true
	}
	return models.Party{}, false
}

func (m *Model) handleAlertKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.dismiss) {
		m.dash.DismissAlert()
		m.sync()
	}
	return m, nil
}

func (m *Model) handlePartyListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if p, ok := m.highlighted(); ok {
			return m, m.run(MsgLoaded, "select party", func(ctx context.Context) error {
				return m.dash.Select(ctx, p.ID)
			})
		}
		return m, nil
	case key.Matches(msg, m.keys.newParty):
		m.focus = NewPartyFocus
		return m, m.newParty.Focus()
	case key.Matches(msg, m.keys.edit):
		return m.beginPartyEdit()
	case key.Matches(msg, m.keys.del):
		if id, ok := m.dash.Parties.Selected(); ok {
			return m, m.run(MsgDeleted, "delete party", func(ctx context.Context) error {
				return m.dash.DeleteParty(ctx, id)
			})
		}
		return m, nil
	case key.Matches(msg, m.keys.back):
		m.dash.ClearSelection()
		m.sync()
		return m, nil
	case key.Matches(msg, m.keys.switchTo):
		if m.attendeeState.Visible {
			m.focus = AttendeeFocus
		}
		return m, nil
	case key.Matches(msg, m.keys.refresh):
		return m, m.refresh()
	}

	var cmd tea.Cmd
	m.parties, cmd = m.parties.Update(msg)
	return m, cmd
}

func (m *Model) refresh() tea.Cmd {
	visible := m.attendeeState.Visible
	return m.run(MsgLoaded, "refresh", func(ctx context.Context) error {
		err := m.dash.Mount(ctx)
		if visible {
			err = errors.Join(err, m.dash.Attendees.Refresh(ctx))
		}
		return err
	})
}

func (m *Model) handleNewPartyKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.save):
		m.dash.Parties.SetNewName(m.newParty.Value())
		return m, m.run(MsgPartyCreated, "create party", m.dash.CreateParty)
	case key.Matches(msg, m.keys.cancel):
		m.newParty.Blur()
		m.focus = PartyListFocus
		return m, nil
	}

	var cmd tea.Cmd
	m.newParty, cmd = m.newParty.Update(msg)
	m.dash.Parties.SetNewName(m.newParty.Value())
	return m, cmd
}

// beginPartyEdit opens the inline editor for the selected party.
func (m *Model) beginPartyEdit() (tea.Model, tea.Cmd) {
	id, ok := m.dash.Parties.Selected()
	if !ok {
		return m, nil
	}
	if err := m.dash.Parties.BeginEdit(id); err != nil {
		m.logger.Debug("cannot edit party", "party", id, "error", err)
		return m, nil
	}

	m.sync()
	m.editParty.SetValue(m.partyState.EditName)
	m.focus = EditPartyFocus
	return m, m.editParty.Focus()
}

func (m *Model) handleEditPartyKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.save):
		m.dash.Parties.SetEditName(m.editParty.Value())
		return m, m.run(MsgPartyEdited, "edit party", m.dash.Parties.CommitEdit)
	case key.Matches(msg, m.keys.cancel):
		m.dash.Parties.CancelEdit()
		m.editParty.Blur()
		m.focus = PartyListFocus
		m.sync()
		return m, nil
	}

	var cmd tea.Cmd
	m.editParty, cmd = m.editParty.Update(msg)
	m.dash.Parties.SetEditName(m.editParty.Value())
	return m, cmd
}

func (m *Model) handleAttendeeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	attendees := m.attendeeState.Attendees

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.switchTo), key.Matches(msg, m.keys.cancel):
		m.focus = PartyListFocus
	case key.Matches(msg, m.keys.up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, m.keys.down):
		m.cursor = min(m.cursor+1, max(len(attendees)-1, 0))
	case key.Matches(msg, m.keys.add):
		if err := m.dash.Attendees.OpenCreate(); err != nil {
			m.logger.Debug("cannot open modal", "error", err)
			return m, nil
		}
		return m, m.openForm()
	case key.Matches(msg, m.keys.edit), key.Matches(msg, m.keys.enter):
		if m.cursor < len(attendees) {
			if err := m.dash.Attendees.OpenEdit(attendees[m.cursor]); err != nil {
				m.logger.Debug("cannot open modal", "error", err)
				return m, nil
			}
			return m, m.openForm()
		}
	case key.Matches(msg, m.keys.del):
		if m.cursor < len(attendees) {
			id := attendees[m.cursor].ID
			return m, m.run(MsgDeleted, "delete attendee", func(ctx context.Context) error {
				return m.dash.Attendees.Delete(ctx, id)
			})
		}
	case key.Matches(msg, m.keys.refresh):
		return m, m.refresh()
	}
	return m, nil
}

func (m *Model) openForm() tea.Cmd {
	m.sync()
	if m.attendeeState.Draft == nil {
		return nil
	}
	m.form = newAttendeeForm(m.attendeeState.Draft.Fields)
	m.focus = ModalFocus
	return m.form.focusField(fieldName)
}

func (m *Model) closeForm() {
	m.dash.Attendees.Close()
	m.form = nil
	m.focus = AttendeeFocus
	m.sync()
}

func (m *Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		m.focus = AttendeeFocus
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.save):
		return m, m.run(MsgSaved, "save attendee", m.dash.Attendees.Save)
	case key.Matches(msg, m.keys.cancel):
		m.closeForm()
		return m, nil
	case key.Matches(msg, m.keys.next):
		return m, m.form.move(1)
	case key.Matches(msg, m.keys.prev):
		return m, m.form.move(-1)
	case !m.form.onInput() && key.Matches(msg, m.keys.toggle):
		m.updateDraft(m.form.toggle)
		return m, nil
	}

	cmd := m.form.update(msg)
	if m.form.onInput() {
		m.updateDraft(m.form.apply)
	}
	return m, cmd
}

func (m *Model) updateDraft(fn func(*models.AttendeeFields)) {
	if err := m.dash.Attendees.UpdateDraft(fn); err != nil {
		m.logger.Debug("draft update dropped", "error", err)
	}
	m.sync()
}

// updateInputs forwards non-key messages such as cursor blinks to the focused component.
func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case NewPartyFocus:
		m.newParty, cmd = m.newParty.Update(msg)
	case EditPartyFocus:
		m.editParty, cmd = m.editParty.Update(msg)
	case ModalFocus:
		if m.form != nil {
			cmd = m.form.update(msg)
		}
	default:
		m.parties, cmd = m.parties.Update(msg)
	}
	return m, cmd
}

func (m *Model) listWidth() int {
	if m.width == 0 {
		return 40
	}
	return max(m.width/3, 24)
}

func (m *Model) renderParties() string {
	var b strings.Builder
	b.WriteString(m.parties.View())
	b.WriteString("\n")
	b.WriteString(m.newParty.View())
	if m.partyState.Editing {
		b.WriteString("\n")
		b.WriteString(m.editParty.View())
	}
	return lipgloss.NewStyle().Width(m.listWidth()).Render(b.String())
}

func (m *Model) renderAttendees() string {
	s := m.attendeeState
	if !s.Visible {
		return styles.help.Render("Select a party to see its attendees.")
	}

	name := fmt.Sprintf("#%d", s.PartyID)
	if p, ok := m.dash.Parties.Party(s.PartyID); ok {
		name = p.Name
	}
	title := styles.title.Render(fmt.Sprintf("Attendees of %s", name))

	switch {
	case !s.Loaded:
		return fmt.Sprintf("%s\n%s", title, styles.help.Render("Loading attendees..."))
	case len(s.Attendees) == 0:
		return fmt.Sprintf("%s\n%s", title, styles.warn.Render("No attendees found for this party."))
	}

	cards := make([]string, len(s.Attendees))
	for i, a := range s.Attendees {
		cards[i] = renderCard(a, m.focus == AttendeeFocus && i == m.cursor)
	}

	var rows []string
	for i := 0; i < len(cards); i += cardsPerRow {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:min(i+cardsPerRow, len(cards))]...))
	}
	return fmt.Sprintf("%s\n%s", title, lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// renderCard draws one attendee. Hosts get a thick gold border.
func renderCard(a models.Attendee, focused bool) string {
	style := styles.card
	if a.Host {
		style = styles.hostCard
	}
	if focused {
		style = style.BorderForeground(lipgloss.Color(purple))
	}

	lines := []string{NewBold(purple).Render(a.Name)}
	if a.FullName != "" {
		lines = append(lines, a.FullName)
	}
	lines = append(lines,
		fmt.Sprintf("Age: %d", a.Age),
		fmt.Sprintf("Present: %s · Invited: %s", shared.YesNo(a.Present), shared.YesNo(a.Invited)),
	)
	if a.Host {
		lines = append(lines, styles.host.Render("★ Host"))
	}
	if a.PhotoURL != "" {
		lines = append(lines, styles.help.Render(a.PhotoURL))
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderModal() string {
	draft := m.attendeeState.Draft
	title := "New attendee"
	if !draft.IsNew() {
		title = "Edit attendee"
	}
	return styles.modal.Render(m.form.view(title, draft.Fields))
}

func (m *Model) renderAlert(alert string) string {
	box := styles.alert.Render(fmt.Sprintf(
		"%s\n\n%s",
		styles.err.Render("⚠ "+alert),
		m.help.ShortHelpView([]key.Binding{m.keys.dismiss}),
	))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderHelp() string {
	var keys []key.Binding
	switch m.focus {
	case PartyListFocus:
		keys = []key.Binding{m.keys.enter, m.keys.newParty, m.keys.edit, m.keys.del, m.keys.back, m.keys.switchTo, m.keys.refresh, m.keys.quit}
	case NewPartyFocus, EditPartyFocus:
		keys = []key.Binding{m.keys.save, m.keys.cancel}
	case AttendeeFocus:
		keys = []key.Binding{m.keys.add, m.keys.edit, m.keys.del, m.keys.switchTo, m.keys.quit}
	case ModalFocus:
		keys = []key.Binding{m.keys.next, m.keys.toggle, m.keys.save, m.keys.cancel}
	}
	return m.help.ShortHelpView(keys)
}
