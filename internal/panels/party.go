package panels

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/festa/internal/models"
	"github.com/desertthunder/festa/internal/services"
	"github.com/desertthunder/festa/internal/shared"
)

// PartyState is a snapshot of a [PartyPanel] for rendering.
type PartyState struct {
	Parties      []models.Party
	Selected     int
	HasSelection bool
	NewName      string
	Editing      bool
	EditID       int
	EditName     string
	Alert        string
}

// PartyPanel owns the party list, the selection and the create/edit drafts.
type PartyPanel struct {
	svc    services.Service
	logger *log.Logger
	now    func() time.Time

	mu           sync.Mutex
	parties      []models.Party
	selected     int
	hasSelection bool
	newName      string
	editing      bool
	editID       int
	editName     string
	alert        string
}

// NewPartyPanel creates an empty panel; call [PartyPanel.Refresh] to load it.
func NewPartyPanel(svc services.Service, opts Options) *PartyPanel {
	opts = opts.withDefaults()
	return &PartyPanel{svc: svc, logger: opts.Logger, now: opts.Now, parties: []models.Party{}}
}

// State returns a copy of the panel state.
func (p *PartyPanel) State() PartyState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PartyState{
		Parties:      append([]models.Party(nil), p.parties...),
		Selected:     p.selected,
		HasSelection: p.hasSelection,
		NewName:      p.newName,
		Editing:      p.editing,
		EditID:       p.editID,
		EditName:     p.editName,
		Alert:        p.alert,
	}
}

// Selected returns the selected party id.
func (p *PartyPanel) Selected() (int, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected, p.hasSelection
}

// Party looks up a loaded party by id.
func (p *PartyPanel) Party(id int) (models.Party, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.find(id)
}

func (p *PartyPanel) find(id int) (models.Party, bool) {
	for _, party := range p.parties {
		if party.ID == id {
			return party, true
		}
	}
	return models.Party{}, false
}

// Alert returns the last recorded alert.
func (p *PartyPanel) Alert() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.alert
}

// DismissAlert clears the alert.
func (p *PartyPanel) DismissAlert() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alert = ""
}

func (p *PartyPanel) fail(op string, err error) error {
	p.mu.Lock()
	p.alert = op
	p.mu.Unlock()
	p.logger.Error(op, "error", err)
	return &OpError{Op: op, Err: err}
}

// Refresh replaces the party list with the service's.
func (p *PartyPanel) Refresh(ctx context.Context) error {
	parties, err := p.svc.ListParties(ctx)
	if err != nil {
		return p.fail(AlertLoadParties, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.parties = parties
	p.logger.Debug("parties loaded", "count", len(parties))
	return nil
}

// SetNewName updates the new-party name draft.
func (p *PartyPanel) SetNewName(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.newName = s
}

// Create sends the new-party draft. A blank draft sends nothing.
//
// On success the draft and the selection are cleared and the list is re-fetched.
func (p *PartyPanel) Create(ctx context.Context) error {
	p.mu.Lock()
	in := models.NewPartyInput(p.newName, p.now())
	p.mu.Unlock()

	if in.Validate() != nil {
		return nil
	}

	if _, err := p.svc.CreateParty(ctx, in); err != nil {
		return p.fail(AlertAddParty, err)
	}
	p.logger.Info("party created", "name", in.Name)

	p.mu.Lock()
	p.newName = ""
	p.clearSelection()
	p.mu.Unlock()

	return p.Refresh(ctx)
}

// Select focuses the party with id. An edit draft for another party is discarded.
func (p *PartyPanel) Select(id int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selected = id
	p.hasSelection = true
	if p.editing && p.editID != id {
		p.cancelEdit()
	}
}

// ClearSelection unfocuses the selected party.
func (p *PartyPanel) ClearSelection() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clearSelection()
}

func (p *PartyPanel) clearSelection() {
	p.selected = 0
	p.hasSelection = false
	p.cancelEdit()
}

// BeginEdit opens the edit draft for id, seeded with its current name. id must be selected.
func (p *PartyPanel) BeginEdit(id int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.hasSelection || p.selected != id {
		return shared.ErrNotSelected
	}

	party, ok := p.find(id)
	if !ok {
		return shared.ErrPartyNotFound
	}

	p.editing = true
	p.editID = id
	p.editName = party.Name
	return nil
}

// SetEditName updates the edit draft.
func (p *PartyPanel) SetEditName(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.editName = s
}

// CancelEdit discards the edit draft.
func (p *PartyPanel) CancelEdit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cancelEdit()
}

func (p *PartyPanel) cancelEdit() {
	p.editing = false
	p.editID = 0
	p.editName = ""
}

// CommitEdit renames the edited party and re-stamps its date. A blank draft sends nothing.
//
// On failure the edit stays open.
func (p *PartyPanel) CommitEdit(ctx context.Context) error {
	p.mu.Lock()
	if !p.editing {
		p.mu.Unlock()
		return shared.ErrNoDraft
	}
	id := p.editID
	in := models.NewPartyInput(p.editName, p.now())
	p.mu.Unlock()

	if in.Validate() != nil {
		return nil
	}

	if _, err := p.svc.UpdateParty(ctx, id, in); err != nil {
		return p.fail(AlertEditParty, err)
	}
	p.logger.Info("party updated", "id", id, "name", in.Name)

	p.mu.Lock()
	if p.editing && p.editID == id {
		p.cancelEdit()
	}
	p.mu.Unlock()

	return p.Refresh(ctx)
}

// Delete removes the party with id, which must be selected. On success the selection is cleared.
func (p *PartyPanel) Delete(ctx context.Context, id int) error {
	if sel, ok := p.Selected(); !ok || sel != id {
		return shared.ErrNotSelected
	}

	if err := p.svc.DeleteParty(ctx, id); err != nil {
		return p.fail(AlertDeleteParty, err)
	}
	p.logger.Info("party deleted", "id", id)

	p.mu.Lock()
	p.clearSelection()
	p.mu.Unlock()

	return p.Refresh(ctx)
}
