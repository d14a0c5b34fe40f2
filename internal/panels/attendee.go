package panels

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/festa/internal/models"
	"github.com/desertthunder/festa/internal/services"
	"github.com/desertthunder/festa/internal/shared"
)

// AttendeeState is a snapshot of an [AttendeePanel] for rendering.
//
// Draft is a copy; nil means the modal is closed.
type AttendeeState struct {
	Visible   bool
	PartyID   int
	Attendees []models.Attendee
	Loaded    bool
	Draft     *models.Draft
	Alert     string
}

// AttendeePanel owns the attendees of the active party and the modal draft.
type AttendeePanel struct {
	svc    services.Service
	logger *log.Logger

	mu        sync.Mutex
	partyID   int
	active    bool
	attendees []models.Attendee
	loaded    bool
	draft     *models.Draft
	gen       uint64 // bumped when the active party changes
	session   uint64 // bumped when a modal opens or closes
	alert     string
}

// NewAttendeePanel creates a hidden panel.
func NewAttendeePanel(svc services.Service, opts Options) *AttendeePanel {
	opts = opts.withDefaults()
	return &AttendeePanel{svc: svc, logger: opts.Logger}
}

// State returns a copy of the panel state.
func (p *AttendeePanel) State() AttendeeState {
	p.mu.Lock()
	defer p.mu.Unlock()
	s := AttendeeState{
		Visible:   p.active,
		PartyID:   p.partyID,
		Attendees: append([]models.Attendee(nil), p.attendees...),
		Loaded:    p.loaded,
		Alert:     p.alert,
	}
	if p.draft != nil {
		s.Draft = p.draft.Clone()
	}
	return s
}

// Attendee looks up a loaded attendee by id.
func (p *AttendeePanel) Attendee(id int) (models.Attendee, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, a := range p.attendees {
		if a.ID == id {
			return a, true
		}
	}
	return models.Attendee{}, false
}

// Alert returns the last recorded alert.
func (p *AttendeePanel) Alert() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.alert
}

// DismissAlert clears the alert.
func (p *AttendeePanel) DismissAlert() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alert = ""
}

func (p *AttendeePanel) fail(op string, err error) error {
	p.mu.Lock()
	p.alert = op
	p.mu.Unlock()
	p.logger.Error(op, "error", err)
	return &OpError{Op: op, Err: err}
}

// SetParty makes id the active party and fetches its attendees.
//
// Switching parties drops the previous list and any open modal. Setting the already active party fetches nothing.
func (p *AttendeePanel) SetParty(ctx context.Context, id int) error {
	p.mu.Lock()
	if p.active && p.partyID == id {
		p.mu.Unlock()
		return nil
	}
	p.partyID = id
	p.active = true
	p.attendees = nil
	p.loaded = false
	p.closeModal()
	p.gen++
	p.mu.Unlock()

	return p.Refresh(ctx)
}

// Reset hides the panel: no active party, no list, no modal. In-flight responses are dropped.
func (p *AttendeePanel) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.partyID = 0
	p.active = false
	p.attendees = nil
	p.loaded = false
	p.closeModal()
	p.gen++
}

// Refresh replaces the list with the active party's attendees.
//
// A response that arrives after the active party changed is discarded.
func (p *AttendeePanel) Refresh(ctx context.Context) error {
	p.mu.Lock()
	if !p.active {
		p.mu.Unlock()
		return shared.ErrNotSelected
	}
	id, gen := p.partyID, p.gen
	p.mu.Unlock()

	attendees, err := p.svc.ListAttendees(ctx, id)

	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		p.logger.Debug("discarding stale attendee list", "party_id", id)
		return nil
	}
	if err != nil {
		p.mu.Unlock()
		return p.fail(AlertLoadAttendees, err)
	}
	p.attendees = attendees
	p.loaded = true
	p.mu.Unlock()

	p.logger.Debug("attendees loaded", "party_id", id, "count", len(attendees))
	return nil
}

// OpenCreate opens the modal with a fresh draft for the active party, replacing any open draft.
func (p *AttendeePanel) OpenCreate() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return shared.ErrNotSelected
	}
	p.draft = models.NewDraft(p.partyID)
	p.session++
	return nil
}

// OpenEdit opens the modal with a copy of a.
func (p *AttendeePanel) OpenEdit(a models.Attendee) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.active {
		return shared.ErrNotSelected
	}
	p.draft = models.EditDraft(a)
	p.session++
	return nil
}

// Close discards the draft.
func (p *AttendeePanel) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeModal()
}

func (p *AttendeePanel) closeModal() {
	if p.draft != nil {
		p.draft = nil
		p.session++
	}
}

// UpdateDraft applies fn to the open draft's fields. The party cannot be changed.
func (p *AttendeePanel) UpdateDraft(fn func(*models.AttendeeFields)) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.draft == nil {
		return shared.ErrNoDraft
	}
	partyID := p.draft.Fields.PartyID
	fn(&p.draft.Fields)
	p.draft.Fields.PartyID = partyID
	return nil
}

// Save creates a New draft or updates an Existing one. Without a draft it does nothing.
//
// On success the modal closes and the list is re-fetched. On failure the modal keeps the draft.
func (p *AttendeePanel) Save(ctx context.Context) error {
	p.mu.Lock()
	if p.draft == nil {
		p.mu.Unlock()
		return nil
	}
	d := p.draft.Clone()
	session, gen := p.session, p.gen
	p.mu.Unlock()

	var err error
	if d.IsNew() {
		_, err = p.svc.CreateAttendee(ctx, d.Fields)
	} else {
		_, err = p.svc.UpdateAttendee(ctx, d.Attendee())
	}
	if err != nil {
		return p.fail(AlertSaveAttendee, err)
	}

	if id, ok := d.ID(); ok {
		p.logger.Info("attendee updated", "id", id, "party_id", d.Fields.PartyID)
	} else {
		p.logger.Info("attendee created", "name", d.Fields.Name, "party_id", d.Fields.PartyID)
	}

	p.mu.Lock()
	if session == p.session {
		p.closeModal()
	}
	stale := gen != p.gen
	p.mu.Unlock()

	if stale {
		return nil
	}
	return p.Refresh(ctx)
}

// Delete removes the attendee with id and filters it out of the list without re-fetching.
func (p *AttendeePanel) Delete(ctx context.Context, id int) error {
	if err := p.svc.DeleteAttendee(ctx, id); err != nil {
		return p.fail(AlertDeleteAttendee, err)
	}
	p.logger.Info("attendee deleted", "id", id)

	p.mu.Lock()
	defer p.mu.Unlock()
	kept := make([]models.Attendee, 0, len(p.attendees))
	for _, a := range p.attendees {
		if a.ID != id {
			kept = append(kept, a)
		}
	}
	p.attendees = kept
	return nil
}
