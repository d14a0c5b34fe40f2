package panels

import (
	"context"

	"github.com/desertthunder/festa/internal/services"
)

// Dashboard couples a [PartyPanel] and an [AttendeePanel].
//
// The attendee panel is visible exactly when a party is selected.
type Dashboard struct {
	Parties   *PartyPanel
	Attendees *AttendeePanel
}

// NewDashboard creates both panels over svc.
func NewDashboard(svc services.Service, opts Options) *Dashboard {
	return &Dashboard{
		Parties:   NewPartyPanel(svc, opts),
		Attendees: NewAttendeePanel(svc, opts),
	}
}

// Mount loads the party list.
func (d *Dashboard) Mount(ctx context.Context) error {
	return d.Parties.Refresh(ctx)
}

// Select focuses party id and loads its attendees.
func (d *Dashboard) Select(ctx context.Context, id int) error {
	d.Parties.Select(id)
	return d.Attendees.SetParty(ctx, id)
}

// ClearSelection unfocuses the party and hides the attendee panel.
func (d *Dashboard) ClearSelection() {
	d.Parties.ClearSelection()
	d.Attendees.Reset()
}

// CreateParty sends the new-party draft.
func (d *Dashboard) CreateParty(ctx context.Context) error {
	defer d.sync()
	return d.Parties.Create(ctx)
}

// DeleteParty removes party id.
func (d *Dashboard) DeleteParty(ctx context.Context, id int) error {
	defer d.sync()
	return d.Parties.Delete(ctx, id)
}

// sync hides the attendee panel once the selection is gone.
func (d *Dashboard) sync() {
	if _, ok := d.Parties.Selected(); !ok {
		d.Attendees.Reset()
	}
}

// Alert returns the pending alert of either panel, party alerts first.
func (d *Dashboard) Alert() string {
	if a := d.Parties.Alert(); a != "" {
		return a
	}
	return d.Attendees.Alert()
}

// DismissAlert clears the alerts of both panels.
func (d *Dashboard) DismissAlert() {
	d.Parties.DismissAlert()
	d.Attendees.DismissAlert()
}
