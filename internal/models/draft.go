package models

// Draft is the attendee being created or edited in the modal.
//
// A Draft is either New (no identifier yet) or Existing (a copy of a persisted attendee).
type Draft struct {
	id       int
	existing bool
	Fields   AttendeeFields
}

// NewDraft starts a fresh attendee for partyID with the creation defaults:
// present and invited, not a host.
func NewDraft(partyID int) *Draft {
	return &Draft{
		Fields: AttendeeFields{
			Present: true,
			Invited: true,
			Host:    false,
			PartyID: partyID,
		},
	}
}

// EditDraft copies a into an Existing draft. Changes to the draft never touch a.
func EditDraft(a Attendee) *Draft {
	return &Draft{id: a.ID, existing: true, Fields: a.AttendeeFields}
}

// IsNew reports whether saving the draft creates an attendee.
func (d *Draft) IsNew() bool { return !d.existing }

// ID returns the identifier of an Existing draft.
func (d *Draft) ID() (int, bool) { return d.id, d.existing }

// Attendee returns the draft as a full record; the ID is zero for a New draft.
func (d *Draft) Attendee() Attendee {
	return Attendee{ID: d.id, AttendeeFields: d.Fields}
}

// Clone returns an independent copy.
func (d *Draft) Clone() *Draft {
	c := *d
	return &c
}
