// package services defines interface Service for interacting with the collection HTTP API
package services

import (
	"context"

	"github.com/desertthunder/festa/internal/models"
)

// Service defines the operations of the party/person collection service.
type Service interface {
	// ListParties retrieves every party.
	ListParties(ctx context.Context) ([]models.Party, error)

	// CreateParty creates a party. The returned party is nil when the service answers without a body.
	CreateParty(ctx context.Context, in models.PartyInput) (*models.Party, error)

	// UpdateParty renames and re-stamps a party. The returned party may be nil.
	UpdateParty(ctx context.Context, id int, in models.PartyInput) (*models.Party, error)

	// DeleteParty removes a party.
	DeleteParty(ctx context.Context, id int) error

	// ListAttendees retrieves the attendees of one party.
	ListAttendees(ctx context.Context, partyID int) ([]models.Attendee, error)

	// CreateAttendee creates an attendee from fields without an id. The returned attendee may be nil.
	CreateAttendee(ctx context.Context, fields models.AttendeeFields) (*models.Attendee, error)

	// UpdateAttendee replaces the attendee identified by a.ID. The returned attendee may be nil.
	UpdateAttendee(ctx context.Context, a models.Attendee) (*models.Attendee, error)

	// DeleteAttendee removes an attendee.
	DeleteAttendee(ctx context.Context, id int) error
}
