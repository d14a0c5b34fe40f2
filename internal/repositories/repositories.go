// package repositories provides the persistence layer of the fixture collection service.
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel"

	"github.com/desertthunder/festa/internal/models"
)

var tracer = otel.Tracer("github.com/desertthunder/festa/internal/repositories")

// Store is the storage contract the fixture service is served from.
//
// Lookups and mutations of unknown ids return an error wrapping [shared.ErrNotFound].
// Deleting a party deletes its attendees.
type Store interface {
	ListParties(ctx context.Context) ([]models.Party, error)
	GetParty(ctx context.Context, id int) (*models.Party, error)
	CreateParty(ctx context.Context, in models.PartyInput) (*models.Party, error)
	UpdateParty(ctx context.Context, id int, in models.PartyInput) (*models.Party, error)
	DeleteParty(ctx context.Context, id int) error

	ListAttendees(ctx context.Context, partyID int) ([]models.Attendee, error)
	GetAttendee(ctx context.Context, id int) (*models.Attendee, error)
	CreateAttendee(ctx context.Context, fields models.AttendeeFields) (*models.Attendee, error)
	UpdateAttendee(ctx context.Context, a models.Attendee) (*models.Attendee, error)
	DeleteAttendee(ctx context.Context, id int) error

	Close() error
}

// NextSequence atomically increments and returns the next sequence number for the given table.
//
// The fixture service hands these out as entity ids.
func NextSequence(ctx context.Context, db *sql.DB, table string) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sequenceTable := table + "_sequence"

	_, err = tx.ExecContext(ctx, fmt.Sprintf("UPDATE %s SET value = value + 1 WHERE id = 1", sequenceTable))
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	var sequence int
	err = tx.QueryRowContext(ctx, fmt.Sprintf("SELECT value FROM %s WHERE id = 1", sequenceTable)).Scan(&sequence)
	if err != nil {
		return 0, fmt.Errorf("failed to get sequence value: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sequence transaction: %w", err)
	}

	return sequence, nil
}
