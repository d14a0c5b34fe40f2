package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/festa/internal/models"
	"github.com/desertthunder/festa/internal/shared"
)

const attendeeColumns = `id, party_id, name, full_name, age, photo_url, present, invited, host`

// AttendeeRepository persists people in SQLite.
type AttendeeRepository struct {
	db *sql.DB
}

// NewAttendeeRepository creates a new AttendeeRepository with the given database connection
func NewAttendeeRepository(db *sql.DB) *AttendeeRepository {
	return &AttendeeRepository{db: db}
}

// Create inserts an attendee under the next sequence id. The party must exist.
func (r *AttendeeRepository) Create(ctx context.Context, fields models.AttendeeFields) (*models.Attendee, error) {
	if err := fields.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}
	if err := r.partyExists(ctx, fields.PartyID); err != nil {
		return nil, err
	}

	id, err := NextSequence(ctx, r.db, "people")
	if err != nil {
		return nil, fmt.Errorf("failed to generate sequence: %w", err)
	}

	query := `INSERT INTO people (` + attendeeColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		id,
		fields.PartyID,
		fields.Name,
		fields.FullName,
		fields.Age,
		fields.PhotoURL,
		fields.Present,
		fields.Invited,
		fields.Host,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert person: %w", err)
	}

	return &models.Attendee{ID: id, AttendeeFields: fields}, nil
}

// Get retrieves an attendee by id.
func (r *AttendeeRepository) Get(ctx context.Context, id int) (*models.Attendee, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+attendeeColumns+` FROM people WHERE id = ?`, id)
	a, err := scanAttendee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", shared.ErrAttendeeNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Update replaces every field of the attendee with a.ID.
func (r *AttendeeRepository) Update(ctx context.Context, a models.Attendee) (*models.Attendee, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}
	if err := r.partyExists(ctx, a.PartyID); err != nil {
		return nil, err
	}

	query := `
		UPDATE people
		SET party_id = ?, name = ?, full_name = ?, age = ?, photo_url = ?, present = ?, invited = ?, host = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		a.PartyID,
		a.Name,
		a.FullName,
		a.Age,
		a.PhotoURL,
		a.Present,
		a.Invited,
		a.Host,
		a.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update person: %w", err)
	}
	if err := expectRow(result, shared.ErrAttendeeNotFound, a.ID); err != nil {
		return nil, err
	}

	return &a, nil
}

// Delete removes an attendee.
func (r *AttendeeRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM people WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete person: %w", err)
	}
	return expectRow(result, shared.ErrAttendeeNotFound, id)
}

// ListByParty retrieves the attendees of one party ordered by id.
func (r *AttendeeRepository) ListByParty(ctx context.Context, partyID int) ([]models.Attendee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+attendeeColumns+` FROM people WHERE party_id = ? ORDER BY id ASC`, partyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query people: %w", err)
	}
	defer rows.Close()

	attendees := []models.Attendee{}
	for rows.Next() {
		a, err := scanAttendee(rows)
		if err != nil {
			return nil, err
		}
		attendees = append(attendees, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating people: %w", err)
	}

	return attendees, nil
}

func (r *AttendeeRepository) partyExists(ctx context.Context, partyID int) error {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM parties WHERE id = ?)`, partyID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check party: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %d", shared.ErrPartyNotFound, partyID)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAttendee(s scanner) (*models.Attendee, error) {
	var a models.Attendee
	err := s.Scan(
		&a.ID,
		&a.PartyID,
		&a.Name,
		&a.FullName,
		&a.Age,
		&a.PhotoURL,
		&a.Present,
		&a.Invited,
		&a.Host,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan person: %w", err)
	}
	return &a, nil
}
