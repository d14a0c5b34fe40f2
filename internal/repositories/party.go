package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/festa/internal/models"
	"github.com/desertthunder/festa/internal/shared"
)

// PartyRepository persists parties in SQLite.
type PartyRepository struct {
	db *sql.DB
}

// NewPartyRepository creates a new PartyRepository with the given database connection
func NewPartyRepository(db *sql.DB) *PartyRepository {
	return &PartyRepository{db: db}
}

// Create inserts a party under the next sequence id.
func (r *PartyRepository) Create(ctx context.Context, in models.PartyInput) (*models.Party, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	id, err := NextSequence(ctx, r.db, "parties")
	if err != nil {
		return nil, fmt.Errorf("failed to generate sequence: %w", err)
	}

	party := models.Party{ID: id, Name: in.Name, Date: in.Date.UTC()}
	_, err = r.db.ExecContext(ctx, `INSERT INTO parties (id, name, date) VALUES (?, ?, ?)`, party.ID, party.Name, party.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to insert party: %w", err)
	}

	return &party, nil
}

// Get retrieves a party by id.
func (r *PartyRepository) Get(ctx context.Context, id int) (*models.Party, error) {
	var party models.Party
	err := r.db.QueryRowContext(ctx, `SELECT id, name, date FROM parties WHERE id = ?`, id).
		Scan(&party.ID, &party.Name, &party.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", shared.ErrPartyNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get party: %w", err)
	}
	return &party, nil
}

// Update renames and re-dates a party.
func (r *PartyRepository) Update(ctx context.Context, id int, in models.PartyInput) (*models.Party, error) {
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	result, err := r.db.ExecContext(ctx, `UPDATE parties SET name = ?, date = ? WHERE id = ?`, in.Name, in.Date.UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("failed to update party: %w", err)
	}
	if err := expectRow(result, shared.ErrPartyNotFound, id); err != nil {
		return nil, err
	}

	return &models.Party{ID: id, Name: in.Name, Date: in.Date.UTC()}, nil
}

// Delete removes a party; its people go with it through the foreign key cascade.
func (r *PartyRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM parties WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete party: %w", err)
	}
	return expectRow(result, shared.ErrPartyNotFound, id)
}

// List retrieves every party ordered by id.
func (r *PartyRepository) List(ctx context.Context) ([]models.Party, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, date FROM parties ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query parties: %w", err)
	}
	defer rows.Close()

	parties := []models.Party{}
	for rows.Next() {
		var party models.Party
		if err := rows.Scan(&party.ID, &party.Name, &party.Date); err != nil {
			return nil, fmt.Errorf("failed to scan party: %w", err)
		}
		parties = append(parties, party)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating parties: %w", err)
	}

	return parties, nil
}

func expectRow(result sql.Result, notFound error, id int) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %d", notFound, id)
	}
	return nil
}
