package repositories

import (
	"context"
	"database/sql"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/desertthunder/festa/internal/models"
)

var _ Store = (*SQLStore)(nil)

// SQLStore is the SQLite [Store].
type SQLStore struct {
	db        *sql.DB
	parties   *PartyRepository
	attendees *AttendeeRepository
}

// NewSQLStore wraps an open, migrated database.
func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{
		db:        db,
		parties:   NewPartyRepository(db),
		attendees: NewAttendeeRepository(db),
	}
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func (s *SQLStore) ListParties(ctx context.Context) (parties []models.Party, err error) {
	ctx, span := tracer.Start(ctx, "SQLStore.ListParties")
	defer func() { endSpan(span, err) }()
	return s.parties.List(ctx)
}

func (s *SQLStore) GetParty(ctx context.Context, id int) (party *models.Party, err error) {
	ctx, span := tracer.Start(ctx, "SQLStore.GetParty")
	defer func() { endSpan(span, err) }()
	return s.parties.Get(ctx, id)
}

func (s *SQLStore) CreateParty(ctx context.Context, in models.PartyInput) (party *models.Party, err error) {
	ctx, span := tracer.Start(ctx, "SQLStore.CreateParty")
	defer func() { endSpan(span, err) }()
	return s.parties.Create(ctx, in)
}

func (s *SQLStore) UpdateParty(ctx context.Context, id int, in models.PartyInput) (party *models.Party, err error) {
	ctx, span := tracer.Start(ctx, "SQLStore.UpdateParty")
	defer func() { endSpan(span, err) }()
	return s.parties.Update(ctx, id, in)
}

func (s *SQLStore) DeleteParty(ctx context.Context, id int) (err error) {
	ctx, span := tracer.Start(ctx, "SQLStore.DeleteParty")
	defer func() { endSpan(span, err) }()
	return s.parties.Delete(ctx, id)
}

func (s *SQLStore) ListAttendees(ctx context.Context, partyID int) (attendees []models.Attendee, err error) {
	ctx, span := tracer.Start(ctx, "SQLStore.ListAttendees")
	defer func() { endSpan(span, err) }()
	return s.attendees.ListByParty(ctx, partyID)
}

func (s *SQLStore) GetAttendee(ctx context.Context, id int) (a *models.Attendee, err error) {
	ctx, span := tracer.Start(ctx, "SQLStore.GetAttendee")
	defer func() { endSpan(span, err) }()
	return s.attendees.Get(ctx, id)
}

func (s *SQLStore) CreateAttendee(ctx context.Context, fields models.AttendeeFields) (a *models.Attendee, err error) {
	ctx, span := tracer.Start(ctx, "SQLStore.CreateAttendee")
	defer func() { endSpan(span, err) }()
	return s.attendees.Create(ctx, fields)
}

func (s *SQLStore) UpdateAttendee(ctx context.Context, in models.Attendee) (a *models.Attendee, err error) {
	ctx, span := tracer.Start(ctx, "SQLStore.UpdateAttendee")
	defer func() { endSpan(span, err) }()
	return s.attendees.Update(ctx, in)
}

func (s *SQLStore) DeleteAttendee(ctx context.Context, id int) (err error) {
	ctx, span := tracer.Start(ctx, "SQLStore.DeleteAttendee")
	defer func() { endSpan(span, err) }()
	return s.attendees.Delete(ctx, id)
}

// Close closes the database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
