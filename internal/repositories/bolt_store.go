package repositories

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/desertthunder/festa/internal/models"
	"github.com/desertthunder/festa/internal/shared"
)

const (
	bucketParties = "parties"
	bucketPeople  = "people"
)

var _ Store = (*BoltStore)(nil)

// BoltStore is a bbolt [Store] with one bucket per entity, keyed by big-endian id.
type BoltStore struct {
	db *bolt.DB
}

// OpenBoltStore opens (or creates) the database file at path.
func OpenBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{bucketParties, bucketPeople} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func itob(id int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

func (s *BoltStore) ListParties(ctx context.Context) (parties []models.Party, err error) {
	_, span := tracer.Start(ctx, "BoltStore.ListParties")
	defer func() { endSpan(span, err) }()

	parties = []models.Party{}
	err = s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketParties)).ForEach(func(_, v []byte) error {
			var p models.Party
			if err := json.Unmarshal(v, &p); err != nil {
				return fmt.Errorf("failed to decode party: %w", err)
			}
			parties = append(parties, p)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return parties, nil
}

func (s *BoltStore) GetParty(ctx context.Context, id int) (party *models.Party, err error) {
	_, span := tracer.Start(ctx, "BoltStore.GetParty")
	defer func() { endSpan(span, err) }()

	err = s.db.View(func(tx *bolt.Tx) error {
		party, err = getParty(tx, id)
		return err
	})
	return party, err
}

func getParty(tx *bolt.Tx, id int) (*models.Party, error) {
	v := tx.Bucket([]byte(bucketParties)).Get(itob(id))
	if v == nil {
		return nil, fmt.Errorf("%w: %d", shared.ErrPartyNotFound, id)
	}
	var p models.Party
	if err := json.Unmarshal(v, &p); err != nil {
		return nil, fmt.Errorf("failed to decode party: %w", err)
	}
	return &p, nil
}

func (s *BoltStore) CreateParty(ctx context.Context, in models.PartyInput) (party *models.Party, err error) {
	_, span := tracer.Start(ctx, "BoltStore.CreateParty")
	defer func() { endSpan(span, err) }()

	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketParties))
		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to generate sequence: %w", err)
		}
		party = &models.Party{ID: int(seq), Name: in.Name, Date: in.Date.UTC()}
		return putJSON(bucket, party.ID, party)
	})
	if err != nil {
		return nil, err
	}
	return party, nil
}

func (s *BoltStore) UpdateParty(ctx context.Context, id int, in models.PartyInput) (party *models.Party, err error) {
	_, span := tracer.Start(ctx, "BoltStore.UpdateParty")
	defer func() { endSpan(span, err) }()

	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		if _, err := getParty(tx, id); err != nil {
			return err
		}
		party = &models.Party{ID: id, Name: in.Name, Date: in.Date.UTC()}
		return putJSON(tx.Bucket([]byte(bucketParties)), id, party)
	})
	if err != nil {
		return nil, err
	}
	return party, nil
}

// DeleteParty removes the party and every attendee pointing at it in one transaction.
func (s *BoltStore) DeleteParty(ctx context.Context, id int) (err error) {
	_, span := tracer.Start(ctx, "BoltStore.DeleteParty")
	defer func() { endSpan(span, err) }()

	return s.db.Update(func(tx *bolt.Tx) error {
		if _, err := getParty(tx, id); err != nil {
			return err
		}

		people := tx.Bucket([]byte(bucketPeople))
		var orphans [][]byte
		err := people.ForEach(func(k, v []byte) error {
			var a models.Attendee
			if err := json.Unmarshal(v, &a); err != nil {
				return fmt.Errorf("failed to decode person: %w", err)
			}
			if a.PartyID == id {
				orphans = append(orphans, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		for _, k := range orphans {
			if err := people.Delete(k); err != nil {
				return err
			}
		}
		span.AddEvent("cascade", trace.WithAttributes(attribute.Int("people.deleted", len(orphans))))

		return tx.Bucket([]byte(bucketParties)).Delete(itob(id))
	})
}

func (s *BoltStore) ListAttendees(ctx context.Context, partyID int) (attendees []models.Attendee, err error) {
	_, span := tracer.Start(ctx, "BoltStore.ListAttendees")
	defer func() { endSpan(span, err) }()

	attendees = []models.Attendee{}
	err = s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketPeople)).ForEach(func(_, v []byte) error {
			var a models.Attendee
			if err := json.Unmarshal(v, &a); err != nil {
				return fmt.Errorf("failed to decode person: %w", err)
			}
			if a.PartyID == partyID {
				attendees = append(attendees, a)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return attendees, nil
}

func (s *BoltStore) GetAttendee(ctx context.Context, id int) (a *models.Attendee, err error) {
	_, span := tracer.Start(ctx, "BoltStore.GetAttendee")
	defer func() { endSpan(span, err) }()

	err = s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketPeople)).Get(itob(id))
		if v == nil {
			return fmt.Errorf("%w: %d", shared.ErrAttendeeNotFound, id)
		}
		a = &models.Attendee{}
		return json.Unmarshal(v, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *BoltStore) CreateAttendee(ctx context.Context, fields models.AttendeeFields) (a *models.Attendee, err error) {
	_, span := tracer.Start(ctx, "BoltStore.CreateAttendee")
	defer func() { endSpan(span, err) }()

	if err := fields.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		if _, err := getParty(tx, fields.PartyID); err != nil {
			return err
		}
		bucket := tx.Bucket([]byte(bucketPeople))
		seq, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to generate sequence: %w", err)
		}
		a = &models.Attendee{ID: int(seq), AttendeeFields: fields}
		return putJSON(bucket, a.ID, a)
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (s *BoltStore) UpdateAttendee(ctx context.Context, in models.Attendee) (a *models.Attendee, err error) {
	_, span := tracer.Start(ctx, "BoltStore.UpdateAttendee")
	defer func() { endSpan(span, err) }()

	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		if _, err := getParty(tx, in.PartyID); err != nil {
			return err
		}
		bucket := tx.Bucket([]byte(bucketPeople))
		if bucket.Get(itob(in.ID)) == nil {
			return fmt.Errorf("%w: %d", shared.ErrAttendeeNotFound, in.ID)
		}
		return putJSON(bucket, in.ID, in)
	})
	if err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *BoltStore) DeleteAttendee(ctx context.Context, id int) (err error) {
	_, span := tracer.Start(ctx, "BoltStore.DeleteAttendee")
	defer func() { endSpan(span, err) }()

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(bucketPeople))
		if bucket.Get(itob(id)) == nil {
			return fmt.Errorf("%w: %d", shared.ErrAttendeeNotFound, id)
		}
		return bucket.Delete(itob(id))
	})
}

// Close closes the database file.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func putJSON(bucket *bolt.Bucket, id int, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	return bucket.Put(itob(id), data)
}
