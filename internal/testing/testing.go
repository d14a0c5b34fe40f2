// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/festa/internal/models"
	"github.com/desertthunder/festa/internal/shared"
)

// FakeService is an in-memory test double for services.Service that records every call.
type FakeService struct {
	mu           sync.Mutex
	parties      []models.Party
	attendees    []models.Attendee
	calls        []string
	failures     map[string]error
	nextParty    int
	nextAttendee int

	// BeforeListAttendees, when set, runs before ListAttendees answers. Tests use it to hold a response in flight.
	BeforeListAttendees func(partyID int)

	// BeforeSave, when set, runs before CreateAttendee and UpdateAttendee answer.
	BeforeSave func()
}

// NewFakeService seeds a fake with parties and attendees; ids continue after the highest seeded id.
func NewFakeService(parties []models.Party, attendees []models.Attendee) *FakeService {
	f := &FakeService{failures: map[string]error{}}
	for _, p := range parties {
		f.parties = append(f.parties, p)
		f.nextParty = max(f.nextParty, p.ID)
	}
	for _, a := range attendees {
		f.attendees = append(f.attendees, a)
		f.nextAttendee = max(f.nextAttendee, a.ID)
	}
	return f
}

// FailOn makes op (a Service method name) return err until cleared with a nil err.
func (f *FakeService) FailOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.failures, op)
		return
	}
	f.failures[op] = err
}

// Calls returns the names of every method invoked so far, in order.
func (f *FakeService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// CallCount returns how many times op was invoked.
func (f *FakeService) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

// ResetCalls forgets recorded calls.
func (f *FakeService) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

// Parties returns a copy of the stored parties.
func (f *FakeService) Parties() []models.Party {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Party(nil), f.parties...)
}

// Attendees returns a copy of every stored attendee.
func (f *FakeService) Attendees() []models.Attendee {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Attendee(nil), f.attendees...)
}

func (f *FakeService) record(op string) error {
	f.calls = append(f.calls, op)
	if err := f.failures[op]; err != nil {
		return err
	}
	return nil
}

func (f *FakeService) ListParties(ctx context.Context) ([]models.Party, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListParties"); err != nil {
		return nil, err
	}
	return append([]models.Party{}, f.parties...), nil
}

func (f *FakeService) CreateParty(ctx context.Context, in models.PartyInput) (*models.Party, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateParty"); err != nil {
		return nil, err
	}
	f.nextParty++
	p := models.Party{ID: f.nextParty, Name: in.Name, Date: in.Date}
	f.parties = append(f.parties, p)
	return &p, nil
}

func (f *FakeService) UpdateParty(ctx context.Context, id int, in models.PartyInput) (*models.Party, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UpdateParty"); err != nil {
		return nil, err
	}
	for i := range f.parties {
		if f.parties[i].ID == id {
			f.parties[i].Name = in.Name
			f.parties[i].Date = in.Date
			p := f.parties[i]
			return &p, nil
		}
	}
	return nil, shared.ErrPartyNotFound
}

func (f *FakeService) DeleteParty(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteParty"); err != nil {
		return err
	}
	for i := range f.parties {
		if f.parties[i].ID == id {
			f.parties = append(f.parties[:i], f.parties[i+1:]...)
			kept := f.attendees[:0]
			for _, a := range f.attendees {
				if a.PartyID != id {
					kept = append(kept, a)
				}
			}
			f.attendees = kept
			return nil
		}
	}
	return shared.ErrPartyNotFound
}

func (f *FakeService) ListAttendees(ctx context.Context, partyID int) ([]models.Attendee, error) {
	f.mu.Lock()
	err := f.record("ListAttendees")
	result := []models.Attendee{}
	for _, a := range f.attendees {
		if a.PartyID == partyID {
			result = append(result, a)
		}
	}
	hook := f.BeforeListAttendees
	f.mu.Unlock()

	if hook != nil {
		hook(partyID)
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (f *FakeService) beforeSave() {
	f.mu.Lock()
	hook := f.BeforeSave
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
}

func (f *FakeService) CreateAttendee(ctx context.Context, fields models.AttendeeFields) (*models.Attendee, error) {
	f.beforeSave()
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateAttendee"); err != nil {
		return nil, err
	}
	f.nextAttendee++
	a := models.Attendee{ID: f.nextAttendee, AttendeeFields: fields}
	f.attendees = append(f.attendees, a)
	return &a, nil
}

func (f *FakeService) UpdateAttendee(ctx context.Context, a models.Attendee) (*models.Attendee, error) {
	f.beforeSave()
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UpdateAttendee"); err != nil {
		return nil, err
	}
	for i := range f.attendees {
		if f.attendees[i].ID == a.ID {
			f.attendees[i] = a
			return &a, nil
		}
	}
	return nil, shared.ErrAttendeeNotFound
}

func (f *FakeService) DeleteAttendee(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteAttendee"); err != nil {
		return err
	}
	for i := range f.attendees {
		if f.attendees[i].ID == id {
			f.attendees = append(f.attendees[:i], f.attendees[i+1:]...)
			return nil
		}
	}
	return shared.ErrAttendeeNotFound
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
