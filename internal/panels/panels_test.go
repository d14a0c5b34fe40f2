package panels

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/festa/internal/models"
	"github.com/desertthunder/festa/internal/services"
	"github.com/desertthunder/festa/internal/shared"
	tu "github.com/desertthunder/festa/internal/testing"
)

var fixedNow = time.Date(2025, 12, 31, 22, 0, 0, 0, time.UTC)

func seedParties() []models.Party {
	return []models.Party{
		{ID: 1, Name: "Ano Novo"},
		{ID: 2, Name: "Aniversário"},
	}
}

func seedAttendees() []models.Attendee {
	return []models.Attendee{
		{ID: 10, AttendeeFields: models.AttendeeFields{Name: "Ana", Age: 30, Host: true, Present: true, Invited: true, PartyID: 2}},
		{ID: 11, AttendeeFields: models.AttendeeFields{Name: "Bia", Age: 28, Present: true, Invited: true, PartyID: 2}},
		{ID: 12, AttendeeFields: models.AttendeeFields{Name: "Caio", Age: 41, PartyID: 1}},
	}
}

func newDashboard(t *testing.T) (*Dashboard, *tu.FakeService) {
	t.Helper()
	svc := tu.NewFakeService(seedParties(), seedAttendees())
	d := NewDashboard(svc, Options{Now: func() time.Time { return fixedNow }})
	if err := d.Mount(context.Background()); err != nil {
		t.Fatalf("mount failed: %v", err)
	}
	svc.ResetCalls()
	return d, svc
}

func TestPartyPanel(t *testing.T) {
	ctx := context.Background()

	t.Run("Refresh", func(t *testing.T) {
		t.Run("loads parties on mount", func(t *testing.T) {
			d, _ := newDashboard(t)
			state := d.Parties.State()
			if len(state.Parties) != 2 || state.Parties[1].Name != "Aniversário" {
				t.Errorf("unexpected parties %+v", state.Parties)
			}
			if state.HasSelection {
				t.Error("expected no selection after mount")
			}
		})

		t.Run("records alert on failure", func(t *testing.T) {
			svc := tu.NewFakeService(nil, nil)
			svc.FailOn("ListParties", shared.ErrAPIRequest)
			p := NewPartyPanel(svc, Options{})

			err := p.Refresh(ctx)
			var opErr *OpError
			if !errors.As(err, &opErr) || opErr.Op != AlertLoadParties {
				t.Fatalf("expected OpError %q, got %v", AlertLoadParties, err)
			}
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected wrapped service error, got %v", err)
			}
			if p.Alert() != AlertLoadParties {
				t.Errorf("expected alert, got %q", p.Alert())
			}
		})
	})

	t.Run("Create", func(t *testing.T) {
		t.Run("whitespace name sends no request", func(t *testing.T) {
			d, svc := newDashboard(t)
			d.Parties.SetNewName("   \t ")

			if err := d.CreateParty(ctx); err != nil {
				t.Fatalf("expected silent no-op, got %v", err)
			}
			if calls := svc.Calls(); len(calls) != 0 {
				t.Errorf("expected no requests, got %v", calls)
			}
			if len(d.Parties.State().Parties) != 2 {
				t.Error("expected party list unchanged")
			}
		})

		t.Run("success resets draft and selection", func(t *testing.T) {
			d, svc := newDashboard(t)
			if err := d.Select(ctx, 2); err != nil {
				t.Fatalf("select failed: %v", err)
			}
			d.Parties.SetNewName("  Carnaval ")

			if err := d.CreateParty(ctx); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			state := d.Parties.State()
			if state.NewName != "" {
				t.Errorf("expected empty draft, got %q", state.NewName)
			}
			if state.HasSelection {
				t.Error("expected selection to be cleared")
			}
			if d.Attendees.State().Visible {
				t.Error("expected attendee panel to be hidden")
			}
			if len(state.Parties) != 3 || state.Parties[2].Name != "Carnaval" {
				t.Errorf("expected re-fetched list with Carnaval, got %+v", state.Parties)
			}
			if !state.Parties[2].Date.Equal(fixedNow) {
				t.Errorf("expected date stamped with now, got %v", state.Parties[2].Date)
			}
			if svc.CallCount("ListParties") != 1 {
				t.Errorf("expected one list refresh, got %v", svc.Calls())
			}
		})

		t.Run("failure alerts and keeps state", func(t *testing.T) {
			d, svc := newDashboard(t)
			d.Select(ctx, 1)
			d.Parties.SetNewName("Carnaval")
			svc.FailOn("CreateParty", shared.ErrAPIRequest)

			err := d.CreateParty(ctx)
			var opErr *OpError
			if !errors.As(err, &opErr) || opErr.Op != AlertAddParty {
				t.Fatalf("expected %q, got %v", AlertAddParty, err)
			}

			state := d.Parties.State()
			if state.NewName != "Carnaval" || !state.HasSelection || state.Selected != 1 {
				t.Errorf("expected state unchanged, got %+v", state)
			}
			if d.Alert() != AlertAddParty {
				t.Errorf("expected dashboard alert, got %q", d.Alert())
			}
			if svc.CallCount("ListParties") != 0 {
				t.Error("expected no refresh after failure")
			}

			d.DismissAlert()
			if d.Alert() != "" {
				t.Error("expected alert dismissed")
			}
		})
	})

	t.Run("Edit", func(t *testing.T) {
		t.Run("requires selection", func(t *testing.T) {
			d, _ := newDashboard(t)
			if err := d.Parties.BeginEdit(1); !errors.Is(err, shared.ErrNotSelected) {
				t.Errorf("expected ErrNotSelected, got %v", err)
			}

			d.Select(ctx, 2)
			if err := d.Parties.BeginEdit(1); !errors.Is(err, shared.ErrNotSelected) {
				t.Errorf("expected ErrNotSelected for another party, got %v", err)
			}
		})

		t.Run("seeds draft and commits", func(t *testing.T) {
			d, svc := newDashboard(t)
			d.Select(ctx, 2)
			if err := d.Parties.BeginEdit(2); err != nil {
				t.Fatalf("begin edit failed: %v", err)
			}
			if d.Parties.State().EditName != "Aniversário" {
				t.Errorf("expected seeded name, got %q", d.Parties.State().EditName)
			}

			d.Parties.SetEditName("Aniversário 30")
			if err := d.Parties.CommitEdit(ctx); err != nil {
				t.Fatalf("commit failed: %v", err)
			}

			state := d.Parties.State()
			if state.Editing {
				t.Error("expected edit state cleared")
			}
			party, _ := d.Parties.Party(2)
			if party.Name != "Aniversário 30" || !party.Date.Equal(fixedNow) {
				t.Errorf("expected renamed and re-stamped party, got %+v", party)
			}
			if !state.HasSelection || state.Selected != 2 {
				t.Error("expected selection kept after edit")
			}
			if svc.CallCount("UpdateParty") != 1 || svc.CallCount("ListParties") != 1 {
				t.Errorf("unexpected calls %v", svc.Calls())
			}
		})

		t.Run("blank draft sends nothing", func(t *testing.T) {
			d, svc := newDashboard(t)
			d.Select(ctx, 1)
			d.Parties.BeginEdit(1)
			d.Parties.SetEditName(" ")
			svc.ResetCalls()

			if err := d.Parties.CommitEdit(ctx); err != nil {
				t.Fatalf("expected no-op, got %v", err)
			}
			if len(svc.Calls()) != 0 {
				t.Errorf("expected no requests, got %v", svc.Calls())
			}
			if !d.Parties.State().Editing {
				t.Error("expected edit to stay open")
			}
		})

		t.Run("failure leaves edit open", func(t *testing.T) {
			d, svc := newDashboard(t)
			d.Select(ctx, 1)
			d.Parties.BeginEdit(1)
			d.Parties.SetEditName("Réveillon")
			svc.FailOn("UpdateParty", shared.ErrAPIRequest)

			err := d.Parties.CommitEdit(ctx)
			var opErr *OpError
			if !errors.As(err, &opErr) || opErr.Op != AlertEditParty {
				t.Fatalf("expected %q, got %v", AlertEditParty, err)
			}
			state := d.Parties.State()
			if !state.Editing || state.EditName != "Réveillon" {
				t.Errorf("expected edit kept open, got %+v", state)
			}
		})

		t.Run("commit without edit reports no draft", func(t *testing.T) {
			d, _ := newDashboard(t)
			if err := d.Parties.CommitEdit(ctx); !errors.Is(err, shared.ErrNoDraft) {
				t.Errorf("expected ErrNoDraft, got %v", err)
			}
		})

		t.Run("selecting another party discards the edit", func(t *testing.T) {
			d, _ := newDashboard(t)
			d.Select(ctx, 1)
			d.Parties.BeginEdit(1)

			d.Select(ctx, 1)
			if !d.Parties.State().Editing {
				t.Error("expected edit kept when reselecting the same party")
			}

			d.Select(ctx, 2)
			if d.Parties.State().Editing {
				t.Error("expected stale edit draft to be cleared")
			}
		})

		t.Run("cancel discards draft", func(t *testing.T) {
			d, _ := newDashboard(t)
			d.Select(ctx, 1)
			d.Parties.BeginEdit(1)
			d.Parties.CancelEdit()
			if d.Parties.State().Editing {
				t.Error("expected edit cancelled")
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("success resets selection and hides attendees", func(t *testing.T) {
			d, svc := newDashboard(t)
			d.Select(ctx, 1)

			if err := d.DeleteParty(ctx, 1); err != nil {
				t.Fatalf("delete failed: %v", err)
			}

			state := d.Parties.State()
			if state.HasSelection {
				t.Error("expected selection reset to none")
			}
			if d.Attendees.State().Visible {
				t.Error("expected attendee panel no longer rendered")
			}
			if len(state.Parties) != 1 || state.Parties[0].ID != 2 {
				t.Errorf("expected only Aniversário left, got %+v", state.Parties)
			}
			if svc.CallCount("DeleteParty") != 1 {
				t.Errorf("unexpected calls %v", svc.Calls())
			}
		})

		t.Run("only the selected party", func(t *testing.T) {
			d, svc := newDashboard(t)
			d.Select(ctx, 2)

			if err := d.DeleteParty(ctx, 1); !errors.Is(err, shared.ErrNotSelected) {
				t.Fatalf("expected ErrNotSelected, got %v", err)
			}
			if svc.CallCount("DeleteParty") != 0 {
				t.Errorf("expected no request, got %v", svc.Calls())
			}
			if sel, ok := d.Parties.Selected(); !ok || sel != 2 {
				t.Error("expected selection unchanged")
			}
			if !d.Attendees.State().Visible {
				t.Error("expected attendees of the selected party still visible")
			}

			if err := d.DeleteParty(ctx, 1); err == nil || d.Alert() != "" {
				t.Errorf("expected no alert for a blocked delete, got %q", d.Alert())
			}
		})

		t.Run("failure keeps selection", func(t *testing.T) {
			d, svc := newDashboard(t)
			d.Select(ctx, 2)
			svc.FailOn("DeleteParty", shared.ErrAPIRequest)

			err := d.DeleteParty(ctx, 2)
			var opErr *OpError
			if !errors.As(err, &opErr) || opErr.Op != AlertDeleteParty {
				t.Fatalf("expected %q, got %v", AlertDeleteParty, err)
			}
			if sel, ok := d.Parties.Selected(); !ok || sel != 2 {
				t.Error("expected selection unchanged")
			}
			if !d.Attendees.State().Visible {
				t.Error("expected attendee panel still visible")
			}
		})
	})
}

func TestAttendeePanel(t *testing.T) {
	ctx := context.Background()

	t.Run("Select", func(t *testing.T) {
		t.Run("fetches once per party and discards previous list", func(t *testing.T) {
			d, svc := newDashboard(t)

			if err := d.Select(ctx, 2); err != nil {
				t.Fatalf("select failed: %v", err)
			}
			if svc.CallCount("ListAttendees") != 1 {
				t.Fatalf("expected exactly one fetch, got %v", svc.Calls())
			}
			if got := d.Attendees.State(); len(got.Attendees) != 2 || got.PartyID != 2 {
				t.Fatalf("expected attendees of party 2, got %+v", got)
			}

			d.Select(ctx, 2)
			if svc.CallCount("ListAttendees") != 1 {
				t.Errorf("expected no refetch for the same party, got %v", svc.Calls())
			}

			d.Select(ctx, 1)
			if svc.CallCount("ListAttendees") != 2 {
				t.Errorf("expected a new fetch for party 1, got %v", svc.Calls())
			}
			got := d.Attendees.State()
			if len(got.Attendees) != 1 || got.Attendees[0].Name != "Caio" {
				t.Errorf("expected only party 1 attendees, got %+v", got.Attendees)
			}
		})

		t.Run("changing party closes the modal", func(t *testing.T) {
			d, _ := newDashboard(t)
			d.Select(ctx, 2)
			d.Attendees.OpenCreate()

			d.Select(ctx, 1)
			if d.Attendees.State().Draft != nil {
				t.Error("expected modal closed after party change")
			}
		})

		t.Run("load failure records alert", func(t *testing.T) {
			d, svc := newDashboard(t)
			svc.FailOn("ListAttendees", shared.ErrAPIRequest)

			err := d.Select(ctx, 2)
			var opErr *OpError
			if !errors.As(err, &opErr) || opErr.Op != AlertLoadAttendees {
				t.Fatalf("expected %q, got %v", AlertLoadAttendees, err)
			}
			if d.Alert() != AlertLoadAttendees {
				t.Errorf("expected alert, got %q", d.Alert())
			}
		})

		t.Run("refresh without party reports not selected", func(t *testing.T) {
			d, _ := newDashboard(t)
			if err := d.Attendees.Refresh(ctx); !errors.Is(err, shared.ErrNotSelected) {
				t.Errorf("expected ErrNotSelected, got %v", err)
			}
			if err := d.Attendees.OpenCreate(); !errors.Is(err, shared.ErrNotSelected) {
				t.Errorf("expected ErrNotSelected, got %v", err)
			}
		})
	})

	t.Run("Stale Responses", func(t *testing.T) {
		t.Run("response for a previous party is discarded", func(t *testing.T) {
			d, svc := newDashboard(t)

			var once sync.Once
			svc.BeforeListAttendees = func(partyID int) {
				if partyID != 1 {
					return
				}
				once.Do(func() {
					if err := d.Select(ctx, 2); err != nil {
						t.Errorf("nested select failed: %v", err)
					}
				})
			}

			if err := d.Select(ctx, 1); err != nil {
				t.Fatalf("select failed: %v", err)
			}

			got := d.Attendees.State()
			if got.PartyID != 2 {
				t.Fatalf("expected party 2 active, got %d", got.PartyID)
			}
			for _, a := range got.Attendees {
				if a.PartyID != 2 {
					t.Errorf("stale attendee %+v applied", a)
				}
			}
			if len(got.Attendees) != 2 {
				t.Errorf("expected party 2 attendees, got %+v", got.Attendees)
			}
		})

		t.Run("save does not close a modal opened meanwhile", func(t *testing.T) {
			d, svc := newDashboard(t)
			d.Select(ctx, 2)
			d.Attendees.OpenCreate()
			d.Attendees.UpdateDraft(func(f *models.AttendeeFields) { f.Name = "Duda" })

			svc.BeforeSave = func() {
				d.Attendees.OpenEdit(models.Attendee{ID: 10, AttendeeFields: models.AttendeeFields{Name: "Ana", PartyID: 2}})
			}

			if err := d.Attendees.Save(ctx); err != nil {
				t.Fatalf("save failed: %v", err)
			}
			if svc.CallCount("ListAttendees") != 2 {
				t.Errorf("expected list refreshed after save, got %v", svc.Calls())
			}

			draft := d.Attendees.State().Draft
			if draft == nil || draft.IsNew() {
				t.Fatalf("expected the edit modal opened during save to remain, got %+v", draft)
			}
		})
	})

	t.Run("OpenCreate", func(t *testing.T) {
		t.Run("always yields default draft for the active party", func(t *testing.T) {
			d, _ := newDashboard(t)
			d.Select(ctx, 2)

			d.Attendees.OpenEdit(seedAttendees()[0])
			d.Attendees.UpdateDraft(func(f *models.AttendeeFields) {
				f.Present = false
				f.Invited = false
				f.PartyID = 99
			})
			if got := d.Attendees.State().Draft; got.Fields.PartyID != 2 {
				t.Errorf("expected partyId to be immutable, got %d", got.Fields.PartyID)
			}

			d.Attendees.OpenCreate()
			draft := d.Attendees.State().Draft
			if draft == nil || !draft.IsNew() {
				t.Fatalf("expected a new draft, got %+v", draft)
			}
			f := draft.Fields
			if !f.Present || !f.Invited || f.Host || f.PartyID != 2 {
				t.Errorf("unexpected defaults %+v", f)
			}
			if f.Name != "" || f.FullName != "" || f.Age != 0 {
				t.Errorf("expected empty fields, got %+v", f)
			}
		})
	})

	t.Run("OpenEdit copies the attendee", func(t *testing.T) {
		d, _ := newDashboard(t)
		d.Select(ctx, 2)
		ana, _ := d.Attendees.Attendee(10)

		d.Attendees.OpenEdit(ana)
		d.Attendees.UpdateDraft(func(f *models.AttendeeFields) { f.Name = "Ana Clara" })

		if stored, _ := d.Attendees.Attendee(10); stored.Name != "Ana" {
			t.Errorf("expected list untouched by draft edits, got %q", stored.Name)
		}
		d.Attendees.Close()
		if d.Attendees.State().Draft != nil {
			t.Error("expected draft discarded")
		}
	})

	t.Run("Save", func(t *testing.T) {
		t.Run("no draft is a no-op", func(t *testing.T) {
			d, svc := newDashboard(t)
			d.Select(ctx, 2)
			svc.ResetCalls()

			if err := d.Attendees.Save(ctx); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(svc.Calls()) != 0 {
				t.Errorf("expected no requests, got %v", svc.Calls())
			}
		})

		t.Run("new draft creates and refreshes", func(t *testing.T) {
			d, svc := newDashboard(t)
			d.Select(ctx, 2)
			svc.ResetCalls()

			d.Attendees.OpenCreate()
			d.Attendees.UpdateDraft(func(f *models.AttendeeFields) {
				f.Name = "Duda"
				f.FullName = "Eduarda Lima"
				f.Age = 25
			})
			if err := d.Attendees.Save(ctx); err != nil {
				t.Fatalf("save failed: %v", err)
			}

			calls := svc.Calls()
			if len(calls) != 2 || calls[0] != "CreateAttendee" || calls[1] != "ListAttendees" {
				t.Errorf("expected create then list, got %v", calls)
			}
			got := d.Attendees.State()
			if got.Draft != nil {
				t.Error("expected modal closed")
			}
			if len(got.Attendees) != 3 {
				t.Errorf("expected refreshed list of 3, got %+v", got.Attendees)
			}
		})

		t.Run("existing draft updates that id", func(t *testing.T) {
			d, svc := newDashboard(t)
			d.Select(ctx, 2)
			svc.ResetCalls()

			bia, _ := d.Attendees.Attendee(11)
			d.Attendees.OpenEdit(bia)
			d.Attendees.UpdateDraft(func(f *models.AttendeeFields) { f.Host = true })
			if err := d.Attendees.Save(ctx); err != nil {
				t.Fatalf("save failed: %v", err)
			}

			calls := svc.Calls()
			if len(calls) != 2 || calls[0] != "UpdateAttendee" || calls[1] != "ListAttendees" {
				t.Errorf("expected update then list, got %v", calls)
			}
			if updated, _ := d.Attendees.Attendee(11); !updated.Host {
				t.Errorf("expected Bia to be a host, got %+v", updated)
			}
			if d.Attendees.State().Draft != nil {
				t.Error("expected modal closed")
			}
		})

		t.Run("failure keeps the modal and draft", func(t *testing.T) {
			d, svc := newDashboard(t)
			d.Select(ctx, 2)
			d.Attendees.OpenCreate()
			d.Attendees.UpdateDraft(func(f *models.AttendeeFields) { f.Name = "Duda" })
			svc.FailOn("CreateAttendee", shared.ErrAPIRequest)

			err := d.Attendees.Save(ctx)
			var opErr *OpError
			if !errors.As(err, &opErr) || opErr.Op != AlertSaveAttendee {
				t.Fatalf("expected %q, got %v", AlertSaveAttendee, err)
			}
			draft := d.Attendees.State().Draft
			if draft == nil || draft.Fields.Name != "Duda" {
				t.Errorf("expected draft intact, got %+v", draft)
			}
			if d.Alert() != AlertSaveAttendee {
				t.Errorf("expected alert, got %q", d.Alert())
			}
		})
	})

	t.Run("Delete", func(t *testing.T) {
		t.Run("filters exactly that id without refetching", func(t *testing.T) {
			d, svc := newDashboard(t)
			d.Select(ctx, 2)
			svc.ResetCalls()

			if err := d.Attendees.Delete(ctx, 10); err != nil {
				t.Fatalf("delete failed: %v", err)
			}
			if svc.CallCount("ListAttendees") != 0 {
				t.Errorf("expected no refetch, got %v", svc.Calls())
			}
			got := d.Attendees.State().Attendees
			if len(got) != 1 || got[0].ID != 11 || got[0].Name != "Bia" {
				t.Errorf("expected only Bia left, got %+v", got)
			}
		})

		t.Run("failure leaves the list", func(t *testing.T) {
			d, svc := newDashboard(t)
			d.Select(ctx, 2)
			svc.FailOn("DeleteAttendee", shared.ErrAPIRequest)

			err := d.Attendees.Delete(ctx, 10)
			var opErr *OpError
			if !errors.As(err, &opErr) || opErr.Op != AlertDeleteAttendee {
				t.Fatalf("expected %q, got %v", AlertDeleteAttendee, err)
			}
			if len(d.Attendees.State().Attendees) != 2 {
				t.Error("expected list unchanged")
			}
		})
	})

	t.Run("UpdateDraft without modal", func(t *testing.T) {
		d, _ := newDashboard(t)
		d.Select(ctx, 2)
		if err := d.Attendees.UpdateDraft(func(*models.AttendeeFields) {}); !errors.Is(err, shared.ErrNoDraft) {
			t.Errorf("expected ErrNoDraft, got %v", err)
		}
	})
}

func TestDashboardOverHTTP(t *testing.T) {
	var (
		mu    sync.Mutex
		paths []string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.Method+" "+r.URL.Path)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch r.Method + " " + r.URL.Path {
		case "GET /parties":
			w.Write([]byte(`[{"id":1,"name":"Ano Novo"},{"id":2,"name":"Aniversário"}]`))
		case "GET /people/party/2":
			w.Write([]byte(`[{"id":10,"name":"Ana","host":true},{"id":11,"name":"Bia","host":false}]`))
		case "DELETE /parties/1":
			w.WriteHeader(http.StatusNoContent)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	svc := services.NewCollectionService(services.CollectionOpts{BaseURL: server.URL})
	d := NewDashboard(svc, Options{})
	ctx := context.Background()

	t.Run("selecting Aniversário loads Ana and Bia", func(t *testing.T) {
		if err := d.Mount(ctx); err != nil {
			t.Fatalf("mount failed: %v", err)
		}
		if err := d.Select(ctx, 2); err != nil {
			t.Fatalf("select failed: %v", err)
		}

		mu.Lock()
		last := paths[len(paths)-1]
		mu.Unlock()
		if last != "GET /people/party/2" {
			t.Errorf("expected attendee fetch for party 2, got %s", last)
		}

		got := d.Attendees.State().Attendees
		if len(got) != 2 {
			t.Fatalf("expected two cards, got %+v", got)
		}
		if got[0].Name != "Ana" || !got[0].Host || got[1].Name != "Bia" || got[1].Host {
			t.Errorf("unexpected attendees %+v", got)
		}
	})

	t.Run("deleting Ano Novo clears the selection", func(t *testing.T) {
		d.Parties.Select(1)
		if err := d.DeleteParty(ctx, 1); err != nil {
			t.Fatalf("delete failed: %v", err)
		}
		if _, ok := d.Parties.Selected(); ok {
			t.Error("expected selection reset to none")
		}
		if d.Attendees.State().Visible {
			t.Error("expected attendee panel hidden")
		}
	})

	t.Run("unknown party surfaces delete alert", func(t *testing.T) {
		d.Parties.Select(42)
		err := d.DeleteParty(ctx, 42)
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected wrapped ErrNotFound, got %v", err)
		}
		if d.Alert() != AlertDeleteParty {
			t.Errorf("expected alert %q, got %q", AlertDeleteParty, d.Alert())
		}
	})
}
