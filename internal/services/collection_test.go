package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/desertthunder/festa/internal/models"
	"github.com/desertthunder/festa/internal/shared"
	tu "github.com/desertthunder/festa/internal/testing"
)

func TestCollectionService(t *testing.T) {
	now := time.Date(2025, 6, 24, 20, 0, 0, 0, time.UTC)

	t.Run("NewCollectionService", func(t *testing.T) {
		t.Run("creates service with default URL", func(t *testing.T) {
			svc := NewCollectionService(CollectionOpts{})
			if svc.BaseURL() != defaultBaseURL {
				t.Errorf("expected baseURL to be %s, got %s", defaultBaseURL, svc.BaseURL())
			}
			if svc.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
			if svc.limiter != nil {
				t.Error("expected no limiter without a rate limit")
			}
		})

		t.Run("trims trailing slash and enables limiter", func(t *testing.T) {
			svc := NewCollectionService(CollectionOpts{BaseURL: "http://festas.local/", RateLimit: 5})
			if svc.BaseURL() != "http://festas.local" {
				t.Errorf("expected trimmed baseURL, got %s", svc.BaseURL())
			}
			if svc.limiter == nil {
				t.Error("expected limiter to be configured")
			}
		})
	})

	t.Run("ListParties", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				t.Errorf("expected GET method, got %s", r.Method)
			}
			if r.URL.Path != "/parties" {
				t.Errorf("expected path /parties, got %s", r.URL.Path)
			}
			if _, err := uuid.Parse(r.Header.Get(RequestIDHeader)); err != nil {
				t.Errorf("expected uuid request id header, got %q", r.Header.Get(RequestIDHeader))
			}

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id":1,"name":"Ano Novo","date":"2025-12-31T22:00:00Z"},{"id":2,"name":"Aniversário","date":"2025-06-24T20:00:00Z"}]`))
		}))
		defer server.Close()

		svc := NewCollectionService(CollectionOpts{BaseURL: server.URL})
		parties, err := svc.ListParties(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if len(parties) != 2 {
			t.Fatalf("expected 2 parties, got %d", len(parties))
		}
		if parties[0].ID != 1 || parties[0].Name != "Ano Novo" {
			t.Errorf("unexpected first party %+v", parties[0])
		}
		if parties[1].Name != "Aniversário" {
			t.Errorf("unexpected second party %+v", parties[1])
		}
	})

	t.Run("ListParties With Null Body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("null"))
		}))
		defer server.Close()

		parties, err := NewCollectionService(CollectionOpts{BaseURL: server.URL}).ListParties(context.Background())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if parties == nil || len(parties) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", parties)
		}
	})

	t.Run("ListParties With Invalid JSON", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		_, err := NewCollectionService(CollectionOpts{BaseURL: server.URL}).ListParties(context.Background())
		if err == nil || !strings.Contains(err.Error(), "failed to decode response") {
			t.Errorf("expected decode error, got %v", err)
		}
	})

	t.Run("CreateParty", func(t *testing.T) {
		t.Run("sends name and date", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/parties" {
					t.Errorf("expected POST /parties, got %s %s", r.Method, r.URL.Path)
				}
				if r.Header.Get("Content-Type") != "application/json" {
					t.Errorf("expected JSON content type, got %s", r.Header.Get("Content-Type"))
				}

				var body map[string]any
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if body["name"] != "Ano Novo" || body["date"] != "2025-06-24T20:00:00Z" {
					t.Errorf("unexpected body %v", body)
				}
				if len(body) != 2 {
					t.Errorf("expected exactly name and date, got %v", body)
				}

				w.WriteHeader(http.StatusCreated)
				w.Write([]byte(`{"id":3,"name":"Ano Novo","date":"2025-06-24T20:00:00Z"}`))
			}))
			defer server.Close()

			svc := NewCollectionService(CollectionOpts{BaseURL: server.URL})
			party, err := svc.CreateParty(context.Background(), models.NewPartyInput("Ano Novo", now))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if party == nil || party.ID != 3 {
				t.Errorf("expected created party with id 3, got %+v", party)
			}
		})

		t.Run("accepts empty success body", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
			}))
			defer server.Close()

			svc := NewCollectionService(CollectionOpts{BaseURL: server.URL})
			party, err := svc.CreateParty(context.Background(), models.NewPartyInput("Ano Novo", now))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if party != nil {
				t.Errorf("expected nil party for empty body, got %+v", party)
			}
		})

		t.Run("fails on server error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer server.Close()

			svc := NewCollectionService(CollectionOpts{BaseURL: server.URL})
			_, err := svc.CreateParty(context.Background(), models.NewPartyInput("Ano Novo", now))
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
			if !strings.Contains(err.Error(), "status 500") {
				t.Errorf("expected status in error, got %v", err)
			}
		})
	})

	t.Run("UpdateParty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPatch || r.URL.Path != "/parties/2" {
				t.Errorf("expected PATCH /parties/2, got %s %s", r.Method, r.URL.Path)
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ok"))
		}))
		defer server.Close()

		svc := NewCollectionService(CollectionOpts{BaseURL: server.URL})
		party, err := svc.UpdateParty(context.Background(), 2, models.NewPartyInput("Aniversário 30", now))
		if err != nil {
			t.Fatalf("expected non-JSON success body to be accepted, got %v", err)
		}
		if party != nil {
			t.Errorf("expected nil party, got %+v", party)
		}
	})

	t.Run("DeleteParty", func(t *testing.T) {
		t.Run("succeeds on 204", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodDelete || r.URL.Path != "/parties/1" {
					t.Errorf("expected DELETE /parties/1, got %s %s", r.Method, r.URL.Path)
				}
				if r.Header.Get("Content-Type") != "" {
					t.Errorf("expected no content type without body, got %s", r.Header.Get("Content-Type"))
				}
				w.WriteHeader(http.StatusNoContent)
			}))
			defer server.Close()

			if err := NewCollectionService(CollectionOpts{BaseURL: server.URL}).DeleteParty(context.Background(), 1); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})

		t.Run("reports not found", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.NotFound(w, r)
			}))
			defer server.Close()

			err := NewCollectionService(CollectionOpts{BaseURL: server.URL}).DeleteParty(context.Background(), 9)
			if !errors.Is(err, shared.ErrNotFound) || !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrNotFound and ErrAPIRequest, got %v", err)
			}
		})
	})

	t.Run("ListAttendees", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/people/party/2" {
				t.Errorf("expected path /people/party/2, got %s", r.URL.Path)
			}
			w.Write([]byte(`[{"id":10,"name":"Ana","host":true,"partyId":2},{"id":11,"name":"Bia","host":false,"partyId":2}]`))
		}))
		defer server.Close()

		attendees, err := NewCollectionService(CollectionOpts{BaseURL: server.URL}).ListAttendees(context.Background(), 2)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(attendees) != 2 {
			t.Fatalf("expected 2 attendees, got %d", len(attendees))
		}
		if !attendees[0].Host || attendees[1].Host {
			t.Errorf("unexpected host flags %+v", attendees)
		}
	})

	t.Run("CreateAttendee sends no id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/people" {
				t.Errorf("expected POST /people, got %s %s", r.Method, r.URL.Path)
			}
			body, _ := io.ReadAll(r.Body)
			if strings.Contains(string(body), `"id"`) {
				t.Errorf("create payload must not carry id: %s", body)
			}
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":12,"name":"Caio","partyId":2}`))
		}))
		defer server.Close()

		draft := models.NewDraft(2)
		draft.Fields.Name = "Caio"
		created, err := NewCollectionService(CollectionOpts{BaseURL: server.URL}).CreateAttendee(context.Background(), draft.Fields)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if created == nil || created.ID != 12 {
			t.Errorf("expected created attendee 12, got %+v", created)
		}
	})

	t.Run("UpdateAttendee sends full record", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut || r.URL.Path != "/people/11" {
				t.Errorf("expected PUT /people/11, got %s %s", r.Method, r.URL.Path)
			}
			var a models.Attendee
			if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if a.ID != 11 || a.Name != "Beatriz" || a.PartyID != 2 {
				t.Errorf("unexpected payload %+v", a)
			}
			json.NewEncoder(w).Encode(a)
		}))
		defer server.Close()

		a := models.Attendee{ID: 11, AttendeeFields: models.AttendeeFields{Name: "Beatriz", PartyID: 2}}
		updated, err := NewCollectionService(CollectionOpts{BaseURL: server.URL}).UpdateAttendee(context.Background(), a)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if updated == nil || updated.Name != "Beatriz" {
			t.Errorf("unexpected updated attendee %+v", updated)
		}
	})

	t.Run("DeleteAttendee", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete || r.URL.Path != "/people/10" {
				t.Errorf("expected DELETE /people/10, got %s %s", r.Method, r.URL.Path)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		if err := NewCollectionService(CollectionOpts{BaseURL: server.URL}).DeleteAttendee(context.Background(), 10); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("Failed HTTP Request", func(t *testing.T) {
		client := &http.Client{
			Transport: tu.NewMockRoundTripper(nil, errors.New("connection refused")),
		}

		svc := NewCollectionService(CollectionOpts{BaseURL: "http://festas.local", HTTPClient: client})
		_, err := svc.ListParties(context.Background())
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
		if !strings.Contains(err.Error(), "connection refused") {
			t.Errorf("expected transport error in message, got %v", err)
		}
	})

	t.Run("Failed Response Body Read", func(t *testing.T) {
		client := &http.Client{
			Transport: tu.NewMockRoundTripper(&http.Response{
				StatusCode: http.StatusOK,
				Body:       &tu.FCloser{},
				Header:     http.Header{},
			}, nil),
		}

		svc := NewCollectionService(CollectionOpts{BaseURL: "http://festas.local", HTTPClient: client})
		if _, err := svc.ListParties(context.Background()); err == nil || !strings.Contains(err.Error(), "failed to read response") {
			t.Errorf("expected read error for list, got %v", err)
		}

		if _, err := svc.CreateParty(context.Background(), models.NewPartyInput("x", now)); err != nil {
			t.Errorf("mutation success must not depend on the body, got %v", err)
		}
	})

	t.Run("With Canceled Context", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("[]"))
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewCollectionService(CollectionOpts{BaseURL: server.URL, RateLimit: 1}).ListParties(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}
