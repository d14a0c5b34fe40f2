package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/festa/internal/formatter"
	"github.com/desertthunder/festa/internal/models"
	"github.com/desertthunder/festa/internal/shared"
	tu "github.com/desertthunder/festa/internal/testing"
)

var exportedAt = time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

func seededService() *tu.FakeService {
	parties := []models.Party{
		{ID: 1, Name: "Ano Novo", Date: time.Date(2025, 12, 31, 22, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "Aniversário", Date: time.Date(2025, 6, 24, 20, 0, 0, 0, time.UTC)},
	}
	attendees := []models.Attendee{
		{ID: 10, AttendeeFields: models.AttendeeFields{Name: "Ana", Age: 30, Host: true, Present: true, PartyID: 2}},
		{ID: 11, AttendeeFields: models.AttendeeFields{Name: "Bia", Age: 28, Present: true, PartyID: 2}},
	}
	return tu.NewFakeService(parties, attendees)
}

// flakyService fails ListAttendees for one party.
type flakyService struct {
	*tu.FakeService
	failParty int
}

func (f *flakyService) ListAttendees(ctx context.Context, partyID int) ([]models.Attendee, error) {
	if partyID == f.failParty {
		return nil, fmt.Errorf("%w: GET /people/party/%d: status 500", shared.ErrAPIRequest, partyID)
	}
	return f.FakeService.ListAttendees(ctx, partyID)
}

// cancelingService cancels the export while fetching cancelParty and answers late with the context error.
type cancelingService struct {
	*tu.FakeService
	cancelParty int
	cancel      context.CancelFunc
}

func (c *cancelingService) ListAttendees(ctx context.Context, partyID int) ([]models.Attendee, error) {
	if partyID == c.cancelParty {
		c.cancel()
		time.Sleep(20 * time.Millisecond)
		return nil, ctx.Err()
	}
	return c.FakeService.ListAttendees(ctx, partyID)
}

func readManifest(t *testing.T, path string) models.ExportManifest {
	t.Helper()
	var m models.ExportManifest
	if err := json.Unmarshal([]byte(tu.MustReadFile(t, path)), &m); err != nil {
		t.Fatalf("invalid manifest: %v", err)
	}
	return m
}

func TestBulkExport(t *testing.T) {
	t.Run("exports every party", func(t *testing.T) {
		tests := []struct {
			format formatter.Format
			files  []string
		}{
			{formatter.FormatJSON, []string{"party_1.json", "party_2.json"}},
			{formatter.FormatCSV, []string{"party_1_guests.csv", "party_2_guests.csv"}},
			{formatter.FormatText, []string{"party_1_guests.txt", "party_2_guests.txt"}},
			{formatter.FormatMarkdown, []string{filepath.Join("party_1", "README.md"), filepath.Join("party_2", "README.md")}},
		}

		for _, tt := range tests {
			t.Run(string(tt.format), func(t *testing.T) {
				dir := filepath.Join(t.TempDir(), "out")
				e := NewExporter(seededService(), nil)

				result, err := e.BulkExport(context.Background(), nil, BulkExportOpts{
					Format:    tt.format,
					OutputDir: dir,
					RateLimit: 1000,
					Now:       func() time.Time { return exportedAt },
				})
				if err != nil {
					t.Fatalf("BulkExport failed: %v", err)
				}

				if result.Manifest.Succeeded != 2 || result.Manifest.Failed != 0 {
					t.Errorf("expected 2 successes, got %+v", result.Manifest)
				}
				for _, f := range tt.files {
					tu.AssertFileExists(t, filepath.Join(dir, f))
				}

				m := readManifest(t, result.ManifestPath)
				if m.Format != string(tt.format) || !m.ExportedAt.Equal(exportedAt) {
					t.Errorf("unexpected manifest header %+v", m)
				}
				if m.Parties[1].Name != "Aniversário" || m.Parties[1].Attendees != 2 {
					t.Errorf("unexpected entry %+v", m.Parties[1])
				}
			})
		}
	})

	t.Run("records failures without aborting", func(t *testing.T) {
		dir := t.TempDir()
		srv := &flakyService{FakeService: seededService(), failParty: 1}

		result, err := NewExporter(srv, nil).BulkExport(context.Background(), nil, BulkExportOpts{
			Format:    formatter.FormatCSV,
			OutputDir: dir,
			RateLimit: 1000,
		})
		if err != nil {
			t.Fatalf("BulkExport failed: %v", err)
		}

		m := readManifest(t, result.ManifestPath)
		if m.Total != 2 || m.Succeeded != 1 || m.Failed != 1 {
			t.Fatalf("unexpected counts %+v", m)
		}
		if m.Parties[0].PartyID != 1 || !strings.Contains(m.Parties[0].Error, "failed to fetch attendees") {
			t.Errorf("expected party 1 to fail, got %+v", m.Parties[0])
		}
		if len(m.Parties[1].Files) != 1 {
			t.Errorf("expected party 2 exported, got %+v", m.Parties[1])
		}
	})

	t.Run("selected parties", func(t *testing.T) {
		dir := t.TempDir()
		srv := seededService()

		result, err := NewExporter(srv, nil).BulkExport(context.Background(), nil, BulkExportOpts{
			Format:    "md",
			OutputDir: dir,
			PartyIDs:  []int{2, 9},
			RateLimit: 1000,
		})
		if err != nil {
			t.Fatalf("BulkExport failed: %v", err)
		}

		if srv.CallCount("ListAttendees") != 1 {
			t.Errorf("expected one attendee fetch, got %v", srv.Calls())
		}
		if result.Manifest.Format != string(formatter.FormatMarkdown) {
			t.Errorf("expected format alias resolved, got %s", result.Manifest.Format)
		}
		if result.Manifest.Failed != 1 || !strings.Contains(result.Manifest.Parties[1].Error, "party not found") {
			t.Errorf("expected unknown party recorded, got %+v", result.Manifest.Parties)
		}
	})

	t.Run("reports progress", func(t *testing.T) {
		prog := make(chan ProgressUpdate, 32)
		_, err := NewExporter(seededService(), nil).BulkExport(context.Background(), prog, BulkExportOpts{
			OutputDir: t.TempDir(),
			RateLimit: 1000,
		})
		if err != nil {
			t.Fatalf("BulkExport failed: %v", err)
		}
		close(prog)

		phases := map[Phase]int{}
		for u := range prog {
			phases[u.Phase]++
		}
		if phases[FetchParties] != 2 || phases[FetchAttendees] != 2 || phases[WriteExport] != 2 || phases[WriteManifest] != 1 {
			t.Errorf("unexpected phase counts %v", phases)
		}
	})

	t.Run("errors", func(t *testing.T) {
		t.Run("nil service", func(t *testing.T) {
			_, err := NewExporter(nil, nil).BulkExport(context.Background(), nil, BulkExportOpts{})
			if !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}
		})

		t.Run("unknown format", func(t *testing.T) {
			_, err := NewExporter(seededService(), nil).BulkExport(context.Background(), nil, BulkExportOpts{Format: "xml"})
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})

		t.Run("list parties fails", func(t *testing.T) {
			srv := seededService()
			srv.FailOn("ListParties", shared.ErrAPIRequest)

			_, err := NewExporter(srv, nil).BulkExport(context.Background(), nil, BulkExportOpts{OutputDir: t.TempDir()})
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})

		t.Run("canceled context", func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			srv := seededService()
			srv.BeforeListAttendees = func(int) { cancel() }

			result, err := NewExporter(srv, nil).BulkExport(ctx, nil, BulkExportOpts{OutputDir: t.TempDir(), RateLimit: 1000})
			if !errors.Is(err, context.Canceled) {
				t.Fatalf("expected context.Canceled, got %v", err)
			}
			if result == nil || result.ManifestPath != "" {
				t.Errorf("expected no manifest after cancel, got %+v", result)
			}
		})

		t.Run("canceled while a fetch is in flight", func(t *testing.T) {
			parties := []models.Party{{ID: 1, Name: "Carnaval"}, {ID: 2, Name: "Réveillon"}, {ID: 3, Name: "São João"}}
			attendees := make([]models.Attendee, 0, 20000)
			for i := range 20000 {
				attendees = append(attendees, models.Attendee{ID: 100 + i, AttendeeFields: models.AttendeeFields{Name: fmt.Sprintf("Convidado %d", i), PartyID: 1}})
			}

			for range 10 {
				ctx, cancel := context.WithCancel(context.Background())
				srv := &cancelingService{FakeService: tu.NewFakeService(parties, attendees), cancelParty: 3, cancel: cancel}
				prog := make(chan ProgressUpdate, 64)

				result, err := NewExporter(srv, nil).BulkExport(ctx, prog, BulkExportOpts{
					Format:     formatter.FormatMarkdown,
					OutputDir:  t.TempDir(),
					NumWorkers: 1,
					RateLimit:  1000,
				})
				close(prog)
				cancel()

				if !errors.Is(err, context.Canceled) {
					t.Fatalf("expected context.Canceled, got %v", err)
				}
				if result == nil || len(result.Manifest.Parties) > len(parties) {
					t.Fatalf("unexpected result %+v", result)
				}
				for range prog {
				}
			}
		})
	})
}

func TestPhase(t *testing.T) {
	names := map[Phase]string{
		FetchParties:   "fetch_parties",
		FetchAttendees: "fetch_attendees",
		WriteExport:    "write_export",
		WriteManifest:  "write_manifest",
		Phase(99):      "",
	}
	for p, want := range names {
		if p.String() != want {
			t.Errorf("Phase(%d).String() = %q, want %q", p, p.String(), want)
		}
	}
}
