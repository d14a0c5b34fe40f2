package tasks

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"slices"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/desertthunder/festa/internal/formatter"
	"github.com/desertthunder/festa/internal/models"
	"github.com/desertthunder/festa/internal/shared"
)

// BulkExportOpts contains configuration for bulk guest-list exports.
type BulkExportOpts struct {
	Format     formatter.Format // Export format (default: json)
	OutputDir  string           // Base output directory (default: festa_export_{epoch})
	PartyIDs   []int            // Parties to export; empty exports every party
	NumWorkers int              // Concurrent writers (default: 5, max: 10)
	RateLimit  float64          // Attendee fetches per second (default: 5)
	Now        func() time.Time
}

// BulkExportResult is the outcome of a bulk export.
type BulkExportResult struct {
	OutputDirectory string
	ManifestPath    string
	Manifest        *models.ExportManifest
}

type exportJob struct {
	list *models.GuestList
}

// BulkExport exports the guest list of each party concurrently with rate limiting and progress tracking.
//
// Attendee fetches run sequentially behind the limiter; file writes fan out to a worker pool.
// Parties that fail to fetch or write are recorded in the manifest and do not abort the run.
// It returns only after every goroutine it started has exited, so callers may close prog afterwards.
func (e *Exporter) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, opts BulkExportOpts) (*BulkExportResult, error) {
	if e.srv == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Format == "" {
		opts.Format = formatter.FormatJSON
	}
	format, err := formatter.ParseFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}
	opts.Format = format
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("festa_export_%d", opts.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	e.sendProgress(prog, fetchingPartiesUpdate())
	parties, missing, err := e.selectParties(ctx, opts.PartyIDs)
	if err != nil {
		return nil, err
	}
	e.sendProgress(prog, foundPartiesUpdate(parties))

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	total := len(parties) + len(missing)
	manifest := &models.ExportManifest{
		ExportedAt: opts.Now().UTC(),
		Format:     string(opts.Format),
		Total:      total,
		Parties:    make([]models.ManifestEntry, 0, total),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan exportJob, len(parties))
	results := make(chan models.ManifestEntry, total)

	for _, id := range missing {
		results <- models.ManifestEntry{
			PartyID: id,
			Name:    fmt.Sprintf("Unknown (%d)", id),
			Error:   fmt.Errorf("%w: %d", shared.ErrPartyNotFound, id).Error(),
		}
	}

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	// The producer counts toward wg so results stays open until it has exited.
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(jobs)
		for i, p := range parties {
			if err := limiter.Wait(ctx); err != nil {
				return
			}

			e.sendProgress(prog, fetchAttendeesUpdate(i+1, len(parties), p))
			attendees, err := e.srv.ListAttendees(ctx, p.ID)
			if err != nil {
				entry := models.ManifestEntry{
					PartyID: p.ID,
					Name:    p.Name,
					Error:   fmt.Sprintf("failed to fetch attendees: %v", err),
				}
				select {
				case results <- entry:
				case <-ctx.Done():
					return
				}
				continue
			}

			select {
			case jobs <- exportJob{list: &models.GuestList{Party: p, Attendees: attendees}}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for entry := range results {
		completed++
		manifest.Parties = append(manifest.Parties, entry)

		if entry.Error == "" {
			manifest.Succeeded++
			e.sendProgress(prog, exportCompletedUpdate(completed, total, entry))
		} else {
			manifest.Failed++
			e.logger.Warn("party export failed", "party", entry.PartyID, "error", entry.Error)
			e.sendProgress(prog, exportFailedUpdate(completed, total, entry))
		}
	}

	slices.SortFunc(manifest.Parties, func(a, b models.ManifestEntry) int {
		return cmp.Compare(a.PartyID, b.PartyID)
	})

	result := &BulkExportResult{OutputDirectory: opts.OutputDir, Manifest: manifest}
	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("export interrupted: %w", err)
	}

	path, err := formatter.WriteBulkExportManifest(manifest, opts.OutputDir)
	if err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = path
	e.sendProgress(prog, manifestUpdate(path))
	return result, nil
}

// selectParties lists parties and narrows them to ids; ids with no party are returned as missing.
func (e *Exporter) selectParties(ctx context.Context, ids []int) ([]models.Party, []int, error) {
	parties, err := e.srv.ListParties(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list parties: %w", err)
	}
	if len(ids) == 0 {
		return parties, nil, nil
	}

	byID := make(map[int]models.Party, len(parties))
	for _, p := range parties {
		byID[p.ID] = p
	}

	var (
		selected []models.Party
		missing  []int
	)
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			selected = append(selected, p)
		} else {
			missing = append(missing, id)
		}
	}
	return selected, missing, nil
}

// exportWorker writes guest lists from the jobs channel.
func (e *Exporter) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan exportJob,
	results chan<- models.ManifestEntry,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		select {
		case results <- e.exportGuestList(job.list, opts):
		case <-ctx.Done():
			return
		}
	}
}

func (e *Exporter) exportGuestList(list *models.GuestList, opts BulkExportOpts) models.ManifestEntry {
	entry := models.ManifestEntry{
		PartyID:   list.Party.ID,
		Name:      list.Party.Name,
		Attendees: len(list.Attendees),
	}

	files, err := formatter.WriteExport(list, opts.Format, opts.OutputDir)
	if err != nil {
		entry.Error = fmt.Sprintf("%s export failed: %v", opts.Format, err)
		return entry
	}
	entry.Files = files
	return entry
}
