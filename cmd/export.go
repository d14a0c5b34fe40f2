package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/festa/internal/formatter"
	"github.com/desertthunder/festa/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export writes the guest list of each party to disk with a manifest.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	opts := tasks.BulkExportOpts{
		Format:     format,
		OutputDir:  cmd.String("output"),
		PartyIDs:   cmd.IntSlice("party"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
	}

	r.logger.Info("starting export", "format", format, "parties", len(opts.PartyIDs))

	prog := make(chan tasks.ProgressUpdate, 64)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for u := range prog {
			if u.Total > 0 {
				r.writePlain("[%d/%d] %s\n", u.Step, u.Total, u.Message)
			} else {
				r.writePlain("%s\n", u.Message)
			}
		}
	}()

	result, err := tasks.NewExporter(r.service, r.logger).BulkExport(ctx, prog, opts)
	close(prog)
	wg.Wait()

	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	m := result.Manifest
	r.writePlainln("✓ Exported %d of %d parties to %s", m.Succeeded, m.Total, result.OutputDirectory)
	if m.Failed > 0 {
		r.writePlain("⚠ %d failed:\n", m.Failed)
		for _, e := range m.Parties {
			if e.Error != "" {
				r.writePlain("  - %s (%d): %s\n", e.Name, e.PartyID, e.Error)
			}
		}
	}
	return r.writePlain("Manifest: %s\n", result.ManifestPath)
}
