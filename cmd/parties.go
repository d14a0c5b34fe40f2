package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/festa/internal/models"
	"github.com/desertthunder/festa/internal/shared"
	"github.com/urfave/cli/v3"
)

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// PartiesList prints every party.
func (r *Runner) PartiesList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}

	parties, err := r.service.ListParties(ctx)
	if err != nil {
		return fmt.Errorf("failed to list parties: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(parties, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Parties (%d)", len(parties)))
	if len(parties) == 0 {
		return r.writePlain("No parties yet.\n")
	}
	for _, p := range parties {
		r.writePlain("%4d  %-16s  %s\n", p.ID, formatDate(p.Date), p.Name)
	}
	return nil
}

// PartiesCreate creates a party stamped with the current time.
func (r *Runner) PartiesCreate(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}

	in := models.NewPartyInput(cmd.StringArg("name"), time.Now())
	if err := in.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrMissingArgument, err)
	}

	r.logger.Info("creating party", "name", in.Name)

	party, err := r.service.CreateParty(ctx, in)
	if err != nil {
		return fmt.Errorf("failed to create party: %w", err)
	}
	if party == nil {
		return r.writePlain("✓ Created party %q\n", in.Name)
	}
	return r.writePlain("✓ Created party %q (id %d)\n", party.Name, party.ID)
}

// PartiesRename renames a party. The date is re-stamped with the current time, as every edit does.
func (r *Runner) PartiesRename(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}

	id := cmd.Int("id")
	in := models.NewPartyInput(cmd.StringArg("name"), time.Now())
	if err := in.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrMissingArgument, err)
	}

	r.logger.Info("renaming party", "id", id, "name", in.Name)

	if _, err := r.service.UpdateParty(ctx, id, in); err != nil {
		return fmt.Errorf("failed to rename party %d: %w", id, err)
	}
	return r.writePlain("✓ Renamed party %d to %q\n", id, in.Name)
}

// PartiesDelete deletes a party.
func (r *Runner) PartiesDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}

	id := cmd.Int("id")
	r.logger.Info("deleting party", "id", id)

	if err := r.service.DeleteParty(ctx, id); err != nil {
		return fmt.Errorf("failed to delete party %d: %w", id, err)
	}
	return r.writePlain("✓ Deleted party %d\n", id)
}
