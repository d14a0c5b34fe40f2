package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/festa/internal/models"
	"github.com/desertthunder/festa/internal/shared"
	"github.com/urfave/cli/v3"
)

// applyAttendeeFlags copies every attendee flag the user set onto f.
// With all set, defaults of unset flags are copied too.
func applyAttendeeFlags(cmd *cli.Command, f *models.AttendeeFields, all bool) {
	set := func(name string) bool { return all || cmd.IsSet(name) }

	if set("name") {
		f.Name = cmd.String("name")
	}
	if set("full-name") {
		f.FullName = cmd.String("full-name")
	}
	if set("age") {
		f.Age = cmd.Int("age")
	}
	if set("photo") {
		f.PhotoURL = strings.TrimSpace(cmd.String("photo"))
	}
	if set("host") {
		f.Host = cmd.Bool("host")
	}
	if set("present") {
		f.Present = cmd.Bool("present")
	}
	if set("invited") {
		f.Invited = cmd.Bool("invited")
	}
}

// PeopleList prints the attendees of a party.
func (r *Runner) PeopleList(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}

	partyID := cmd.Int("party")
	attendees, err := r.service.ListAttendees(ctx, partyID)
	if err != nil {
		return fmt.Errorf("failed to list attendees of party %d: %w", partyID, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(attendees, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Attendees of party %d (%d)", partyID, len(attendees)))
	if len(attendees) == 0 {
		return r.writePlain("No attendees found for this party.\n")
	}
	for _, a := range attendees {
		host := ""
		if a.Host {
			host = " ★ host"
		}
		r.writePlain("%4d  %s (%s), %d%s\n", a.ID, a.Name, a.FullName, a.Age, host)
		r.writePlain("      present: %s · invited: %s\n", shared.YesNo(a.Present), shared.YesNo(a.Invited))
	}
	return nil
}

// PeopleAdd creates an attendee with the creation defaults for any flag left unset.
func (r *Runner) PeopleAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}

	draft := models.NewDraft(cmd.Int("party"))
	applyAttendeeFlags(cmd, &draft.Fields, true)
	if err := draft.Fields.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	r.logger.Info("adding attendee", "party", draft.Fields.PartyID, "name", draft.Fields.Name)

	a, err := r.service.CreateAttendee(ctx, draft.Fields)
	if err != nil {
		return fmt.Errorf("failed to add attendee: %w", err)
	}
	if a == nil {
		return r.writePlain("✓ Added %q to party %d\n", draft.Fields.Name, draft.Fields.PartyID)
	}
	return r.writePlain("✓ Added %q to party %d (id %d)\n", a.Name, a.PartyID, a.ID)
}

// PeopleEdit replaces an attendee with its current record plus the flags given.
//
// The service has no single-attendee read, so the record is looked up in its party's list.
func (r *Runner) PeopleEdit(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}

	partyID, id := cmd.Int("party"), cmd.Int("id")
	attendees, err := r.service.ListAttendees(ctx, partyID)
	if err != nil {
		return fmt.Errorf("failed to list attendees of party %d: %w", partyID, err)
	}

	var draft *models.Draft
	for _, a := range attendees {
		if a.ID == id {
			draft = models.EditDraft(a)
			break
		}
	}
	if draft == nil {
		return fmt.Errorf("%w: %d in party %d", shared.ErrAttendeeNotFound, id, partyID)
	}

	applyAttendeeFlags(cmd, &draft.Fields, false)
	if err := draft.Fields.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	r.logger.Info("editing attendee", "id", id)

	if _, err := r.service.UpdateAttendee(ctx, draft.Attendee()); err != nil {
		return fmt.Errorf("failed to edit attendee %d: %w", id, err)
	}
	return r.writePlain("✓ Updated attendee %d\n", id)
}

// PeopleDelete deletes an attendee.
func (r *Runner) PeopleDelete(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireService(); err != nil {
		return err
	}

	id := cmd.Int("id")
	r.logger.Info("deleting attendee", "id", id)

	if err := r.service.DeleteAttendee(ctx, id); err != nil {
		return fmt.Errorf("failed to delete attendee %d: %w", id, err)
	}
	return r.writePlain("✓ Deleted attendee %d\n", id)
}
