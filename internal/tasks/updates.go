package tasks

import (
	"fmt"

	"github.com/desertthunder/festa/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchParties Phase = iota
	FetchAttendees
	WriteExport
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case FetchParties:
		return "fetch_parties"
	case FetchAttendees:
		return "fetch_attendees"
	case WriteExport:
		return "write_export"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func fetchingPartiesUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchParties,
		Step:    1,
		Total:   1,
		Message: "Fetching parties...",
	}
}

func foundPartiesUpdate(parties []models.Party) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchParties,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d parties", len(parties)),
		Data:    parties,
	}
}

func fetchAttendeesUpdate(step, total int, p models.Party) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchAttendees,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching attendees: %s...", step, total, p.Name),
	}
}

func exportCompletedUpdate(step, total int, entry models.ManifestEntry) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteExport,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d attendees)", step, total, entry.Name, entry.Attendees),
		Data:    entry,
	}
}

func exportFailedUpdate(step, total int, entry models.ManifestEntry) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteExport,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %s", step, total, entry.Name, entry.Error),
		Data:    entry,
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Manifest written: %s", path),
	}
}
