package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrNotFound           = fmt.Errorf("not found")
	ErrPartyNotFound      = fmt.Errorf("party %w", ErrNotFound)
	ErrAttendeeNotFound   = fmt.Errorf("attendee %w", ErrNotFound)

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")

	// UI state errors
	ErrNotSelected = fmt.Errorf("party is not selected")
	ErrNoDraft     = fmt.Errorf("no draft open")
)
