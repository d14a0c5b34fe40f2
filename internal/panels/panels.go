package panels

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Alert messages recorded when a request fails.
const (
	AlertAddParty       = "failed to add party"
	AlertEditParty      = "failed to edit party"
	AlertDeleteParty    = "failed to delete party"
	AlertLoadParties    = "failed to load parties"
	AlertSaveAttendee   = "failed to save attendee"
	AlertDeleteAttendee = "failed to delete attendee"
	AlertLoadAttendees  = "failed to load attendees"
)

// OpError reports a failed panel operation. Op is the alert shown to the user.
type OpError struct {
	Op  string
	Err error
}

func (e *OpError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// Options configures the panels.
type Options struct {
	Logger *log.Logger
	Now    func() time.Time // stamps party dates, defaults to [time.Now]
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
