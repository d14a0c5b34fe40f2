package tasks

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/festa/internal/services"
)

// Exporter runs guest-list exports against a collection [services.Service].
type Exporter struct {
	srv    services.Service
	logger *log.Logger
}

// NewExporter creates an Exporter. A nil logger discards output.
func NewExporter(srv services.Service, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Exporter{srv: srv, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Exporter) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
