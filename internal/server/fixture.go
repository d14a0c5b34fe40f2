package server

import (
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/festa/internal/repositories"
)

// NewFixtureRouter wires the collection handler over store with recovery, request ids and request logging.
func NewFixtureRouter(store repositories.Store, logger *log.Logger) *BasicRouter {
	r := NewBasicRouter()
	r.Use(Recover(logger), RequestID(), Logging(logger))
	r.Handler(NewCollectionHandler(store, logger))
	r.Handle(http.MethodGet, "/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	}))
	return r
}
