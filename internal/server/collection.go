package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/festa/internal/models"
	"github.com/desertthunder/festa/internal/repositories"
	"github.com/desertthunder/festa/internal/shared"
)

var _ Handler = (*CollectionHandler)(nil)

// CollectionHandler serves the party/person collection contract from a [repositories.Store].
type CollectionHandler struct {
	store  repositories.Store
	logger *log.Logger
	now    func() time.Time
	mux    *http.ServeMux
}

// NewCollectionHandler creates the handler. Parties created without a date are stamped with the current time.
func NewCollectionHandler(store repositories.Store, logger *log.Logger) *CollectionHandler {
	h := &CollectionHandler{store: store, logger: logger, now: time.Now, mux: http.NewServeMux()}

	h.mux.HandleFunc("GET /parties", h.listParties)
	h.mux.HandleFunc("POST /parties", h.createParty)
	h.mux.HandleFunc("GET /parties/{id}", h.getParty)
	h.mux.HandleFunc("PATCH /parties/{id}", h.updateParty)
	h.mux.HandleFunc("DELETE /parties/{id}", h.deleteParty)
	h.mux.HandleFunc("GET /people/party/{partyId}", h.listAttendees)
	h.mux.HandleFunc("POST /people", h.createAttendee)
	h.mux.HandleFunc("GET /people/{id}", h.getAttendee)
	h.mux.HandleFunc("PUT /people/{id}", h.updateAttendee)
	h.mux.HandleFunc("DELETE /people/{id}", h.deleteAttendee)

	return h
}

// Routes returns the path prefixes owned by the handler; method matching happens inside.
func (h *CollectionHandler) Routes() []string {
	return []string{"/parties", "/parties/", "/people", "/people/"}
}

func (h *CollectionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *CollectionHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

func (h *CollectionHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, shared.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, shared.ErrInvalidInput):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(r.PathValue(name))
	if err != nil || id <= 0 {
		return 0, shared.ErrInvalidInput
	}
	return id, nil
}

func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Join(shared.ErrInvalidInput, err)
	}
	return nil
}

func (h *CollectionHandler) partyInput(r *http.Request) (models.PartyInput, error) {
	var body models.PartyInput
	if err := decode(r, &body); err != nil {
		return body, err
	}
	if body.Date.IsZero() {
		body.Date = h.now()
	}
	return models.NewPartyInput(body.Name, body.Date), nil
}

func (h *CollectionHandler) listParties(w http.ResponseWriter, r *http.Request) {
	parties, err := h.store.ListParties(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, parties)
}

func (h *CollectionHandler) getParty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	party, err := h.store.GetParty(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, party)
}

func (h *CollectionHandler) createParty(w http.ResponseWriter, r *http.Request) {
	in, err := h.partyInput(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	party, err := h.store.CreateParty(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, party)
}

func (h *CollectionHandler) updateParty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	in, err := h.partyInput(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	party, err := h.store.UpdateParty(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, party)
}

func (h *CollectionHandler) deleteParty(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.store.DeleteParty(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CollectionHandler) listAttendees(w http.ResponseWriter, r *http.Request) {
	partyID, err := pathID(r, "partyId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	attendees, err := h.store.ListAttendees(r.Context(), partyID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, attendees)
}

func (h *CollectionHandler) getAttendee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	a, err := h.store.GetAttendee(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, a)
}

// createAttendee ignores any id in the body; the store assigns one.
func (h *CollectionHandler) createAttendee(w http.ResponseWriter, r *http.Request) {
	var fields models.AttendeeFields
	if err := decode(r, &fields); err != nil {
		h.writeError(w, r, err)
		return
	}
	a, err := h.store.CreateAttendee(r.Context(), fields)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, a)
}

// updateAttendee takes the id from the path over any id in the body.
func (h *CollectionHandler) updateAttendee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var body models.Attendee
	if err := decode(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	body.ID = id

	a, err := h.store.UpdateAttendee(r.Context(), body)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, a)
}

func (h *CollectionHandler) deleteAttendee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.store.DeleteAttendee(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
