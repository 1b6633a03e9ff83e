package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lobbykit/frontdesk/internal/domain"
	"github.com/lobbykit/frontdesk/internal/handlers/response"
)

// ListVisitors returns every record, newest check-in first.
func (h *Handlers) ListVisitors(w http.ResponseWriter, r *http.Request) {
	visitors, err := h.visitorService.List(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	if visitors == nil {
		visitors = []domain.Visitor{}
	}
	writeJSON(w, http.StatusOK, visitors)
}

// CheckInVisitor registers a new visitor from the front-desk form.
func (h *Handlers) CheckInVisitor(w http.ResponseWriter, r *http.Request) {
	var intake domain.VisitorIntake
	if err := json.NewDecoder(r.Body).Decode(&intake); err != nil {
		response.BadRequest(w, "Invalid JSON format")
		return
	}

	visitor, err := h.visitorService.CheckIn(r.Context(), intake)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusCreated, visitor)
}

// CheckOutVisitor stamps the check-out time for the given visitor.
func (h *Handlers) CheckOutVisitor(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Visitor ID is required")
		return
	}

	visitor, err := h.visitorService.CheckOut(r.Context(), id)
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, visitor)
}
