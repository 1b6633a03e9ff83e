package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/lobbykit/frontdesk/internal/domain"
	"github.com/lobbykit/frontdesk/internal/handlers/response"
	"github.com/lobbykit/frontdesk/internal/reports"
	"github.com/lobbykit/frontdesk/internal/service"
	"github.com/lobbykit/frontdesk/pkg/logger"
)

type Handlers struct {
	visitorService service.VisitorService
}

func New(visitorService service.VisitorService) *Handlers {
	return &Handlers{
		visitorService: visitorService,
	}
}

// Helper functions for common response patterns
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError maps the error taxonomy onto HTTP statuses so every
// failure mode stays distinguishable for the front end.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		response.ValidationFailed(w, vErr.MissingFields)
		return
	}

	if errors.Is(err, domain.ErrNotFound) {
		response.NotFound(w, "Visitor not found")
		return
	}

	if errors.Is(err, context.Canceled) {
		// Caller went away; 499 in the nginx tradition.
		response.WriteError(w, 499, "Request cancelled", response.CodeCancelled)
		return
	}

	if se, ok := domain.AsStoreError(err); ok {
		logger.ErrorContext(ctx, "Visitor store failure", "op", se.Op, "kind", string(se.Kind), "error", se.Err)
		switch se.Kind {
		case domain.StoreUnavailable:
			response.WriteError(w, http.StatusServiceUnavailable, "Visitor store unavailable", response.CodeStoreUnavailable)
		case domain.StoreQuery:
			response.WriteError(w, http.StatusInternalServerError, "Visitor store query failed", response.CodeStoreQuery)
		default:
			response.WriteError(w, http.StatusInternalServerError, "Visitor store write failed", response.CodeStoreWrite)
		}
		return
	}

	logger.ErrorContext(ctx, "Unhandled service error", "error", err)
	response.InternalError(w, "Internal server error")
}

// parseDateRange reads from/to query params (YYYY-MM-DD, server local
// time), defaulting to the reports screen's last-7-days window.
func parseDateRange(r *http.Request, now time.Time) (reports.DateRange, error) {
	rng := reports.LastDays(now, 7)

	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, now.Location())
		if err != nil {
			return reports.DateRange{}, err
		}
		rng.From = t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, now.Location())
		if err != nil {
			return reports.DateRange{}, err
		}
		rng.To = t
	}
	return rng, nil
}
