package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/lobbykit/frontdesk/internal/handlers/response"
	"github.com/lobbykit/frontdesk/internal/reports"
	"github.com/lobbykit/frontdesk/pkg/logger"
)

type dashboardResponse struct {
	TotalToday         int `json:"totalToday"`
	CurrentlyCheckedIn int `json:"currentlyCheckedIn"`
	CheckedOut         int `json:"checkedOut"`
	AvgVisitMinutes    int `json:"avgVisitMinutes"`
}

// Dashboard serves the landing screen counters: today's visitors,
// currently checked in, checked out, and today's average visit length.
func (h *Handlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	visitors, err := h.visitorService.List(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	now := time.Now()
	today := reports.DateRange{From: now, To: now}

	writeJSON(w, http.StatusOK, dashboardResponse{
		TotalToday:         len(reports.TodaysRecords(visitors, now)),
		CurrentlyCheckedIn: len(reports.CurrentlyCheckedIn(visitors)),
		CheckedOut:         len(reports.CheckedOut(visitors)),
		AvgVisitMinutes:    reports.AverageVisitDurationMinutes(visitors, today),
	})
}

// DailyReport serves per-day totals for the requested date range.
func (h *Handlers) DailyReport(w http.ResponseWriter, r *http.Request) {
	rng, err := parseDateRange(r, time.Now())
	if err != nil {
		response.BadRequest(w, "Invalid date range, expected YYYY-MM-DD")
		return
	}

	visitors, err := h.visitorService.List(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	stats := reports.DailyStats(visitors, rng)
	if stats == nil {
		stats = []reports.DailyStat{}
	}
	writeJSON(w, http.StatusOK, stats)
}

// TopCompaniesReport serves the top-10 visiting companies in the range.
func (h *Handlers) TopCompaniesReport(w http.ResponseWriter, r *http.Request) {
	rng, err := parseDateRange(r, time.Now())
	if err != nil {
		response.BadRequest(w, "Invalid date range, expected YYYY-MM-DD")
		return
	}

	visitors, err := h.visitorService.List(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	companies := reports.TopCompanies(visitors, rng, 10)
	if companies == nil {
		companies = []reports.CompanyCount{}
	}
	writeJSON(w, http.StatusOK, companies)
}

type summaryResponse struct {
	TotalVisitors   int `json:"totalVisitors"`
	AvgVisitMinutes int `json:"avgVisitMinutes"`
	ActiveDays      int `json:"activeDays"`
}

// SummaryReport serves the headline numbers of the reports screen.
func (h *Handlers) SummaryReport(w http.ResponseWriter, r *http.Request) {
	rng, err := parseDateRange(r, time.Now())
	if err != nil {
		response.BadRequest(w, "Invalid date range, expected YYYY-MM-DD")
		return
	}

	visitors, err := h.visitorService.List(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, summaryResponse{
		TotalVisitors:   len(reports.InRange(visitors, rng)),
		AvgVisitMinutes: reports.AverageVisitDurationMinutes(visitors, rng),
		ActiveDays:      len(reports.DailyStats(visitors, rng)),
	})
}

// ExportReport streams the date-filtered records as a CSV download.
func (h *Handlers) ExportReport(w http.ResponseWriter, r *http.Request) {
	rng, err := parseDateRange(r, time.Now())
	if err != nil {
		response.BadRequest(w, "Invalid date range, expected YYYY-MM-DD")
		return
	}

	visitors, err := h.visitorService.List(r.Context())
	if err != nil {
		writeServiceError(r.Context(), w, err)
		return
	}

	filename := fmt.Sprintf("visitor_report_%s_to_%s.csv",
		rng.From.Format("2006-01-02"), rng.To.Format("2006-01-02"))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := reports.WriteCSV(w, visitors, rng); err != nil {
		// Headers are already sent; nothing left to do but log.
		logger.ErrorContext(r.Context(), "Failed to stream CSV report", "error", err)
	}
}
