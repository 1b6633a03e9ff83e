package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lobbykit/frontdesk/internal/domain"
	"github.com/lobbykit/frontdesk/internal/handlers"
	"github.com/lobbykit/frontdesk/internal/service"
)

// ---------- Mocks ----------

type mockVisitorRepo struct {
	nextID   int
	visitors map[string]*domain.Visitor
	order    []string
	listErr  error
}

func newMockVisitorRepo() *mockVisitorRepo {
	return &mockVisitorRepo{
		nextID:   1,
		visitors: make(map[string]*domain.Visitor),
	}
}

func (m *mockVisitorRepo) List(_ context.Context) ([]domain.Visitor, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]domain.Visitor, 0, len(m.order))
	for i := len(m.order) - 1; i >= 0; i-- {
		out = append(out, *m.visitors[m.order[i]])
	}
	return out, nil
}

func (m *mockVisitorRepo) Create(_ context.Context, intake domain.VisitorIntake) (*domain.Visitor, error) {
	id := fmt.Sprintf("visitor-%d", m.nextID)
	m.nextID++

	now := time.Now()
	v := &domain.Visitor{
		ID:           id,
		Name:         intake.Name,
		Email:        intake.Email,
		Mobile:       intake.Mobile,
		Company:      intake.Company,
		PersonToMeet: intake.PersonToMeet,
		Department:   intake.Department,
		Purpose:      intake.Purpose,
		CheckInTime:  now,
		Status:       domain.VisitorCheckedIn,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.visitors[id] = v
	m.order = append(m.order, id)
	return v, nil
}

func (m *mockVisitorRepo) CheckOut(_ context.Context, id string) (*domain.Visitor, error) {
	v, exists := m.visitors[id]
	if !exists {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	v.CheckOutTime = &now
	v.Status = domain.VisitorCheckedOut
	v.UpdatedAt = now
	return v, nil
}

type mockPublisher struct{}

func (m *mockPublisher) Publish(context.Context, string, interface{}) error { return nil }
func (m *mockPublisher) Close() error                                      { return nil }

// ---------- Test Setup ----------

func setupTestServer() (*httptest.Server, *mockVisitorRepo) {
	repo := newMockVisitorRepo()
	svc := service.NewVisitorService(repo, &mockPublisher{})
	h := handlers.New(svc)

	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		r.Route("/visitors", func(r chi.Router) {
			r.Get("/", h.ListVisitors)
			r.Post("/", h.CheckInVisitor)
			r.Post("/{id}/checkout", h.CheckOutVisitor)
		})
		r.Get("/dashboard", h.Dashboard)
		r.Route("/reports", func(r chi.Router) {
			r.Get("/daily", h.DailyReport)
			r.Get("/companies", h.TopCompaniesReport)
			r.Get("/summary", h.SummaryReport)
			r.Get("/export", h.ExportReport)
		})
	})

	return httptest.NewServer(r), repo
}

func validIntake() map[string]string {
	return map[string]string{
		"name":           "John Smith",
		"email":          "john@example.com",
		"mobile":         "+1234567890",
		"company":        "Acme Corp",
		"person_to_meet": "Sarah Connor",
		"department":     "Engineering",
		"purpose":        "Interview",
	}
}

// ---------- Tests ----------

func TestCheckInVisitor_Created(t *testing.T) {
	server, _ := setupTestServer()
	defer server.Close()

	resp := postJSON(t, server.URL+"/v1/visitors", validIntake(), http.StatusCreated)
	defer resp.Body.Close()

	var visitor domain.Visitor
	json.NewDecoder(resp.Body).Decode(&visitor)

	if visitor.ID == "" {
		t.Fatal("Expected a server-assigned id")
	}
	if visitor.Name != "John Smith" {
		t.Fatalf("Expected name 'John Smith', got '%s'", visitor.Name)
	}
	if visitor.Status != domain.VisitorCheckedIn {
		t.Fatalf("Expected status checked-in, got %s", visitor.Status)
	}
	if visitor.CheckOutTime != nil {
		t.Fatal("New visitor must not have a check-out time")
	}
}

func TestCheckInVisitor_MissingFields(t *testing.T) {
	server, _ := setupTestServer()
	defer server.Close()

	body := map[string]string{"name": "John Smith"}
	resp := postJSON(t, server.URL+"/v1/visitors", body, http.StatusBadRequest)
	defer resp.Body.Close()

	var result struct {
		Error         string   `json:"error"`
		Code          string   `json:"code"`
		MissingFields []string `json:"missing_fields"`
	}
	json.NewDecoder(resp.Body).Decode(&result)

	if result.Code != "INVALID_INPUT" {
		t.Fatalf("Expected code INVALID_INPUT, got %s", result.Code)
	}

	want := []string{"email", "mobile", "person_to_meet"}
	if len(result.MissingFields) != len(want) {
		t.Fatalf("Expected missing fields %v, got %v", want, result.MissingFields)
	}
	for i, f := range want {
		if result.MissingFields[i] != f {
			t.Fatalf("Expected missing fields %v, got %v", want, result.MissingFields)
		}
	}
}

func TestCheckInVisitor_InvalidJSON(t *testing.T) {
	server, _ := setupTestServer()
	defer server.Close()

	resp, err := http.Post(server.URL+"/v1/visitors", "application/json",
		strings.NewReader("{not json"))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", resp.StatusCode)
	}
}

func TestListVisitors_EmptyIsArray(t *testing.T) {
	server, _ := setupTestServer()
	defer server.Close()

	resp := get(t, server.URL+"/v1/visitors", http.StatusOK)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if strings.TrimSpace(string(body)) != "[]" {
		t.Fatalf("Expected empty array, got %s", body)
	}
}

func TestListVisitors_ReturnsRecords(t *testing.T) {
	server, _ := setupTestServer()
	defer server.Close()

	postJSON(t, server.URL+"/v1/visitors", validIntake(), http.StatusCreated).Body.Close()

	resp := get(t, server.URL+"/v1/visitors", http.StatusOK)
	defer resp.Body.Close()

	var visitors []domain.Visitor
	json.NewDecoder(resp.Body).Decode(&visitors)

	if len(visitors) != 1 {
		t.Fatalf("Expected 1 visitor, got %d", len(visitors))
	}
	if visitors[0].Company != "Acme Corp" {
		t.Fatalf("Expected company 'Acme Corp', got '%s'", visitors[0].Company)
	}
}

func TestCheckOutVisitor_Success(t *testing.T) {
	server, _ := setupTestServer()
	defer server.Close()

	createResp := postJSON(t, server.URL+"/v1/visitors", validIntake(), http.StatusCreated)
	var created domain.Visitor
	json.NewDecoder(createResp.Body).Decode(&created)
	createResp.Body.Close()

	resp := postJSON(t, server.URL+"/v1/visitors/"+created.ID+"/checkout", nil, http.StatusOK)
	defer resp.Body.Close()

	var visitor domain.Visitor
	json.NewDecoder(resp.Body).Decode(&visitor)

	if visitor.Status != domain.VisitorCheckedOut {
		t.Fatalf("Expected status checked-out, got %s", visitor.Status)
	}
	if visitor.CheckOutTime == nil {
		t.Fatal("Expected a check-out time")
	}
}

func TestCheckOutVisitor_NotFound(t *testing.T) {
	server, _ := setupTestServer()
	defer server.Close()

	resp := postJSON(t, server.URL+"/v1/visitors/missing-id/checkout", nil, http.StatusNotFound)
	defer resp.Body.Close()

	var result struct {
		Code string `json:"code"`
	}
	json.NewDecoder(resp.Body).Decode(&result)

	if result.Code != "NOT_FOUND" {
		t.Fatalf("Expected code NOT_FOUND, got %s", result.Code)
	}
}

func TestListVisitors_StoreUnavailable(t *testing.T) {
	server, repo := setupTestServer()
	defer server.Close()

	repo.listErr = &domain.StoreError{
		Op:   "list",
		Kind: domain.StoreUnavailable,
		Err:  fmt.Errorf("connection refused"),
	}

	resp := get(t, server.URL+"/v1/visitors", http.StatusServiceUnavailable)
	defer resp.Body.Close()

	var result struct {
		Code string `json:"code"`
	}
	json.NewDecoder(resp.Body).Decode(&result)

	if result.Code != "STORE_UNAVAILABLE" {
		t.Fatalf("Expected code STORE_UNAVAILABLE, got %s", result.Code)
	}
}

func TestDashboard(t *testing.T) {
	server, _ := setupTestServer()
	defer server.Close()

	first := postJSON(t, server.URL+"/v1/visitors", validIntake(), http.StatusCreated)
	var created domain.Visitor
	json.NewDecoder(first.Body).Decode(&created)
	first.Body.Close()

	postJSON(t, server.URL+"/v1/visitors", validIntake(), http.StatusCreated).Body.Close()
	postJSON(t, server.URL+"/v1/visitors/"+created.ID+"/checkout", nil, http.StatusOK).Body.Close()

	resp := get(t, server.URL+"/v1/dashboard", http.StatusOK)
	defer resp.Body.Close()

	var result struct {
		TotalToday         int `json:"totalToday"`
		CurrentlyCheckedIn int `json:"currentlyCheckedIn"`
		CheckedOut         int `json:"checkedOut"`
	}
	json.NewDecoder(resp.Body).Decode(&result)

	if result.TotalToday != 2 {
		t.Fatalf("Expected 2 visitors today, got %d", result.TotalToday)
	}
	if result.CurrentlyCheckedIn != 1 {
		t.Fatalf("Expected 1 currently checked in, got %d", result.CurrentlyCheckedIn)
	}
	if result.CheckedOut != 1 {
		t.Fatalf("Expected 1 checked out, got %d", result.CheckedOut)
	}
}

func TestDailyReport(t *testing.T) {
	server, _ := setupTestServer()
	defer server.Close()

	postJSON(t, server.URL+"/v1/visitors", validIntake(), http.StatusCreated).Body.Close()

	resp := get(t, server.URL+"/v1/reports/daily", http.StatusOK)
	defer resp.Body.Close()

	var stats []struct {
		Date  string `json:"date"`
		Total int    `json:"total"`
	}
	json.NewDecoder(resp.Body).Decode(&stats)

	if len(stats) != 1 {
		t.Fatalf("Expected 1 active day, got %d", len(stats))
	}
	if stats[0].Date != time.Now().Format("2006-01-02") {
		t.Fatalf("Expected today's date, got %s", stats[0].Date)
	}
	if stats[0].Total != 1 {
		t.Fatalf("Expected 1 visitor, got %d", stats[0].Total)
	}
}

func TestDailyReport_InvalidDateRange(t *testing.T) {
	server, _ := setupTestServer()
	defer server.Close()

	get(t, server.URL+"/v1/reports/daily?from=not-a-date", http.StatusBadRequest).Body.Close()
}

func TestTopCompaniesReport(t *testing.T) {
	server, _ := setupTestServer()
	defer server.Close()

	postJSON(t, server.URL+"/v1/visitors", validIntake(), http.StatusCreated).Body.Close()
	postJSON(t, server.URL+"/v1/visitors", validIntake(), http.StatusCreated).Body.Close()

	other := validIntake()
	other["company"] = "Globex"
	postJSON(t, server.URL+"/v1/visitors", other, http.StatusCreated).Body.Close()

	resp := get(t, server.URL+"/v1/reports/companies", http.StatusOK)
	defer resp.Body.Close()

	var companies []struct {
		Company string `json:"company"`
		Count   int    `json:"count"`
	}
	json.NewDecoder(resp.Body).Decode(&companies)

	if len(companies) != 2 {
		t.Fatalf("Expected 2 companies, got %d", len(companies))
	}
	if companies[0].Company != "Acme Corp" || companies[0].Count != 2 {
		t.Fatalf("Expected Acme Corp with 2 visits first, got %+v", companies[0])
	}
}

func TestSummaryReport(t *testing.T) {
	server, _ := setupTestServer()
	defer server.Close()

	postJSON(t, server.URL+"/v1/visitors", validIntake(), http.StatusCreated).Body.Close()

	resp := get(t, server.URL+"/v1/reports/summary", http.StatusOK)
	defer resp.Body.Close()

	var result struct {
		TotalVisitors int `json:"totalVisitors"`
		ActiveDays    int `json:"activeDays"`
	}
	json.NewDecoder(resp.Body).Decode(&result)

	if result.TotalVisitors != 1 {
		t.Fatalf("Expected 1 visitor, got %d", result.TotalVisitors)
	}
	if result.ActiveDays != 1 {
		t.Fatalf("Expected 1 active day, got %d", result.ActiveDays)
	}
}

func TestExportReport_CSV(t *testing.T) {
	server, _ := setupTestServer()
	defer server.Close()

	postJSON(t, server.URL+"/v1/visitors", validIntake(), http.StatusCreated).Body.Close()

	resp := get(t, server.URL+"/v1/reports/export", http.StatusOK)
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("Expected text/csv content type, got %s", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Fatalf("Expected attachment disposition, got %s", cd)
	}

	body, _ := io.ReadAll(resp.Body)
	lines := strings.Split(strings.TrimSpace(string(body)), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected header plus one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Name,Company") {
		t.Fatalf("Unexpected CSV header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "John Smith") {
		t.Fatalf("Expected visitor row, got %s", lines[1])
	}
}

// ---------- Helpers ----------

func postJSON(t *testing.T, url string, data interface{}, expectedStatus int) *http.Response {
	t.Helper()

	resp, err := http.Post(url, "application/json", bytes.NewBuffer(jsonBytes(data)))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}

	if resp.StatusCode != expectedStatus {
		t.Fatalf("POST %s: expected status %d, got %d", url, expectedStatus, resp.StatusCode)
	}

	return resp
}

func get(t *testing.T, url string, expectedStatus int) *http.Response {
	t.Helper()

	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}

	if resp.StatusCode != expectedStatus {
		t.Fatalf("GET %s: expected status %d, got %d", url, expectedStatus, resp.StatusCode)
	}

	return resp
}

func jsonBytes(data interface{}) []byte {
	b, _ := json.Marshal(data)
	return b
}
