package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/lobbykit/frontdesk/internal/domain"
	"github.com/lobbykit/frontdesk/internal/repository"
)

// VisitorRepo is the managed-backend record store adapter: the visitors
// table is exposed as JSON rows over HTTP and this client speaks the
// same wire contract the raw-SQL adapter stores.
//
// Create and CheckOut are a write followed by the server's read-back of
// the row. The backend returns the post-write representation in one
// response, but unlike the SQL adapter's RETURNING statement that pair
// is not guaranteed atomic server-side; a concurrent reader may observe
// the row mid-transition.
type VisitorRepo struct {
	client *resty.Client
}

func New(baseURL string) *VisitorRepo {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &VisitorRepo{client: client}
}

type errorBody struct {
	Error string `json:"error"`
}

// insertRow is the insert payload: server assigns id and check_in_time.
type insertRow struct {
	Name         string  `json:"name"`
	Email        *string `json:"email"`
	Mobile       *string `json:"mobile"`
	Company      *string `json:"company"`
	PersonToMeet *string `json:"person_to_meet"`
	Department   *string `json:"department"`
	Purpose      *string `json:"purpose"`
	Status       string  `json:"status"`
}

// checkOutPatch limits the update to the settable columns.
type checkOutPatch struct {
	CheckOutTime string `json:"check_out_time"`
	Status       string `json:"status"`
}

func (r *VisitorRepo) List(ctx context.Context) ([]domain.Visitor, error) {
	var rows []repository.VisitorRow
	var apiErr errorBody

	resp, err := r.client.R().
		SetContext(ctx).
		SetResult(&rows).
		SetError(&apiErr).
		Get("/visitors")
	if err != nil {
		return nil, transportErr("list", err)
	}
	if resp.IsError() {
		return nil, &domain.StoreError{
			Op:   "list",
			Kind: domain.StoreQuery,
			Err:  fmt.Errorf("status %d: %s", resp.StatusCode(), apiErr.Error),
		}
	}

	visitors := make([]domain.Visitor, 0, len(rows))
	for _, row := range rows {
		v, err := row.ToVisitor()
		if err != nil {
			return nil, err
		}
		visitors = append(visitors, *v)
	}
	return visitors, nil
}

func (r *VisitorRepo) Create(ctx context.Context, intake domain.VisitorIntake) (*domain.Visitor, error) {
	payload := insertRow{
		Name:         intake.Name,
		Email:        repository.ToNull(intake.Email),
		Mobile:       repository.ToNull(intake.Mobile),
		Company:      repository.ToNull(intake.Company),
		PersonToMeet: repository.ToNull(intake.PersonToMeet),
		Department:   repository.ToNull(intake.Department),
		Purpose:      repository.ToNull(intake.Purpose),
		Status:       string(domain.VisitorCheckedIn),
	}

	var row repository.VisitorRow
	var apiErr errorBody

	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&row).
		SetError(&apiErr).
		Post("/visitors")
	if err != nil {
		return nil, transportErr("create", err)
	}
	if resp.IsError() {
		return nil, &domain.StoreError{
			Op:   "create",
			Kind: domain.StoreWrite,
			Err:  fmt.Errorf("status %d: %s", resp.StatusCode(), apiErr.Error),
		}
	}
	return row.ToVisitor()
}

func (r *VisitorRepo) CheckOut(ctx context.Context, id string) (*domain.Visitor, error) {
	patch := checkOutPatch{
		CheckOutTime: time.Now().UTC().Format(time.RFC3339),
		Status:       string(domain.VisitorCheckedOut),
	}

	var row repository.VisitorRow
	var apiErr errorBody

	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(patch).
		SetResult(&row).
		SetError(&apiErr).
		Patch("/visitors/" + id)
	if err != nil {
		return nil, transportErr("checkout", err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, domain.ErrNotFound
	}
	if resp.IsError() {
		return nil, &domain.StoreError{
			Op:   "checkout",
			Kind: domain.StoreWrite,
			Err:  fmt.Errorf("status %d: %s", resp.StatusCode(), apiErr.Error),
		}
	}
	return row.ToVisitor()
}

func transportErr(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &domain.StoreError{Op: op, Kind: domain.StoreUnavailable, Err: err}
}
