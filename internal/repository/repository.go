package repository

import (
	"context"

	"github.com/lobbykit/frontdesk/internal/domain"
)

// VisitorRepository is the record store contract. Two adapters implement
// it: a Postgres adapter (raw SQL via pgx) and a REST adapter (managed
// backend exposing the visitors table as JSON rows). They are
// interchangeable; selection happens at wiring time.
type VisitorRepository interface {
	// List returns every record ordered by check-in time descending.
	List(ctx context.Context) ([]domain.Visitor, error)

	// Create persists a new record with a fresh id, check_in_time set to
	// now and status checked-in, and returns the row as the store sees it.
	Create(ctx context.Context, intake domain.VisitorIntake) (*domain.Visitor, error)

	// CheckOut stamps check_out_time=now and flips status to checked-out.
	// Re-applying it to an already checked-out record is allowed and
	// simply moves check_out_time forward. Returns domain.ErrNotFound if
	// no record matches id.
	CheckOut(ctx context.Context, id string) (*domain.Visitor, error)
}
