package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lobbykit/frontdesk/internal/domain"
	"github.com/lobbykit/frontdesk/internal/repository"
)

// VisitorRepo is the raw-SQL record store adapter. Every write uses a
// single INSERT/UPDATE ... RETURNING statement so the read-back of
// server-assigned fields is atomic with the write.
type VisitorRepo struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *VisitorRepo {
	return &VisitorRepo{pool: pool}
}

const visitorCols = `id, name, email, mobile, company, person_to_meet,
department, purpose, check_in_time, check_out_time, status,
photo_url, badge_number, created_at, updated_at`

func (r *VisitorRepo) List(ctx context.Context) ([]domain.Visitor, error) {
	const q = `SELECT ` + visitorCols + ` FROM visitors ORDER BY check_in_time DESC`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, classify("list", domain.StoreUnavailable, err)
	}
	defer rows.Close()

	var visitors []domain.Visitor
	for rows.Next() {
		v, err := scanVisitor(rows)
		if err != nil {
			return nil, classify("list", domain.StoreQuery, err)
		}
		visitors = append(visitors, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list", domain.StoreUnavailable, err)
	}
	return visitors, nil
}

func (r *VisitorRepo) Create(ctx context.Context, intake domain.VisitorIntake) (*domain.Visitor, error) {
	const q = `INSERT INTO visitors (
		id, name, email, mobile, company, person_to_meet,
		department, purpose, status, check_in_time
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,'checked-in',now())
	RETURNING ` + visitorCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	row := r.pool.QueryRow(ctx, q,
		uuid.NewString(),
		intake.Name,
		repository.ToNull(intake.Email),
		repository.ToNull(intake.Mobile),
		repository.ToNull(intake.Company),
		repository.ToNull(intake.PersonToMeet),
		repository.ToNull(intake.Department),
		repository.ToNull(intake.Purpose),
	)
	v, err := scanVisitor(row)
	if err != nil {
		return nil, classify("create", domain.StoreWrite, err)
	}
	return v, nil
}

func (r *VisitorRepo) CheckOut(ctx context.Context, id string) (*domain.Visitor, error) {
	const q = `UPDATE visitors
		SET check_out_time = now(), status = 'checked-out', updated_at = now()
		WHERE id = $1
		RETURNING ` + visitorCols

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	v, err := scanVisitor(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, classify("checkout", domain.StoreWrite, err)
	}
	return v, nil
}

func scanVisitor(row pgx.Row) (*domain.Visitor, error) {
	var (
		id, name, status                           string
		email, mobile, company, personToMeet       *string
		department, purpose, photoURL, badgeNumber *string
		checkIn, createdAt, updatedAt              time.Time
		checkOut                                   *time.Time
	)
	if err := row.Scan(
		&id, &name, &email, &mobile, &company, &personToMeet,
		&department, &purpose, &checkIn, &checkOut, &status,
		&photoURL, &badgeNumber, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	return repository.BuildVisitor(
		id, name,
		email, mobile, company, personToMeet, department, purpose,
		checkIn, checkOut,
		status,
		photoURL, badgeNumber,
		createdAt, updatedAt,
	)
}

// classify wraps a pgx error into the store taxonomy. SQL-level errors
// become query errors, context errors pass through untouched so
// cancellation stays visible to the caller, and everything else keeps
// the fallback kind for its operation.
func classify(op string, fallback domain.StoreErrorKind, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var se *domain.StoreError
	if errors.As(err, &se) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &domain.StoreError{Op: op, Kind: domain.StoreQuery, Err: err}
	}
	return &domain.StoreError{Op: op, Kind: fallback, Err: err}
}
