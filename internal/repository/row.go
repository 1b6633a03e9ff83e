package repository

import (
	"fmt"
	"time"

	"github.com/lobbykit/frontdesk/internal/domain"
)

// VisitorRow is the wire and storage shape of a visitor record:
// snake_case keys, nullable strings for optional fields, ISO-8601
// timestamps. Both adapters map through this package so the
// null ⇔ "" and status rules live in exactly one place.
type VisitorRow struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Email        *string `json:"email"`
	Mobile       *string `json:"mobile"`
	Company      *string `json:"company"`
	PersonToMeet *string `json:"person_to_meet"`
	Department   *string `json:"department"`
	Purpose      *string `json:"purpose"`
	CheckInTime  string  `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time"`
	Status       string  `json:"status"`
	PhotoURL     *string `json:"photo_url"`
	BadgeNumber  *string `json:"badge_number"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

// FromNull canonicalizes a nullable stored string to the domain side:
// NULL reads back as the empty string.
func FromNull(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ToNull canonicalizes a domain string for storage: empty means absent,
// so the stored side is NULL, never "".
func ToNull(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// BuildVisitor assembles a domain record from already-decoded row parts.
// A status outside the closed enum is corrupt data and fails rather than
// being coerced.
func BuildVisitor(
	id, name string,
	email, mobile, company, personToMeet, department, purpose *string,
	checkIn time.Time, checkOut *time.Time,
	status string,
	photoURL, badgeNumber *string,
	createdAt, updatedAt time.Time,
) (*domain.Visitor, error) {
	st, ok := domain.ParseVisitorStatus(status)
	if !ok {
		return nil, &domain.StoreError{
			Op:   "map",
			Kind: domain.StoreQuery,
			Err:  fmt.Errorf("unknown visitor status %q for id %s", status, id),
		}
	}
	return &domain.Visitor{
		ID:           id,
		Name:         name,
		Email:        FromNull(email),
		Mobile:       FromNull(mobile),
		Company:      FromNull(company),
		PersonToMeet: FromNull(personToMeet),
		Department:   FromNull(department),
		Purpose:      FromNull(purpose),
		CheckInTime:  checkIn,
		CheckOutTime: checkOut,
		Status:       st,
		Photo:        FromNull(photoURL),
		BadgeNumber:  FromNull(badgeNumber),
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

// ToVisitor decodes a wire row into a domain record.
func (r VisitorRow) ToVisitor() (*domain.Visitor, error) {
	checkIn, err := parseRowTime(r.CheckInTime, "check_in_time", r.ID)
	if err != nil {
		return nil, err
	}
	createdAt, err := parseRowTime(r.CreatedAt, "created_at", r.ID)
	if err != nil {
		return nil, err
	}
	updatedAt, err := parseRowTime(r.UpdatedAt, "updated_at", r.ID)
	if err != nil {
		return nil, err
	}

	var checkOut *time.Time
	if r.CheckOutTime != nil {
		t, err := parseRowTime(*r.CheckOutTime, "check_out_time", r.ID)
		if err != nil {
			return nil, err
		}
		checkOut = &t
	}

	return BuildVisitor(
		r.ID, r.Name,
		r.Email, r.Mobile, r.Company, r.PersonToMeet, r.Department, r.Purpose,
		checkIn, checkOut,
		r.Status,
		r.PhotoURL, r.BadgeNumber,
		createdAt, updatedAt,
	)
}

// NewRow encodes a domain record back into the wire shape.
func NewRow(v *domain.Visitor) VisitorRow {
	row := VisitorRow{
		ID:           v.ID,
		Name:         v.Name,
		Email:        ToNull(v.Email),
		Mobile:       ToNull(v.Mobile),
		Company:      ToNull(v.Company),
		PersonToMeet: ToNull(v.PersonToMeet),
		Department:   ToNull(v.Department),
		Purpose:      ToNull(v.Purpose),
		CheckInTime:  v.CheckInTime.Format(time.RFC3339),
		Status:       string(v.Status),
		PhotoURL:     ToNull(v.Photo),
		BadgeNumber:  ToNull(v.BadgeNumber),
		CreatedAt:    v.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    v.UpdatedAt.Format(time.RFC3339),
	}
	if v.CheckOutTime != nil {
		s := v.CheckOutTime.Format(time.RFC3339)
		row.CheckOutTime = &s
	}
	return row
}

func parseRowTime(s, field, id string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, &domain.StoreError{
			Op:   "map",
			Kind: domain.StoreQuery,
			Err:  fmt.Errorf("bad %s %q for id %s: %w", field, s, id, err),
		}
	}
	return t, nil
}
