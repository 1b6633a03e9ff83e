package domain

import (
	"strings"
	"time"
)

type VisitorStatus string

const (
	VisitorCheckedIn  VisitorStatus = "checked-in"
	VisitorCheckedOut VisitorStatus = "checked-out"
)

func ParseVisitorStatus(s string) (VisitorStatus, bool) {
	switch VisitorStatus(s) {
	case VisitorCheckedIn, VisitorCheckedOut:
		return VisitorStatus(s), true
	default:
		return "", false
	}
}

type Visitor struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Mobile       string        `json:"mobile"`
	Company      string        `json:"company"`
	PersonToMeet string        `json:"personToMeet"`
	Department   string        `json:"department"`
	Purpose      string        `json:"purpose"`
	CheckInTime  time.Time     `json:"checkInTime"`
	CheckOutTime *time.Time    `json:"checkOutTime,omitempty"`
	Status       VisitorStatus `json:"status"`
	Photo        string        `json:"photo,omitempty"`
	BadgeNumber  string        `json:"badgeNumber,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// VisitorIntake is the front-desk form payload for a new check-in.
// Field names follow the wire contract of the visitors store.
type VisitorIntake struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Mobile       string `json:"mobile"`
	Company      string `json:"company"`
	PersonToMeet string `json:"person_to_meet"`
	Department   string `json:"department"`
	Purpose      string `json:"purpose"`
}

// Normalize trims surrounding whitespace from every field.
func (in VisitorIntake) Normalize() VisitorIntake {
	return VisitorIntake{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.TrimSpace(in.Email),
		Mobile:       strings.TrimSpace(in.Mobile),
		Company:      strings.TrimSpace(in.Company),
		PersonToMeet: strings.TrimSpace(in.PersonToMeet),
		Department:   strings.TrimSpace(in.Department),
		Purpose:      strings.TrimSpace(in.Purpose),
	}
}

func (v *Visitor) IsCheckedIn() bool {
	return v.Status == VisitorCheckedIn
}
