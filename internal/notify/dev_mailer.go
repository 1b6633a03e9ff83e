package notify

import (
	"time"

	"github.com/lobbykit/frontdesk/pkg/logger"
)

// DevMailer logs emails instead of sending them. Default in development.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendCheckInConfirmation(toEmail, toName, personToMeet string, checkInTime time.Time) error {
	logger.Info("[DEV MAIL] Check-in confirmation",
		"to", toEmail,
		"name", toName,
		"person_to_meet", personToMeet,
		"check_in_time", checkInTime.Format(time.RFC3339),
	)
	return nil
}

func (d *DevMailer) SendCheckOutReceipt(toEmail, toName string, checkOutTime time.Time, durationMinutes int) error {
	logger.Info("[DEV MAIL] Check-out receipt",
		"to", toEmail,
		"name", toName,
		"check_out_time", checkOutTime.Format(time.RFC3339),
		"duration_minutes", durationMinutes,
	)
	return nil
}
