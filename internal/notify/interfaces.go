package notify

import "time"

type Service interface {
	SendCheckInConfirmation(toEmail, toName, personToMeet string, checkInTime time.Time) error
	SendCheckOutReceipt(toEmail, toName string, checkOutTime time.Time, durationMinutes int) error
}
