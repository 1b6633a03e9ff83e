package notify

import (
	"encoding/json"

	"github.com/lobbykit/frontdesk/pkg/events"
	"github.com/lobbykit/frontdesk/pkg/logger"
)

// Listener consumes visitor lifecycle events and mails the visitor.
// Notification failures are logged, never propagated back into the
// check-in/check-out flow.
type Listener struct {
	bus    events.Subscriber
	mailer Service
}

func NewListener(bus events.Subscriber, mailer Service) *Listener {
	return &Listener{bus: bus, mailer: mailer}
}

// Start registers the queue subscriptions. Visitors without an email on
// file are skipped.
func (l *Listener) Start() error {
	if err := l.bus.QueueSubscribe(events.VisitorCheckedIn, "notify", l.onCheckedIn); err != nil {
		return err
	}
	return l.bus.QueueSubscribe(events.VisitorCheckedOut, "notify", l.onCheckedOut)
}

func (l *Listener) onCheckedIn(msg *events.Message) {
	var event events.VisitorCheckedInEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Error("Failed to decode checked in event", "error", err)
		return
	}
	if event.Email == "" {
		return
	}

	if err := l.mailer.SendCheckInConfirmation(event.Email, event.Name, event.PersonToMeet, event.CheckInTime); err != nil {
		logger.Error("Failed to send check-in confirmation", "error", err, "visitor_id", event.VisitorID)
	}
}

func (l *Listener) onCheckedOut(msg *events.Message) {
	var event events.VisitorCheckedOutEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Error("Failed to decode checked out event", "error", err)
		return
	}
	if event.Email == "" {
		return
	}

	if err := l.mailer.SendCheckOutReceipt(event.Email, event.Name, event.CheckOutTime, event.DurationMinutes); err != nil {
		logger.Error("Failed to send check-out receipt", "error", err, "visitor_id", event.VisitorID)
	}
}
