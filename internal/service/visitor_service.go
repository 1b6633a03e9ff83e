package service

import (
	"context"
	"fmt"
	"time"

	"github.com/lobbykit/frontdesk/internal/domain"
	"github.com/lobbykit/frontdesk/internal/repository"
	"github.com/lobbykit/frontdesk/pkg/events"
	"github.com/lobbykit/frontdesk/pkg/logger"
)

type VisitorService interface {
	CheckIn(ctx context.Context, intake domain.VisitorIntake) (*domain.Visitor, error)
	CheckOut(ctx context.Context, id string) (*domain.Visitor, error)
	List(ctx context.Context) ([]domain.Visitor, error)
}

// requiredFields are validated before the repository is touched; names
// match the wire contract so the front end can map them onto the form.
var requiredFields = []struct {
	name  string
	value func(domain.VisitorIntake) string
}{
	{"name", func(in domain.VisitorIntake) string { return in.Name }},
	{"email", func(in domain.VisitorIntake) string { return in.Email }},
	{"mobile", func(in domain.VisitorIntake) string { return in.Mobile }},
	{"person_to_meet", func(in domain.VisitorIntake) string { return in.PersonToMeet }},
}

type visitorService struct {
	repo     repository.VisitorRepository
	eventBus events.Publisher
}

func NewVisitorService(repo repository.VisitorRepository, eventBus events.Publisher) VisitorService {
	return &visitorService{
		repo:     repo,
		eventBus: eventBus,
	}
}

func (s *visitorService) CheckIn(ctx context.Context, intake domain.VisitorIntake) (*domain.Visitor, error) {
	intake = intake.Normalize()

	var missing []string
	for _, f := range requiredFields {
		if f.value(intake) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return nil, &domain.ValidationError{MissingFields: missing}
	}

	visitor, err := s.repo.Create(ctx, intake)
	if err != nil {
		return nil, fmt.Errorf("failed to check in visitor: %w", err)
	}

	event := events.VisitorCheckedInEvent{
		VisitorID:    visitor.ID,
		Name:         visitor.Name,
		Email:        visitor.Email,
		Company:      visitor.Company,
		PersonToMeet: visitor.PersonToMeet,
		CheckInTime:  visitor.CheckInTime,
	}
	if err := s.eventBus.Publish(ctx, events.VisitorCheckedIn, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish visitor checked in event", "error", err, "visitor_id", visitor.ID)
	}

	return visitor, nil
}

// CheckOut is idempotent: checking out an already checked-out visitor
// moves check_out_time to now and reports success both times.
func (s *visitorService) CheckOut(ctx context.Context, id string) (*domain.Visitor, error) {
	visitor, err := s.repo.CheckOut(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to check out visitor %s: %w", id, err)
	}

	checkOut := time.Now()
	if visitor.CheckOutTime != nil {
		checkOut = *visitor.CheckOutTime
	}
	event := events.VisitorCheckedOutEvent{
		VisitorID:       visitor.ID,
		Name:            visitor.Name,
		Email:           visitor.Email,
		CheckOutTime:    checkOut,
		DurationMinutes: int(checkOut.Sub(visitor.CheckInTime).Minutes()),
	}
	if err := s.eventBus.Publish(ctx, events.VisitorCheckedOut, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish visitor checked out event", "error", err, "visitor_id", visitor.ID)
	}

	return visitor, nil
}

func (s *visitorService) List(ctx context.Context) ([]domain.Visitor, error) {
	return s.repo.List(ctx)
}
