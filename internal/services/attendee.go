package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"confportal/internal/domain"
)

type attendeeService struct {
	eventRepo      domain.EventRepository
	attendeeRepo   domain.AttendeeRepository
	queryService   domain.EventQueryService
	policy         domain.VisibilityPolicy
	contextTimeout time.Duration
}

// NewAttendeeService creates the attendee registration service.
func NewAttendeeService(
	eventRepo domain.EventRepository,
	attendeeRepo domain.AttendeeRepository,
	queryService domain.EventQueryService,
	policy domain.VisibilityPolicy,
	timeout time.Duration,
) domain.AttendeeService {
	return &attendeeService{
		eventRepo:      eventRepo,
		attendeeRepo:   attendeeRepo,
		queryService:   queryService,
		policy:         policy,
		contextTimeout: timeout,
	}
}

func (s *attendeeService) RegisterForEvent(ctx context.Context, eventID, userID string) (*domain.Attendee, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if userID == "" {
		return nil, false, domain.ErrInvalidInput
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, false, domain.ErrNotFound
		}
		return nil, false, fmt.Errorf("get event: %w", err)
	}
	// A draft must stay invisible here too, or registering would confirm
	// its existence.
	if err := requireVisible(ctx, s.policy, event, &userID); err != nil {
		return nil, false, err
	}

	// Registration is idempotent: an existing row is returned as-is.
	if existing, err := s.attendeeRepo.GetByEventAndUser(ctx, eventID, userID); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, fmt.Errorf("get attendee: %w", err)
	}

	now := time.Now()
	attendee := domain.NewAttendee(eventID, userID, now, now)
	attendee.ID = uuid.NewString()
	if err := s.attendeeRepo.Create(ctx, attendee); err != nil {
		return nil, false, fmt.Errorf("create attendee: %w", err)
	}
	return attendee, true, nil
}

func (s *attendeeService) CancelRegistration(ctx context.Context, eventID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if userID == "" {
		return domain.ErrInvalidInput
	}
	if err := s.attendeeRepo.Delete(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete attendee: %w", err)
	}
	return nil
}

func (s *attendeeService) ListEventsAttending(ctx context.Context, userID string) ([]*domain.Event, error) {
	if userID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.queryService.List(ctx, domain.EventFilter{HasAttendee: &userID})
}
