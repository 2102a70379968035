package services

import (
	"context"
	"fmt"
	"time"

	"confportal/internal/domain"
)

type eventQueryService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

// NewEventQueryService returns the service composing event listing filters.
func NewEventQueryService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventQueryService {
	return &eventQueryService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

// List validates the filter, captures the time snapshot once, and delegates to
// the repository. A malformed filter argument is rejected before any query
// executes, so a filter is never partially applied.
func (s *eventQueryService) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	for _, userID := range []*string{filter.OrganizedBy, filter.HasAttendee, filter.HasSlotWithSpeaker} {
		if userID != nil && *userID == "" {
			return nil, domain.ErrInvalidInput
		}
	}
	switch filter.Timeframe {
	case domain.TimeframeNone, domain.TimeframeUpcoming, domain.TimeframePast:
	default:
		return nil, domain.ErrInvalidInput
	}

	if filter.Now.IsZero() {
		filter.Now = s.now()
	}

	events, err := s.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}
