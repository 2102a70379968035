package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"confportal/internal/domain"
)

type scheduleService struct {
	eventRepo      domain.EventRepository
	trackRepo      domain.TrackRepository
	slotRepo       domain.SlotRepository
	policy         domain.VisibilityPolicy
	contextTimeout time.Duration
}

// NewScheduleService returns the service assembling presentation-ready event schedules.
func NewScheduleService(
	eventRepo domain.EventRepository,
	trackRepo domain.TrackRepository,
	slotRepo domain.SlotRepository,
	policy domain.VisibilityPolicy,
	timeout time.Duration,
) domain.ScheduleService {
	return &scheduleService{
		eventRepo:      eventRepo,
		trackRepo:      trackRepo,
		slotRepo:       slotRepo,
		policy:         policy,
		contextTimeout: timeout,
	}
}

// GetEventSchedule groups the event's slots under its tracks. Tracks arrive
// ordered by order_column and slots by starts_at, so the grouping preserves
// both orderings. Slots referencing no track, or a track that no longer
// exists, land in the unassigned bucket rather than being dropped. Draft
// events are only visible to their organizers, same as the detail lookup.
func (s *scheduleService) GetEventSchedule(ctx context.Context, eventID string, viewerID *string) (*domain.EventSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err := requireVisible(ctx, s.policy, event, viewerID); err != nil {
		return nil, err
	}

	tracks, err := s.trackRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list tracks: %w", err)
	}

	slots, err := s.slotRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	slotsByTrack := make(map[string][]*domain.Slot)
	trackIDs := make(map[string]struct{}, len(tracks))
	for _, t := range tracks {
		trackIDs[t.ID] = struct{}{}
	}

	unassigned := []*domain.Slot{}
	for _, slot := range slots {
		if slot.TrackID == nil {
			unassigned = append(unassigned, slot)
			continue
		}
		if _, ok := trackIDs[*slot.TrackID]; !ok {
			unassigned = append(unassigned, slot)
			continue
		}
		slotsByTrack[*slot.TrackID] = append(slotsByTrack[*slot.TrackID], slot)
	}

	trackWithSlots := make([]*domain.TrackWithSlots, 0, len(tracks))
	for _, track := range tracks {
		slotList := slotsByTrack[track.ID]
		if slotList == nil {
			slotList = []*domain.Slot{}
		}
		trackWithSlots = append(trackWithSlots, &domain.TrackWithSlots{
			Track: track,
			Slots: slotList,
		})
	}

	return &domain.EventSchedule{
		Event:      event,
		Tracks:     trackWithSlots,
		Unassigned: unassigned,
	}, nil
}
