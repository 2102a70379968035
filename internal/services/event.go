package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"confportal/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	trackRepo      domain.TrackRepository
	slotRepo       domain.SlotRepository
	organizerRepo  domain.OrganizerRepository
	userRepo       domain.UserRepository
	policy         domain.VisibilityPolicy
	contextTimeout time.Duration
}

// NewEventService creates the event management service.
func NewEventService(
	eventRepo domain.EventRepository,
	trackRepo domain.TrackRepository,
	slotRepo domain.SlotRepository,
	organizerRepo domain.OrganizerRepository,
	userRepo domain.UserRepository,
	policy domain.VisibilityPolicy,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		trackRepo:      trackRepo,
		slotRepo:       slotRepo,
		organizerRepo:  organizerRepo,
		userRepo:       userRepo,
		policy:         policy,
		contextTimeout: timeout,
	}
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// slugify lowercases the name and collapses runs of non-alphanumerics to dashes.
func slugify(name string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

func validateWindow(startsAt, endsAt *time.Time) error {
	if startsAt != nil && endsAt != nil && endsAt.Before(*startsAt) {
		return domain.NewValidationError("ends_at must not be before starts_at")
	}
	return nil
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if ownerID == "" {
		return domain.ErrInvalidInput
	}
	if strings.TrimSpace(event.Name) == "" {
		return domain.NewValidationError("name is required")
	}
	if err := validateWindow(event.StartsAt, event.EndsAt); err != nil {
		return err
	}

	event.ID = uuid.NewString()
	if event.Slug == "" {
		event.Slug = slugify(event.Name)
	}
	event.CreatedAt = time.Now()
	event.UpdatedAt = event.CreatedAt

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	if err := s.organizerRepo.Add(ctx, event.ID, ownerID); err != nil {
		return fmt.Errorf("add owner as organizer: %w", err)
	}
	return nil
}

// GetEvent resolves an event by ID or slug. Events that are not yet approved
// and published are only visible to their organizers; everyone else gets
// ErrNotFound so unapproved events do not leak their existence.
func (s *eventService) GetEvent(ctx context.Context, idOrSlug string, viewerID *string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, idOrSlug)
	if errors.Is(err, domain.ErrNotFound) {
		event, err = s.eventRepo.GetBySlug(ctx, idOrSlug)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	if err := requireVisible(ctx, s.policy, event, viewerID); err != nil {
		return nil, err
	}
	return event, nil
}

// requireOrganizer loads the event and returns ErrForbidden unless callerID organizes it.
func (s *eventService) requireOrganizer(ctx context.Context, eventID, callerID string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	admin, err := s.policy.IsAdministeredBy(ctx, event, &callerID)
	if err != nil {
		return nil, err
	}
	if !admin {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID, callerID string, upd domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.requireOrganizer(ctx, eventID, callerID)
	if err != nil {
		return nil, err
	}

	// Validate the resulting window, mixing updated and existing bounds.
	starts := event.StartsAt
	if upd.StartsAt != nil {
		starts = upd.StartsAt
	}
	ends := event.EndsAt
	if upd.EndsAt != nil {
		ends = upd.EndsAt
	}
	if err := validateWindow(starts, ends); err != nil {
		return nil, err
	}

	updated, err := s.eventRepo.Update(ctx, eventID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.requireOrganizer(ctx, eventID, callerID); err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) ApproveEvent(ctx context.Context, eventID, callerID string) (*domain.Event, error) {
	return s.stampLifecycle(ctx, eventID, callerID, s.eventRepo.SetApprovedAt)
}

func (s *eventService) PublishEvent(ctx context.Context, eventID, callerID string) (*domain.Event, error) {
	return s.stampLifecycle(ctx, eventID, callerID, s.eventRepo.SetPublishedAt)
}

func (s *eventService) stampLifecycle(ctx context.Context, eventID, callerID string, stamp func(context.Context, string, time.Time) (*domain.Event, error)) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.requireOrganizer(ctx, eventID, callerID); err != nil {
		return nil, err
	}
	updated, err := stamp(ctx, eventID, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("stamp event lifecycle: %w", err)
	}
	return updated, nil
}

func (s *eventService) AddOrganizer(ctx context.Context, eventID, userID, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if userID == "" {
		return domain.ErrInvalidInput
	}
	if _, err := s.requireOrganizer(ctx, eventID, callerID); err != nil {
		return err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	if err := s.organizerRepo.Add(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrAlreadyOrganizer) {
			return domain.ErrAlreadyOrganizer
		}
		return fmt.Errorf("add organizer: %w", err)
	}
	return nil
}

// AddOrganizerByEmail resolves the user by their email address and grants
// them the organizer role, for inviting people whose user ID the caller does
// not know.
func (s *eventService) AddOrganizerByEmail(ctx context.Context, eventID, email, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(email) == "" {
		return domain.ErrInvalidInput
	}
	if _, err := s.requireOrganizer(ctx, eventID, callerID); err != nil {
		return err
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get user by email: %w", err)
	}
	if err := s.organizerRepo.Add(ctx, eventID, user.ID); err != nil {
		if errors.Is(err, domain.ErrAlreadyOrganizer) {
			return domain.ErrAlreadyOrganizer
		}
		return fmt.Errorf("add organizer: %w", err)
	}
	return nil
}

func (s *eventService) RemoveOrganizer(ctx context.Context, eventID, userID, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.requireOrganizer(ctx, eventID, callerID); err != nil {
		return err
	}
	organizers, err := s.organizerRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("list organizers: %w", err)
	}
	if len(organizers) == 1 && organizers[0].UserID == userID {
		return domain.NewValidationError("an event must keep at least one organizer")
	}
	if err := s.organizerRepo.Remove(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("remove organizer: %w", err)
	}
	return nil
}

func (s *eventService) ListOrganizers(ctx context.Context, eventID string) ([]*domain.Organizer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	organizers, err := s.organizerRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list organizers: %w", err)
	}
	if organizers == nil {
		organizers = []*domain.Organizer{}
	}
	return organizers, nil
}

func (s *eventService) CreateTrack(ctx context.Context, eventID, callerID, name string, orderColumn int) (*domain.Track, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.requireOrganizer(ctx, eventID, callerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.NewValidationError("track name is required")
	}
	now := time.Now()
	track := domain.NewTrack(eventID, name, orderColumn, now, now)
	track.ID = uuid.NewString()
	if err := s.trackRepo.Create(ctx, track); err != nil {
		return nil, fmt.Errorf("create track: %w", err)
	}
	return track, nil
}

func (s *eventService) UpdateTrack(ctx context.Context, eventID, trackID, callerID string, name *string, orderColumn *int) (*domain.Track, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.requireOrganizer(ctx, eventID, callerID); err != nil {
		return nil, err
	}
	track, err := s.trackRepo.GetByID(ctx, trackID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get track: %w", err)
	}
	if track.EventID != eventID {
		return nil, domain.ErrNotFound
	}
	updated, err := s.trackRepo.Update(ctx, trackID, name, orderColumn)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update track: %w", err)
	}
	return updated, nil
}

// slotWindowRule builds the date rule for placing slots in the event's active
// period. Events without a complete window accept no slots.
func slotWindowRule(event *domain.Event) (domain.DateBetweenRule, error) {
	if event.StartsAt == nil || event.EndsAt == nil {
		return domain.DateBetweenRule{}, domain.NewValidationError("event has no date window; set starts_at and ends_at first")
	}
	return domain.NewDateBetweenRule(*event.StartsAt, *event.EndsAt), nil
}

func (s *eventService) CreateSlot(ctx context.Context, eventID, callerID string, slot *domain.Slot) (*domain.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.requireOrganizer(ctx, eventID, callerID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(slot.Title) == "" {
		return nil, domain.NewValidationError("slot title is required")
	}
	if slot.EndsAt.Before(slot.StartsAt) {
		return nil, domain.NewValidationError("ends_at must not be before starts_at")
	}

	rule, err := slotWindowRule(event)
	if err != nil {
		return nil, err
	}
	if !rule.PassesTime(slot.StartsAt) {
		return nil, domain.NewValidationError(rule.Message())
	}

	if slot.TrackID != nil {
		track, err := s.trackRepo.GetByID(ctx, *slot.TrackID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get track: %w", err)
		}
		if track.EventID != eventID {
			return nil, domain.ErrNotFound
		}
	}

	slot.ID = uuid.NewString()
	slot.EventID = eventID
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = slot.CreatedAt
	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create slot: %w", err)
	}
	if slot.SpeakerIDs == nil {
		slot.SpeakerIDs = []string{}
	}
	return slot, nil
}

func (s *eventService) RescheduleSlot(ctx context.Context, eventID, slotID, callerID string, trackID *string, startsAt, endsAt *time.Time) (*domain.Slot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.requireOrganizer(ctx, eventID, callerID)
	if err != nil {
		return nil, err
	}
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get slot: %w", err)
	}
	if slot.EventID != eventID {
		return nil, domain.ErrNotFound
	}

	newStart := slot.StartsAt
	if startsAt != nil {
		newStart = *startsAt
	}
	newEnd := slot.EndsAt
	if endsAt != nil {
		newEnd = *endsAt
	}
	if newEnd.Before(newStart) {
		return nil, domain.NewValidationError("ends_at must not be before starts_at")
	}
	rule, err := slotWindowRule(event)
	if err != nil {
		return nil, err
	}
	if !rule.PassesTime(newStart) {
		return nil, domain.NewValidationError(rule.Message())
	}

	if trackID != nil && *trackID != "" {
		track, err := s.trackRepo.GetByID(ctx, *trackID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get track: %w", err)
		}
		if track.EventID != eventID {
			return nil, domain.ErrNotFound
		}
	}

	updated, err := s.slotRepo.UpdateSchedule(ctx, slotID, trackID, startsAt, endsAt)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update slot schedule: %w", err)
	}
	return updated, nil
}

func (s *eventService) AddSlotSpeaker(ctx context.Context, eventID, slotID, userID, callerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if userID == "" {
		return domain.ErrInvalidInput
	}
	if _, err := s.requireOrganizer(ctx, eventID, callerID); err != nil {
		return err
	}
	slot, err := s.slotRepo.GetByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get slot: %w", err)
	}
	if slot.EventID != eventID {
		return domain.ErrNotFound
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get user: %w", err)
	}
	if err := s.slotRepo.AddSpeaker(ctx, slotID, userID); err != nil {
		return fmt.Errorf("add slot speaker: %w", err)
	}
	return nil
}
