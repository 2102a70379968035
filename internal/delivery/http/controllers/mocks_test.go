package controllers

import (
	"context"
	"io"
	"log/slog"
	"time"

	"confportal/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests. Each
// operation returns the configured err or the configured value.
type fakeEventService struct {
	err             error
	event           *domain.Event
	track           *domain.Track
	slot            *domain.Slot
	organizers      []*domain.Organizer
	lastViewer      *string
	lastCallerID    string
	lastCreateOwner string
	lastAddedUserID string
	lastAddedEmail  string
}

func (f *fakeEventService) CreateEvent(ctx context.Context, event *domain.Event, ownerID string) error {
	f.lastCreateOwner = ownerID
	if f.err != nil {
		return f.err
	}
	event.ID = "ev-created"
	event.Slug = "ev-created-slug"
	return nil
}

func (f *fakeEventService) GetEvent(ctx context.Context, idOrSlug string, viewerID *string) (*domain.Event, error) {
	f.lastViewer = viewerID
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) UpdateEvent(ctx context.Context, eventID, callerID string, upd domain.EventUpdate) (*domain.Event, error) {
	f.lastCallerID = callerID
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) DeleteEvent(ctx context.Context, eventID, callerID string) error {
	f.lastCallerID = callerID
	return f.err
}

func (f *fakeEventService) ApproveEvent(ctx context.Context, eventID, callerID string) (*domain.Event, error) {
	f.lastCallerID = callerID
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) PublishEvent(ctx context.Context, eventID, callerID string) (*domain.Event, error) {
	f.lastCallerID = callerID
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func (f *fakeEventService) AddOrganizer(ctx context.Context, eventID, userID, callerID string) error {
	f.lastAddedUserID = userID
	return f.err
}

func (f *fakeEventService) AddOrganizerByEmail(ctx context.Context, eventID, email, callerID string) error {
	f.lastAddedEmail = email
	return f.err
}

func (f *fakeEventService) RemoveOrganizer(ctx context.Context, eventID, userID, callerID string) error {
	return f.err
}

func (f *fakeEventService) ListOrganizers(ctx context.Context, eventID string) ([]*domain.Organizer, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.organizers, nil
}

func (f *fakeEventService) CreateTrack(ctx context.Context, eventID, callerID, name string, orderColumn int) (*domain.Track, error) {
	f.lastCallerID = callerID
	if f.err != nil {
		return nil, f.err
	}
	return f.track, nil
}

func (f *fakeEventService) UpdateTrack(ctx context.Context, eventID, trackID, callerID string, name *string, orderColumn *int) (*domain.Track, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.track, nil
}

func (f *fakeEventService) CreateSlot(ctx context.Context, eventID, callerID string, slot *domain.Slot) (*domain.Slot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slot, nil
}

func (f *fakeEventService) RescheduleSlot(ctx context.Context, eventID, slotID, callerID string, trackID *string, startsAt, endsAt *time.Time) (*domain.Slot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.slot, nil
}

func (f *fakeEventService) AddSlotSpeaker(ctx context.Context, eventID, slotID, userID, callerID string) error {
	return f.err
}

// fakeQueryService implements domain.EventQueryService.
type fakeQueryService struct {
	err        error
	events     []*domain.Event
	lastFilter *domain.EventFilter
}

func (f *fakeQueryService) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	f.lastFilter = &filter
	if f.err != nil {
		return nil, f.err
	}
	if f.events == nil {
		return []*domain.Event{}, nil
	}
	return f.events, nil
}

// fakeScheduleService implements domain.ScheduleService.
type fakeScheduleService struct {
	err        error
	schedule   *domain.EventSchedule
	lastViewer *string
}

func (f *fakeScheduleService) GetEventSchedule(ctx context.Context, eventID string, viewerID *string) (*domain.EventSchedule, error) {
	f.lastViewer = viewerID
	if f.err != nil {
		return nil, f.err
	}
	return f.schedule, nil
}

// fakeAttendeeService implements domain.AttendeeService.
type fakeAttendeeService struct {
	err      error
	attendee *domain.Attendee
	created  bool
}

func (f *fakeAttendeeService) RegisterForEvent(ctx context.Context, eventID, userID string) (*domain.Attendee, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return f.attendee, f.created, nil
}

func (f *fakeAttendeeService) CancelRegistration(ctx context.Context, eventID, userID string) error {
	return f.err
}

func (f *fakeAttendeeService) ListEventsAttending(ctx context.Context, userID string) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []*domain.Event{}, nil
}

// fakeReviewService implements domain.ReviewService.
type fakeReviewService struct {
	err     error
	review  *domain.Review
	reviews []*domain.Review
}

func (f *fakeReviewService) SubmitReview(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.review != nil {
		return f.review, nil
	}
	review.ID = "rev-created"
	return review, nil
}

func (f *fakeReviewService) ListEventReviews(ctx context.Context, eventID string) ([]*domain.Review, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.reviews == nil {
		return []*domain.Review{}, nil
	}
	return f.reviews, nil
}
