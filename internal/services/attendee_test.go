package services

import (
	"context"
	"testing"
	"time"

	"confportal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttendeeServiceForTest(eventRepo *mockEventRepository, attendeeRepo *mockAttendeeRepository, organizerRepo *mockOrganizerRepository) domain.AttendeeService {
	query := NewEventQueryService(eventRepo, time.Second)
	policy := NewVisibilityPolicy(organizerRepo, attendeeRepo)
	return NewAttendeeService(eventRepo, attendeeRepo, query, policy, time.Second)
}

func TestAttendeeService_RegisterForEvent(t *testing.T) {
	ctx := context.Background()
	eventRepo := newMockEventRepository()
	attendeeRepo := newMockAttendeeRepository()
	svc := newAttendeeServiceForTest(eventRepo, attendeeRepo, newMockOrganizerRepository())

	eventRepo.add(liveEvent("ev-1", "conf"))

	first, created, err := svc.RegisterForEvent(ctx, "ev-1", "user-1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, first.ID)

	// Registering twice keeps the original row.
	second, created, err := svc.RegisterForEvent(ctx, "ev-1", "user-1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestAttendeeService_RegisterForEvent_Errors(t *testing.T) {
	ctx := context.Background()
	svc := newAttendeeServiceForTest(newMockEventRepository(), newMockAttendeeRepository(), newMockOrganizerRepository())

	_, _, err := svc.RegisterForEvent(ctx, "ev-missing", "user-1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = svc.RegisterForEvent(ctx, "ev-1", "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAttendeeService_RegisterForDraftIsNotFound(t *testing.T) {
	ctx := context.Background()
	eventRepo := newMockEventRepository()
	organizerRepo := newMockOrganizerRepository()
	svc := newAttendeeServiceForTest(eventRepo, newMockAttendeeRepository(), organizerRepo)

	eventRepo.add(&domain.Event{ID: "ev-draft", Name: "secret conf"})
	organizerRepo.add("ev-draft", "organizer-1")

	// Registering for a draft would confirm its existence, so it answers the
	// same way the detail lookup does.
	_, _, err := svc.RegisterForEvent(ctx, "ev-draft", "user-1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	// The organizer can still register for their own draft.
	attendee, created, err := svc.RegisterForEvent(ctx, "ev-draft", "organizer-1")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "organizer-1", attendee.UserID)
}

func TestAttendeeService_CancelRegistration(t *testing.T) {
	ctx := context.Background()
	eventRepo := newMockEventRepository()
	attendeeRepo := newMockAttendeeRepository()
	svc := newAttendeeServiceForTest(eventRepo, attendeeRepo, newMockOrganizerRepository())

	eventRepo.add(liveEvent("ev-1", "conf"))
	_, _, err := svc.RegisterForEvent(ctx, "ev-1", "user-1")
	require.NoError(t, err)

	require.NoError(t, svc.CancelRegistration(ctx, "ev-1", "user-1"))

	err = svc.CancelRegistration(ctx, "ev-1", "user-1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAttendeeService_ListEventsAttending(t *testing.T) {
	ctx := context.Background()
	eventRepo := newMockEventRepository()
	svc := newAttendeeServiceForTest(eventRepo, newMockAttendeeRepository(), newMockOrganizerRepository())

	_, err := svc.ListEventsAttending(ctx, "")
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.ListEventsAttending(ctx, "user-1")
	require.NoError(t, err)
	require.NotNil(t, eventRepo.lastFilter)
	require.NotNil(t, eventRepo.lastFilter.HasAttendee)
	assert.Equal(t, "user-1", *eventRepo.lastFilter.HasAttendee)
}
