package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"confportal/internal/delivery/http/helpers"
	"confportal/internal/delivery/http/middleware"
	"confportal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authedRequest(method, target, body, userID string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if userID != "" {
		req = req.WithContext(middleware.SetUserID(req.Context(), userID))
	}
	return req
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	return envelope
}

func TestEventController_CreateEvent(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		userID       string
		serviceErr   error
		wantStatus   int
		wantErrCode  string
	}{
		{
			name:       "success",
			body:       `{"name":"Conf 2026","country":"BE"}`,
			userID:     "user-123",
			wantStatus: http.StatusCreated,
		},
		{
			name:        "no user in context",
			body:        `{"name":"Conf 2026"}`,
			wantStatus:  http.StatusUnauthorized,
			wantErrCode: helpers.ErrCodeUnauthorized,
		},
		{
			name:        "invalid json",
			body:        `{invalid`,
			userID:      "user-123",
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeBadRequest,
		},
		{
			name:        "missing name",
			body:        `{"country":"BE"}`,
			userID:      "user-123",
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeValidationFailed,
		},
		{
			name:        "bad country code",
			body:        `{"name":"Conf 2026","country":"BEL"}`,
			userID:      "user-123",
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeValidationFailed,
		},
		{
			name:        "window validation error from service",
			body:        `{"name":"Conf 2026"}`,
			userID:      "user-123",
			serviceErr:  domain.NewValidationError("ends_at must not be before starts_at"),
			wantStatus:  http.StatusBadRequest,
			wantErrCode: helpers.ErrCodeValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeEventService{err: tt.serviceErr}
			ctrl := NewEventController(testLogger, svc, &fakeQueryService{})

			rr := httptest.NewRecorder()
			ctrl.CreateEvent(rr, authedRequest(http.MethodPost, "http://test/events", tt.body, tt.userID))

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			if tt.wantErrCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantErrCode, envelope.Error.Code)
				return
			}
			require.Nil(t, envelope.Error)
			assert.Equal(t, "user-123", svc.lastCreateOwner)
		})
	}
}

func TestEventController_GetEvent(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := &fakeEventService{event: &domain.Event{ID: "ev-1", Name: "Conf"}}
		ctrl := NewEventController(testLogger, svc, &fakeQueryService{})

		req := authedRequest(http.MethodGet, "http://test/events/ev-1", "", "user-123")
		req.SetPathValue("eventID", "ev-1")
		rr := httptest.NewRecorder()
		ctrl.GetEvent(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, svc.lastViewer)
		assert.Equal(t, "user-123", *svc.lastViewer)
	})

	t.Run("anonymous viewer passes nil", func(t *testing.T) {
		svc := &fakeEventService{event: &domain.Event{ID: "ev-1"}}
		ctrl := NewEventController(testLogger, svc, &fakeQueryService{})

		req := authedRequest(http.MethodGet, "http://test/events/ev-1", "", "")
		req.SetPathValue("eventID", "ev-1")
		rr := httptest.NewRecorder()
		ctrl.GetEvent(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Nil(t, svc.lastViewer)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEventService{err: domain.ErrNotFound}
		ctrl := NewEventController(testLogger, svc, &fakeQueryService{})

		req := authedRequest(http.MethodGet, "http://test/events/ev-x", "", "")
		req.SetPathValue("eventID", "ev-x")
		rr := httptest.NewRecorder()
		ctrl.GetEvent(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		envelope := decodeEnvelope(t, rr)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, helpers.ErrCodeNotFound, envelope.Error.Code)
	})
}

func TestEventController_ListEvents(t *testing.T) {
	t.Run("defaults to upcoming approved published", func(t *testing.T) {
		query := &fakeQueryService{}
		ctrl := NewEventController(testLogger, &fakeEventService{}, query)

		rr := httptest.NewRecorder()
		ctrl.ListEvents(rr, authedRequest(http.MethodGet, "http://test/events", "", ""))

		require.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, query.lastFilter)
		assert.True(t, query.lastFilter.Approved)
		assert.True(t, query.lastFilter.Published)
		assert.Equal(t, domain.TimeframeUpcoming, query.lastFilter.Timeframe)
		assert.Equal(t, 20, query.lastFilter.Limit)
		assert.Equal(t, 0, query.lastFilter.Offset)
	})

	t.Run("past switches the timeframe", func(t *testing.T) {
		query := &fakeQueryService{}
		ctrl := NewEventController(testLogger, &fakeEventService{}, query)

		rr := httptest.NewRecorder()
		ctrl.ListEvents(rr, authedRequest(http.MethodGet, "http://test/events?past=true&page=3", "", ""))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, domain.TimeframePast, query.lastFilter.Timeframe)
		assert.Equal(t, 40, query.lastFilter.Offset)
	})

	t.Run("organized_by=me includes drafts", func(t *testing.T) {
		query := &fakeQueryService{}
		ctrl := NewEventController(testLogger, &fakeEventService{}, query)

		rr := httptest.NewRecorder()
		ctrl.ListEvents(rr, authedRequest(http.MethodGet, "http://test/events?organized_by=me", "", "user-123"))

		require.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, query.lastFilter.OrganizedBy)
		assert.Equal(t, "user-123", *query.lastFilter.OrganizedBy)
		assert.False(t, query.lastFilter.Approved)
		assert.False(t, query.lastFilter.Published)
	})

	t.Run("me-filter without token is 401", func(t *testing.T) {
		query := &fakeQueryService{}
		ctrl := NewEventController(testLogger, &fakeEventService{}, query)

		rr := httptest.NewRecorder()
		ctrl.ListEvents(rr, authedRequest(http.MethodGet, "http://test/events?attending=me", "", ""))

		require.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Nil(t, query.lastFilter)
	})

	t.Run("speaking=me sets the speaker filter", func(t *testing.T) {
		query := &fakeQueryService{}
		ctrl := NewEventController(testLogger, &fakeEventService{}, query)

		rr := httptest.NewRecorder()
		ctrl.ListEvents(rr, authedRequest(http.MethodGet, "http://test/events?speaking=me", "", "user-123"))

		require.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, query.lastFilter.HasSlotWithSpeaker)
		assert.Equal(t, "user-123", *query.lastFilter.HasSlotWithSpeaker)
	})

	t.Run("unsupported filter value is rejected", func(t *testing.T) {
		query := &fakeQueryService{}
		ctrl := NewEventController(testLogger, &fakeEventService{}, query)

		rr := httptest.NewRecorder()
		ctrl.ListEvents(rr, authedRequest(http.MethodGet, "http://test/events?organized_by=alice", "", "user-123"))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		envelope := decodeEnvelope(t, rr)
		assert.Equal(t, helpers.ErrCodeValidationFailed, envelope.Error.Code)
		assert.Nil(t, query.lastFilter)
	})
}

func TestEventController_Lifecycle(t *testing.T) {
	t.Run("approve", func(t *testing.T) {
		svc := &fakeEventService{event: &domain.Event{ID: "ev-1"}}
		ctrl := NewEventController(testLogger, svc, &fakeQueryService{})

		req := authedRequest(http.MethodPost, "http://test/events/ev-1/approve", "", "user-123")
		req.SetPathValue("eventID", "ev-1")
		rr := httptest.NewRecorder()
		ctrl.ApproveEvent(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "user-123", svc.lastCallerID)
	})

	t.Run("publish forbidden for non-organizer", func(t *testing.T) {
		svc := &fakeEventService{err: domain.ErrForbidden}
		ctrl := NewEventController(testLogger, svc, &fakeQueryService{})

		req := authedRequest(http.MethodPost, "http://test/events/ev-1/publish", "", "user-rando")
		req.SetPathValue("eventID", "ev-1")
		rr := httptest.NewRecorder()
		ctrl.PublishEvent(rr, req)

		require.Equal(t, http.StatusForbidden, rr.Code)
		envelope := decodeEnvelope(t, rr)
		assert.Equal(t, helpers.ErrCodeForbidden, envelope.Error.Code)
	})
}

func TestEventController_AddOrganizer(t *testing.T) {
	t.Run("by user id", func(t *testing.T) {
		svc := &fakeEventService{}
		ctrl := NewEventController(testLogger, svc, &fakeQueryService{})

		req := authedRequest(http.MethodPost, "http://test/events/ev-1/organizers", `{"user_id":"user-b"}`, "user-a")
		req.SetPathValue("eventID", "ev-1")
		rr := httptest.NewRecorder()
		ctrl.AddOrganizer(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "user-b", svc.lastAddedUserID)
		assert.Empty(t, svc.lastAddedEmail)
	})

	t.Run("by email", func(t *testing.T) {
		svc := &fakeEventService{}
		ctrl := NewEventController(testLogger, svc, &fakeQueryService{})

		req := authedRequest(http.MethodPost, "http://test/events/ev-1/organizers", `{"email":"b@example.com"}`, "user-a")
		req.SetPathValue("eventID", "ev-1")
		rr := httptest.NewRecorder()
		ctrl.AddOrganizer(rr, req)

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "b@example.com", svc.lastAddedEmail)
		assert.Empty(t, svc.lastAddedUserID)
	})

	t.Run("user id and email together is 400", func(t *testing.T) {
		svc := &fakeEventService{}
		ctrl := NewEventController(testLogger, svc, &fakeQueryService{})

		req := authedRequest(http.MethodPost, "http://test/events/ev-1/organizers", `{"user_id":"user-b","email":"b@example.com"}`, "user-a")
		req.SetPathValue("eventID", "ev-1")
		rr := httptest.NewRecorder()
		ctrl.AddOrganizer(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
		envelope := decodeEnvelope(t, rr)
		assert.Equal(t, helpers.ErrCodeValidationFailed, envelope.Error.Code)
	})
}

func TestEventController_RemoveOrganizer_LastOne(t *testing.T) {
	svc := &fakeEventService{err: domain.NewValidationError("an event must keep at least one organizer")}
	ctrl := NewEventController(testLogger, svc, &fakeQueryService{})

	req := authedRequest(http.MethodDelete, "http://test/events/ev-1/organizers/user-a", "", "user-a")
	req.SetPathValue("eventID", "ev-1")
	req.SetPathValue("userID", "user-a")
	rr := httptest.NewRecorder()
	ctrl.RemoveOrganizer(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	envelope := decodeEnvelope(t, rr)
	assert.Equal(t, helpers.ErrCodeValidationFailed, envelope.Error.Code)
}
