package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"confportal/internal/delivery/http/helpers"
	"confportal/internal/domain"
)

// EventController handles event CRUD, lifecycle, and listing endpoints.
type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
	Query   domain.EventQueryService
}

func NewEventController(logger *slog.Logger, svc domain.EventService, query domain.EventQueryService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
		Query:   query,
	}
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEvents godoc
// @Summary List events
// @Description Lists events, upcoming first. Pass past=true for ended events (most recent first). The me-filters organized_by=me, attending=me, and speaking=me require a Bearer token. Without organized_by=me the listing only contains approved and published events. Paged with page and page_size.
// @Tags events
// @Produce json
// @Param past query bool false "List past events instead of upcoming"
// @Param organized_by query string false "me: events the caller organizes (includes drafts)"
// @Param attending query string false "me: events the caller attends"
// @Param speaking query string false "me: events where the caller speaks"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListEventsSuccessResponse "data is an array of events"
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed (unsupported filter value)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized (me-filter without token)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.EventFilter{
		Approved:  true,
		Published: true,
		Timeframe: domain.TimeframeUpcoming,
	}
	if q.Get("past") == "true" {
		filter.Timeframe = domain.TimeframePast
	}

	viewer := viewerID(r)
	for _, param := range []string{"organized_by", "attending", "speaking"} {
		switch q.Get(param) {
		case "":
		case "me":
			if viewer == nil {
				helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, param+"=me requires authentication")
				return
			}
		default:
			// A malformed filter is rejected before any query runs, never
			// silently dropped into an unfiltered listing.
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeValidationFailed, param+` only supports the value "me"`)
			return
		}
	}
	if q.Get("organized_by") == "me" {
		filter.OrganizedBy = viewer
		// Organizers see their own drafts.
		filter.Approved = false
		filter.Published = false
	}
	if q.Get("attending") == "me" {
		filter.HasAttendee = viewer
	}
	if q.Get("speaking") == "me" {
		filter.HasSlotWithSpeaker = viewer
	}

	params := helpers.ParsePagination(r)
	filter.Limit = params.Limit()
	filter.Offset = params.Offset()

	events, err := c.Query.List(r.Context(), filter)
	if err != nil {
		respondServiceError(c.Logger, w, r, err, "not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// CreateEventRequest is the request body for POST /events.
type CreateEventRequest struct {
	Name     string     `json:"name"`
	Location string     `json:"location"`
	City     string     `json:"city"`
	Country  string     `json:"country"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.Country != "" && len(c.Country) != 2 {
		errs = append(errs, "country must be an ISO 3166-1 alpha-2 code")
	}
	return errs
}

// CreateEventSuccessResponse is the success response envelope for POST /events (201).
type CreateEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Create a conference event. The slug, id, and timestamps are server-generated; the authenticated user becomes the event's first organizer. The event starts unapproved and unpublished.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.CreateEventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := userIDFrom(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	now := time.Now()
	event := domain.NewEvent(req.Name, "", req.Location, req.City, req.Country, req.StartsAt, req.EndsAt, now, now)
	if err := c.Service.CreateEvent(r.Context(), event, userID); err != nil {
		respondServiceError(c.Logger, w, r, err, "not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEventSuccessResponse is the success response envelope for GET /events/{eventID} (200).
type GetEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetEvent godoc
// @Summary Get an event by ID or slug
// @Description Returns the event. Unapproved or unpublished events are only visible to their organizers; everyone else gets 404.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID or slug"
// @Success 200 {object} controllers.GetEventSuccessResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Service.GetEvent(r.Context(), eventID, viewerID(r))
	if err != nil {
		respondServiceError(c.Logger, w, r, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. All fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Name        *string    `json:"name"`
	Location    *string    `json:"location"`
	City        *string    `json:"city"`
	Country     *string    `json:"country"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	CFP         *bool      `json:"cfp"`
	CFPDeadline *time.Time `json:"cfp_deadline"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Name != nil && *u.Name == "" {
		errs = append(errs, "name cannot be empty")
	}
	if u.Country != nil && *u.Country != "" && len(*u.Country) != 2 {
		errs = append(errs, "country must be an ISO 3166-1 alpha-2 code")
	}
	return errs
}

// UpdateEventSuccessResponse is the success response envelope for PATCH /events/{eventID} (200).
type UpdateEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// UpdateEvent godoc
// @Summary Update event details
// @Description Updates event fields. Only organizers can update. Omitted fields are unchanged; the resulting date window must keep starts_at <= ends_at.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.UpdateEventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := userIDFrom(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	upd := domain.EventUpdate{
		Name:        req.Name,
		Location:    req.Location,
		City:        req.City,
		Country:     req.Country,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		CFP:         req.CFP,
		CFPDeadline: req.CFPDeadline,
	}
	event, err := c.Service.UpdateEvent(r.Context(), eventID, userID, upd)
	if err != nil {
		respondServiceError(c.Logger, w, r, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// StatusResponse is the data payload for delete-style endpoints.
type StatusResponse struct {
	Status string `json:"status"`
}

// DeleteEventSuccessResponse is the success response envelope for DELETE /events/{eventID} (200).
type DeleteEventSuccessResponse struct {
	Data  StatusResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes an event and its tracks, slots, attendees, and reviews. Only organizers can delete.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.DeleteEventSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := userIDFrom(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID, userID); err != nil {
		respondServiceError(c.Logger, w, r, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

// ApproveEvent godoc
// @Summary Approve an event
// @Description Stamps the event's approval timestamp. Idempotent: approving an approved event keeps the original timestamp. Approval and publication are independent.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.GetEventSuccessResponse "data contains the event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/approve [post]
func (c *EventController) ApproveEvent(w http.ResponseWriter, r *http.Request) {
	c.stampLifecycle(w, r, c.Service.ApproveEvent)
}

// PublishEvent godoc
// @Summary Publish an event
// @Description Stamps the event's publication timestamp. Idempotent: publishing a published event keeps the original timestamp. Approval and publication are independent.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.GetEventSuccessResponse "data contains the event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/publish [post]
func (c *EventController) PublishEvent(w http.ResponseWriter, r *http.Request) {
	c.stampLifecycle(w, r, c.Service.PublishEvent)
}

func (c *EventController) stampLifecycle(w http.ResponseWriter, r *http.Request, stamp func(ctx context.Context, eventID, callerID string) (*domain.Event, error)) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	userID, ok := userIDFrom(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	event, err := stamp(r.Context(), eventID, userID)
	if err != nil {
		respondServiceError(c.Logger, w, r, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}
