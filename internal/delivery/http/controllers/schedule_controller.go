package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"confportal/internal/delivery/http/helpers"
	"confportal/internal/domain"
)

// ScheduleController handles the assembled schedule and the track and slot
// management endpoints.
type ScheduleController struct {
	Logger   *slog.Logger
	Schedule domain.ScheduleService
	Events   domain.EventService
}

func NewScheduleController(logger *slog.Logger, schedule domain.ScheduleService, events domain.EventService) *ScheduleController {
	return &ScheduleController{
		Logger:   logger,
		Schedule: schedule,
		Events:   events,
	}
}

// GetScheduleSuccessResponse is the success response envelope for GET /events/{eventID}/schedule (200).
type GetScheduleSuccessResponse struct {
	Data  *domain.EventSchedule `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// GetSchedule godoc
// @Summary Get the assembled schedule for an event
// @Description Returns the event with its tracks ordered by order_column, each track's slots ordered by start time, and an unassigned bucket for slots without a track. Schedules of unapproved or unpublished events are only visible to their organizers.
// @Tags schedule
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.GetScheduleSuccessResponse "data contains the schedule"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/schedule [get]
func (c *ScheduleController) GetSchedule(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	schedule, err := c.Schedule.GetEventSchedule(r.Context(), eventID, viewerID(r))
	if err != nil {
		respondServiceError(c.Logger, w, r, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, schedule)
}

// CreateTrackRequest is the request body for POST /events/{eventID}/tracks.
type CreateTrackRequest struct {
	Name        string `json:"name"`
	OrderColumn int    `json:"order_column"`
}

// Validate implements Validator.
func (c CreateTrackRequest) Validate() []string {
	if c.Name == "" {
		return []string{"name is required"}
	}
	return nil
}

// TrackSuccessResponse is the success response envelope for track endpoints.
type TrackSuccessResponse struct {
	Data  *domain.Track     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateTrack godoc
// @Summary Create a track
// @Description Adds a track to the event. Tracks order the schedule columns by order_column ascending. Only organizers can create.
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body CreateTrackRequest true "Track data"
// @Success 201 {object} controllers.TrackSuccessResponse "data contains the created track"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/tracks [post]
func (c *ScheduleController) CreateTrack(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req CreateTrackRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	callerID, ok := userIDFrom(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	track, err := c.Events.CreateTrack(r.Context(), eventID, callerID, req.Name, req.OrderColumn)
	if err != nil {
		respondServiceError(c.Logger, w, r, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, track)
}

// UpdateTrackRequest is the request body for PATCH /events/{eventID}/tracks/{trackID}.
// All fields optional; omitted fields are unchanged.
type UpdateTrackRequest struct {
	Name        *string `json:"name"`
	OrderColumn *int    `json:"order_column"`
}

// Validate implements Validator.
func (u UpdateTrackRequest) Validate() []string {
	if u.Name != nil && *u.Name == "" {
		return []string{"name cannot be empty"}
	}
	return nil
}

// UpdateTrack godoc
// @Summary Rename or reorder a track
// @Description Updates a track's name and/or order_column. Only organizers can update. The track must belong to the event.
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param trackID path string true "Track ID"
// @Param body body UpdateTrackRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.TrackSuccessResponse "data contains the updated track"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/tracks/{trackID} [patch]
func (c *ScheduleController) UpdateTrack(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	trackID := r.PathValue("trackID")
	if eventID == "" || trackID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or trackID")
		return
	}
	var req UpdateTrackRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	callerID, ok := userIDFrom(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	track, err := c.Events.UpdateTrack(r.Context(), eventID, trackID, callerID, req.Name, req.OrderColumn)
	if err != nil {
		respondServiceError(c.Logger, w, r, err, "event or track not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, track)
}

// CreateSlotRequest is the request body for POST /events/{eventID}/slots.
type CreateSlotRequest struct {
	Title    string    `json:"title"`
	TrackID  *string   `json:"track_id"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
}

// Validate implements Validator.
func (c CreateSlotRequest) Validate() []string {
	var errs []string
	if c.Title == "" {
		errs = append(errs, "title is required")
	}
	if c.StartsAt.IsZero() || c.EndsAt.IsZero() {
		errs = append(errs, "starts_at and ends_at are required")
	}
	return errs
}

// SlotSuccessResponse is the success response envelope for slot endpoints.
type SlotSuccessResponse struct {
	Data  *domain.Slot      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CreateSlot godoc
// @Summary Create a slot
// @Description Adds a schedule slot to the event, optionally placed on a track. The slot's start must fall inside the event's date window (inclusive). Only organizers can create.
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body CreateSlotRequest true "Slot data"
// @Success 201 {object} controllers.SlotSuccessResponse "data contains the created slot"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed (outside event window)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event or track)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/slots [post]
func (c *ScheduleController) CreateSlot(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req CreateSlotRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	callerID, ok := userIDFrom(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	slot := &domain.Slot{
		Title:    req.Title,
		TrackID:  req.TrackID,
		StartsAt: req.StartsAt,
		EndsAt:   req.EndsAt,
	}
	created, err := c.Events.CreateSlot(r.Context(), eventID, callerID, slot)
	if err != nil {
		respondServiceError(c.Logger, w, r, err, "event or track not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// RescheduleSlotRequest is the request body for PATCH /events/{eventID}/slots/{slotID}.
// All fields optional; omitted fields are unchanged. An empty track_id clears
// the track assignment.
type RescheduleSlotRequest struct {
	TrackID  *string    `json:"track_id"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

// RescheduleSlot godoc
// @Summary Move a slot
// @Description Moves a slot to a different track and/or time. The resulting start must stay inside the event's date window. Only organizers can update. The slot and any target track must belong to the event.
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param slotID path string true "Slot ID"
// @Param body body RescheduleSlotRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.SlotSuccessResponse "data contains the updated slot"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed (outside event window)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event, slot, or track)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/slots/{slotID} [patch]
func (c *ScheduleController) RescheduleSlot(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	slotID := r.PathValue("slotID")
	if eventID == "" || slotID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or slotID")
		return
	}
	var req RescheduleSlotRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	callerID, ok := userIDFrom(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	slot, err := c.Events.RescheduleSlot(r.Context(), eventID, slotID, callerID, req.TrackID, req.StartsAt, req.EndsAt)
	if err != nil {
		respondServiceError(c.Logger, w, r, err, "event, slot, or track not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slot)
}

// AddSlotSpeakerRequest is the request body for POST /events/{eventID}/slots/{slotID}/speakers.
type AddSlotSpeakerRequest struct {
	UserID string `json:"user_id"`
}

// Validate implements Validator.
func (a AddSlotSpeakerRequest) Validate() []string {
	if a.UserID == "" {
		return []string{"user_id is required"}
	}
	return nil
}

// AddSlotSpeaker godoc
// @Summary Add a speaker to a slot
// @Description Attaches a user as a speaker on the slot. Idempotent. Only organizers can add.
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param slotID path string true "Slot ID"
// @Param body body AddSlotSpeakerRequest true "Speaker to add"
// @Success 201 {object} controllers.DeleteEventSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event, slot, or user)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/slots/{slotID}/speakers [post]
func (c *ScheduleController) AddSlotSpeaker(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	slotID := r.PathValue("slotID")
	if eventID == "" || slotID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or slotID")
		return
	}
	var req AddSlotSpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	callerID, ok := userIDFrom(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Events.AddSlotSpeaker(r.Context(), eventID, slotID, req.UserID, callerID); err != nil {
		respondServiceError(c.Logger, w, r, err, "event, slot, or user not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, StatusResponse{Status: "added"})
}
