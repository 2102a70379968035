package controllers

import (
	"net/http"

	"confportal/internal/delivery/http/helpers"
	"confportal/internal/domain"
)

// ListOrganizersSuccessResponse is the success response envelope for GET /events/{eventID}/organizers (200).
type ListOrganizersSuccessResponse struct {
	Data  []*domain.Organizer `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ListOrganizers godoc
// @Summary List organizers of an event
// @Description Returns the event's organizers with their user details.
// @Tags organizers
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.ListOrganizersSuccessResponse "data is an array of organizers"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/organizers [get]
func (c *EventController) ListOrganizers(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	organizers, err := c.Service.ListOrganizers(r.Context(), eventID)
	if err != nil {
		respondServiceError(c.Logger, w, r, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, organizers)
}

// AddOrganizerRequest is the request body for POST /events/{eventID}/organizers.
// The user is identified either by ID or by email, not both.
type AddOrganizerRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// Validate implements Validator.
func (a AddOrganizerRequest) Validate() []string {
	if a.UserID == "" && a.Email == "" {
		return []string{"user_id or email is required"}
	}
	if a.UserID != "" && a.Email != "" {
		return []string{"user_id and email are mutually exclusive"}
	}
	return nil
}

// AddOrganizer godoc
// @Summary Add an organizer to an event
// @Description Grants a user organizer capability on the event, identified by user_id or by email. Only organizers can add. The user must exist.
// @Tags organizers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body AddOrganizerRequest true "User to add"
// @Success 201 {object} controllers.DeleteEventSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (event or user)"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already organizer)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/organizers [post]
func (c *EventController) AddOrganizer(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req AddOrganizerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	callerID, ok := userIDFrom(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var err error
	if req.Email != "" {
		err = c.Service.AddOrganizerByEmail(r.Context(), eventID, req.Email, callerID)
	} else {
		err = c.Service.AddOrganizer(r.Context(), eventID, req.UserID, callerID)
	}
	if err != nil {
		respondServiceError(c.Logger, w, r, err, "event or user not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, StatusResponse{Status: "added"})
}

// RemoveOrganizer godoc
// @Summary Remove an organizer from an event
// @Description Revokes a user's organizer capability. Only organizers can remove; the last organizer cannot be removed.
// @Tags organizers
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param userID path string true "User ID of the organizer to remove"
// @Success 200 {object} controllers.DeleteEventSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed (last organizer)"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden (not organizer)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/organizers/{userID} [delete]
func (c *EventController) RemoveOrganizer(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	userID := r.PathValue("userID")
	if eventID == "" || userID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or userID")
		return
	}
	callerID, ok := userIDFrom(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.RemoveOrganizer(r.Context(), eventID, userID, callerID); err != nil {
		respondServiceError(c.Logger, w, r, err, "event or organizer not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "removed"})
}
