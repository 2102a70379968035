package controllers

import (
	"log/slog"
	"net/http"

	"confportal/internal/delivery/http/helpers"
	"confportal/internal/domain"
)

// ReviewController handles event review endpoints.
type ReviewController struct {
	Logger  *slog.Logger
	Service domain.ReviewService
}

func NewReviewController(logger *slog.Logger, svc domain.ReviewService) *ReviewController {
	return &ReviewController{
		Logger:  logger,
		Service: svc,
	}
}

// SubmitReviewRequest is the request body for POST /events/{eventID}/reviews.
type SubmitReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Validate implements Validator.
func (s SubmitReviewRequest) Validate() []string {
	if s.Rating < 1 || s.Rating > 5 {
		return []string{"rating must be between 1 and 5"}
	}
	return nil
}

// ReviewSuccessResponse is the success response envelope for POST /events/{eventID}/reviews (201).
type ReviewSuccessResponse struct {
	Data  *domain.Review    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SubmitReview godoc
// @Summary Review an event
// @Description Submits a 1-5 star rating with an optional comment. One review per user per event; resubmitting replaces the previous one. The event's review count and average rating are refreshed.
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param body body SubmitReviewRequest true "Review data"
// @Success 201 {object} controllers.ReviewSuccessResponse "data contains the review"
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/reviews [post]
func (c *ReviewController) SubmitReview(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req SubmitReviewRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := userIDFrom(r)
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	review, err := c.Service.SubmitReview(r.Context(), &domain.Review{
		EventID: eventID,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		respondServiceError(c.Logger, w, r, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, review)
}

// ListReviewsSuccessResponse is the success response envelope for GET /events/{eventID}/reviews (200).
type ListReviewsSuccessResponse struct {
	Data  []*domain.Review  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListReviews godoc
// @Summary List reviews for an event
// @Description Returns the event's reviews.
// @Tags reviews
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.ListReviewsSuccessResponse "data is an array of reviews"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/reviews [get]
func (c *ReviewController) ListReviews(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	reviews, err := c.Service.ListEventReviews(r.Context(), eventID)
	if err != nil {
		respondServiceError(c.Logger, w, r, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, reviews)
}
