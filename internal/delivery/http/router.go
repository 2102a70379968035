package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"confportal/internal/delivery/http/controllers"
	"confportal/internal/delivery/http/middleware"
	"confportal/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes. Public
// routes resolve an optional viewer identity; mutating routes require a valid
// Bearer token.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	events *controllers.EventController,
	schedule *controllers.ScheduleController,
	attendees *controllers.AttendeeController,
	reviews *controllers.ReviewController,
) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(verifier, logger)
	optional := middleware.OptionalAuth(verifier, logger)

	// Events
	mux.HandleFunc("GET /events", optional(events.ListEvents))
	mux.HandleFunc("POST /events", auth(events.CreateEvent))
	mux.HandleFunc("GET /events/{eventID}", optional(events.GetEvent))
	mux.HandleFunc("PATCH /events/{eventID}", auth(events.UpdateEvent))
	mux.HandleFunc("DELETE /events/{eventID}", auth(events.DeleteEvent))
	mux.HandleFunc("POST /events/{eventID}/approve", auth(events.ApproveEvent))
	mux.HandleFunc("POST /events/{eventID}/publish", auth(events.PublishEvent))

	// Organizers
	mux.HandleFunc("GET /events/{eventID}/organizers", auth(events.ListOrganizers))
	mux.HandleFunc("POST /events/{eventID}/organizers", auth(events.AddOrganizer))
	mux.HandleFunc("DELETE /events/{eventID}/organizers/{userID}", auth(events.RemoveOrganizer))

	// Schedule
	mux.HandleFunc("GET /events/{eventID}/schedule", optional(schedule.GetSchedule))
	mux.HandleFunc("POST /events/{eventID}/tracks", auth(schedule.CreateTrack))
	mux.HandleFunc("PATCH /events/{eventID}/tracks/{trackID}", auth(schedule.UpdateTrack))
	mux.HandleFunc("POST /events/{eventID}/slots", auth(schedule.CreateSlot))
	mux.HandleFunc("PATCH /events/{eventID}/slots/{slotID}", auth(schedule.RescheduleSlot))
	mux.HandleFunc("POST /events/{eventID}/slots/{slotID}/speakers", auth(schedule.AddSlotSpeaker))

	// Attendees
	mux.HandleFunc("POST /events/{eventID}/attendees", auth(attendees.Register))
	mux.HandleFunc("DELETE /events/{eventID}/attendees", auth(attendees.Cancel))

	// Reviews
	mux.HandleFunc("GET /events/{eventID}/reviews", reviews.ListReviews)
	mux.HandleFunc("POST /events/{eventID}/reviews", auth(reviews.SubmitReview))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
