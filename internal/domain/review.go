package domain

import (
	"context"
	"time"
)

// Review is a user's rating of an event. Each user has at most one review per
// event; resubmitting replaces the previous one.
// swagger:model Review
type Review struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"` // 1..5
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ReviewRepository defines storage operations for reviews.
type ReviewRepository interface {
	// Upsert inserts the review or, if a review by the same user for the same
	// event exists, replaces its rating and comment.
	Upsert(ctx context.Context, review *Review) error
	ListByEventID(ctx context.Context, eventID string) ([]*Review, error)
	// AggregatesByEventID returns the review count and integer-rounded average
	// rating for the event.
	AggregatesByEventID(ctx context.Context, eventID string) (count, averageRating int, err error)
}

// ReviewService defines the business logic for event reviews.
type ReviewService interface {
	// SubmitReview records the review and refreshes the event's denormalized
	// review aggregates.
	SubmitReview(ctx context.Context, review *Review) (*Review, error)
	ListEventReviews(ctx context.Context, eventID string) ([]*Review, error)
}
