package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"confportal/internal/domain"
)

type reviewService struct {
	eventRepo      domain.EventRepository
	reviewRepo     domain.ReviewRepository
	contextTimeout time.Duration
}

// NewReviewService creates the event review service.
func NewReviewService(eventRepo domain.EventRepository, reviewRepo domain.ReviewRepository, timeout time.Duration) domain.ReviewService {
	return &reviewService{
		eventRepo:      eventRepo,
		reviewRepo:     reviewRepo,
		contextTimeout: timeout,
	}
}

func (s *reviewService) SubmitReview(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if review.UserID == "" {
		return nil, domain.ErrInvalidInput
	}
	if review.Rating < 1 || review.Rating > 5 {
		return nil, domain.NewValidationError("rating must be between 1 and 5")
	}
	if _, err := s.eventRepo.GetByID(ctx, review.EventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	review.ID = uuid.NewString()
	now := time.Now()
	review.CreatedAt = now
	review.UpdatedAt = now
	if err := s.reviewRepo.Upsert(ctx, review); err != nil {
		return nil, fmt.Errorf("upsert review: %w", err)
	}

	// Refresh the event's denormalized aggregates from the source of truth.
	count, average, err := s.reviewRepo.AggregatesByEventID(ctx, review.EventID)
	if err != nil {
		return nil, fmt.Errorf("review aggregates: %w", err)
	}
	if err := s.eventRepo.SetReviewAggregates(ctx, review.EventID, count, average); err != nil {
		return nil, fmt.Errorf("set review aggregates: %w", err)
	}
	return review, nil
}

func (s *reviewService) ListEventReviews(ctx context.Context, eventID string) ([]*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	reviews, err := s.reviewRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	if reviews == nil {
		reviews = []*domain.Review{}
	}
	return reviews, nil
}
