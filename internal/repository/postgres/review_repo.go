package postgres

import (
	"context"
	"database/sql"

	"confportal/internal/domain"
)

type reviewRepository struct {
	DB *sql.DB
}

func NewReviewRepository(db *sql.DB) domain.ReviewRepository {
	return &reviewRepository{
		DB: db,
	}
}

func (r *reviewRepository) Upsert(ctx context.Context, review *domain.Review) error {
	query := `
		INSERT INTO reviews (id, event_id, user_id, rating, comment, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (event_id, user_id)
		DO UPDATE SET rating = EXCLUDED.rating, comment = EXCLUDED.comment, updated_at = EXCLUDED.updated_at
		RETURNING id, created_at
	`
	return r.DB.QueryRowContext(ctx, query,
		review.ID, review.EventID, review.UserID, review.Rating, review.Comment, review.CreatedAt, review.UpdatedAt).
		Scan(&review.ID, &review.CreatedAt)
}

func (r *reviewRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Review, error) {
	query := `
		SELECT id, event_id, user_id, rating, comment, created_at, updated_at
		FROM reviews
		WHERE event_id = $1
		ORDER BY created_at DESC, id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0)
	for rows.Next() {
		rev := &domain.Review{}
		if err := rows.Scan(&rev.ID, &rev.EventID, &rev.UserID, &rev.Rating, &rev.Comment, &rev.CreatedAt, &rev.UpdatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rev)
	}
	return reviews, rows.Err()
}

func (r *reviewRepository) AggregatesByEventID(ctx context.Context, eventID string) (int, int, error) {
	query := `
		SELECT COUNT(*), COALESCE(ROUND(AVG(rating)), 0)
		FROM reviews
		WHERE event_id = $1
	`
	var count, average int
	if err := r.DB.QueryRowContext(ctx, query, eventID).Scan(&count, &average); err != nil {
		return 0, 0, err
	}
	return count, average, nil
}
