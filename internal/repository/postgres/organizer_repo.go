package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"confportal/internal/domain"
)

type organizerRepository struct {
	DB *sql.DB
}

func NewOrganizerRepository(db *sql.DB) domain.OrganizerRepository {
	return &organizerRepository{
		DB: db,
	}
}

func (r *organizerRepository) Add(ctx context.Context, eventID, userID string) error {
	query := `
		INSERT INTO organizers (event_id, user_id, created_at)
		VALUES ($1, $2, NOW())
	`
	_, err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		// 23505 is unique_violation on the (event_id, user_id) constraint.
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrAlreadyOrganizer
		}
		return err
	}
	return nil
}

func (r *organizerRepository) Remove(ctx context.Context, eventID, userID string) error {
	query := `DELETE FROM organizers WHERE event_id = $1 AND user_id = $2`
	result, err := r.DB.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *organizerRepository) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM organizers WHERE event_id = $1 AND user_id = $2)`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, eventID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *organizerRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Organizer, error) {
	query := `
		SELECT o.id, o.event_id, o.user_id, u.name, u.last_name, u.email, o.created_at
		FROM organizers o
		JOIN users u ON u.id = o.user_id
		WHERE o.event_id = $1
		ORDER BY o.created_at ASC, o.id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	organizers := make([]*domain.Organizer, 0)
	for rows.Next() {
		o := &domain.Organizer{}
		if err := rows.Scan(&o.ID, &o.EventID, &o.UserID, &o.Name, &o.LastName, &o.Email, &o.CreatedAt); err != nil {
			return nil, err
		}
		organizers = append(organizers, o)
	}
	return organizers, rows.Err()
}
