package postgres

import (
	"context"
	"database/sql"
	"errors"

	"confportal/internal/domain"
)

type attendeeRepository struct {
	DB *sql.DB
}

func NewAttendeeRepository(db *sql.DB) domain.AttendeeRepository {
	return &attendeeRepository{
		DB: db,
	}
}

func (r *attendeeRepository) Create(ctx context.Context, a *domain.Attendee) error {
	query := `
		INSERT INTO attendees (id, event_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.DB.ExecContext(ctx, query, a.ID, a.EventID, a.UserID, a.CreatedAt, a.UpdatedAt)
	return err
}

func (r *attendeeRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Attendee, error) {
	query := `
		SELECT id, event_id, user_id, created_at, updated_at
		FROM attendees
		WHERE event_id = $1 AND user_id = $2
	`
	a := &domain.Attendee{}
	err := r.DB.QueryRowContext(ctx, query, eventID, userID).
		Scan(&a.ID, &a.EventID, &a.UserID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *attendeeRepository) Delete(ctx context.Context, eventID, userID string) error {
	query := `DELETE FROM attendees WHERE event_id = $1 AND user_id = $2`
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

func (r *attendeeRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Attendee, error) {
	query := `
		SELECT id, event_id, user_id, created_at, updated_at
		FROM attendees
		WHERE event_id = $1
		ORDER BY created_at ASC, id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendees := make([]*domain.Attendee, 0)
	for rows.Next() {
		a := &domain.Attendee{}
		if err := rows.Scan(&a.ID, &a.EventID, &a.UserID, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}
