package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"confportal/internal/domain"
)

type trackRepository struct {
	DB *sql.DB
}

func NewTrackRepository(db *sql.DB) domain.TrackRepository {
	return &trackRepository{
		DB: db,
	}
}

func (r *trackRepository) Create(ctx context.Context, t *domain.Track) error {
	query := `
		INSERT INTO tracks (id, event_id, name, order_column, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query, t.ID, t.EventID, t.Name, t.OrderColumn, t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *trackRepository) GetByID(ctx context.Context, id string) (*domain.Track, error) {
	query := `
		SELECT id, event_id, name, order_column, created_at, updated_at
		FROM tracks
		WHERE id = $1
	`
	t := &domain.Track{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&t.ID, &t.EventID, &t.Name, &t.OrderColumn, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *trackRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Track, error) {
	query := `
		SELECT id, event_id, name, order_column, created_at, updated_at
		FROM tracks
		WHERE event_id = $1
		ORDER BY order_column ASC, id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tracks := make([]*domain.Track, 0)
	for rows.Next() {
		t := &domain.Track{}
		if err := rows.Scan(&t.ID, &t.EventID, &t.Name, &t.OrderColumn, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

func (r *trackRepository) Update(ctx context.Context, trackID string, name *string, orderColumn *int) (*domain.Track, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *name)
		n++
	}
	if orderColumn != nil {
		setClauses = append(setClauses, fmt.Sprintf("order_column = $%d", n))
		args = append(args, *orderColumn)
		n++
	}
	if n == 1 {
		return r.GetByID(ctx, trackID)
	}
	args = append(args, trackID)
	query := fmt.Sprintf(`
		UPDATE tracks SET %s
		WHERE id = $%d
		RETURNING id, event_id, name, order_column, created_at, updated_at
	`, strings.Join(setClauses, ", "), n)
	t := &domain.Track{}
	err := r.DB.QueryRowContext(ctx, query, args...).
		Scan(&t.ID, &t.EventID, &t.Name, &t.OrderColumn, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *trackRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tracks WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
