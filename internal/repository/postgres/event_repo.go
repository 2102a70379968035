package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"confportal/internal/domain"
)

const eventColumns = `id, name, slug, location, city, country, starts_at, ends_at,
		cfp, cfp_deadline, published_at, approved_at,
		number_of_reviews, average_review_rating, event_ended_notification_sent_at,
		created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(s rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var startsNull, endsNull, cfpDeadlineNull, publishedNull, approvedNull, notifiedNull sql.NullTime
	err := s.Scan(
		&e.ID, &e.Name, &e.Slug, &e.Location, &e.City, &e.Country,
		&startsNull, &endsNull, &e.CFP, &cfpDeadlineNull, &publishedNull, &approvedNull,
		&e.NumberOfReviews, &e.AverageReviewRating, &notifiedNull,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if startsNull.Valid {
		e.StartsAt = &startsNull.Time
	}
	if endsNull.Valid {
		e.EndsAt = &endsNull.Time
	}
	if cfpDeadlineNull.Valid {
		e.CFPDeadline = &cfpDeadlineNull.Time
	}
	if publishedNull.Valid {
		e.PublishedAt = &publishedNull.Time
	}
	if approvedNull.Valid {
		e.ApprovedAt = &approvedNull.Time
	}
	if notifiedNull.Valid {
		e.EventEndedNotificationSentAt = &notifiedNull.Time
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (id, name, slug, location, city, country, starts_at, ends_at, cfp, cfp_deadline, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.DB.ExecContext(ctx, query,
		e.ID, e.Name, e.Slug, e.Location, e.City, e.Country,
		e.StartsAt, e.EndsAt, e.CFP, e.CFPDeadline, e.CreatedAt, e.UpdatedAt,
	)
	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	query := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

// List compiles the filter into a single WHERE conjunction. Filters are
// independent and ANDed, so the order clauses are appended in never changes
// the result set.
func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	where := []string{}
	args := []interface{}{}
	n := 1

	if filter.Approved {
		where = append(where, "approved_at IS NOT NULL")
	}
	if filter.Published {
		where = append(where, "published_at IS NOT NULL")
	}
	if filter.OrganizedBy != nil {
		where = append(where, fmt.Sprintf("EXISTS (SELECT 1 FROM organizers o WHERE o.event_id = events.id AND o.user_id = $%d)", n))
		args = append(args, *filter.OrganizedBy)
		n++
	}
	if filter.HasAttendee != nil {
		where = append(where, fmt.Sprintf("EXISTS (SELECT 1 FROM attendees a WHERE a.event_id = events.id AND a.user_id = $%d)", n))
		args = append(args, *filter.HasAttendee)
		n++
	}
	if filter.HasSlotWithSpeaker != nil {
		where = append(where, fmt.Sprintf("EXISTS (SELECT 1 FROM slots s JOIN slot_speakers sp ON sp.slot_id = s.id WHERE s.event_id = events.id AND sp.user_id = $%d)", n))
		args = append(args, *filter.HasSlotWithSpeaker)
		n++
	}

	// TimeframeNone keeps starts_at ASC with id as stable secondary key so
	// repeated unfiltered listings paginate deterministically.
	orderBy := "starts_at ASC, id ASC"
	switch filter.Timeframe {
	case domain.TimeframeUpcoming:
		where = append(where, fmt.Sprintf("starts_at >= $%d", n))
		args = append(args, filter.Now)
		n++
	case domain.TimeframePast:
		where = append(where, fmt.Sprintf("ends_at <= $%d", n))
		args = append(args, filter.Now)
		n++
		orderBy = "starts_at DESC, id ASC"
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + orderBy
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", n, n+1)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, eventID string, upd domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	addSet := func(column string, value interface{}) {
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, n))
		args = append(args, value)
		n++
	}
	if upd.Name != nil {
		addSet("name", *upd.Name)
	}
	if upd.Location != nil {
		addSet("location", *upd.Location)
	}
	if upd.City != nil {
		addSet("city", *upd.City)
	}
	if upd.Country != nil {
		addSet("country", *upd.Country)
	}
	if upd.StartsAt != nil {
		addSet("starts_at", *upd.StartsAt)
	}
	if upd.EndsAt != nil {
		addSet("ends_at", *upd.EndsAt)
	}
	if upd.CFP != nil {
		addSet("cfp", *upd.CFP)
	}
	if upd.CFPDeadline != nil {
		addSet("cfp_deadline", *upd.CFPDeadline)
	}
	if n == 1 {
		// No fields to update; just fetch the current row.
		return r.GetByID(ctx, eventID)
	}
	args = append(args, eventID)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING `+eventColumns, strings.Join(setClauses, ", "), n)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
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

func (r *eventRepository) SetApprovedAt(ctx context.Context, eventID string, at time.Time) (*domain.Event, error) {
	return r.stampLifecycle(ctx, eventID, "approved_at", at)
}

func (r *eventRepository) SetPublishedAt(ctx context.Context, eventID string, at time.Time) (*domain.Event, error) {
	return r.stampLifecycle(ctx, eventID, "published_at", at)
}

// stampLifecycle writes the timestamp only when the column is still NULL, so
// repeated approvals/publishes keep the original instant.
func (r *eventRepository) stampLifecycle(ctx context.Context, eventID, column string, at time.Time) (*domain.Event, error) {
	query := fmt.Sprintf(`
		UPDATE events SET %s = COALESCE(%s, $1), updated_at = NOW()
		WHERE id = $2
		RETURNING `+eventColumns, column, column)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, at, eventID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListEndedUnnotified(ctx context.Context, now time.Time) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + `
		FROM events
		WHERE ends_at IS NOT NULL AND ends_at < $1 AND event_ended_notification_sent_at IS NULL
		ORDER BY ends_at ASC, id ASC`
	rows, err := r.DB.QueryContext(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) SetEndedNotificationSentAt(ctx context.Context, eventID string, at time.Time) error {
	query := `UPDATE events SET event_ended_notification_sent_at = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, query, at, eventID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) SetReviewAggregates(ctx context.Context, eventID string, count, averageRating int) error {
	query := `UPDATE events SET number_of_reviews = $1, average_review_rating = $2, updated_at = NOW() WHERE id = $3`
	result, err := r.DB.ExecContext(ctx, query, count, averageRating, eventID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
