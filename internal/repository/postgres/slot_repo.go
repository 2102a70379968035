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

type slotRepository struct {
	DB *sql.DB
}

func NewSlotRepository(db *sql.DB) domain.SlotRepository {
	return &slotRepository{
		DB: db,
	}
}

func scanSlot(s rowScanner) (*domain.Slot, error) {
	slot := &domain.Slot{}
	var trackNull sql.NullString
	err := s.Scan(&slot.ID, &slot.EventID, &trackNull, &slot.Title, &slot.StartsAt, &slot.EndsAt, &slot.CreatedAt, &slot.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if trackNull.Valid {
		slot.TrackID = &trackNull.String
	}
	return slot, nil
}

func (r *slotRepository) Create(ctx context.Context, slot *domain.Slot) error {
	query := `
		INSERT INTO slots (id, event_id, track_id, title, starts_at, ends_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.ExecContext(ctx, query,
		slot.ID, slot.EventID, slot.TrackID, slot.Title, slot.StartsAt, slot.EndsAt, slot.CreatedAt, slot.UpdatedAt)
	return err
}

func (r *slotRepository) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	query := `
		SELECT id, event_id, track_id, title, starts_at, ends_at, created_at, updated_at
		FROM slots
		WHERE id = $1
	`
	slot, err := scanSlot(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	speakers, err := r.listSpeakers(ctx, id)
	if err != nil {
		return nil, err
	}
	slot.SpeakerIDs = speakers
	return slot, nil
}

func (r *slotRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Slot, error) {
	query := `
		SELECT id, event_id, track_id, title, starts_at, ends_at, created_at, updated_at
		FROM slots
		WHERE event_id = $1
		ORDER BY starts_at ASC, id ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	byID := make(map[string]*domain.Slot)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, err
		}
		slot.SpeakerIDs = []string{}
		slots = append(slots, slot)
		byID[slot.ID] = slot
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Attach speakers in one pass instead of a query per slot.
	spQuery := `
		SELECT sp.slot_id, sp.user_id
		FROM slot_speakers sp
		JOIN slots s ON s.id = sp.slot_id
		WHERE s.event_id = $1
		ORDER BY sp.user_id ASC
	`
	spRows, err := r.DB.QueryContext(ctx, spQuery, eventID)
	if err != nil {
		return nil, err
	}
	defer spRows.Close()
	for spRows.Next() {
		var slotID, userID string
		if err := spRows.Scan(&slotID, &userID); err != nil {
			return nil, err
		}
		if slot, ok := byID[slotID]; ok {
			slot.SpeakerIDs = append(slot.SpeakerIDs, userID)
		}
	}
	return slots, spRows.Err()
}

func (r *slotRepository) UpdateSchedule(ctx context.Context, slotID string, trackID *string, startsAt, endsAt *time.Time) (*domain.Slot, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if trackID != nil {
		if *trackID == "" {
			// Empty track ID moves the slot to the unassigned bucket.
			setClauses = append(setClauses, "track_id = NULL")
		} else {
			setClauses = append(setClauses, fmt.Sprintf("track_id = $%d", n))
			args = append(args, *trackID)
			n++
		}
	}
	if startsAt != nil {
		setClauses = append(setClauses, fmt.Sprintf("starts_at = $%d", n))
		args = append(args, *startsAt)
		n++
	}
	if endsAt != nil {
		setClauses = append(setClauses, fmt.Sprintf("ends_at = $%d", n))
		args = append(args, *endsAt)
		n++
	}
	if len(setClauses) == 1 {
		return r.GetByID(ctx, slotID)
	}
	args = append(args, slotID)
	query := fmt.Sprintf(`
		UPDATE slots SET %s
		WHERE id = $%d
		RETURNING id, event_id, track_id, title, starts_at, ends_at, created_at, updated_at
	`, strings.Join(setClauses, ", "), n)
	slot, err := scanSlot(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	speakers, err := r.listSpeakers(ctx, slotID)
	if err != nil {
		return nil, err
	}
	slot.SpeakerIDs = speakers
	return slot, nil
}

func (r *slotRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM slots WHERE id = $1`
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

func (r *slotRepository) AddSpeaker(ctx context.Context, slotID, userID string) error {
	query := `
		INSERT INTO slot_speakers (slot_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (slot_id, user_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, slotID, userID)
	return err
}

func (r *slotRepository) RemoveSpeaker(ctx context.Context, slotID, userID string) error {
	query := `DELETE FROM slot_speakers WHERE slot_id = $1 AND user_id = $2`
	result, err := r.DB.ExecContext(ctx, query, slotID, userID)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *slotRepository) listSpeakers(ctx context.Context, slotID string) ([]string, error) {
	query := `SELECT user_id FROM slot_speakers WHERE slot_id = $1 ORDER BY user_id ASC`
	rows, err := r.DB.QueryContext(ctx, query, slotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	speakers := make([]string, 0)
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		speakers = append(speakers, userID)
	}
	return speakers, rows.Err()
}
