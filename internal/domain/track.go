package domain

import (
	"context"
	"time"
)

// Track represents a named parallel session stream within an event. Sibling
// tracks are ordered by OrderColumn ascending.
// swagger:model Track
type Track struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	Name        string    `json:"name"`
	OrderColumn int       `json:"order_column"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTrack returns a new Track with the given fields. ID is set by the service on create.
func NewTrack(eventID, name string, orderColumn int, createdAt, updatedAt time.Time) *Track {
	return &Track{
		EventID:     eventID,
		Name:        name,
		OrderColumn: orderColumn,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// TrackRepository defines the interface for track storage.
type TrackRepository interface {
	Create(ctx context.Context, track *Track) error
	GetByID(ctx context.Context, id string) (*Track, error)
	// ListByEventID returns the event's tracks ordered by order_column ascending.
	ListByEventID(ctx context.Context, eventID string) ([]*Track, error)
	Update(ctx context.Context, trackID string, name *string, orderColumn *int) (*Track, error)
	Delete(ctx context.Context, id string) error
}
