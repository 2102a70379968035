package domain

import (
	"context"
	"errors"
	"time"
)

// ErrAlreadyOrganizer is returned when adding a user who already organizes the event.
var ErrAlreadyOrganizer = errors.New("already an organizer")

// Organizer is the join entity granting a user administrative capability over
// an event. An event may have many organizers and a user may organize many
// events.
// swagger:model Organizer
type Organizer struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// OrganizerRepository defines storage operations for organizer rows.
type OrganizerRepository interface {
	Add(ctx context.Context, eventID, userID string) error
	Remove(ctx context.Context, eventID, userID string) error
	// Exists reports whether an organizer row exists for (eventID, userID).
	Exists(ctx context.Context, eventID, userID string) (bool, error)
	// ListByEventID returns the event's organizers with user details attached.
	ListByEventID(ctx context.Context, eventID string) ([]*Organizer, error)
}
