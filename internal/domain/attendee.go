package domain

import (
	"context"
	"time"
)

// Attendee is the join entity linking a user to an event as a registration.
// Existence of the row is the sole signal of attendance.
// swagger:model Attendee
type Attendee struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAttendee returns a new Attendee. ID is set by the service on create.
func NewAttendee(eventID, userID string, createdAt, updatedAt time.Time) *Attendee {
	return &Attendee{
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// AttendeeRepository defines storage operations for attendee rows.
type AttendeeRepository interface {
	Create(ctx context.Context, attendee *Attendee) error
	// GetByEventAndUser returns the attendee row for (eventID, userID), or
	// ErrNotFound. This direct existence check is the canonical attendance
	// signal; callers must not substitute a previously loaded attendee list.
	GetByEventAndUser(ctx context.Context, eventID, userID string) (*Attendee, error)
	Delete(ctx context.Context, eventID, userID string) error
	ListByEventID(ctx context.Context, eventID string) ([]*Attendee, error)
}

// AttendeeService defines attendee-facing operations such as event registration.
type AttendeeService interface {
	// RegisterForEvent registers the user for the event. Returns (attendee,
	// created, err): created is false if the user was already registered.
	RegisterForEvent(ctx context.Context, eventID, userID string) (*Attendee, bool, error)
	CancelRegistration(ctx context.Context, eventID, userID string) error
	// ListEventsAttending returns the events the user is registered for.
	ListEventsAttending(ctx context.Context, userID string) ([]*Event, error)
}
