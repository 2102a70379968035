package domain

import (
	"context"
	"time"
)

// Slot represents a scheduled time block within an event, optionally assigned
// to a track and optionally having speakers. An event's slots are ordered by
// StartsAt ascending.
// swagger:model Slot
type Slot struct {
	ID         string    `json:"id"`
	EventID    string    `json:"event_id"`
	TrackID    *string   `json:"track_id"`
	Title      string    `json:"title"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	SpeakerIDs []string  `json:"speaker_ids"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewSlot returns a new Slot with the given fields. ID is set by the service on create.
func NewSlot(eventID string, trackID *string, title string, startsAt, endsAt time.Time, createdAt, updatedAt time.Time) *Slot {
	return &Slot{
		EventID:   eventID,
		TrackID:   trackID,
		Title:     title,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// SlotRepository defines the interface for slot and slot-speaker storage.
type SlotRepository interface {
	Create(ctx context.Context, slot *Slot) error
	GetByID(ctx context.Context, id string) (*Slot, error)
	// ListByEventID returns the event's slots ordered by starts_at ascending,
	// each with its speaker IDs attached.
	ListByEventID(ctx context.Context, eventID string) ([]*Slot, error)
	UpdateSchedule(ctx context.Context, slotID string, trackID *string, startsAt, endsAt *time.Time) (*Slot, error)
	Delete(ctx context.Context, id string) error
	AddSpeaker(ctx context.Context, slotID, userID string) error
	RemoveSpeaker(ctx context.Context, slotID, userID string) error
}
