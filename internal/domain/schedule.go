package domain

import "context"

// TrackWithSlots pairs a track with its slots, ordered by starts_at ascending.
// swagger:model TrackWithSlots
type TrackWithSlots struct {
	Track *Track  `json:"track"`
	Slots []*Slot `json:"slots"`
}

// EventSchedule is the assembled, presentation-ready schedule of one event:
// tracks ordered by order_column, each with its slots, plus the slots not
// assigned to any track. It is a read-only projection.
// swagger:model EventSchedule
type EventSchedule struct {
	Event      *Event            `json:"event"`
	Tracks     []*TrackWithSlots `json:"tracks"`
	Unassigned []*Slot           `json:"unassigned"`
}

// ScheduleService assembles an event's schedule for presentation.
type ScheduleService interface {
	// GetEventSchedule returns the event's schedule. A missing event is
	// ErrNotFound, never an empty schedule; an unapproved or unpublished
	// event is also ErrNotFound unless the viewer organizes it.
	GetEventSchedule(ctx context.Context, eventID string, viewerID *string) (*EventSchedule, error)
}

// EventQueryService composes optional, independently toggle-able filters
// into an event listing. Filters are combined by logical AND; composition is
// commutative, so the order filters are set never affects the result.
type EventQueryService interface {
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
}

// VisibilityPolicy answers what a given optional viewer may see or administer.
// All predicates are total over well-formed input: a nil viewer yields false,
// never an error.
type VisibilityPolicy interface {
	IsAdministeredBy(ctx context.Context, event *Event, userID *string) (bool, error)
	IsAttendedBy(ctx context.Context, event *Event, userID *string) (bool, error)
}
