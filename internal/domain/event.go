package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Event represents a conference event with a scheduled date window.
// "Published" and "approved" are independent lifecycle states, each signaled
// solely by the presence of its timestamp.
// swagger:model Event
type Event struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Location    string     `json:"location"`
	City        string     `json:"city"`
	Country     string     `json:"country"` // ISO 3166-1 alpha-2
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	CFP         bool       `json:"cfp"`
	CFPDeadline *time.Time `json:"cfp_deadline"`
	PublishedAt *time.Time `json:"published_at"`
	ApprovedAt  *time.Time `json:"approved_at"`

	NumberOfReviews     int `json:"number_of_reviews"`
	AverageReviewRating int `json:"average_review_rating"`

	EventEndedNotificationSentAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the service on create.
func NewEvent(name, slug, location, city, country string, startsAt, endsAt *time.Time, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Name:      name,
		Slug:      slug,
		Location:  location,
		City:      city,
		Country:   country,
		StartsAt:  startsAt,
		EndsAt:    endsAt,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// IsApproved reports whether the event has been approved.
func (e *Event) IsApproved() bool {
	return e.ApprovedAt != nil
}

// IsPublished reports whether the event has been published.
func (e *Event) IsPublished() bool {
	return e.PublishedAt != nil
}

// IDSlug returns the "{id}-{slug}" form used in URLs.
func (e *Event) IDSlug() string {
	return e.ID + "-" + e.Slug
}

// TimeSpan renders the event's date range for display, collapsing the month
// when both ends fall in the same one, e.g. "12 - 14 June 2026".
func (e *Event) TimeSpan() string {
	if e.StartsAt == nil {
		return ""
	}
	if e.EndsAt == nil || e.StartsAt.Equal(*e.EndsAt) {
		return e.StartsAt.Format("2 January 2006")
	}
	if e.StartsAt.Month() == e.EndsAt.Month() && e.StartsAt.Year() == e.EndsAt.Year() {
		return fmt.Sprintf("%d - %s", e.StartsAt.Day(), e.EndsAt.Format("2 January 2006"))
	}
	return e.StartsAt.Format("2 January 2006") + " - " + e.EndsAt.Format("2 January 2006")
}

// CountryEmoji returns the regional-indicator flag for the event's country
// code, or "" when the code is not two ASCII letters.
func (e *Event) CountryEmoji() string {
	code := strings.ToUpper(strings.TrimSpace(e.Country))
	if len(code) != 2 {
		return ""
	}
	var b strings.Builder
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return ""
		}
		b.WriteRune(0x1F1E6 + (r - 'A'))
	}
	return b.String()
}

// Timeframe selects the temporal partition for event listings.
type Timeframe int

const (
	// TimeframeNone applies no temporal filter; ordering falls back to
	// starts_at ascending with id as a stable secondary key.
	TimeframeNone Timeframe = iota
	// TimeframeUpcoming keeps events with starts_at >= now, soonest first.
	TimeframeUpcoming
	// TimeframePast keeps events with ends_at <= now, most recent first.
	TimeframePast
)

// EventFilter is a composable set of independent event predicates combined by
// logical AND. User filters hold user IDs; nil means the filter is off.
type EventFilter struct {
	Approved           bool
	Published          bool
	OrganizedBy        *string
	HasAttendee        *string
	HasSlotWithSpeaker *string
	Timeframe          Timeframe

	// Now is the snapshot instant for Timeframe comparisons. Captured once
	// per query invocation by the service, never re-evaluated per row.
	Now time.Time

	// Limit and Offset page the result set. Zero Limit means no paging.
	Limit  int
	Offset int
}

// EventUpdate holds the optional fields of an event update; nil fields are unchanged.
type EventUpdate struct {
	Name        *string
	Location    *string
	City        *string
	Country     *string
	StartsAt    *time.Time
	EndsAt      *time.Time
	CFP         *bool
	CFPDeadline *time.Time
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]*Event, error)
	Update(ctx context.Context, eventID string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
	// SetApprovedAt and SetPublishedAt stamp the lifecycle timestamps. Each
	// only writes when the column is still NULL, keeping the operation idempotent.
	SetApprovedAt(ctx context.Context, eventID string, at time.Time) (*Event, error)
	SetPublishedAt(ctx context.Context, eventID string, at time.Time) (*Event, error)
	// ListEndedUnnotified returns events whose ends_at is before now and whose
	// ended notification has not yet been sent.
	ListEndedUnnotified(ctx context.Context, now time.Time) ([]*Event, error)
	SetEndedNotificationSentAt(ctx context.Context, eventID string, at time.Time) error
	// SetReviewAggregates writes the denormalized review count and average rating.
	SetReviewAggregates(ctx context.Context, eventID string, count, averageRating int) error
}

// EventService defines the business logic for managing events and their
// tracks, slots, and organizers.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event, ownerID string) error
	GetEvent(ctx context.Context, idOrSlug string, viewerID *string) (*Event, error)
	UpdateEvent(ctx context.Context, eventID, callerID string, upd EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, eventID, callerID string) error
	ApproveEvent(ctx context.Context, eventID, callerID string) (*Event, error)
	PublishEvent(ctx context.Context, eventID, callerID string) (*Event, error)

	AddOrganizer(ctx context.Context, eventID, userID, callerID string) error
	AddOrganizerByEmail(ctx context.Context, eventID, email, callerID string) error
	RemoveOrganizer(ctx context.Context, eventID, userID, callerID string) error
	ListOrganizers(ctx context.Context, eventID string) ([]*Organizer, error)

	CreateTrack(ctx context.Context, eventID, callerID, name string, orderColumn int) (*Track, error)
	UpdateTrack(ctx context.Context, eventID, trackID, callerID string, name *string, orderColumn *int) (*Track, error)

	CreateSlot(ctx context.Context, eventID, callerID string, slot *Slot) (*Slot, error)
	RescheduleSlot(ctx context.Context, eventID, slotID, callerID string, trackID *string, startsAt, endsAt *time.Time) (*Slot, error)
	AddSlotSpeaker(ctx context.Context, eventID, slotID, userID, callerID string) error
}
