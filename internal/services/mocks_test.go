package services

import (
	"context"
	"time"

	"confportal/internal/domain"
)

// In-memory fakes shared by the service tests. Each returns domain.ErrNotFound
// for missing rows, matching the postgres repositories.

type mockEventRepository struct {
	events        map[string]*domain.Event
	eventsBySlug  map[string]*domain.Event
	listFn        func(filter domain.EventFilter) []*domain.Event
	lastFilter    *domain.EventFilter
	endedEvents   []*domain.Event
	notifiedIDs   []string
	aggregates    map[string][2]int
	err           error
}

func newMockEventRepository() *mockEventRepository {
	return &mockEventRepository{
		events:       map[string]*domain.Event{},
		eventsBySlug: map[string]*domain.Event{},
		aggregates:   map[string][2]int{},
	}
}

func (m *mockEventRepository) add(e *domain.Event) {
	m.events[e.ID] = e
	if e.Slug != "" {
		m.eventsBySlug[e.Slug] = e
	}
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	m.add(event)
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (m *mockEventRepository) GetBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	e, ok := m.eventsBySlug[slug]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (m *mockEventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastFilter = &filter
	if m.listFn != nil {
		return m.listFn(filter), nil
	}
	return []*domain.Event{}, nil
}

func (m *mockEventRepository) Update(ctx context.Context, eventID string, upd domain.EventUpdate) (*domain.Event, error) {
	e, ok := m.events[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (m *mockEventRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *mockEventRepository) SetApprovedAt(ctx context.Context, eventID string, at time.Time) (*domain.Event, error) {
	e, ok := m.events[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if e.ApprovedAt == nil {
		e.ApprovedAt = &at
	}
	return e, nil
}

func (m *mockEventRepository) SetPublishedAt(ctx context.Context, eventID string, at time.Time) (*domain.Event, error) {
	e, ok := m.events[eventID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if e.PublishedAt == nil {
		e.PublishedAt = &at
	}
	return e, nil
}

func (m *mockEventRepository) ListEndedUnnotified(ctx context.Context, now time.Time) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.endedEvents, nil
}

func (m *mockEventRepository) SetEndedNotificationSentAt(ctx context.Context, eventID string, at time.Time) error {
	m.notifiedIDs = append(m.notifiedIDs, eventID)
	return nil
}

func (m *mockEventRepository) SetReviewAggregates(ctx context.Context, eventID string, count, averageRating int) error {
	m.aggregates[eventID] = [2]int{count, averageRating}
	return nil
}

type mockOrganizerRepository struct {
	rows map[string]map[string]bool // eventID -> userID -> present
	list map[string][]*domain.Organizer
	err  error
}

func newMockOrganizerRepository() *mockOrganizerRepository {
	return &mockOrganizerRepository{rows: map[string]map[string]bool{}, list: map[string][]*domain.Organizer{}}
}

func (m *mockOrganizerRepository) add(eventID, userID string) {
	if m.rows[eventID] == nil {
		m.rows[eventID] = map[string]bool{}
	}
	m.rows[eventID][userID] = true
	m.list[eventID] = append(m.list[eventID], &domain.Organizer{EventID: eventID, UserID: userID, Email: userID + "@example.com"})
}

func (m *mockOrganizerRepository) Add(ctx context.Context, eventID, userID string) error {
	if m.err != nil {
		return m.err
	}
	if m.rows[eventID][userID] {
		return domain.ErrAlreadyOrganizer
	}
	m.add(eventID, userID)
	return nil
}

func (m *mockOrganizerRepository) Remove(ctx context.Context, eventID, userID string) error {
	if !m.rows[eventID][userID] {
		return domain.ErrNotFound
	}
	delete(m.rows[eventID], userID)
	kept := m.list[eventID][:0]
	for _, o := range m.list[eventID] {
		if o.UserID != userID {
			kept = append(kept, o)
		}
	}
	m.list[eventID] = kept
	return nil
}

func (m *mockOrganizerRepository) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.rows[eventID][userID], nil
}

func (m *mockOrganizerRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Organizer, error) {
	return m.list[eventID], nil
}

type mockAttendeeRepository struct {
	rows map[string]*domain.Attendee // eventID:userID -> row
	err  error
}

func newMockAttendeeRepository() *mockAttendeeRepository {
	return &mockAttendeeRepository{rows: map[string]*domain.Attendee{}}
}

func attendeeKey(eventID, userID string) string { return eventID + ":" + userID }

func (m *mockAttendeeRepository) Create(ctx context.Context, a *domain.Attendee) error {
	if m.err != nil {
		return m.err
	}
	m.rows[attendeeKey(a.EventID, a.UserID)] = a
	return nil
}

func (m *mockAttendeeRepository) GetByEventAndUser(ctx context.Context, eventID, userID string) (*domain.Attendee, error) {
	if m.err != nil {
		return nil, m.err
	}
	a, ok := m.rows[attendeeKey(eventID, userID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

func (m *mockAttendeeRepository) Delete(ctx context.Context, eventID, userID string) error {
	key := attendeeKey(eventID, userID)
	if _, ok := m.rows[key]; !ok {
		return domain.ErrNotFound
	}
	delete(m.rows, key)
	return nil
}

func (m *mockAttendeeRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Attendee, error) {
	var out []*domain.Attendee
	for _, a := range m.rows {
		if a.EventID == eventID {
			out = append(out, a)
		}
	}
	return out, nil
}

type mockTrackRepository struct {
	tracks        map[string]*domain.Track
	tracksByEvent map[string][]*domain.Track
	err           error
}

func newMockTrackRepository() *mockTrackRepository {
	return &mockTrackRepository{tracks: map[string]*domain.Track{}, tracksByEvent: map[string][]*domain.Track{}}
}

func (m *mockTrackRepository) add(t *domain.Track) {
	m.tracks[t.ID] = t
	m.tracksByEvent[t.EventID] = append(m.tracksByEvent[t.EventID], t)
}

func (m *mockTrackRepository) Create(ctx context.Context, t *domain.Track) error {
	if m.err != nil {
		return m.err
	}
	m.add(t)
	return nil
}

func (m *mockTrackRepository) GetByID(ctx context.Context, id string) (*domain.Track, error) {
	t, ok := m.tracks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func (m *mockTrackRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Track, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tracksByEvent[eventID], nil
}

func (m *mockTrackRepository) Update(ctx context.Context, trackID string, name *string, orderColumn *int) (*domain.Track, error) {
	t, ok := m.tracks[trackID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if name != nil {
		t.Name = *name
	}
	if orderColumn != nil {
		t.OrderColumn = *orderColumn
	}
	return t, nil
}

func (m *mockTrackRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.tracks[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.tracks, id)
	return nil
}

type mockSlotRepository struct {
	slots        map[string]*domain.Slot
	slotsByEvent map[string][]*domain.Slot
	speakers     map[string][]string
	err          error
}

func newMockSlotRepository() *mockSlotRepository {
	return &mockSlotRepository{slots: map[string]*domain.Slot{}, slotsByEvent: map[string][]*domain.Slot{}, speakers: map[string][]string{}}
}

func (m *mockSlotRepository) add(s *domain.Slot) {
	m.slots[s.ID] = s
	m.slotsByEvent[s.EventID] = append(m.slotsByEvent[s.EventID], s)
}

func (m *mockSlotRepository) Create(ctx context.Context, s *domain.Slot) error {
	if m.err != nil {
		return m.err
	}
	m.add(s)
	return nil
}

func (m *mockSlotRepository) GetByID(ctx context.Context, id string) (*domain.Slot, error) {
	s, ok := m.slots[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func (m *mockSlotRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Slot, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.slotsByEvent[eventID], nil
}

func (m *mockSlotRepository) UpdateSchedule(ctx context.Context, slotID string, trackID *string, startsAt, endsAt *time.Time) (*domain.Slot, error) {
	s, ok := m.slots[slotID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if trackID != nil {
		if *trackID == "" {
			s.TrackID = nil
		} else {
			s.TrackID = trackID
		}
	}
	if startsAt != nil {
		s.StartsAt = *startsAt
	}
	if endsAt != nil {
		s.EndsAt = *endsAt
	}
	return s, nil
}

func (m *mockSlotRepository) Delete(ctx context.Context, id string) error {
	if _, ok := m.slots[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.slots, id)
	return nil
}

func (m *mockSlotRepository) AddSpeaker(ctx context.Context, slotID, userID string) error {
	m.speakers[slotID] = append(m.speakers[slotID], userID)
	return nil
}

func (m *mockSlotRepository) RemoveSpeaker(ctx context.Context, slotID, userID string) error {
	return nil
}

type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: map[string]*domain.User{}}
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

type mockReviewRepository struct {
	reviews map[string]*domain.Review // eventID:userID -> review
	err     error
}

func newMockReviewRepository() *mockReviewRepository {
	return &mockReviewRepository{reviews: map[string]*domain.Review{}}
}

func (m *mockReviewRepository) Upsert(ctx context.Context, review *domain.Review) error {
	if m.err != nil {
		return m.err
	}
	m.reviews[attendeeKey(review.EventID, review.UserID)] = review
	return nil
}

func (m *mockReviewRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Review, error) {
	var out []*domain.Review
	for _, r := range m.reviews {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockReviewRepository) AggregatesByEventID(ctx context.Context, eventID string) (int, int, error) {
	count, sum := 0, 0
	for _, r := range m.reviews {
		if r.EventID == eventID {
			count++
			sum += r.Rating
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return count, (sum + count/2) / count, nil
}

type fakeEmailService struct {
	sent    []*domain.EventEndedEmailData
	failFor string // email address that errors
}

func (f *fakeEmailService) SendEventEndedNotification(ctx context.Context, data *domain.EventEndedEmailData) error {
	if f.failFor != "" && data.Email == f.failFor {
		return context.DeadlineExceeded
	}
	f.sent = append(f.sent, data)
	return nil
}
