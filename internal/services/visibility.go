package services

import (
	"context"
	"errors"
	"fmt"

	"confportal/internal/domain"
)

// requireVisible returns ErrNotFound unless the event is approved and
// published, or the viewer organizes it. Drafts look nonexistent to everyone
// else so their existence does not leak.
func requireVisible(ctx context.Context, policy domain.VisibilityPolicy, event *domain.Event, viewerID *string) error {
	if event.IsApproved() && event.IsPublished() {
		return nil
	}
	admin, err := policy.IsAdministeredBy(ctx, event, viewerID)
	if err != nil {
		return err
	}
	if !admin {
		return domain.ErrNotFound
	}
	return nil
}

type visibilityPolicy struct {
	organizerRepo domain.OrganizerRepository
	attendeeRepo  domain.AttendeeRepository
}

// NewVisibilityPolicy returns the policy answering whether a viewer may
// administer or is attending an event. Both checks hit storage directly so
// the answer never depends on what happens to be loaded in memory.
func NewVisibilityPolicy(organizerRepo domain.OrganizerRepository, attendeeRepo domain.AttendeeRepository) domain.VisibilityPolicy {
	return &visibilityPolicy{
		organizerRepo: organizerRepo,
		attendeeRepo:  attendeeRepo,
	}
}

func (p *visibilityPolicy) IsAdministeredBy(ctx context.Context, event *domain.Event, userID *string) (bool, error) {
	// An absent viewer is a valid, common case: not administering.
	if event == nil || userID == nil || *userID == "" {
		return false, nil
	}
	ok, err := p.organizerRepo.Exists(ctx, event.ID, *userID)
	if err != nil {
		return false, fmt.Errorf("organizer exists: %w", err)
	}
	return ok, nil
}

func (p *visibilityPolicy) IsAttendedBy(ctx context.Context, event *domain.Event, userID *string) (bool, error) {
	if event == nil || userID == nil || *userID == "" {
		return false, nil
	}
	_, err := p.attendeeRepo.GetByEventAndUser(ctx, event.ID, *userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get attendee: %w", err)
	}
	return true, nil
}
