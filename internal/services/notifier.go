package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"confportal/internal/domain"
)

// EventEndedNotifier emails an event's organizers once after the event ends
// and stamps the event so the notification is never repeated.
type EventEndedNotifier struct {
	eventRepo     domain.EventRepository
	organizerRepo domain.OrganizerRepository
	emailService  domain.EmailService
	logger        *slog.Logger
}

// NewEventEndedNotifier creates the notifier.
func NewEventEndedNotifier(
	eventRepo domain.EventRepository,
	organizerRepo domain.OrganizerRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
) *EventEndedNotifier {
	return &EventEndedNotifier{
		eventRepo:     eventRepo,
		organizerRepo: organizerRepo,
		emailService:  emailService,
		logger:        logger,
	}
}

// NotifyEndedEvents processes every ended, unnotified event. A failure on one
// event is logged and skipped so it does not block the rest of the batch; the
// event stays unstamped and is retried on the next run.
func (n *EventEndedNotifier) NotifyEndedEvents(ctx context.Context, now time.Time) error {
	events, err := n.eventRepo.ListEndedUnnotified(ctx, now)
	if err != nil {
		return fmt.Errorf("list ended events: %w", err)
	}

	for _, event := range events {
		if err := n.notifyOne(ctx, event, now); err != nil {
			n.logger.Error("event ended notification failed", "event_id", event.ID, "err", err)
			continue
		}
		n.logger.Info("event ended notification sent", "event_id", event.ID)
	}
	return nil
}

func (n *EventEndedNotifier) notifyOne(ctx context.Context, event *domain.Event, now time.Time) error {
	organizers, err := n.organizerRepo.ListByEventID(ctx, event.ID)
	if err != nil {
		return fmt.Errorf("list organizers: %w", err)
	}
	for _, organizer := range organizers {
		name := strings.TrimSpace(organizer.Name + " " + organizer.LastName)
		if name == "" {
			name = organizer.Email
		}
		data := &domain.EventEndedEmailData{
			Email:         organizer.Email,
			OrganizerName: name,
			EventName:     event.Name,
			EventTimeSpan: event.TimeSpan(),
		}
		if err := n.emailService.SendEventEndedNotification(ctx, data); err != nil {
			return fmt.Errorf("send to %s: %w", organizer.Email, err)
		}
	}
	return n.eventRepo.SetEndedNotificationSentAt(ctx, event.ID, now)
}

// Run invokes NotifyEndedEvents on the given interval until ctx is cancelled.
func (n *EventEndedNotifier) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := n.NotifyEndedEvents(ctx, time.Now()); err != nil {
				n.logger.Error("event ended notification run failed", "err", err)
			}
		}
	}
}
