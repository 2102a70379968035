package services

import (
	"context"
	"fmt"

	"confportal/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer}
}

// SendEventEndedNotification sends the post-event email to an organizer using
// the "event_ended" template.
func (s *emailService) SendEventEndedNotification(ctx context.Context, data *domain.EventEndedEmailData) error {
	if data == nil {
		return fmt.Errorf("event ended email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("event_ended", data)
	if err != nil {
		return fmt.Errorf("failed to render event_ended template: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send event ended email: %w", err)
	}
	return nil
}
