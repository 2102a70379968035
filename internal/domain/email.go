package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventEndedEmailData holds data for the event-ended notification sent to organizers.
type EventEndedEmailData struct {
	Email         string
	OrganizerName string
	EventName     string
	EventTimeSpan string
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendEventEndedNotification(ctx context.Context, data *EventEndedEmailData) error
}
