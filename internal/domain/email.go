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

// InvitationEmailData holds data for the attendee invitation email.
type InvitationEmailData struct {
	AttendeeID int64
	Message    string
}

// InvitationResult is what the invitation stub reports back to the caller.
// swagger:model InvitationResult
type InvitationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// InvitationService prepares attendee invitations. It never delivers anything.
type InvitationService interface {
	SendInvitation(ctx context.Context, attendeeID int64, message *string) (*InvitationResult, error)
}
