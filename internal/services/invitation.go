package services

import (
	"context"
	"fmt"
	"log/slog"

	"eventmanager/internal/domain"
)

// invitationRecipientFormat is the placeholder address handed to the mailer. Attendees are not looked up.
const invitationRecipientFormat = "attendee-%d@invitations.local"

type invitationService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewInvitationService returns an InvitationService that renders the "invitation" template and
// hands it to mailer. It is wired to the no-op mailer, so nothing is delivered.
func NewInvitationService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.InvitationService {
	return &invitationService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendInvitation always reports success. Rendering or mailer failures are logged and swallowed.
func (s *invitationService) SendInvitation(ctx context.Context, attendeeID int64, message *string) (*domain.InvitationResult, error) {
	data := &domain.InvitationEmailData{AttendeeID: attendeeID}
	text := fmt.Sprintf("Invitation would be sent to attendee %d", attendeeID)
	if message != nil && *message != "" {
		data.Message = *message
		text += " with message: " + *message
	}

	subject, htmlBody, textBody, err := s.renderer.Render("invitation", data)
	if err != nil {
		s.logger.WarnContext(ctx, "render invitation failed", "attendee_id", attendeeID, "err", err)
	} else if err := s.mailer.Send(fmt.Sprintf(invitationRecipientFormat, attendeeID), subject, htmlBody, textBody); err != nil {
		s.logger.WarnContext(ctx, "send invitation failed", "attendee_id", attendeeID, "err", err)
	}

	return &domain.InvitationResult{Success: true, Message: text}, nil
}
