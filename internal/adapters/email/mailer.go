package email

import (
	"log/slog"

	"eventmanager/internal/domain"
)

// NewNoopMailer returns a Mailer that logs each message at debug level and delivers nothing.
func NewNoopMailer(logger *slog.Logger) domain.Mailer {
	return &noopMailer{logger: logger}
}

type noopMailer struct {
	logger *slog.Logger
}

func (n *noopMailer) Send(to, subject, html, text string) error {
	n.logger.Debug("email would be sent (noop)", "to", to, "subject", subject, "text_bytes", len(text))
	return nil
}
