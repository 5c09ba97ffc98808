package mailer

import (
	"context"
	"log"
)

// Mailer is the transactional-email collaborator. The core never depends on a
// concrete provider; services take this interface and treat send failures as
// non-fatal.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// DevConsoleMailer logs outgoing mail instead of sending it. Used in local
// development and tests.
type DevConsoleMailer struct {
	enabled bool
}

func NewDevConsoleMailer(enabled bool) *DevConsoleMailer {
	return &DevConsoleMailer{enabled: enabled}
}

func (m *DevConsoleMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	if !m.enabled {
		return nil
	}
	log.Printf("level=info msg=dev mail to=%s subject=%q body_len=%d", to, subject, len(htmlBody))
	return nil
}
