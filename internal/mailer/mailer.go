// Package mailer delivers transactional email over SMTP using go-mail.
package mailer

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"github.com/firedesk/timecard/internal/shared"
)

// Message is a single outbound email.
type Message struct {
	To          string
	Subject     string
	Text        string
	HTML        string
	Attachments []string
}

// Mailer sends messages. Implementations must treat a non-nil error as
// "transport did not accept the message".
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTP is the production Mailer.
type SMTP struct {
	host     string
	port     int
	username string
	password string
	from     string
}

// NewSMTP configures an SMTP mailer. Credentials may be empty for
// unauthenticated relays (local Mailpit and friends).
func NewSMTP(host string, port int, username, password, from string) *SMTP {
	return &SMTP{host: host, port: port, username: username, password: password, from: from}
}

// Send delivers msg, attaching each named file.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	m := gomail.NewMsg()
	if err := m.From(s.from); err != nil {
		return fmt.Errorf("mailer: from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("mailer: to: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Text)
	if msg.HTML != "" {
		m.AddAlternativeString(gomail.TypeTextHTML, msg.HTML)
	}
	for _, path := range msg.Attachments {
		m.AttachFile(path)
	}

	opts := []gomail.Option{
		gomail.WithPort(s.port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if s.username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.username),
			gomail.WithPassword(s.password),
		)
	}
	client, err := gomail.NewClient(s.host, opts...)
	if err != nil {
		return fmt.Errorf("mailer: client: %w: %v", shared.ErrUpstream, err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("mailer: send to %s: %w: %v", msg.To, shared.ErrUpstream, err)
	}
	return nil
}
