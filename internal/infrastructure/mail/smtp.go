// Package mail implements outbound email over SMTP. Mailtrap works out of
// the box for development; production points the host at a real relay.
package mail

import (
	"context"
	"fmt"
	"net/smtp"
)

// Config captures the SMTP relay settings.
type Config struct {
	Host   string
	Port   string
	User   string
	Pass   string
	Sender string
}

// SMTPMailer implements ports.Mailer on top of net/smtp.
type SMTPMailer struct {
	cfg Config
}

func NewSMTPMailer(cfg Config) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

// Send delivers a plain-text email. ctx is honoured between queueing and the
// blocking SMTP exchange; an already-cancelled context skips the dial.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("mail: recipient cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := []byte(fmt.Sprintf("To: %s\r\nFrom: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n",
		to, m.cfg.Sender, subject, body))

	addr := m.cfg.Host + ":" + m.cfg.Port
	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)

	if err := smtp.SendMail(addr, auth, m.cfg.Sender, []string{to}, msg); err != nil {
		return fmt.Errorf("mail: send to %s: %w", to, err)
	}
	return nil
}
