package mailer

import (
	"fmt"
	"log/slog"

	"github.com/rakitahr/hrms-backend-go/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends plain transactional mail. Delivery is best-effort: callers
// fire it from a goroutine and never block a state transition on it.
type Mailer interface {
	Send(to, subject, body string) error
}

type smtpMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer builds a gomail-backed Mailer. With no SMTP host configured it
// returns a mailer that logs and drops every message, so development setups
// work without a mail server.
func NewMailer(cfg config.SMTPConfig) Mailer {
	if cfg.Host == "" {
		return &noopMailer{}
	}
	return &smtpMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *smtpMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}

type noopMailer struct{}

func (m *noopMailer) Send(to, subject, _ string) error {
	slog.Info("mail delivery disabled, dropping message", "to", to, "subject", subject)
	return nil
}
