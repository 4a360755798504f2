// Package mailer implements the mailer port over SMTP with STARTTLS.
package mailer

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"

	"sea-news-bot/internal/domain/model"
	"sea-news-bot/internal/domain/ports"
)

// SMTP sends digest emails through an SMTP relay using STARTTLS and PLAIN
// authentication.
type SMTP struct {
	host     string
	port     int
	username string
	password string
	logger   ports.Logger
}

var _ ports.Mailer = (*SMTP)(nil)

// NewSMTP constructs an SMTP mailer.
func NewSMTP(host string, port int, username, password string, logger ports.Logger) *SMTP {
	return &SMTP{
		host:     host,
		port:     port,
		username: username,
		password: password,
		logger:   logger,
	}
}

// Send delivers the email to all recipients in a single SMTP transaction.
func (s *SMTP) Send(ctx context.Context, email model.Email) error {
	if s.host == "" {
		return fmt.Errorf("smtp host is empty")
	}
	if len(email.Recipients) == 0 {
		return fmt.Errorf("no recipients")
	}

	msg := gomail.NewMsg()
	if err := msg.From(email.From); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(email.Recipients...); err != nil {
		return fmt.Errorf("set recipients: %w", err)
	}
	msg.Subject(email.Subject)
	msg.SetBodyString(gomail.TypeTextHTML, email.HTMLBody)

	client, err := gomail.NewClient(s.host,
		gomail.WithPort(s.port),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(s.username),
		gomail.WithPassword(s.password),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	s.logger.Info(ctx, "email sent via smtp",
		"host", s.host, "recipients", len(email.Recipients))
	return nil
}
