// Package mail implements outbound email delivery over SMTP.
package mail

import (
	"context"

	"github.com/pkg/errors"
	"gopkg.in/gomail.v2"

	"wanderly/config"
	"wanderly/internal/domain/service"
)

// smtpMailer delivers mail through a gomail dialer. Each Send dials, sends and
// closes; the reset flow sends rarely enough that connection reuse is not
// worth the state.
type smtpMailer struct {
	cfg    *config.SMTPConfig
	dialer *gomail.Dialer
}

// NewSMTPMailer constructs the Mailer from SMTP configuration.
func NewSMTPMailer(cfg *config.Config) (service.Mailer, error) {
	if cfg.SMTP == nil || cfg.SMTP.Host == "" {
		return nil, errors.New("smtp configuration must be provided")
	}

	dialer := gomail.NewDialer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
	)

	return &smtpMailer{
		cfg:    cfg.SMTP,
		dialer: dialer,
	}, nil
}

// Send delivers a single plain-text message.
func (m *smtpMailer) Send(ctx context.Context, email service.Email) error {
	if email.To == "" {
		return errors.New("no recipient specified")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", email.To)
	msg.SetHeader("Subject", email.Subject)
	msg.SetBody("text/plain", email.Body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	return nil
}
