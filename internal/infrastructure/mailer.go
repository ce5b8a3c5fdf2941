package infrastructure

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, email Email) error
}

type MailerOptions struct {
	Provider string
	APIKey   string
	Sender   string
}

// NewMailer picks the provider from opts. Without an API key mail is only
// logged, which keeps local development working.
func NewMailer(opts MailerOptions, log zerolog.Logger) Mailer {
	if opts.APIKey == "" {
		log.Warn().Msg("EMAIL_API_KEY not set, outgoing mail will only be logged")
		return &LogMailer{log: log}
	}

	maskedApiKey := "****"
	if len(opts.APIKey) > 8 {
		maskedApiKey = opts.APIKey[:4] + "****" + opts.APIKey[len(opts.APIKey)-4:]
	}
	log.Info().Str("provider", opts.Provider).Str("api_key", maskedApiKey).Str("sender", opts.Sender).Msg("mailer configured")

	if opts.Provider == "sendgrid" {
		return &SendGridMailer{client: sendgrid.NewSendClient(opts.APIKey), sender: opts.Sender, log: log}
	}
	return &ResendMailer{client: resend.NewClient(opts.APIKey), sender: opts.Sender, log: log}
}

type ResendMailer struct {
	client *resend.Client
	sender string
	log    zerolog.Logger
}

func (m *ResendMailer) Send(ctx context.Context, email Email) error {
	params := &resend.SendEmailRequest{
		From:    m.sender,
		To:      []string{email.To},
		Subject: email.Subject,
		Text:    email.Text,
		Html:    email.HTML,
	}

	response, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}

	m.log.Debug().Str("email_id", response.Id).Msg("email sent")
	return nil
}

type SendGridMailer struct {
	client *sendgrid.Client
	sender string
	log    zerolog.Logger
}

func (m *SendGridMailer) Send(ctx context.Context, email Email) error {
	from := mail.NewEmail("Notes", m.sender)
	to := mail.NewEmail("", email.To)
	message := mail.NewSingleEmail(from, email.Subject, to, email.Text, email.HTML)

	response, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: unexpected status %d", response.StatusCode)
	}

	m.log.Debug().Int("status", response.StatusCode).Msg("email sent")
	return nil
}

type LogMailer struct {
	log zerolog.Logger
}

func (m *LogMailer) Send(_ context.Context, email Email) error {
	m.log.Info().Str("to", email.To).Str("subject", email.Subject).Msg("email not sent, no provider configured")
	return nil
}
