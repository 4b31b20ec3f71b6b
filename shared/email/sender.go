// Package email delivers login codes to users. Resend is used when an API
// key is configured; otherwise codes are logged for local development.
package email

import (
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"

	"github.com/wanyos2005/carserve-backend/shared/config"
)

// Sender delivers one-time login codes
type Sender interface {
	SendLoginCode(to, code string) error
}

// NewSenderFromEnv returns a Resend-backed sender when RESEND_API_KEY is
// set, otherwise a sender that only logs the code
func NewSenderFromEnv() Sender {
	apiKey := config.GetEnvOrDefault("RESEND_API_KEY", "")
	if apiKey == "" {
		slog.Info("Email delivery disabled (RESEND_API_KEY not set), codes will be logged")
		return &logSender{}
	}
	return &resendSender{
		client: resend.NewClient(apiKey),
		from:   config.GetEnvOrDefault("EMAIL_FROM", "CarServe <login@carserve.app>"),
	}
}

// resendSender sends codes through the Resend API
type resendSender struct {
	client *resend.Client
	from   string
}

func (s *resendSender) SendLoginCode(to, code string) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      []string{to},
		Subject: "Your Login Code",
		Text:    fmt.Sprintf("Your code is: %s and expires in 5 minutes.", code),
	}
	if _, err := s.client.Emails.Send(params); err != nil {
		return fmt.Errorf("failed to send login code email: %w", err)
	}
	return nil
}

// logSender logs codes instead of sending them
type logSender struct{}

func (logSender) SendLoginCode(to, code string) error {
	slog.Info("Login code generated (email delivery disabled)", "to", to, "code", code)
	return nil
}
