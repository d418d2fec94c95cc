// Package email delivers transactional mail through Mailgun. The service is
// soft-disabled when Mailgun credentials are absent: IsEnabled reports false
// and callers skip delivery instead of failing their own flow.
package email

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v5"

	"carbontrack/internal/config"
	"carbontrack/internal/logger"
)

type Service struct {
	client      mailgun.Mailgun
	domain      string
	senderEmail string
	senderName  string
	appBaseURL  string
	enabled     bool
}

func NewService(cfg *config.Config) *Service {
	enabled := cfg.MailgunDomain != "" && cfg.MailgunAPIKey != ""

	var client mailgun.Mailgun
	if enabled {
		client = mailgun.NewMailgun(cfg.MailgunAPIKey)
	}

	return &Service{
		client:      client,
		domain:      cfg.MailgunDomain,
		senderEmail: cfg.MailgunSenderEmail,
		senderName:  cfg.MailgunSenderName,
		appBaseURL:  cfg.AppBaseURL,
		enabled:     enabled,
	}
}

func (s *Service) IsEnabled() bool {
	return s.enabled
}

// SendPasswordResetEmail mails the reset link for token. The token stays
// valid for one hour; the template says so.
func (s *Service) SendPasswordResetEmail(ctx context.Context, to, username, token string) error {
	if !s.enabled {
		return fmt.Errorf("email service is not configured")
	}

	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.appBaseURL, token)

	subject := "CarbonTrack şifre sıfırlama"
	htmlBody := s.generatePasswordResetHTML(username, resetURL)
	textBody := s.generatePasswordResetText(username, resetURL)

	message := mailgun.NewMessage(
		s.domain,
		fmt.Sprintf("%s <%s>", s.senderName, s.senderEmail),
		subject,
		textBody,
		to,
	)
	message.SetHTML(htmlBody)

	sendCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := s.client.Send(sendCtx, message)
	if err != nil {
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	logger.Info("Password reset email sent", "messageID", resp)
	return nil
}
