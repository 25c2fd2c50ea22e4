package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"carrental-backend/internal/logger"
)

type sendgridEmailService struct {
	client *sendgrid.Client
	from   *mail.Email
	logger *slog.Logger
}

func NewEmailService(apiKey, fromAddress, fromName string) EmailService {
	return &sendgridEmailService{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromAddress),
		logger: logger.WithService("email"),
	}
}

func (s *sendgridEmailService) Send(ctx context.Context, toEmail, toName, subject, htmlBody string) error {
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(s.from, subject, to, "", htmlBody)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected email to %s: status %d", toEmail, resp.StatusCode)
	}
	s.logger.Debug("email sent", "to", toEmail, "subject", subject)
	return nil
}
