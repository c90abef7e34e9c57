package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/webapp/internal/domain"
	"github.com/phrazzld/webapp/internal/platform/mail"
)

// MailService sends administrative mail.
type MailService interface {
	// SendTestMail sends a test message to the user's own address.
	SendTestMail(ctx context.Context, user *domain.User) error
}

// MailServiceImpl implements the MailService interface
type MailServiceImpl struct {
	sender   mail.Sender
	siteName string
	logger   *slog.Logger
}

// NewMailService creates a new MailService
func NewMailService(sender mail.Sender, siteName string, logger *slog.Logger) *MailServiceImpl {
	return &MailServiceImpl{
		sender:   sender,
		siteName: siteName,
		logger:   logger.With("component", "mail_service"),
	}
}

// SendTestMail implements the MailService interface
func (s *MailServiceImpl) SendTestMail(ctx context.Context, user *domain.User) error {
	if user.Email == "" {
		return ErrNoEmail
	}

	err := s.sender.Send(ctx, mail.Message{
		To:      []string{user.Email},
		Subject: fmt.Sprintf("%s: test mail", s.siteName),
		Body:    fmt.Sprintf("This is a test mail from %s, sent at the request of %s.\n", s.siteName, user.Username),
	})
	if err != nil {
		return fmt.Errorf("failed to send test mail: %w", err)
	}

	s.logger.Info("test mail sent", "username", user.Username)
	return nil
}
