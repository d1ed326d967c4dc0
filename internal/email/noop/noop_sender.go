package noop

import (
	"context"
	"log"

	"maktab/internal/port"
)

type noopSender struct{}

// NewNoopSender creates an EmailSender that logs instead of sending.
// Used in development and test environments.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendPasswordResetEmail(_ context.Context, toEmail, toName, resetToken string) error {
	log.Printf("[noop-email] password reset for %s <%s>: token=%s", toName, toEmail, resetToken)
	return nil
}
