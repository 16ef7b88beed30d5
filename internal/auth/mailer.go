// Copyright (c) 2026 Vicinio. All rights reserved.

package auth

import (
	"context"
	"log/slog"
)

// LogMailer is the default [Mailer]: it records the delivery intent in the
// structured log instead of sending real mail. Deployments wire a provider
// implementation in its place.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a log-backed [Mailer].
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// SendPasswordReset logs the recovery request. The token itself is never
// logged; only its presence is recorded.
func (mailer *LogMailer) SendPasswordReset(context context.Context, email, token string) error {
	mailer.logger.InfoContext(context, "password_reset_mail_requested",
		slog.String("email", email),
		slog.Int("token_length", len(token)),
	)
	return nil
}
