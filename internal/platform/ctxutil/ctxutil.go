// Copyright (c) 2026 Vicinio. All rights reserved.

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/vicinio/vicinio/internal/platform/ctxkey"
	"github.com/vicinio/vicinio/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithTokenPayload returns a new context with the decoded token payload attached.
func WithTokenPayload(ctx context.Context, payload *sec.TokenPayload) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, payload)
}

// GetTokenPayload retrieves the decoded [*sec.TokenPayload] from the context.
// Returns nil for unauthenticated requests.
func GetTokenPayload(ctx context.Context) *sec.TokenPayload {
	payload, ok := ctx.Value(ctxkey.KeyUser).(*sec.TokenPayload)
	if !ok {
		return nil
	}
	return payload
}

// WithRawToken returns a new context carrying the bearer token exactly as received.
func WithRawToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyToken, token)
}

// GetRawToken retrieves the raw bearer token string from the context.
func GetRawToken(ctx context.Context) string {
	token, _ := ctx.Value(ctxkey.KeyToken).(string)
	return token
}
