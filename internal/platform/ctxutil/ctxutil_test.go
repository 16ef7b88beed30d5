// Copyright (c) 2026 Vicinio. All rights reserved.

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vicinio/vicinio/internal/platform/ctxutil"
	"github.com/vicinio/vicinio/internal/platform/sec"
)

/*
TestRequestID verifies storage and retrieval of the request id, and the
empty-string fallback on a bare context.
*/
func TestRequestID(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-42")
	assert.Equal(t, "req-42", ctxutil.GetRequestID(ctx))
}

/*
TestLogger verifies that the attached logger is returned and that a bare
context falls back to the global default instead of nil.
*/
func TestLogger(t *testing.T) {
	ctx := context.Background()

	// 1. No logger attached: the default is returned, never nil.
	fallback := ctxutil.GetLogger(ctx)
	require.NotNil(t, fallback)
	assert.Equal(t, slog.Default(), fallback)

	// 2. Attached logger round-trips.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Same(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestTokenPayload verifies payload storage and the nil return for
unauthenticated requests.
*/
func TestTokenPayload(t *testing.T) {
	ctx := context.Background()

	assert.Nil(t, ctxutil.GetTokenPayload(ctx))

	payload := &sec.TokenPayload{User: sec.TokenUser{ID: "u-1", FirstName: "Sherlock"}}
	ctx = ctxutil.WithTokenPayload(ctx, payload)
	assert.Same(t, payload, ctxutil.GetTokenPayload(ctx))
}

/*
TestRawToken verifies the raw bearer token round-trips unchanged.
*/
func TestRawToken(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, ctxutil.GetRawToken(ctx))

	ctx = ctxutil.WithRawToken(ctx, "header.payload.signature")
	assert.Equal(t, "header.payload.signature", ctxutil.GetRawToken(ctx))
}
