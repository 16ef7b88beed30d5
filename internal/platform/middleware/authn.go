// Copyright (c) 2026 Vicinio. All rights reserved.

package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vicinio/vicinio/internal/platform/apperr"
	"github.com/vicinio/vicinio/internal/platform/constants"
	"github.com/vicinio/vicinio/internal/platform/ctxutil"
	"github.com/vicinio/vicinio/internal/platform/respond"
	"github.com/vicinio/vicinio/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the [sec.TokenCodec]
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	Verify(tokenString string) (*sec.TokenPayload, error)
}

// Authenticate gates every protected route on the bearer token carried in the
// `token` request header.
//
// # Flow
//  1. Read the token from the fixed header slot (not Authorization: Bearer).
//  2. If absent, reject immediately.
//  3. If present, verify signature and expiry via [TokenVerifier].
//  4. On success, attach the decoded payload AND the raw token string to the
//     request context; handlers authorize against the embedded snapshot
//     without touching the database.
//
// # Failure Collapsing
//
// Missing, forged, malformed, and expired tokens all produce the identical
// WRONG_TOKEN response. The distinction survives only in server-side logs.
// Verification is a pure local cryptographic check: no retries, no I/O.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			tokenString := request.Header.Get(constants.HeaderToken)

			// ── 1. Presence Check ─────────────────────────────────────────────
			if tokenString == "" {
				respond.Error(writer, request, apperr.WrongToken())
				return
			}

			// ── 2. Token Verification ─────────────────────────────────────────
			payload, err := verifier.Verify(tokenString)
			if err != nil {
				// Same wire outcome either way; log which gate actually failed.
				logger := ctxutil.GetLogger(request.Context())
				if errors.Is(err, sec.ErrExpiredToken) {
					logger.WarnContext(request.Context(), "token_rejected",
						slog.Int("code", apperr.CodeExpiredToken))
				} else {
					logger.WarnContext(request.Context(), "token_rejected",
						slog.Int("code", apperr.CodeWrongToken))
				}
				respond.Error(writer, request, apperr.WrongToken().WithCause(err))
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithTokenPayload(request.Context(), payload)
			ctx = ctxutil.WithRawToken(ctx, tokenString)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}
