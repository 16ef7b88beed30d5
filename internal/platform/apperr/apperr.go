// Copyright (c) 2026 Vicinio. All rights reserved.

/*
Package apperr defines the centralized error handling framework for Vicinio.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct pairing the numeric wire code every client already
    parses with an HTTP status and a client-safe message.
  - Catalog: The complete set of wire errors lives in catalog.go. Handlers and
    services never invent ad-hoc codes.
  - Collapsing: All authorization failures (missing, forged, expired token,
    wrong community, not owner) deliberately surface as HTTP 401 so the
    response leaks nothing about which gate rejected the request.

Every error that leaves the service layer should be an [*AppError] to ensure
consistent API responses.
*/
package apperr

import (
	"errors"
	"net/http"
)

// AppError is the canonical error type for the Vicinio API.
//
// # Wire Shape
//
// It serializes as { "error": { "code": <number>, "message": <string> } },
// the envelope shared by every error response of the v2 API.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is the numeric, machine-readable wire identifier (e.g. 1102).
	Code int `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"message"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause returns a copy of the error carrying cause for server-side logs.
//
// The wire representation is unchanged; only observability gains detail.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// # Constructors

// New creates an [*AppError] with an explicit code, message, and HTTP status.
//
// Prefer the catalog constructors; New exists for the rare call site that
// needs a one-off status override.
func New(code int, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Internal wraps an unexpected server-side error as the generic unknown-error
// response. The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeUnknownError,
		Message:    "UNKNOWN ERROR",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// CodeOf returns the numeric wire code of err, or 0 if err is not an [*AppError].
func CodeOf(err error) int {
	if ae := As(err); ae != nil {
		return ae.Code
	}
	return 0
}
