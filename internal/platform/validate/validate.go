// Copyright (c) 2026 Vicinio. All rights reserved.

// Package validate provides format predicates shared by handlers and services.
//
// # Architecture
//
// The v2 API reports validation failures as single, specific catalog errors
// (FIRST NAME SHOULD NOT BE EMPTY, INVALID COMMUNITY ID, ...) checked in a
// fixed precedence order, so this package exposes plain predicates rather
// than an error-accumulating validator. The caller decides which catalog
// error a failed predicate maps to.
package validate

import (
	"net/mail"
	"regexp"
	"strings"
)

// idRegex matches a canonical UUID string (v4 or v7).
var idRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// IsID reports whether value is a well-formed entity identifier.
//
// # Format
//
// All Vicinio entity ids are UUIDv7 strings. Malformed ids are rejected
// before any storage lookup so the store only ever sees valid keys.
func IsID(value string) bool {
	return idRegex.MatchString(strings.ToLower(value))
}

// IsEmail reports whether value parses as an RFC 5322 email address.
func IsEmail(value string) bool {
	if value == "" {
		return false
	}
	addr, err := mail.ParseAddress(value)
	if err != nil {
		return false
	}
	// Reject "Name <addr>" forms: login ids are bare addresses.
	return addr.Address == value
}

// NotBlank reports whether value contains any non-whitespace character.
func NotBlank(value string) bool {
	return strings.TrimSpace(value) != ""
}
