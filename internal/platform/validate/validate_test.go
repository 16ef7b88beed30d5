// Copyright (c) 2026 Vicinio. All rights reserved.

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vicinio/vicinio/internal/platform/validate"
)

/*
TestIsID verifies the identifier predicate across canonical, uppercase,
and malformed inputs.
*/
func TestIsID(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"canonical_v7", "0191c2a8-3b5e-7000-8000-4f2d90aa0001", true},
		{"canonical_v4", "f47ac10b-58cc-4372-a567-0e02b2c3d479", true},
		{"uppercase", "0191C2A8-3B5E-7000-8000-4F2D90AA0001", true},
		{"empty", "", false},
		{"too_short", "0191c2a8-3b5e-7000-8000", false},
		{"missing_dashes", "0191c2a83b5e70008000f4f2d90aa001", false},
		{"non_hex", "0191c2a8-3b5e-7000-8000-4f2d90aa000g", false},
		{"surrounding_noise", " 0191c2a8-3b5e-7000-8000-4f2d90aa0001 ", false},
		{"numeric_id", "12345", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validate.IsID(tt.value))
		})
	}
}

/*
TestIsEmail verifies the email predicate, including rejection of the
"Name <addr>" display form.
*/
func TestIsEmail(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"plain_address", "sherlock@221b.baker.str", true},
		{"with_plus_tag", "watson+cases@example.com", true},
		{"empty", "", false},
		{"no_at_sign", "sherlock.example.com", false},
		{"no_domain", "sherlock@", false},
		{"display_name_form", "Sherlock Holmes <sherlock@example.com>", false},
		{"leading_space", " sherlock@example.com", false},
		{"double_at", "sherlock@@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validate.IsEmail(tt.value))
		})
	}
}

/*
TestNotBlank verifies whitespace-only strings are treated as empty.
*/
func TestNotBlank(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  bool
	}{
		{"word", "Sherlock", true},
		{"inner_space", "  Sherlock  ", true},
		{"empty", "", false},
		{"spaces_only", "   ", false},
		{"tabs_and_newlines", "\t\n ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validate.NotBlank(tt.value))
		})
	}
}
