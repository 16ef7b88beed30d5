// Copyright (c) 2026 Vicinio. All rights reserved.

package sec_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vicinio/vicinio/internal/platform/sec"
)

/*
TestHashPassword verifies hashing is salted (distinct hashes for the same
input) and round-trips through the comparison.
*/
func TestHashPassword(t *testing.T) {
	first, err := sec.HashPassword("123456")
	require.NoError(t, err)
	second, err := sec.HashPassword("123456")
	require.NoError(t, err)

	assert.NotEqual(t, "123456", first)
	assert.NotEqual(t, first, second)

	assert.True(t, sec.CheckPasswordHash("123456", first))
	assert.True(t, sec.CheckPasswordHash("123456", second))
	assert.False(t, sec.CheckPasswordHash("654321", first))
	assert.False(t, sec.CheckPasswordHash("123456", "not-a-bcrypt-hash"))
}

/*
TestGenerateSecureToken verifies tokens are URL-safe, non-repeating, and
sized to the requested entropy.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	// 32 raw bytes → 43 chars of unpadded base64url.
	assert.Len(t, first, 43)
	assert.False(t, strings.ContainsAny(first, "+/="))
}
