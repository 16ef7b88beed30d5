// Copyright (c) 2026 Vicinio. All rights reserved.

package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vicinio/vicinio/internal/platform/constants"
	"github.com/vicinio/vicinio/internal/platform/ctxutil"
	"github.com/vicinio/vicinio/internal/platform/middleware"
	"github.com/vicinio/vicinio/internal/platform/sec"
)

type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newTestCodec(t *testing.T) *sec.TokenCodec {
	t.Helper()
	codec, err := sec.NewTokenCodec("middleware-test-secret", "vicinio.test", time.Hour)
	require.NoError(t, err)
	return codec
}

/*
TestAuthenticate_Rejections verifies that missing, garbage, and expired
tokens all collapse to the same WRONG_TOKEN response and never reach the
downstream handler.
*/
func TestAuthenticate_Rejections(t *testing.T) {
	codec := newTestCodec(t)

	otherCodec, err := sec.NewTokenCodec("a-different-secret", "vicinio.test", time.Hour)
	require.NoError(t, err)
	foreignToken, err := otherCodec.Issue(sec.TokenPayload{User: sec.TokenUser{ID: "u-1"}})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"missing_header", ""},
		{"garbage_token", "not.a.token"},
		{"wrong_signature", foreignToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			handler := middleware.Authenticate(codec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
			}))

			request := httptest.NewRequest(http.MethodGet, "/api/v2/users/me", nil)
			if tt.token != "" {
				request.Header.Set(constants.HeaderToken, tt.token)
			}
			recorder := httptest.NewRecorder()

			handler.ServeHTTP(recorder, request)

			// 1. Request is blocked before the handler.
			assert.False(t, reached)
			assert.Equal(t, http.StatusUnauthorized, recorder.Code)

			// 2. Body carries the WRONG_TOKEN catalog entry.
			var body errorEnvelope
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
			assert.Equal(t, 1102, body.Error.Code)
		})
	}
}

/*
TestAuthenticate_Success verifies that a valid token passes through and
that both the decoded payload and the raw token string are attached to
the request context.
*/
func TestAuthenticate_Success(t *testing.T) {
	codec := newTestCodec(t)

	token, err := codec.Issue(sec.TokenPayload{
		User: sec.TokenUser{
			ID:          "0191c2a8-3b5e-7000-8000-4f2d90aa1111",
			FirstName:   "Sherlock",
			LastName:    "Holmes",
			Status:      1,
			Communities: []string{"0191c2a8-3b5e-7000-8000-4f2d90aa0001"},
		},
	})
	require.NoError(t, err)

	var seenPayload *sec.TokenPayload
	var seenRaw string
	handler := middleware.Authenticate(codec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenPayload = ctxutil.GetTokenPayload(r.Context())
		seenRaw = ctxutil.GetRawToken(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	request := httptest.NewRequest(http.MethodGet, "/api/v2/users/me", nil)
	request.Header.Set(constants.HeaderToken, token)
	recorder := httptest.NewRecorder()

	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, seenPayload)
	assert.Equal(t, "0191c2a8-3b5e-7000-8000-4f2d90aa1111", seenPayload.User.ID)
	assert.True(t, seenPayload.IsMemberOf("0191c2a8-3b5e-7000-8000-4f2d90aa0001"))
	assert.Equal(t, token, seenRaw)
}
