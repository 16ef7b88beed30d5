// Copyright (c) 2026 Vicinio. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vicinio/vicinio/internal/platform/ctxutil"
	"github.com/vicinio/vicinio/internal/platform/sec"
)

/*
DecodeJSON reads the request body into the target structure.

A malformed body leaves the target zero-valued rather than failing the
request: the v2 contract reports missing input through specific field errors
(FIRST NAME SHOULD NOT BE EMPTY, ...) in a fixed precedence order, and an
undecodable body is indistinguishable from an empty one to the caller.
*/
func DecodeJSON(request *http.Request, target interface{}) {
	_ = json.NewDecoder(request.Body).Decode(target)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Payload returns the decoded token payload attached by the authentication
middleware, or nil on unauthenticated routes.
*/
func Payload(request *http.Request) *sec.TokenPayload {
	return ctxutil.GetTokenPayload(request.Context())
}

/*
RawToken returns the bearer token string exactly as the client sent it.
*/
func RawToken(request *http.Request) string {
	return ctxutil.GetRawToken(request.Context())
}
