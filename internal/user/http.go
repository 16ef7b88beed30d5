// Copyright (c) 2026 Vicinio. All rights reserved.

package user

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vicinio/vicinio/internal/platform/apperr"
	requestutil "github.com/vicinio/vicinio/internal/platform/request"
	"github.com/vicinio/vicinio/internal/platform/respond"
	"github.com/vicinio/vicinio/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements user-profile HTTP endpoints.
//
// All routes here sit behind the authentication middleware; the decoded
// token payload is always present on the request context.
type Handler struct {
	userRepository Repository
}

// NewHandler constructs a new [Handler] with its repository dependency.
func NewHandler(repository Repository) *Handler {
	return &Handler{userRepository: repository}
}

// Routes returns a [chi.Router] configured with user-profile routes.
//
// # Endpoints
//   - GET /me       : Returns the caller's live profile.
//   - GET /{userID} : Returns any member's profile by id.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/me", handler.me)
	router.Get("/{userID}", handler.byID)

	return router
}

/*
me returns the authenticated caller's profile.

GET /api/v2/users/me

Description: Resolves the user id from the token and performs a LIVE store
read, so the body reflects post-issuance profile changes the token snapshot
cannot carry.

Response:
  - 200: {user}
  - 401: 1102 WRONG_TOKEN (token valid but account gone — treated as forged)
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	payload := requestutil.Payload(request)

	account, err := handler.userRepository.FindByID(request.Context(), payload.User.ID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(writer, request, apperr.WrongToken().WithCause(err))
			return
		}
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"user": account})
}

/*
byID returns any member's profile by id.

GET /api/v2/users/{userID}

Response:
  - 200: {user}
  - 401: 1301 INVALID_USER_ID, 1302 USER_DOES_NOT_EXIST
*/
func (handler *Handler) byID(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userID")

	if !validate.IsID(userID) {
		respond.Error(writer, request, apperr.InvalidUserID())
		return
	}

	account, err := handler.userRepository.FindByID(request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(writer, request, apperr.UserDoesNotExist())
			return
		}
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"user": account})
}
