// Copyright (c) 2026 Vicinio. All rights reserved.

package community

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/vicinio/vicinio/internal/platform/request"
	"github.com/vicinio/vicinio/internal/platform/respond"
)

// # Definitions & Constructors

// Handler implements community membership HTTP endpoints.
//
// All routes here sit behind the authentication middleware. The two
// mutating routes (join, switch) respond through [respond.OKWithToken] —
// the fresh token is part of their contract, never optional.
type Handler struct {
	communityService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{communityService: service}
}

// Routes returns a [chi.Router] configured with community routes.
//
// # Endpoints
//   - GET /mine                : The caller's live community list.
//   - GET /current             : The caller's current community.
//   - GET /switch/{communityID}: Move current within the membership set.
//   - GET /{communityID}       : Community metadata by id.
//   - GET /{communityID}/join  : Join and move into the community.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/mine", handler.mine)
	router.Get("/current", handler.current)
	router.Get("/switch/{communityID}", handler.switchCurrent)
	router.Get("/{communityID}", handler.byID)
	router.Get("/{communityID}/join", handler.join)

	return router
}

/*
join adds the caller to a community.

GET /api/v2/communities/{communityID}/join

Response:
  - 200: {user, communities} + fresh token in the `token` header
  - 401: 1401 INVALID_COMMUNITY_ID, 1402 COMMUNITY_DOES_NOT_EXIST
*/
func (handler *Handler) join(writer http.ResponseWriter, request *http.Request) {
	payload := requestutil.Payload(request)
	communityID := requestutil.Param(request, "communityID")

	result, err := handler.communityService.Join(request.Context(), payload, communityID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OKWithToken(writer, result.Token, map[string]any{
		"user":        result.User,
		"communities": result.Communities,
	})
}

/*
switchCurrent moves the caller's current community.

GET /api/v2/communities/switch/{communityID}

Response:
  - 200: {user, communities} + fresh token in the `token` header
  - 401: 1401 INVALID_COMMUNITY_ID, 1405 USER_NOT_JOINED_COMMUNITY
*/
func (handler *Handler) switchCurrent(writer http.ResponseWriter, request *http.Request) {
	payload := requestutil.Payload(request)
	communityID := requestutil.Param(request, "communityID")

	result, err := handler.communityService.Switch(request.Context(), payload, communityID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OKWithToken(writer, result.Token, map[string]any{
		"user":        result.User,
		"communities": result.Communities,
	})
}

/*
mine lists the caller's communities from live storage.

GET /api/v2/communities/mine

Response:
  - 200: {communities}
*/
func (handler *Handler) mine(writer http.ResponseWriter, request *http.Request) {
	payload := requestutil.Payload(request)

	communities, err := handler.communityService.ListMine(request.Context(), payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"communities": communities})
}

/*
current resolves the caller's current community from the token.

GET /api/v2/communities/current

Response:
  - 200: {currentCommunity}
  - 401: 1404 NO_COMMUNITY_YET, 1401, 1402
*/
func (handler *Handler) current(writer http.ResponseWriter, request *http.Request) {
	payload := requestutil.Payload(request)

	community, err := handler.communityService.Current(request.Context(), payload)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"currentCommunity": community})
}

/*
byID returns community metadata by id.

GET /api/v2/communities/{communityID}

Response:
  - 200: {community}
  - 401: 1401 INVALID_COMMUNITY_ID, 1402 COMMUNITY_DOES_NOT_EXIST
*/
func (handler *Handler) byID(writer http.ResponseWriter, request *http.Request) {
	communityID := requestutil.Param(request, "communityID")

	community, err := handler.communityService.Get(request.Context(), communityID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"community": community})
}
