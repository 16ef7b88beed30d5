// Copyright (c) 2026 Vicinio. All rights reserved.

package post

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/vicinio/vicinio/internal/platform/request"
	"github.com/vicinio/vicinio/internal/platform/respond"
	"github.com/vicinio/vicinio/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements post HTTP endpoints.
//
// The router returned by [Handler.Routes] is mounted under
// /communities/{communityID}/posts; the communityID parameter is inherited
// from the parent route context.
type Handler struct {
	postService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{postService: service}
}

// Routes returns a [chi.Router] configured with post routes.
//
// # Endpoints
//   - GET   /                  : List visible posts (paginated).
//   - POST  /                  : Publish a post.
//   - GET   /{postID}          : Fetch one post.
//   - PATCH /{postID}          : Mutate description/status, owner only.
//   - GET   /{postID}/comments : Fetch a post's comments.
//   - GET   /{postID}/likes    : Fetch a post's likes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{postID}", handler.byID)
	router.Patch("/{postID}", handler.update)
	router.Get("/{postID}/comments", handler.comments)
	router.Get("/{postID}/likes", handler.likes)

	return router
}

// # Request Payloads

// postEnvelope mirrors the v2 request convention of nesting the post fields
// under a top-level "post" key.
type postEnvelope struct {
	Post struct {
		Description *string  `json:"description"`
		Images      []string `json:"images"`
		Status      *int     `json:"status"`
	} `json:"post"`
}

/*
list returns the visible posts of the community.

GET /api/v2/communities/{communityID}/posts?page=&limit=

Response:
  - 200: {posts}
  - 401: 1401, 1405, 1406
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	payload := requestutil.Payload(request)
	communityID := requestutil.Param(request, "communityID")
	page := pagination.FromRequest(request)

	posts, err := handler.postService.List(request.Context(), payload, communityID, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"posts": posts})
}

/*
byID returns a single post.

GET /api/v2/communities/{communityID}/posts/{postID}

Response:
  - 200: {post}
  - 401: 1401, 1405, 1406, 1501, 1502, 1503
*/
func (handler *Handler) byID(writer http.ResponseWriter, request *http.Request) {
	payload := requestutil.Payload(request)
	communityID := requestutil.Param(request, "communityID")
	postID := requestutil.Param(request, "postID")

	post, err := handler.postService.Get(request.Context(), payload, communityID, postID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"post": post})
}

/*
create publishes a new post.

POST /api/v2/communities/{communityID}/posts

Request:
  - Body: {post: {description, images}}

Response:
  - 200: {post}
  - 401: 1401, 1504, 1405, 1406
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	payload := requestutil.Payload(request)
	communityID := requestutil.Param(request, "communityID")

	var body postEnvelope
	requestutil.DecodeJSON(request, &body)

	input := CreateInput{Images: body.Post.Images}
	if body.Post.Description != nil {
		input.Description = *body.Post.Description
	}

	post, err := handler.postService.Create(request.Context(), payload, communityID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"post": post})
}

/*
update mutates a post's description/status.

PATCH /api/v2/communities/{communityID}/posts/{postID}

Request:
  - Body: {post: {description, status}} — absent fields stay untouched

Response:
  - 200: {post}
  - 401: Read gates plus 1505 POST_OWNER_UPDATE_ONLY
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	payload := requestutil.Payload(request)
	communityID := requestutil.Param(request, "communityID")
	postID := requestutil.Param(request, "postID")

	var body postEnvelope
	requestutil.DecodeJSON(request, &body)

	post, err := handler.postService.Update(request.Context(), payload, communityID, postID, UpdateInput{
		Description: body.Post.Description,
		Status:      body.Post.Status,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"post": post})
}

/*
comments returns a post's comments.

GET /api/v2/communities/{communityID}/posts/{postID}/comments

Response:
  - 200: {postId, comments}
  - 401: Same gates as byID
*/
func (handler *Handler) comments(writer http.ResponseWriter, request *http.Request) {
	payload := requestutil.Payload(request)
	communityID := requestutil.Param(request, "communityID")
	postID := requestutil.Param(request, "postID")

	comments, err := handler.postService.Comments(request.Context(), payload, communityID, postID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"postId":   postID,
		"comments": comments,
	})
}

/*
likes returns a post's likes.

GET /api/v2/communities/{communityID}/posts/{postID}/likes

Response:
  - 200: {postId, likes}
  - 401: Same gates as byID
*/
func (handler *Handler) likes(writer http.ResponseWriter, request *http.Request) {
	payload := requestutil.Payload(request)
	communityID := requestutil.Param(request, "communityID")
	postID := requestutil.Param(request, "postID")

	likes, err := handler.postService.Likes(request.Context(), payload, communityID, postID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"postId": postID,
		"likes":  likes,
	})
}
