// Copyright (c) 2026 Vicinio. All rights reserved.

package post

import (
	"context"
	"errors"
	"fmt"

	"github.com/vicinio/vicinio/internal/platform/apperr"
	"github.com/vicinio/vicinio/internal/platform/sec"
	"github.com/vicinio/vicinio/internal/platform/validate"
	"github.com/vicinio/vicinio/pkg/pagination"
	"github.com/vicinio/vicinio/pkg/uuidv7"
)

// # Definitions & Constructors

// Service implements post authorization and lifecycle use cases.
//
// # Gate Order
//
// Every (communityID, postID) operation runs the same fixed sequence, each
// failure mapping to exactly one wire code:
//
//  1. communityID format            → 1401
//  2. token membership              → 1405
//  3. community ≠ current           → 1406
//  4. postID format                 → 1501
//  5. post lookup                   → 1502
//  6. post hidden                   → 1503
type Service struct {
	postRepository Repository
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(repository Repository) *Service {
	return &Service{postRepository: repository}
}

// # Authorization Gates

// authorizeCommunity runs gates 1–3 against the caller's token snapshot.
// No storage read happens here; brief staleness of the snapshot is the
// accepted tradeoff for a zero-I/O fast path.
func (service *Service) authorizeCommunity(payload *sec.TokenPayload, communityID string) error {
	if !validate.IsID(communityID) {
		return apperr.InvalidCommunityID()
	}

	if !payload.IsMemberOf(communityID) {
		return apperr.UserNotJoinedCommunity()
	}

	currentID, _ := payload.CurrentCommunityID()
	if currentID != communityID {
		return apperr.NotCurrentCommunity()
	}

	return nil
}

// loadViewable runs gates 4–6 and returns the post.
func (service *Service) loadViewable(context context.Context, postID string) (*Post, error) {
	if !validate.IsID(postID) {
		return nil, apperr.InvalidPostID()
	}

	post, err := service.postRepository.FindByID(context, postID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.PostDoesNotExist()
		}
		return nil, fmt.Errorf("post_service_lookup_failed: %w", err)
	}

	if !post.IsVisible() {
		return nil, apperr.PostCannotBeViewed()
	}

	return post, nil
}

// # Read Operations

/*
List returns the visible posts of the caller's current community.

Parameters:
  - context: context.Context
  - payload: *sec.TokenPayload
  - communityID: string
  - page: pagination.Params

Returns:
  - []*Post: Visible posts, newest first, empty if none
  - error: 1401, 1405, 1406, or storage failures
*/
func (service *Service) List(context context.Context, payload *sec.TokenPayload, communityID string, page pagination.Params) ([]*Post, error) {
	if err := service.authorizeCommunity(payload, communityID); err != nil {
		return nil, err
	}

	posts, err := service.postRepository.ListVisibleByCommunity(context, communityID, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("post_service_list_failed: %w", err)
	}

	return posts, nil
}

/*
Get returns a single post after the full gate sequence.

Parameters:
  - context: context.Context
  - payload: *sec.TokenPayload
  - communityID: string
  - postID: string

Returns:
  - *Post: Hydrated entity
  - error: 1401, 1405, 1406, 1501, 1502, 1503, or storage failures
*/
func (service *Service) Get(context context.Context, payload *sec.TokenPayload, communityID, postID string) (*Post, error) {
	if err := service.authorizeCommunity(payload, communityID); err != nil {
		return nil, err
	}

	return service.loadViewable(context, postID)
}

/*
Comments returns a post's comments after the full gate sequence.

Parameters:
  - context: context.Context
  - payload: *sec.TokenPayload
  - communityID: string
  - postID: string

Returns:
  - []Comment: Ordered comments, empty if none
  - error: Same gates as [Service.Get]
*/
func (service *Service) Comments(context context.Context, payload *sec.TokenPayload, communityID, postID string) ([]Comment, error) {
	if err := service.authorizeCommunity(payload, communityID); err != nil {
		return nil, err
	}

	if _, err := service.loadViewable(context, postID); err != nil {
		return nil, err
	}

	comments, err := service.postRepository.ListComments(context, postID)
	if err != nil {
		return nil, fmt.Errorf("post_service_comments_failed: %w", err)
	}

	return comments, nil
}

/*
Likes returns a post's likes after the full gate sequence.

Parameters:
  - context: context.Context
  - payload: *sec.TokenPayload
  - communityID: string
  - postID: string

Returns:
  - []Like: Ordered likes, empty if none
  - error: Same gates as [Service.Get]
*/
func (service *Service) Likes(context context.Context, payload *sec.TokenPayload, communityID, postID string) ([]Like, error) {
	if err := service.authorizeCommunity(payload, communityID); err != nil {
		return nil, err
	}

	if _, err := service.loadViewable(context, postID); err != nil {
		return nil, err
	}

	likes, err := service.postRepository.ListLikes(context, postID)
	if err != nil {
		return nil, fmt.Errorf("post_service_likes_failed: %w", err)
	}

	return likes, nil
}

// # Write Operations

// CreateInput holds the data required to publish a new post.
type CreateInput struct {
	Description string
	Images      []string
}

/*
Create publishes a new post into the caller's current community.

Description: The description check runs right after the communityID format
check, BEFORE the membership gates — the mobile apps rely on getting 1504
for an empty form even when the user drifted out of the community.

Parameters:
  - context: context.Context
  - payload: *sec.TokenPayload
  - communityID: string
  - input: CreateInput

Returns:
  - *Post: Created entity (status visible, postedBy = caller)
  - error: 1401, 1504, 1405, 1406, or storage failures
*/
func (service *Service) Create(context context.Context, payload *sec.TokenPayload, communityID string, input CreateInput) (*Post, error) {
	if !validate.IsID(communityID) {
		return nil, apperr.InvalidCommunityID()
	}

	if !validate.NotBlank(input.Description) {
		return nil, apperr.PostDescriptionIsRequired()
	}

	if !payload.IsMemberOf(communityID) {
		return nil, apperr.UserNotJoinedCommunity()
	}

	currentID, _ := payload.CurrentCommunityID()
	if currentID != communityID {
		return nil, apperr.NotCurrentCommunity()
	}

	images := input.Images
	if images == nil {
		images = []string{}
	}

	post := &Post{
		ID:          uuidv7.New(),
		Description: input.Description,
		Images:      images,
		PostedBy:    payload.User.ID,
		Status:      StatusVisible,
		Community:   currentID,
	}

	if err := service.postRepository.Create(context, post); err != nil {
		return nil, fmt.Errorf("post_service_create_failed: %w", err)
	}

	return post, nil
}

// UpdateInput holds the mutable fields of a post. Nil fields are left
// untouched.
type UpdateInput struct {
	Description *string
	Status      *int
}

/*
Update mutates a post's description and status, owner only.

Parameters:
  - context: context.Context
  - payload: *sec.TokenPayload
  - communityID: string
  - postID: string
  - input: UpdateInput

Returns:
  - *Post: Updated entity
  - error: Read gates plus 1505 POST_OWNER_UPDATE_ONLY, or storage failures
*/
func (service *Service) Update(context context.Context, payload *sec.TokenPayload, communityID, postID string, input UpdateInput) (*Post, error) {
	if err := service.authorizeCommunity(payload, communityID); err != nil {
		return nil, err
	}

	post, err := service.loadViewable(context, postID)
	if err != nil {
		return nil, err
	}

	if post.PostedBy != payload.User.ID {
		return nil, apperr.PostOwnerUpdateOnly()
	}

	if input.Description != nil {
		post.Description = *input.Description
	}
	if input.Status != nil {
		post.Status = *input.Status
	}

	if err := service.postRepository.Update(context, post); err != nil {
		return nil, fmt.Errorf("post_service_update_failed: %w", err)
	}

	return post, nil
}
