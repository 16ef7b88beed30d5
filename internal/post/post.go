// Copyright (c) 2026 Vicinio. All rights reserved.

/*
Package post implements community posts, their comments, and their likes.

# Architecture

  - Entities: Post, Comment, Like.
  - Authorization: every operation is gated on the caller's TOKEN snapshot
    (membership + current community), never a fresh user read. The gates
    run in a fixed order so each failure maps to exactly one wire code.
  - Domain: Depends only on the platform layer; the community package is
    referenced by id, never imported.
*/
package post

import (
	"context"
	"time"
)

// # Domain Entities

// StatusVisible is the numeric status of a readable post. Any other value
// hides the post from every read path.
const StatusVisible = 1

// Post represents content published by a member inside their community.
//
// Wire names follow the v2 JSON contract consumed by the mobile apps.
type Post struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	PostedBy    string    `json:"postedBy"`
	PostedDate  time.Time `json:"postedDate"`
	Status      int       `json:"status"`
	Community   string    `json:"community"`
	UpdatedAt   time.Time `json:"dtUpdated,omitempty"`
}

// IsVisible reports whether the post may be served on read paths.
func (p *Post) IsVisible() bool {
	return p.Status == StatusVisible
}

// Comment is a single comment on a post.
type Comment struct {
	Comment     string    `json:"comment"`
	CommentDate time.Time `json:"commentDate"`
	CommentedBy string    `json:"commentedBy"`
}

// Like is a single like on a post. The display name is a snapshot taken at
// like time; it does not follow later profile renames.
type Like struct {
	LikedByName string `json:"likedByName"`
	LikedBy     string `json:"likedBy"`
}

// # Repository Contract

// Repository defines the persistence contract for posts and their
// sub-collections.
type Repository interface {
	/*
		FindByID retrieves a post record by its unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Post: Hydrated entity regardless of status (visibility is a
		    service-layer decision)
		  - error: [ErrNotFound] or storage failures
	*/
	FindByID(context context.Context, id string) (*Post, error)

	/*
		ListVisibleByCommunity returns the community's posts with
		status = visible, filtered SERVER-SIDE in the query, newest first.

		Parameters:
		  - context: context.Context
		  - communityID: string
		  - limit: int (page size)
		  - offset: int

		Returns:
		  - []*Post: Hydrated entities, empty if none
		  - error: Retrieval errors
	*/
	ListVisibleByCommunity(context context.Context, communityID string, limit, offset int) ([]*Post, error)

	/*
		Create persists a brand new post record.

		Parameters:
		  - context: context.Context
		  - post: *Post (Hydrated entity)

		Returns:
		  - error: Constraint violations or storage failures
	*/
	Create(context context.Context, post *Post) error

	/*
		Update persists changes to a post's mutable fields
		(description, status).

		Parameters:
		  - context: context.Context
		  - post: *Post

		Returns:
		  - error: Execution failures
	*/
	Update(context context.Context, post *Post) error

	/*
		ListComments returns a post's comments in posting order.

		Parameters:
		  - context: context.Context
		  - postID: string

		Returns:
		  - []Comment: Ordered comments, empty if none
		  - error: Retrieval errors
	*/
	ListComments(context context.Context, postID string) ([]Comment, error)

	/*
		ListLikes returns a post's likes in liking order.

		Parameters:
		  - context: context.Context
		  - postID: string

		Returns:
		  - []Like: Ordered likes, empty if none
		  - error: Retrieval errors
	*/
	ListLikes(context context.Context, postID string) ([]Like, error)
}
