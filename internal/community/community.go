// Copyright (c) 2026 Vicinio. All rights reserved.

/*
Package community implements the neighborhood membership domain.

It owns the Community entity, the membership set (which users belong to
which communities), and the join/switch protocol that keeps persisted
membership and token-embedded membership reconcilable.

# Architecture

  - Entities: Community. Membership is a relation, not an entity — it is
    only ever observed as a set of community ids per user.
  - Protocol: [Service] mutates membership and ALWAYS re-issues the bearer
    token in the same call, so no success response can carry a stale
    authorization snapshot.
  - Domain: Depends on the user package (reload after mutation) and on
    sec for token issuance. Communities are created out-of-band; there is
    no creation endpoint.
*/
package community

import (
	"context"
	"time"
)

// # Domain Entities

// Community represents a neighborhood that members join and post into.
//
// Wire names follow the v2 JSON contract consumed by the mobile apps.
type Community struct {
	ID          string `json:"id"`
	Name        string `json:"communityName"`
	Description string `json:"communityDescription,omitempty"`
	Status      int    `json:"status"`

	// Geo-coordinates are carried as strings end to end; the backend never
	// does arithmetic on them.
	Longitude string `json:"longitude,omitempty"`
	Latitude  string `json:"latitude,omitempty"`

	CreatedBy string    `json:"createdBy,omitempty"`
	CreatedAt time.Time `json:"dtCreated"`
	UpdatedAt time.Time `json:"dtUpdated,omitempty"`
}

// # Repository Contracts

// Repository defines the read contract for community records.
type Repository interface {
	/*
		FindByID retrieves a community record by its unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Community: Hydrated entity
		  - error: [ErrNotFound] or storage failures
	*/
	FindByID(context context.Context, id string) (*Community, error)
}

// MembershipRepository defines the persistence contract for the user ↔
// community membership set.
type MembershipRepository interface {
	/*
		Add inserts a membership row with insert-if-absent semantics.

		The insert must be atomic at the storage layer: two concurrent joins
		for the same (user, community) pair both succeed and leave exactly
		one row. Re-adding an existing membership is a no-op, not an error.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - communityID: string

		Returns:
		  - error: Execution failures
	*/
	Add(context context.Context, userID, communityID string) error

	/*
		CommunityIDs returns the ids of every community the user has joined,
		ordered by join time.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []string: Membership set, empty if none
		  - error: Retrieval errors
	*/
	CommunityIDs(context context.Context, userID string) ([]string, error)

	/*
		ListForUser returns the full community records the user has joined,
		ordered by join time.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []*Community: Hydrated entities, empty if none
		  - error: Retrieval errors
	*/
	ListForUser(context context.Context, userID string) ([]*Community, error)
}
