// Copyright (c) 2026 Vicinio. All rights reserved.

/*
Package user defines the member identity domain of the Vicinio platform.

It owns the User entity, its persistence contract, and the single projection
that turns a stored user into the snapshot embedded inside bearer tokens.

# Architecture

  - Entities: User (full record, credential hash never serialized).
  - Projection: [TokenView] is the ONE function allowed to build a
    [sec.TokenUser]; every token issuance site goes through it so the
    embedded shape never drifts between routes.
  - Domain: This package has no dependency on the community or post packages.
*/
package user

import (
	"time"

	"github.com/vicinio/vicinio/internal/platform/sec"
)

// # Domain Entities

// StatusActive is the numeric status of a usable account. Any other value
// marks the account as suspended or pending and blocks authorization.
const StatusActive = 1

// User represents a registered member of a neighborhood.
//
// Wire names follow the v2 JSON contract consumed by the mobile apps.
type User struct {
	ID           string   `json:"id"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	LoginID      string   `json:"loginId,omitempty"` // absent for provider-created accounts
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"` // Explicitly omitted from JSON for security.
	Status       int      `json:"status"`
	AboutMe      string   `json:"aboutMe,omitempty"`
	ComingFrom   string   `json:"comingFrom,omitempty"`
	Interests    []string `json:"myInterests,omitempty"`
	Expertise    []string `json:"myExpertise,omitempty"`

	// CurrentCommunity is the community the user is "inside" for posting and
	// reading. If set it must be an element of the membership set.
	CurrentCommunity string `json:"currentCommunity,omitempty"`

	CreatedAt time.Time `json:"dtCreated"`
	UpdatedAt time.Time `json:"dtUpdated,omitempty"`
}

// FullName returns "First Last" for display snapshots.
func (u *User) FullName() string {
	return sec.TokenUser{FirstName: u.FirstName, LastName: u.LastName}.FullName()
}

// IsActive reports whether the account may authorize requests.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// # Token Projection

// TokenView builds the canonical token snapshot of a user.
//
// # Size Discipline
//
// Interests, expertise, and audit timestamps are excluded to bound token
// size; the credential hash is excluded for security. communityIDs is the
// membership set to embed — callers pass the freshly persisted set so the
// issued token reflects the post-mutation state.
func TokenView(u *User, communityIDs []string) sec.TokenUser {
	return sec.TokenUser{
		ID:               u.ID,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		LoginID:          u.LoginID,
		Email:            u.Email,
		Status:           u.Status,
		Communities:      communityIDs,
		CurrentCommunity: u.CurrentCommunity,
	}
}
