// Copyright (c) 2026 Vicinio. All rights reserved.

package user

import "context"

// # Repository Contracts

// Repository defines the persistence contract for user accounts.
//
// Implementations map storage-level "no rows" outcomes to plain errors; the
// service layer decides which catalog error a failed lookup becomes.
type Repository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *User: Hydrated account entity
		  - error: Not found or storage failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByLoginID retrieves a user record by their unique login identifier.

		Parameters:
		  - context: context.Context
		  - loginID: string (email-shaped)

		Returns:
		  - *User: Hydrated account entity
		  - error: Not found or storage failures
	*/
	FindByLoginID(context context.Context, loginID string) (*User, error)

	/*
		FindByEmail retrieves a user record by email address.

		Used by provider login, where accounts may have no login id at all.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated account entity
		  - error: Not found or storage failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand new user record.

		Parameters:
		  - context: context.Context
		  - user: *User (Hydrated entity)

		Returns:
		  - error: Constraint violations or storage failures
	*/
	Create(context context.Context, user *User) error

	/*
		SetCurrentCommunity persists the user's current community pointer.

		This is a single-column conditional update, atomic at the storage
		layer, so concurrent switches never interleave into a torn state.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - communityID: string

		Returns:
		  - error: Execution failures
	*/
	SetCurrentCommunity(context context.Context, userID, communityID string) error

	/*
		UpdatePassword replaces the credential hash for a specific user.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Execution failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error
}
