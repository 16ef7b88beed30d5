// Copyright (c) 2026 Vicinio. All rights reserved.

// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are wrapped and surfaced as
// plain errors; catalog mapping happens in the service layer so this file
// never leaks wire codes.

package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound marks lookups that matched no row.
var ErrNotFound = errors.New("user: not found")

const userColumns = `
	id, first_name, last_name, login_id, email, password_hash, status,
	about_me, coming_from, interests, expertise, current_community,
	created_at, updated_at`

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// scanUser hydrates a User from a row holding userColumns.
func scanUser(row pgx.Row) (*User, error) {
	user := &User{}
	var loginID, passwordHash, aboutMe, comingFrom, currentCommunity *string
	var updatedAt *time.Time

	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&loginID,
		&user.Email,
		&passwordHash,
		&user.Status,
		&aboutMe,
		&comingFrom,
		&user.Interests,
		&user.Expertise,
		&currentCommunity,
		&user.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if loginID != nil {
		user.LoginID = *loginID
	}
	if passwordHash != nil {
		user.PasswordHash = *passwordHash
	}
	if aboutMe != nil {
		user.AboutMe = *aboutMe
	}
	if comingFrom != nil {
		user.ComingFrom = *comingFrom
	}
	if currentCommunity != nil {
		user.CurrentCommunity = *currentCommunity
	}
	if updatedAt != nil {
		user.UpdatedAt = *updatedAt
	}

	return user, nil
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *User: Hydrated account entity
  - error: [ErrNotFound] or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE id = $1"

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
FindByLoginID retrieves a user record by their unique login identifier.

Parameters:
  - context: context.Context
  - loginID: string

Returns:
  - *User: Hydrated account entity
  - error: [ErrNotFound] or execution errors
*/
func (repository *PostgresRepository) FindByLoginID(context context.Context, loginID string) (*User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE login_id = $1"

	user, err := scanUser(repository.pool.QueryRow(context, query, loginID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_login_id_failed: %w", err)
	}

	return user, nil
}

/*
FindByEmail retrieves a user record by email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: [ErrNotFound] or execution errors
*/
func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := "SELECT " + userColumns + " FROM users WHERE email = $1"

	user, err := scanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("postgres_user_repo_find_by_email_failed: %w", err)
	}

	return user, nil
}

/*
Create persists a new user record into the users table.

Description: Deep-persists account data, initializing the creation timestamp
if not provided. Nullable columns (login_id, password_hash) are stored as
NULL when empty so provider-created accounts never carry fake credentials.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Constraint violations or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users (
			id, first_name, last_name, login_id, email, password_hash, status,
			about_me, coming_from, interests, expertise, current_community, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.FirstName,
		user.LastName,
		nullIfEmpty(user.LoginID),
		user.Email,
		nullIfEmpty(user.PasswordHash),
		user.Status,
		nullIfEmpty(user.AboutMe),
		nullIfEmpty(user.ComingFrom),
		user.Interests,
		user.Expertise,
		nullIfEmpty(user.CurrentCommunity),
		user.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
SetCurrentCommunity persists the user's current community pointer.

Description: Single-statement conditional update; the storage layer applies
it atomically, which is what keeps concurrent switches from interleaving.

Parameters:
  - context: context.Context
  - userID: string
  - communityID: string

Returns:
  - error: Execution failures
*/
func (repository *PostgresRepository) SetCurrentCommunity(context context.Context, userID, communityID string) error {
	const query = `
		UPDATE users
		SET current_community = $2, updated_at = $3
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, communityID, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_set_current_community_failed: %w", err)
	}

	return nil
}

/*
UpdatePassword replaces only the credential hash for a specific user.

Parameters:
  - context: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	const query = `
		UPDATE users
		SET password_hash = $2, updated_at = $3
		WHERE id = $1`

	_, err := repository.pool.Exec(context, query, userID, newHash, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", err)
	}

	return nil
}

// nullIfEmpty maps "" to a SQL NULL parameter.
func nullIfEmpty(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
