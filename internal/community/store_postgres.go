// Copyright (c) 2026 Vicinio. All rights reserved.

package community

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound marks lookups that matched no row.
var ErrNotFound = errors.New("community: not found")

const communityColumns = `
	id, name, description, status, longitude, latitude,
	created_by, created_at, updated_at`

// # Community Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// scanCommunity hydrates a Community from a row holding communityColumns.
func scanCommunity(row pgx.Row) (*Community, error) {
	community := &Community{}
	var description, longitude, latitude, createdBy *string
	var updatedAt *time.Time

	err := row.Scan(
		&community.ID,
		&community.Name,
		&description,
		&community.Status,
		&longitude,
		&latitude,
		&createdBy,
		&community.CreatedAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description != nil {
		community.Description = *description
	}
	if longitude != nil {
		community.Longitude = *longitude
	}
	if latitude != nil {
		community.Latitude = *latitude
	}
	if createdBy != nil {
		community.CreatedBy = *createdBy
	}
	if updatedAt != nil {
		community.UpdatedAt = *updatedAt
	}

	return community, nil
}

/*
FindByID retrieves a community record by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Community: Hydrated entity
  - error: [ErrNotFound] or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Community, error) {
	query := "SELECT " + communityColumns + " FROM communities WHERE id = $1"

	community, err := scanCommunity(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("postgres_community_repo_find_by_id_failed: %w", err)
	}

	return community, nil
}

// # Membership Repository

// PostgresMembershipRepository implements [MembershipRepository] using pgx.
type PostgresMembershipRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresMembershipRepository creates the PostgreSQL implementation of
// [MembershipRepository].
func NewPostgresMembershipRepository(pool *pgxpool.Pool) *PostgresMembershipRepository {
	return &PostgresMembershipRepository{pool: pool}
}

/*
Add inserts a membership row with insert-if-absent semantics.

Description: ON CONFLICT DO NOTHING makes the insert atomic and idempotent —
two concurrent joins for the same pair leave exactly one row and neither
caller observes a constraint error.

Parameters:
  - context: context.Context
  - userID: string
  - communityID: string

Returns:
  - error: Execution failures
*/
func (repository *PostgresMembershipRepository) Add(context context.Context, userID, communityID string) error {
	const query = `
		INSERT INTO user_community (user_id, community_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, community_id) DO NOTHING`

	_, err := repository.pool.Exec(context, query, userID, communityID)
	if err != nil {
		return fmt.Errorf("postgres_membership_repo_add_failed: %w", err)
	}

	return nil
}

/*
CommunityIDs returns the ids of every community the user has joined.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []string: Membership set ordered by join time, empty if none
  - error: Retrieval errors
*/
func (repository *PostgresMembershipRepository) CommunityIDs(context context.Context, userID string) ([]string, error) {
	const query = `
		SELECT community_id
		FROM user_community
		WHERE user_id = $1
		ORDER BY joined_at`

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_membership_repo_community_ids_failed: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("postgres_membership_repo_community_ids_scan_failed: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_membership_repo_community_ids_rows_failed: %w", err)
	}

	return ids, nil
}

/*
ListForUser returns the full community records the user has joined.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []*Community: Hydrated entities ordered by join time, empty if none
  - error: Retrieval errors
*/
func (repository *PostgresMembershipRepository) ListForUser(context context.Context, userID string) ([]*Community, error) {
	query := `
		SELECT ` + communityColumns + `
		FROM communities c
		JOIN user_community uc ON uc.community_id = c.id
		WHERE uc.user_id = $1
		ORDER BY uc.joined_at`

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres_membership_repo_list_for_user_failed: %w", err)
	}
	defer rows.Close()

	communities := []*Community{}
	for rows.Next() {
		community, err := scanCommunity(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_membership_repo_list_for_user_scan_failed: %w", err)
		}
		communities = append(communities, community)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_membership_repo_list_for_user_rows_failed: %w", err)
	}

	return communities, nil
}
