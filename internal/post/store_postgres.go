// Copyright (c) 2026 Vicinio. All rights reserved.

package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound marks lookups that matched no row.
var ErrNotFound = errors.New("post: not found")

const postColumns = `
	id, description, images, posted_by, posted_date, status, community_id, updated_at`

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates the PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// scanPost hydrates a Post from a row holding postColumns.
func scanPost(row pgx.Row) (*Post, error) {
	post := &Post{}
	var updatedAt *time.Time

	err := row.Scan(
		&post.ID,
		&post.Description,
		&post.Images,
		&post.PostedBy,
		&post.PostedDate,
		&post.Status,
		&post.Community,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if post.Images == nil {
		post.Images = []string{}
	}
	if updatedAt != nil {
		post.UpdatedAt = *updatedAt
	}

	return post, nil
}

/*
FindByID retrieves a post record by its unique ID.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Post: Hydrated entity
  - error: [ErrNotFound] or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Post, error) {
	query := "SELECT " + postColumns + " FROM posts WHERE id = $1"

	post, err := scanPost(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("postgres_post_repo_find_by_id_failed: %w", err)
	}

	return post, nil
}

/*
ListVisibleByCommunity returns the community's visible posts, newest first.

Description: The status filter lives in the WHERE clause, not in Go — hidden
posts never leave the database on the list path.

Parameters:
  - context: context.Context
  - communityID: string
  - limit: int
  - offset: int

Returns:
  - []*Post: Hydrated entities, empty if none
  - error: Retrieval errors
*/
func (repository *PostgresRepository) ListVisibleByCommunity(context context.Context, communityID string, limit, offset int) ([]*Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE community_id = $1 AND status = $2
		ORDER BY posted_date DESC
		LIMIT $3 OFFSET $4`

	rows, err := repository.pool.Query(context, query, communityID, StatusVisible, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("postgres_post_repo_list_failed: %w", err)
	}
	defer rows.Close()

	posts := []*Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_post_repo_list_scan_failed: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_post_repo_list_rows_failed: %w", err)
	}

	return posts, nil
}

/*
Create persists a new post record into the posts table.

Parameters:
  - context: context.Context
  - post: *Post (Entity to persist)

Returns:
  - error: Constraint violations or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, post *Post) error {
	const query = `
		INSERT INTO posts (
			id, description, images, posted_by, posted_date, status, community_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	if post.PostedDate.IsZero() {
		post.PostedDate = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		post.ID,
		post.Description,
		post.Images,
		post.PostedBy,
		post.PostedDate,
		post.Status,
		post.Community,
	)

	if err != nil {
		return fmt.Errorf("postgres_post_repo_create_failed: %w", err)
	}

	return nil
}

/*
Update persists changes to a post's description and status.

Parameters:
  - context: context.Context
  - post: *Post

Returns:
  - error: Execution failures
*/
func (repository *PostgresRepository) Update(context context.Context, post *Post) error {
	const query = `
		UPDATE posts
		SET description = $2, status = $3, updated_at = $4
		WHERE id = $1`

	post.UpdatedAt = time.Now()
	_, err := repository.pool.Exec(context, query,
		post.ID,
		post.Description,
		post.Status,
		post.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_post_repo_update_failed: %w", err)
	}

	return nil
}

/*
ListComments returns a post's comments in posting order.

Parameters:
  - context: context.Context
  - postID: string

Returns:
  - []Comment: Ordered comments, empty if none
  - error: Retrieval errors
*/
func (repository *PostgresRepository) ListComments(context context.Context, postID string) ([]Comment, error) {
	const query = `
		SELECT comment, commented_at, commented_by
		FROM post_comments
		WHERE post_id = $1
		ORDER BY commented_at`

	rows, err := repository.pool.Query(context, query, postID)
	if err != nil {
		return nil, fmt.Errorf("postgres_post_repo_list_comments_failed: %w", err)
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var comment Comment
		if err := rows.Scan(&comment.Comment, &comment.CommentDate, &comment.CommentedBy); err != nil {
			return nil, fmt.Errorf("postgres_post_repo_list_comments_scan_failed: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_post_repo_list_comments_rows_failed: %w", err)
	}

	return comments, nil
}

/*
ListLikes returns a post's likes in liking order.

Parameters:
  - context: context.Context
  - postID: string

Returns:
  - []Like: Ordered likes, empty if none
  - error: Retrieval errors
*/
func (repository *PostgresRepository) ListLikes(context context.Context, postID string) ([]Like, error) {
	const query = `
		SELECT liked_by_name, liked_by
		FROM post_likes
		WHERE post_id = $1
		ORDER BY liked_at`

	rows, err := repository.pool.Query(context, query, postID)
	if err != nil {
		return nil, fmt.Errorf("postgres_post_repo_list_likes_failed: %w", err)
	}
	defer rows.Close()

	likes := []Like{}
	for rows.Next() {
		var like Like
		if err := rows.Scan(&like.LikedByName, &like.LikedBy); err != nil {
			return nil, fmt.Errorf("postgres_post_repo_list_likes_scan_failed: %w", err)
		}
		likes = append(likes, like)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_post_repo_list_likes_rows_failed: %w", err)
	}

	return likes, nil
}
