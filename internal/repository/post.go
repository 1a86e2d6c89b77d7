package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"microblog/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// postRow is the flat scan target for post queries with author and group
// joined. The group columns are nullable because group_id is optional and
// nulled when a group is removed.
type postRow struct {
	model.Post
	AuthorUsername    string  `db:"author_username"`
	AuthorDisplayName *string `db:"author_display_name"`
	GroupTitle        *string `db:"group_title"`
	GroupSlug         *string `db:"group_slug"`
	GroupDescription  *string `db:"group_description"`
}

// selectPost is the shared SELECT for all post listing queries.
const selectPost = `
	SELECT p.id, p.author_id, p.group_id, p.text, p.image_url, p.image_key, p.created_at,
	       u.username AS author_username, u.display_name AS author_display_name,
	       g.title AS group_title, g.slug AS group_slug, g.description AS group_description
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id
`

// orderNewestFirst is the default retrieval order for posts. The id tiebreak
// keeps ordering stable for posts created within the same timestamp.
const orderNewestFirst = ` ORDER BY p.created_at DESC, p.id DESC`

func (row *postRow) toPost() model.Post {
	post := row.Post
	post.Author = &model.UserSummary{
		ID:          post.AuthorID,
		Username:    row.AuthorUsername,
		DisplayName: row.AuthorDisplayName,
	}
	if post.GroupID != nil && row.GroupSlug != nil {
		post.Group = &model.Group{
			ID:          *post.GroupID,
			Title:       *row.GroupTitle,
			Slug:        *row.GroupSlug,
			Description: *row.GroupDescription,
		}
	}
	return post
}

func toPosts(rows []postRow) []model.Post {
	posts := make([]model.Post, len(rows))
	for i := range rows {
		posts[i] = rows[i].toPost()
	}
	return posts
}

// Create inserts a new post. created_at is set by the database and never
// changes afterwards.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (author_id, group_id, text, image_url, image_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		post.AuthorID,
		post.GroupID,
		post.Text,
		post.ImageURL,
		post.ImageKey,
	).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// GetByID retrieves a single post with author and group joined.
func (r *postRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	query := selectPost + ` WHERE p.id = $1`

	var row postRow
	err := r.db.GetContext(ctx, &row, query, postID)
	if err == sql.ErrNoRows {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	post := row.toPost()
	return &post, nil
}

// Update rewrites the mutable fields of an existing post in place.
func (r *postRepository) Update(ctx context.Context, post *model.Post) error {
	query := `
		UPDATE posts
		SET text = $2, group_id = $3, image_url = $4, image_key = $5
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		post.ID,
		post.Text,
		post.GroupID,
		post.ImageURL,
		post.ImageKey,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}
	return nil
}

func (r *postRepository) List(ctx context.Context, limit, offset int) ([]model.Post, error) {
	query := selectPost + orderNewestFirst + ` LIMIT $1 OFFSET $2`

	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, limit, offset); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return toPosts(rows), nil
}

func (r *postRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts`); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}

func (r *postRepository) ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]model.Post, error) {
	query := selectPost + ` WHERE p.group_id = $1` + orderNewestFirst + ` LIMIT $2 OFFSET $3`

	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, groupID, limit, offset); err != nil {
		return nil, fmt.Errorf("list posts by group: %w", err)
	}
	return toPosts(rows), nil
}

func (r *postRepository) CountByGroup(ctx context.Context, groupID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts WHERE group_id = $1`, groupID)
	if err != nil {
		return 0, fmt.Errorf("count posts by group: %w", err)
	}
	return count, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]model.Post, error) {
	query := selectPost + ` WHERE p.author_id = $1` + orderNewestFirst + ` LIMIT $2 OFFSET $3`

	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, authorID, limit, offset); err != nil {
		return nil, fmt.Errorf("list posts by author: %w", err)
	}
	return toPosts(rows), nil
}

func (r *postRepository) CountByAuthor(ctx context.Context, authorID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, authorID)
	if err != nil {
		return 0, fmt.Errorf("count posts by author: %w", err)
	}
	return count, nil
}

// ListFollowed returns one page of posts authored by anyone the follower
// follows, newest first.
func (r *postRepository) ListFollowed(ctx context.Context, followerID int64, limit, offset int) ([]model.Post, error) {
	query := selectPost + `
	JOIN follows f ON f.author_id = p.author_id
	WHERE f.follower_id = $1` + orderNewestFirst + ` LIMIT $2 OFFSET $3`

	var rows []postRow
	if err := r.db.SelectContext(ctx, &rows, query, followerID, limit, offset); err != nil {
		return nil, fmt.Errorf("list followed posts: %w", err)
	}
	return toPosts(rows), nil
}

func (r *postRepository) CountFollowed(ctx context.Context, followerID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM posts p
		JOIN follows f ON f.author_id = p.author_id
		WHERE f.follower_id = $1
	`
	var count int
	if err := r.db.GetContext(ctx, &count, query, followerID); err != nil {
		return 0, fmt.Errorf("count followed posts: %w", err)
	}
	return count, nil
}
