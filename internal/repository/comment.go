package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"microblog/internal/model"
)

type commentRepository struct {
	db *sqlx.DB
}

func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Create inserts a new comment on a post.
func (r *commentRepository) Create(ctx context.Context, postID, authorID int64, text string) (*model.Comment, error) {
	query := `
		INSERT INTO comments (post_id, author_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, post_id, author_id, text, created_at
	`
	var comment model.Comment
	err := r.db.GetContext(ctx, &comment, query, postID, authorID, text)
	if err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}
	return &comment, nil
}

// ListByPost returns all comments on a post newest-first with authors joined.
// Comment threads stay small enough that the detail page loads them whole.
func (r *commentRepository) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, c.text, c.created_at,
		       u.username AS author_username, u.display_name AS author_display_name
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created_at DESC, c.id DESC
	`

	type commentRow struct {
		model.Comment
		AuthorUsername    string  `db:"author_username"`
		AuthorDisplayName *string `db:"author_display_name"`
	}

	var rows []commentRow
	if err := r.db.SelectContext(ctx, &rows, query, postID); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	comments := make([]model.Comment, len(rows))
	for i, row := range rows {
		comment := row.Comment
		comment.Author = &model.UserSummary{
			ID:          comment.AuthorID,
			Username:    row.AuthorUsername,
			DisplayName: row.AuthorDisplayName,
		}
		comments[i] = comment
	}
	return comments, nil
}
