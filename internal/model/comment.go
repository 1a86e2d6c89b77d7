package model

import (
	"errors"
	"strings"
	"time"

	"microblog/internal/form"
)

// Comment represents a comment on a post.
type Comment struct {
	ID        int64     `db:"id" json:"id"`
	PostID    int64     `db:"post_id" json:"post_id"`
	AuthorID  int64     `db:"author_id" json:"-"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Joined field
	Author *UserSummary `json:"author,omitempty"`
}

// CommentForm is the per-action input for adding a comment to a post.
type CommentForm struct {
	Text string `json:"text"`
}

// Validate checks the form and returns a structured result.
func (f *CommentForm) Validate() form.Result {
	var res form.Result
	if strings.TrimSpace(f.Text) == "" {
		res.AddError("text", "Comment text is required")
	}
	return res
}

// Comment errors
var (
	ErrCommentNotFound     = errors.New("comment not found")
	ErrCommentTextRequired = errors.New("comment text is required")
)
