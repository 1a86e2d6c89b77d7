package model

import (
	"errors"
	"strings"
	"time"

	"microblog/internal/form"
	"microblog/internal/pagination"
)

// Post represents a published post with its metadata.
type Post struct {
	ID        int64     `db:"id" json:"id"`
	AuthorID  int64     `db:"author_id" json:"-"`
	GroupID   *int64    `db:"group_id" json:"-"`
	Text      string    `db:"text" json:"text"`
	ImageURL  *string   `db:"image_url" json:"image_url,omitempty"`
	ImageKey  *string   `db:"image_key" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Joined fields (not in posts table)
	Author  *UserSummary `json:"author,omitempty"`
	Group   *Group       `json:"group,omitempty"`
	Preview string       `json:"preview,omitempty"`
}

// PostListResponse is the paginated post list payload used by the index,
// group, profile and followed-feed pages.
type PostListResponse struct {
	Posts []Post          `json:"posts"`
	Page  pagination.Page `json:"page"`
}

// PostDetailResponse is the detail payload: the post, its comments newest
// first, and a blank comment form for submission.
type PostDetailResponse struct {
	Post     Post        `json:"post"`
	Comments []Comment   `json:"comments"`
	Form     CommentForm `json:"form"`
}

// ProfileResponse is the profile page payload: the author, their posts and
// whether the current identity follows them.
type ProfileResponse struct {
	Author    UserSummary     `json:"author"`
	Posts     []Post          `json:"posts"`
	Page      pagination.Page `json:"page"`
	Following bool            `json:"following"`
}

// GroupListResponse is the group page payload.
type GroupListResponse struct {
	Group Group           `json:"group"`
	Posts []Post          `json:"posts"`
	Page  pagination.Page `json:"page"`
}

// PostForm is the per-action input for creating or editing a post. Group is
// the slug of an existing group; the image arrives as a separate multipart
// file and is resolved to a URL before the form reaches the service layer.
type PostForm struct {
	Text     string  `json:"text"`
	Group    string  `json:"group,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
	ImageKey *string `json:"-"`
}

// Validate checks the form and returns a structured result. It never
// touches storage; group slug resolution happens in the service.
func (f *PostForm) Validate() form.Result {
	var res form.Result
	if strings.TrimSpace(f.Text) == "" {
		res.AddError("text", "Post text is required")
	}
	return res
}

// Post errors
var (
	ErrPostNotFound = errors.New("post not found")
	ErrNotPostOwner = errors.New("not the author of this post")
	ErrTextRequired = errors.New("post text is required")
)
