package repository

import (
	"context"
	"time"

	"microblog/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

type GroupRepository interface {
	Create(ctx context.Context, group *model.Group) error
	GetBySlug(ctx context.Context, slug string) (*model.Group, error)
	GetByID(ctx context.Context, id int64) (*model.Group, error)
	// List returns all groups ordered by title, for the post form's group choices.
	List(ctx context.Context) ([]model.Group, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, postID int64) (*model.Post, error)
	// Update rewrites text, group and image in place. Identity and
	// created_at never change.
	Update(ctx context.Context, post *model.Post) error

	// Listing queries return one page of posts newest-first, with author
	// and group joined, plus the total count for pagination.
	List(ctx context.Context, limit, offset int) ([]model.Post, error)
	Count(ctx context.Context) (int, error)
	ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]model.Post, error)
	CountByGroup(ctx context.Context, groupID int64) (int, error)
	ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]model.Post, error)
	CountByAuthor(ctx context.Context, authorID int64) (int, error)
	// ListFollowed returns posts authored by anyone the follower follows.
	ListFollowed(ctx context.Context, followerID int64, limit, offset int) ([]model.Post, error)
	CountFollowed(ctx context.Context, followerID int64) (int, error)
}

type CommentRepository interface {
	Create(ctx context.Context, postID, authorID int64, text string) (*model.Comment, error)
	// ListByPost returns all comments on a post newest-first with authors joined.
	ListByPost(ctx context.Context, postID int64) ([]model.Comment, error)
}

type FollowRepository interface {
	// Create inserts the edge unless it already exists. Returns whether a
	// row was actually inserted.
	Create(ctx context.Context, followerID, authorID int64) (bool, error)
	// Delete removes the edge. Returns whether a row was actually deleted;
	// a missing edge is not an error.
	Delete(ctx context.Context, followerID, authorID int64) (bool, error)
	Exists(ctx context.Context, followerID, authorID int64) (bool, error)
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	Revoke(ctx context.Context, id string, replacedBy *string) error
	RevokeAllForUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error)
}
