package service

import (
	"context"
	"time"

	"microblog/internal/model"
)

// Function-field mocks for the repository interfaces. Each test sets only
// the functions it needs; unset functions return a zero/not-found default.

type mockUserRepository struct {
	createFn           func(ctx context.Context, user *model.User) error
	getByIDFn          func(ctx context.Context, id int64) (*model.User, error)
	getByUsernameFn    func(ctx context.Context, username string) (*model.User, error)
	existsByUsernameFn func(ctx context.Context, username string) (bool, error)

	createCalls int
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, model.ErrUserNotFound
}

func (m *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.existsByUsernameFn != nil {
		return m.existsByUsernameFn(ctx, username)
	}
	return false, nil
}

type mockGroupRepository struct {
	createFn    func(ctx context.Context, group *model.Group) error
	getBySlugFn func(ctx context.Context, slug string) (*model.Group, error)
	getByIDFn   func(ctx context.Context, id int64) (*model.Group, error)
	listFn      func(ctx context.Context) ([]model.Group, error)
}

func (m *mockGroupRepository) Create(ctx context.Context, group *model.Group) error {
	if m.createFn != nil {
		return m.createFn(ctx, group)
	}
	return nil
}

func (m *mockGroupRepository) GetBySlug(ctx context.Context, slug string) (*model.Group, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, model.ErrGroupNotFound
}

func (m *mockGroupRepository) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, model.ErrGroupNotFound
}

func (m *mockGroupRepository) List(ctx context.Context) ([]model.Group, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

type mockPostRepository struct {
	createFn        func(ctx context.Context, post *model.Post) error
	getByIDFn       func(ctx context.Context, postID int64) (*model.Post, error)
	updateFn        func(ctx context.Context, post *model.Post) error
	listFn          func(ctx context.Context, limit, offset int) ([]model.Post, error)
	countFn         func(ctx context.Context) (int, error)
	listByGroupFn   func(ctx context.Context, groupID int64, limit, offset int) ([]model.Post, error)
	countByGroupFn  func(ctx context.Context, groupID int64) (int, error)
	listByAuthorFn  func(ctx context.Context, authorID int64, limit, offset int) ([]model.Post, error)
	countByAuthorFn func(ctx context.Context, authorID int64) (int, error)
	listFollowedFn  func(ctx context.Context, followerID int64, limit, offset int) ([]model.Post, error)
	countFollowedFn func(ctx context.Context, followerID int64) (int, error)

	updateCalls int
}

func (m *mockPostRepository) Create(ctx context.Context, post *model.Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepository) GetByID(ctx context.Context, postID int64) (*model.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, postID)
	}
	return nil, model.ErrPostNotFound
}

func (m *mockPostRepository) Update(ctx context.Context, post *model.Post) error {
	m.updateCalls++
	if m.updateFn != nil {
		return m.updateFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepository) List(ctx context.Context, limit, offset int) ([]model.Post, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockPostRepository) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

func (m *mockPostRepository) ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]model.Post, error) {
	if m.listByGroupFn != nil {
		return m.listByGroupFn(ctx, groupID, limit, offset)
	}
	return nil, nil
}

func (m *mockPostRepository) CountByGroup(ctx context.Context, groupID int64) (int, error) {
	if m.countByGroupFn != nil {
		return m.countByGroupFn(ctx, groupID)
	}
	return 0, nil
}

func (m *mockPostRepository) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]model.Post, error) {
	if m.listByAuthorFn != nil {
		return m.listByAuthorFn(ctx, authorID, limit, offset)
	}
	return nil, nil
}

func (m *mockPostRepository) CountByAuthor(ctx context.Context, authorID int64) (int, error) {
	if m.countByAuthorFn != nil {
		return m.countByAuthorFn(ctx, authorID)
	}
	return 0, nil
}

func (m *mockPostRepository) ListFollowed(ctx context.Context, followerID int64, limit, offset int) ([]model.Post, error) {
	if m.listFollowedFn != nil {
		return m.listFollowedFn(ctx, followerID, limit, offset)
	}
	return nil, nil
}

func (m *mockPostRepository) CountFollowed(ctx context.Context, followerID int64) (int, error) {
	if m.countFollowedFn != nil {
		return m.countFollowedFn(ctx, followerID)
	}
	return 0, nil
}

type mockCommentRepository struct {
	createFn     func(ctx context.Context, postID, authorID int64, text string) (*model.Comment, error)
	listByPostFn func(ctx context.Context, postID int64) ([]model.Comment, error)

	createCalls int
}

func (m *mockCommentRepository) Create(ctx context.Context, postID, authorID int64, text string) (*model.Comment, error) {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, postID, authorID, text)
	}
	return &model.Comment{ID: 1, PostID: postID, AuthorID: authorID, Text: text}, nil
}

func (m *mockCommentRepository) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	if m.listByPostFn != nil {
		return m.listByPostFn(ctx, postID)
	}
	return nil, nil
}

type mockFollowRepository struct {
	createFn func(ctx context.Context, followerID, authorID int64) (bool, error)
	deleteFn func(ctx context.Context, followerID, authorID int64) (bool, error)
	existsFn func(ctx context.Context, followerID, authorID int64) (bool, error)

	createCalls int
	deleteCalls int
}

func (m *mockFollowRepository) Create(ctx context.Context, followerID, authorID int64) (bool, error) {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, followerID, authorID)
	}
	return true, nil
}

func (m *mockFollowRepository) Delete(ctx context.Context, followerID, authorID int64) (bool, error) {
	m.deleteCalls++
	if m.deleteFn != nil {
		return m.deleteFn(ctx, followerID, authorID)
	}
	return false, nil
}

func (m *mockFollowRepository) Exists(ctx context.Context, followerID, authorID int64) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, followerID, authorID)
	}
	return false, nil
}

type mockRefreshTokenRepository struct {
	createFn           func(ctx context.Context, token *model.RefreshToken) error
	findByTokenHashFn  func(ctx context.Context, tokenHash string) (*model.RefreshToken, error)
	revokeFn           func(ctx context.Context, id string, replacedBy *string) error
	revokeAllForUserFn func(ctx context.Context, userID int64) error

	revokeAllCalls int
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	if m.createFn != nil {
		return m.createFn(ctx, token)
	}
	return nil
}

func (m *mockRefreshTokenRepository) FindByTokenHash(ctx context.Context, tokenHash string) (*model.RefreshToken, error) {
	if m.findByTokenHashFn != nil {
		return m.findByTokenHashFn(ctx, tokenHash)
	}
	return nil, model.ErrRefreshTokenNotFound
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, id string, replacedBy *string) error {
	if m.revokeFn != nil {
		return m.revokeFn(ctx, id, replacedBy)
	}
	return nil
}

func (m *mockRefreshTokenRepository) RevokeAllForUser(ctx context.Context, userID int64) error {
	m.revokeAllCalls++
	if m.revokeAllForUserFn != nil {
		return m.revokeAllForUserFn(ctx, userID)
	}
	return nil
}

func (m *mockRefreshTokenRepository) DeleteExpired(ctx context.Context, olderThan time.Duration) (int64, error) {
	return 0, nil
}
