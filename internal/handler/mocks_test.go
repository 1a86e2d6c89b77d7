package handler

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"microblog/internal/config"
	"microblog/internal/model"
)

const testJWTSecret = "test-secret"

func testConfig() *config.Config {
	return &config.Config{
		PageSize:      10,
		PreviewLength: 15,
		IndexCacheTTL: 20,
		JWTSecret:     testJWTSecret,
	}
}

// accessTokenFor signs a short-lived token the auth middleware accepts.
func accessTokenFor(userID int64) string {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Minute).Unix(),
		"iat":     time.Now().Unix(),
	}
	token, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	return token
}

// memPageCache is an in-memory PageCache for handler tests. TTL is ignored;
// tests exercise expiry against miniredis in the cache package.
type memPageCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemPageCache() *memPageCache {
	return &memPageCache{entries: make(map[string][]byte)}
}

func (c *memPageCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.entries[key]
	return payload, ok, nil
}

func (c *memPageCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = payload
	return nil
}

func (c *memPageCache) Invalidate(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Function-field repository mocks, matching the service layer's test style.

type mockUserRepository struct {
	getByIDFn       func(ctx context.Context, id int64) (*model.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*model.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user *model.User) error { return nil }

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
	return false, nil
}

type mockGroupRepository struct {
	getBySlugFn func(ctx context.Context, slug string) (*model.Group, error)
	listFn      func(ctx context.Context) ([]model.Group, error)
}

func (m *mockGroupRepository) Create(ctx context.Context, group *model.Group) error { return nil }

func (m *mockGroupRepository) GetBySlug(ctx context.Context, slug string) (*model.Group, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, model.ErrGroupNotFound
}

func (m *mockGroupRepository) GetByID(ctx context.Context, id int64) (*model.Group, error) {
	return nil, model.ErrGroupNotFound
}

func (m *mockGroupRepository) List(ctx context.Context) ([]model.Group, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

type mockPostRepository struct {
	createFn  func(ctx context.Context, post *model.Post) error
	getByIDFn func(ctx context.Context, postID int64) (*model.Post, error)
	listFn    func(ctx context.Context, limit, offset int) ([]model.Post, error)
	countFn   func(ctx context.Context) (int, error)

	updateCalls int
}

func (m *mockPostRepository) Create(ctx context.Context, post *model.Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	post.ID = 1
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
	return nil, nil
}

func (m *mockPostRepository) CountByGroup(ctx context.Context, groupID int64) (int, error) {
	return 0, nil
}

func (m *mockPostRepository) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]model.Post, error) {
	return nil, nil
}

func (m *mockPostRepository) CountByAuthor(ctx context.Context, authorID int64) (int, error) {
	return 0, nil
}

func (m *mockPostRepository) ListFollowed(ctx context.Context, followerID int64, limit, offset int) ([]model.Post, error) {
	return nil, nil
}

func (m *mockPostRepository) CountFollowed(ctx context.Context, followerID int64) (int, error) {
	return 0, nil
}

type mockCommentRepository struct {
	listByPostFn func(ctx context.Context, postID int64) ([]model.Comment, error)

	createCalls int
}

func (m *mockCommentRepository) Create(ctx context.Context, postID, authorID int64, text string) (*model.Comment, error) {
	m.createCalls++
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

	createCalls int
}

func (m *mockFollowRepository) Create(ctx context.Context, followerID, authorID int64) (bool, error) {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, followerID, authorID)
	}
	return true, nil
}

func (m *mockFollowRepository) Delete(ctx context.Context, followerID, authorID int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, followerID, authorID)
	}
	return false, nil
}

func (m *mockFollowRepository) Exists(ctx context.Context, followerID, authorID int64) (bool, error) {
	return false, nil
}
