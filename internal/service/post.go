package service

import (
	"context"
	"log"

	"microblog/internal/config"
	"microblog/internal/model"
	"microblog/internal/pagination"
	"microblog/internal/repository"
	"microblog/internal/textutil"
)

// PostService handles the post lifecycle and the listing pages built on it.
type PostService struct {
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	followRepo  repository.FollowRepository
	cfg         *config.Config
}

func NewPostService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	cfg *config.Config,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		followRepo:  followRepo,
		cfg:         cfg,
	}
}

// Index returns one page of all posts, newest first.
func (s *PostService) Index(ctx context.Context, requestedPage int) (*model.PostListResponse, error) {
	total, err := s.postRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	page := pagination.Paginate(total, s.cfg.PageSize, requestedPage)
	posts, err := s.postRepo.List(ctx, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}

	return &model.PostListResponse{
		Posts: s.withPreviews(posts),
		Page:  page,
	}, nil
}

// GroupPosts returns one page of a group's posts.
func (s *PostService) GroupPosts(ctx context.Context, slug string, requestedPage int) (*model.GroupListResponse, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	total, err := s.postRepo.CountByGroup(ctx, group.ID)
	if err != nil {
		return nil, err
	}

	page := pagination.Paginate(total, s.cfg.PageSize, requestedPage)
	posts, err := s.postRepo.ListByGroup(ctx, group.ID, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}

	return &model.GroupListResponse{
		Group: *group,
		Posts: s.withPreviews(posts),
		Page:  page,
	}, nil
}

// Profile returns one page of an author's posts plus whether the viewer
// follows them.
func (s *PostService) Profile(ctx context.Context, username string, requestedPage int, viewerID *int64) (*model.ProfileResponse, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	total, err := s.postRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	page := pagination.Paginate(total, s.cfg.PageSize, requestedPage)
	posts, err := s.postRepo.ListByAuthor(ctx, author.ID, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != nil && *viewerID != author.ID {
		following, err = s.followRepo.Exists(ctx, *viewerID, author.ID)
		if err != nil {
			// The follow flag is decoration; the profile still renders.
			log.Printf("[PostService] Follow check failed: viewer=%d author=%d err=%v", *viewerID, author.ID, err)
			following = false
		}
	}

	return &model.ProfileResponse{
		Author: model.UserSummary{
			ID:          author.ID,
			Username:    author.Username,
			DisplayName: author.DisplayName,
		},
		Posts:     s.withPreviews(posts),
		Page:      page,
		Following: following,
	}, nil
}

// Get returns a single post without its comments.
func (s *PostService) Get(ctx context.Context, postID int64) (*model.Post, error) {
	return s.postRepo.GetByID(ctx, postID)
}

// Detail returns a post, its comments newest first, and a blank comment form.
func (s *PostService) Detail(ctx context.Context, postID int64) (*model.PostDetailResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	return &model.PostDetailResponse{
		Post:     *post,
		Comments: comments,
		Form:     model.CommentForm{},
	}, nil
}

// GroupChoices lists all groups for the post form.
func (s *PostService) GroupChoices(ctx context.Context) ([]model.Group, error) {
	return s.groupRepo.List(ctx)
}

// Create persists a new post owned by the author. The form has already been
// validated; the group slug is resolved here.
func (s *PostService) Create(ctx context.Context, authorID int64, f model.PostForm) (*model.Post, error) {
	if f.Text == "" {
		return nil, model.ErrTextRequired
	}

	groupID, err := s.resolveGroup(ctx, f.Group)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		AuthorID: authorID,
		GroupID:  groupID,
		Text:     f.Text,
		ImageURL: f.ImageURL,
		ImageKey: f.ImageKey,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	log.Printf("[PostService] User %d published post %d (%s)",
		authorID, post.ID, textutil.CutText(post.Text, s.cfg.PreviewLength))
	return post, nil
}

// Edit updates an existing post in place. Only the author may edit; anyone
// else gets ErrNotPostOwner and the record stays untouched. Identity and
// created_at never change.
func (s *PostService) Edit(ctx context.Context, postID, userID int64, f model.PostForm) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != userID {
		return nil, model.ErrNotPostOwner
	}

	if f.Text == "" {
		return nil, model.ErrTextRequired
	}

	groupID, err := s.resolveGroup(ctx, f.Group)
	if err != nil {
		return nil, err
	}

	post.Text = f.Text
	post.GroupID = groupID
	if f.ImageURL != nil {
		// A new upload replaces the attachment; otherwise it is kept.
		post.ImageURL = f.ImageURL
		post.ImageKey = f.ImageKey
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// resolveGroup maps an optional group slug to its id. Empty slug means no group.
func (s *PostService) resolveGroup(ctx context.Context, slug string) (*int64, error) {
	if slug == "" {
		return nil, nil
	}
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &group.ID, nil
}

// withPreviews decorates list items with a bounded text preview.
func (s *PostService) withPreviews(posts []model.Post) []model.Post {
	for i := range posts {
		posts[i].Preview = textutil.CutText(posts[i].Text, s.cfg.PreviewLength)
	}
	return posts
}
