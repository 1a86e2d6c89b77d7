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

// FollowService handles follow edges and the followed-authors feed.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	postRepo   repository.PostRepository
	cfg        *config.Config
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	cfg *config.Config,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		postRepo:   postRepo,
		cfg:        cfg,
	}
}

// Follow creates an edge from the follower to the named author. Following
// an author twice stores exactly one edge, and a self-follow is dropped
// silently: the caller redirects back to the profile either way.
func (s *FollowService) Follow(ctx context.Context, followerID int64, username string) error {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	if author.ID == followerID {
		log.Printf("[FollowService] Ignored self-follow: user=%d", followerID)
		return nil
	}

	inserted, err := s.followRepo.Create(ctx, followerID, author.ID)
	if err != nil {
		return err
	}
	if inserted {
		log.Printf("[FollowService] User %d followed %s", followerID, username)
	}
	return nil
}

// Unfollow removes the edge from the follower to the named author. A
// missing edge is a silent no-op, symmetric with idempotent Follow; only an
// unknown username is an error.
func (s *FollowService) Unfollow(ctx context.Context, followerID int64, username string) error {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}

	deleted, err := s.followRepo.Delete(ctx, followerID, author.ID)
	if err != nil {
		return err
	}
	if deleted {
		log.Printf("[FollowService] User %d unfollowed %s", followerID, username)
	}
	return nil
}

// Feed returns one page of posts authored by anyone the follower follows,
// newest first.
func (s *FollowService) Feed(ctx context.Context, followerID int64, requestedPage int) (*model.PostListResponse, error) {
	total, err := s.postRepo.CountFollowed(ctx, followerID)
	if err != nil {
		return nil, err
	}

	page := pagination.Paginate(total, s.cfg.PageSize, requestedPage)
	posts, err := s.postRepo.ListFollowed(ctx, followerID, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}

	for i := range posts {
		posts[i].Preview = textutil.CutText(posts[i].Text, s.cfg.PreviewLength)
	}

	return &model.PostListResponse{
		Posts: posts,
		Page:  page,
	}, nil
}
