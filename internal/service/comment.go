package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"microblog/internal/model"
	"microblog/internal/repository"
)

// CommentService handles adding comments to posts.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

// Create attaches a comment by the user to the given post.
func (s *CommentService) Create(ctx context.Context, postID, userID int64, f model.CommentForm) (*model.Comment, error) {
	if strings.TrimSpace(f.Text) == "" {
		return nil, model.ErrCommentTextRequired
	}

	// Verify the post exists before writing
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.Create(ctx, postID, userID, f.Text)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	// Attach author info for the response
	if author, err := s.userRepo.GetByID(ctx, userID); err == nil {
		comment.Author = &model.UserSummary{
			ID:          author.ID,
			Username:    author.Username,
			DisplayName: author.DisplayName,
		}
	}

	log.Printf("[CommentService] User %d commented on post %d", userID, postID)
	return comment, nil
}
