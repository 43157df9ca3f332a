package service

import (
	"context"
	"strings"
	"time"

	"buddyboost/internal/models"
	"buddyboost/internal/notifications"
	"buddyboost/internal/repository"
)

const maxPostLen = 2000

// PostService provides post business logic.
type PostService struct {
	postRepo repository.PostRepository
	notifier *notifications.Notifier
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, notifier *notifications.Notifier) *PostService {
	return &PostService{postRepo: postRepo, notifier: notifier}
}

// CreatePost publishes a new feed post for the user.
func (s *PostService) CreatePost(ctx context.Context, userID uint, content string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Post content is required")
	}
	if len(content) > maxPostLen {
		return nil, models.NewValidationError("Post content too long (max 2000 characters)")
	}

	post := &models.Post{Content: content, UserID: userID}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Reload with author and counts so the response matches the list shape.
	created, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		_ = s.notifier.PublishFeed(ctx, notifications.FeedEvent{
			Type:      notifications.EventPostCreated,
			UserID:    userID,
			Actor:     created.User.DisplayName(),
			PostID:    created.ID,
			CreatedAt: time.Now().UTC(),
		})
	}
	return created, nil
}

// ListPosts returns the feed newest-first.
func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]models.Post, error) {
	return s.postRepo.List(ctx, limit, offset)
}

// GetPost returns a single post with its counts.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}
