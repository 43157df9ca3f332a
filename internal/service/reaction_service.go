package service

import (
	"context"
	"time"

	"buddyboost/internal/models"
	"buddyboost/internal/notifications"
	"buddyboost/internal/repository"
	"buddyboost/internal/validation"
)

// ReactionService provides reaction business logic.
type ReactionService struct {
	reactionRepo repository.ReactionRepository
	postRepo     repository.PostRepository
	notifier     *notifications.Notifier
}

// NewReactionService returns a new ReactionService.
func NewReactionService(
	reactionRepo repository.ReactionRepository,
	postRepo repository.PostRepository,
	notifier *notifications.Notifier,
) *ReactionService {
	return &ReactionService{
		reactionRepo: reactionRepo,
		postRepo:     postRepo,
		notifier:     notifier,
	}
}

// ToggleReaction applies the three-way toggle rule for the user's reaction on
// a post. Returns the surviving reaction row (nil when removed) and what
// happened to it.
func (s *ReactionService) ToggleReaction(ctx context.Context, userID, postID uint, kind string) (*models.Reaction, repository.ToggleOutcome, error) {
	if err := validation.ValidateReactionKind(kind); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, "", err
	}

	reaction, outcome, err := s.reactionRepo.Toggle(ctx, userID, postID, kind)
	if err != nil {
		return nil, "", err
	}

	if s.notifier != nil && outcome != repository.ToggleRemoved {
		_ = s.notifier.PublishFeed(ctx, notifications.FeedEvent{
			Type:      notifications.EventReactionToggle,
			UserID:    userID,
			PostID:    postID,
			Detail:    kind,
			CreatedAt: time.Now().UTC(),
		})
	}
	return reaction, outcome, nil
}

// ListReactions returns every reaction on a post.
func (s *ReactionService) ListReactions(ctx context.Context, postID uint) ([]models.Reaction, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.reactionRepo.ListByPost(ctx, postID)
}
