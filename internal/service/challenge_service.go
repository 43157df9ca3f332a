package service

import (
	"context"
	"errors"
	"time"

	"buddyboost/internal/models"
	"buddyboost/internal/notifications"
	"buddyboost/internal/observability"
	"buddyboost/internal/repository"
	"buddyboost/internal/validation"
)

// ChallengeService provides challenge and enrollment business logic.
type ChallengeService struct {
	challengeRepo repository.ChallengeRepository
	userRepo      repository.UserRepository
	notifier      *notifications.Notifier
}

// CreateChallengeInput carries the fields for a user-created challenge.
type CreateChallengeInput struct {
	CreatorID    uint
	Title        string
	Description  string
	Category     string
	DurationDays int
	Emoji        string
}

// JoinResult reports whether a join created a new enrollment or found an
// existing one.
type JoinResult struct {
	Enrollment    *models.Enrollment
	AlreadyJoined bool
}

// NewChallengeService returns a new ChallengeService.
func NewChallengeService(
	challengeRepo repository.ChallengeRepository,
	userRepo repository.UserRepository,
	notifier *notifications.Notifier,
) *ChallengeService {
	return &ChallengeService{
		challengeRepo: challengeRepo,
		userRepo:      userRepo,
		notifier:      notifier,
	}
}

// ListChallenges returns the full challenge catalogue.
func (s *ChallengeService) ListChallenges(ctx context.Context) ([]models.Challenge, error) {
	return s.challengeRepo.List(ctx)
}

// CreateChallenge adds a user-created challenge. User challenges always carry
// the default reward and are never predefined.
func (s *ChallengeService) CreateChallenge(ctx context.Context, in CreateChallengeInput) (*models.Challenge, error) {
	if err := validation.ValidateChallengeTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateChallengeDuration(in.DurationDays); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateChallengeDescription(in.Description); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	challenge := &models.Challenge{
		CreatorID:    &in.CreatorID,
		Title:        in.Title,
		Description:  in.Description,
		Category:     in.Category,
		DurationDays: in.DurationDays,
		Emoji:        in.Emoji,
		RewardXP:     models.DefaultRewardXP,
		IsPredefined: false,
	}
	if err := s.challengeRepo.Create(ctx, challenge); err != nil {
		return nil, err
	}
	return challenge, nil
}

// JoinChallenge enrolls the user. Joining a challenge twice is a no-op that
// reports the existing enrollment.
func (s *ChallengeService) JoinChallenge(ctx context.Context, userID, challengeID uint) (*JoinResult, error) {
	if _, err := s.challengeRepo.GetByID(ctx, challengeID); err != nil {
		return nil, err
	}

	created, err := s.challengeRepo.Enroll(ctx, userID, challengeID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	enrollment, err := s.challengeRepo.GetEnrollment(ctx, userID, challengeID)
	if err != nil {
		return nil, err
	}
	if enrollment == nil {
		return nil, models.NewInternalError(errors.New("enrollment missing after insert"))
	}
	return &JoinResult{Enrollment: enrollment, AlreadyJoined: !created}, nil
}

// ListMine returns the user's enrolled challenges with progress.
func (s *ChallengeService) ListMine(ctx context.Context, userID uint) ([]models.EnrolledChallenge, error) {
	return s.challengeRepo.ListEnrolled(ctx, userID)
}

// CheckIn records the user's daily check-in for a challenge. Completing the
// challenge awards its reward XP and announces it on the feed.
func (s *ChallengeService) CheckIn(ctx context.Context, userID, challengeID uint) (*repository.CheckInResult, error) {
	result, err := s.challengeRepo.CheckIn(ctx, userID, challengeID, time.Now())
	if err != nil {
		observability.CheckinsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	if result.Completed {
		observability.CheckinsTotal.WithLabelValues("completed").Inc()
		observability.XPAwardedTotal.Add(float64(result.AwardedXP))
		if s.notifier != nil {
			actor := ""
			if user, userErr := s.userRepo.GetByID(ctx, userID); userErr == nil {
				actor = user.DisplayName()
			}
			_ = s.notifier.PublishFeed(ctx, notifications.FeedEvent{
				Type:      notifications.EventChallengeDone,
				UserID:    userID,
				Actor:     actor,
				CreatedAt: time.Now().UTC(),
			})
		}
	} else {
		observability.CheckinsTotal.WithLabelValues("recorded").Inc()
	}
	return result, nil
}
