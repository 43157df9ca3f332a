package repository

import (
	"context"
	"errors"
	"time"

	"buddyboost/internal/cache"
	"buddyboost/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CheckInResult is the outcome of a successful daily check-in.
type CheckInResult struct {
	Enrollment *models.Enrollment
	Completed  bool
	AwardedXP  int
}

// ChallengeRepository defines the interface for challenge and enrollment data operations
type ChallengeRepository interface {
	Create(ctx context.Context, challenge *models.Challenge) error
	GetByID(ctx context.Context, id uint) (*models.Challenge, error)
	List(ctx context.Context) ([]models.Challenge, error)
	Enroll(ctx context.Context, userID, challengeID uint, startDate time.Time) (created bool, err error)
	GetEnrollment(ctx context.Context, userID, challengeID uint) (*models.Enrollment, error)
	ListEnrolled(ctx context.Context, userID uint) ([]models.EnrolledChallenge, error)
	CheckIn(ctx context.Context, userID, challengeID uint, now time.Time) (*CheckInResult, error)
}

// challengeRepository implements ChallengeRepository
type challengeRepository struct {
	db *gorm.DB
}

// NewChallengeRepository creates a new challenge repository
func NewChallengeRepository(db *gorm.DB) ChallengeRepository {
	return &challengeRepository{db: db}
}

func (r *challengeRepository) Create(ctx context.Context, challenge *models.Challenge) error {
	if err := r.db.WithContext(ctx).Create(challenge).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateChallengesList(ctx)
	return nil
}

func (r *challengeRepository) GetByID(ctx context.Context, id uint) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := r.db.WithContext(ctx).First(&challenge, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Challenge", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &challenge, nil
}

func (r *challengeRepository) List(ctx context.Context) ([]models.Challenge, error) {
	var challenges []models.Challenge
	err := cache.Aside(ctx, cache.ChallengesListKey, &challenges, cache.ChallengesTTL, func() error {
		return r.db.WithContext(ctx).Order("id ASC").Find(&challenges).Error
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return challenges, nil
}

// Enroll inserts the enrollment idempotently. A second join of the same
// challenge is a no-op reported via created=false.
func (r *challengeRepository) Enroll(ctx context.Context, userID, challengeID uint, startDate time.Time) (bool, error) {
	enrollment := models.Enrollment{
		UserID:      userID,
		ChallengeID: challengeID,
		StartDate:   startDate,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&enrollment)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *challengeRepository) GetEnrollment(ctx context.Context, userID, challengeID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		First(&enrollment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &enrollment, nil
}

// ListEnrolled joins enrollments with their challenges, most recently joined
// first.
func (r *challengeRepository) ListEnrolled(ctx context.Context, userID uint) ([]models.EnrolledChallenge, error) {
	var enrolled []models.EnrolledChallenge
	err := r.db.WithContext(ctx).
		Table("enrollments").
		Select("challenges.id as challenge_id, challenges.title, challenges.description, "+
			"challenges.category, challenges.duration_days, challenges.emoji, challenges.reward_xp, "+
			"enrollments.start_date, enrollments.last_checkin_date, enrollments.days_completed, "+
			"enrollments.streak, enrollments.is_completed").
		Joins("JOIN challenges ON challenges.id = enrollments.challenge_id").
		Where("enrollments.user_id = ?", userID).
		Order("enrollments.id DESC").
		Scan(&enrolled).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return enrolled, nil
}

// CheckIn runs the daily check-in inside one transaction: the enrollment row
// is locked, the streak and completion state advance, and the reward XP lands
// on the user in the same transaction when the challenge completes.
func (r *challengeRepository) CheckIn(ctx context.Context, userID, challengeID uint, now time.Time) (*CheckInResult, error) {
	var result CheckInResult
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var enrollment models.Enrollment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND challenge_id = ?", userID, challengeID).
			First(&enrollment).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Enrollment", challengeID)
		}
		if err != nil {
			return err
		}

		var challenge models.Challenge
		if err := tx.First(&challenge, enrollment.ChallengeID).Error; err != nil {
			return err
		}

		completed, err := enrollment.ApplyCheckIn(now, challenge.DurationDays)
		if err != nil {
			return err
		}
		if err := tx.Save(&enrollment).Error; err != nil {
			return err
		}

		if completed {
			if err := tx.Model(&models.User{}).
				Where("id = ?", userID).
				Update("xp", gorm.Expr("xp + ?", challenge.RewardXP)).Error; err != nil {
				return err
			}
			result.AwardedXP = challenge.RewardXP
		}
		result.Enrollment = &enrollment
		result.Completed = completed
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, models.NewInternalError(err)
	}
	if result.Completed {
		cache.InvalidateUser(ctx, userID)
		cache.InvalidateLeaderboard(ctx)
	}
	return &result, nil
}
