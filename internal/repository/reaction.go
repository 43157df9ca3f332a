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

// ToggleOutcome describes what a reaction toggle did to the row.
type ToggleOutcome string

const (
	ToggleAdded   ToggleOutcome = "added"
	ToggleRemoved ToggleOutcome = "removed"
	ToggleUpdated ToggleOutcome = "updated"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	Toggle(ctx context.Context, userID, postID uint, kind string) (*models.Reaction, ToggleOutcome, error)
	ListByPost(ctx context.Context, postID uint) ([]models.Reaction, error)
}

// reactionRepository implements ReactionRepository
type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Toggle applies the three-way reaction rule inside one transaction: no
// existing row inserts, same kind deletes, different kind replaces the kind
// and refreshes created_at. The existing row is locked so two concurrent
// toggles cannot both insert. Returns the surviving row, nil when removed.
func (r *reactionRepository) Toggle(ctx context.Context, userID, postID uint, kind string) (*models.Reaction, ToggleOutcome, error) {
	var (
		outcome  ToggleOutcome
		reaction *models.Reaction
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Reaction
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND post_id = ?", userID, postID).
			First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			outcome = ToggleAdded
			created := models.Reaction{
				UserID: userID,
				PostID: postID,
				Kind:   kind,
			}
			if err := tx.Create(&created).Error; err != nil {
				return err
			}
			reaction = &created
			return nil
		case err != nil:
			return err
		case existing.Kind == kind:
			outcome = ToggleRemoved
			return tx.Delete(&existing).Error
		default:
			outcome = ToggleUpdated
			now := time.Now().UTC()
			err := tx.Model(&existing).Updates(map[string]any{
				"kind":       kind,
				"created_at": now,
			}).Error
			if err != nil {
				return err
			}
			existing.Kind = kind
			existing.CreatedAt = now
			reaction = &existing
			return nil
		}
	})
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	cache.InvalidatePostsList(ctx)
	return reaction, outcome, nil
}

func (r *reactionRepository) ListByPost(ctx context.Context, postID uint) ([]models.Reaction, error) {
	var reactions []models.Reaction
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&reactions).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reactions, nil
}
