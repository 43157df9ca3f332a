// Package seed provides helpers to create catalogue, demo, and test data for
// the application database. Demo helpers are intended for development and
// testing only.
package seed

import (
	"log"

	"buddyboost/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PredefinedChallenges is the built-in challenge catalogue. Seeded once at
// bootstrap; user-created challenges live alongside it.
func PredefinedChallenges() []models.Challenge {
	return []models.Challenge{
		{
			Title:        "Morning Run",
			Description:  "Run every morning before work to build an exercise habit.",
			Category:     "fitness",
			DurationDays: 30,
			Emoji:        "🏃",
			RewardXP:     150,
			IsPredefined: true,
		},
		{
			Title:        "Daily Reading",
			Description:  "Read at least 20 pages every day.",
			Category:     "learning",
			DurationDays: 21,
			Emoji:        "📚",
			RewardXP:     100,
			IsPredefined: true,
		},
		{
			Title:        "Hydration Hero",
			Description:  "Drink eight glasses of water a day.",
			Category:     "health",
			DurationDays: 14,
			Emoji:        "💧",
			RewardXP:     75,
			IsPredefined: true,
		},
		{
			Title:        "Meditation Streak",
			Description:  "Ten minutes of meditation every day.",
			Category:     "mindfulness",
			DurationDays: 30,
			Emoji:        "🧘",
			RewardXP:     150,
			IsPredefined: true,
		},
		{
			Title:        "No Sugar Week",
			Description:  "Cut out added sugar for a week.",
			Category:     "health",
			DurationDays: 7,
			Emoji:        "🍎",
			RewardXP:     50,
			IsPredefined: true,
		},
		{
			Title:        "Gratitude Journal",
			Description:  "Write three things you are grateful for each evening.",
			Category:     "mindfulness",
			DurationDays: 21,
			Emoji:        "✨",
			RewardXP:     100,
			IsPredefined: true,
		},
	}
}

// SeedPredefinedChallenges inserts the catalogue if it is not already present.
// Safe to run on every boot.
func SeedPredefinedChallenges(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Challenge{}).
		Where("is_predefined = ?", true).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	catalogue := PredefinedChallenges()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&catalogue).Error; err != nil {
		return err
	}
	log.Printf("Seeded %d predefined challenges", len(catalogue))
	return nil
}
