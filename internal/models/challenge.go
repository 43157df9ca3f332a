package models

import "time"

// SameCalendarDay reports whether a and b fall on the same UTC calendar day.
func SameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// DefaultRewardXP is the fixed reward for user-created challenges.
const DefaultRewardXP = 50

// Challenge is a habit-tracking challenge users can enroll in. Predefined
// challenges are seeded by the system and have no creator.
type Challenge struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatorID    *uint     `json:"creator_id,omitempty"`
	Creator      *User     `gorm:"foreignKey:CreatorID;constraint:OnDelete:SET NULL" json:"-"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	DurationDays int       `gorm:"not null" json:"duration_days"`
	Emoji        string    `json:"emoji"`
	RewardXP     int       `gorm:"not null" json:"reward_xp"`
	IsPredefined bool      `gorm:"default:false" json:"is_predefined"`
	CreatedAt    time.Time `json:"created_at"`
}

// Enrollment links a user to a challenge they joined and tracks progress.
// The combination of UserID and ChallengeID must be unique.
type Enrollment struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"not null;uniqueIndex:idx_user_challenge" json:"user_id"`
	ChallengeID     uint       `gorm:"not null;uniqueIndex:idx_user_challenge" json:"challenge_id"`
	StartDate       time.Time  `json:"start_date"`
	LastCheckinDate *time.Time `json:"last_checkin_date,omitempty"`
	DaysCompleted   int        `gorm:"default:0" json:"days_completed"`
	Streak          int        `gorm:"default:0" json:"streak"`
	IsCompleted     bool       `gorm:"default:false" json:"is_completed"`

	// Relationships
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Challenge Challenge `gorm:"foreignKey:ChallengeID;constraint:OnDelete:CASCADE" json:"-"`
}

// ApplyCheckIn records a daily check-in at now, advancing the streak when the
// previous check-in was exactly one calendar day earlier and resetting it to 1
// otherwise. Days are compared in UTC. Reports completed=true when this
// check-in reached the challenge duration. Returns a conflict error when the
// challenge is already completed or today's check-in already happened.
func (e *Enrollment) ApplyCheckIn(now time.Time, durationDays int) (completed bool, err error) {
	if e.IsCompleted {
		return false, NewConflictError("Challenge already completed")
	}
	if e.LastCheckinDate != nil && SameCalendarDay(*e.LastCheckinDate, now) {
		return false, NewConflictError("Already checked in today")
	}

	if e.LastCheckinDate != nil && SameCalendarDay(e.LastCheckinDate.AddDate(0, 0, 1), now) {
		e.Streak++
	} else {
		e.Streak = 1
	}
	e.DaysCompleted++
	checkin := now.UTC()
	e.LastCheckinDate = &checkin

	if e.DaysCompleted >= durationDays {
		e.IsCompleted = true
		completed = true
	}
	return completed, nil
}

// EnrolledChallenge is the read model for a user's joined challenges: the
// challenge columns joined with the enrollment's progress fields.
type EnrolledChallenge struct {
	ChallengeID     uint       `json:"challenge_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Category        string     `json:"category"`
	DurationDays    int        `json:"duration_days"`
	Emoji           string     `json:"emoji"`
	RewardXP        int        `json:"reward_xp"`
	StartDate       time.Time  `json:"start_date"`
	LastCheckinDate *time.Time `json:"last_checkin_date,omitempty"`
	DaysCompleted   int        `json:"days_completed"`
	Streak          int        `json:"streak"`
	IsCompleted     bool       `json:"is_completed"`
}
