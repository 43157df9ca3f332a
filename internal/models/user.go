// Package models contains data structures for the application's domain models.
package models

import (
	"fmt"
	"time"
)

// XPPerLevel is the amount of experience needed to advance one level.
const XPPerLevel = 100

// User represents a BuddyBoost account.
type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Email     string     `gorm:"unique;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	FirstName string     `gorm:"not null" json:"first_name"`
	LastName  string     `gorm:"not null" json:"last_name"`
	IsAdmin   bool       `gorm:"default:false" json:"is_admin"`
	XP        int        `gorm:"default:0" json:"xp"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Posts     []Post     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"posts,omitempty"`
}

// DisplayName returns the name shown on posts and leaderboards.
func (u *User) DisplayName() string {
	return fmt.Sprintf("%s %s", u.FirstName, u.LastName)
}

// Level derives the gamification level from accumulated XP.
func (u *User) Level() int {
	return u.XP/XPPerLevel + 1
}
