package validation

import (
	"fmt"
	"strings"
)

const (
	maxChallengeTitleLen       = 120
	maxChallengeDescriptionLen = 2000
	maxChallengeDurationDays   = 365
)

// ValidateChallengeTitle checks the title of a user-created challenge.
func ValidateChallengeTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("title is required")
	}
	if len(title) > maxChallengeTitleLen {
		return fmt.Errorf("title must not exceed %d characters", maxChallengeTitleLen)
	}
	return nil
}

// ValidateChallengeDuration checks the duration of a challenge in days.
func ValidateChallengeDuration(days int) error {
	if days <= 0 {
		return fmt.Errorf("duration_days must be greater than zero")
	}
	if days > maxChallengeDurationDays {
		return fmt.Errorf("duration_days must not exceed %d", maxChallengeDurationDays)
	}
	return nil
}

// ValidateChallengeDescription checks the optional description field.
func ValidateChallengeDescription(description string) error {
	if len(description) > maxChallengeDescriptionLen {
		return fmt.Errorf("description must not exceed %d characters", maxChallengeDescriptionLen)
	}
	return nil
}

// ValidateReactionKind checks a reaction type submitted for a post.
func ValidateReactionKind(kind string) error {
	if strings.TrimSpace(kind) == "" {
		return fmt.Errorf("reaction_type is required")
	}
	if len(kind) > 32 {
		return fmt.Errorf("reaction_type must not exceed 32 characters")
	}
	return nil
}
