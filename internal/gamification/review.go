package gamification

import (
	"strings"
	"time"
)

const (
	ReviewIntervalDays = 7
	ReviewGraceDays    = 3
)

var archetypes = map[string]bool{"A": true, "B": true, "C": true}

// ReviewDue reports whether the weekly plan review should be shown. New
// accounts get a grace period before their first review.
func ReviewDue(now, createdAt time.Time, lastReview *time.Time) bool {
	if lastReview == nil {
		return wholeDays(now.Sub(createdAt)) >= ReviewGraceDays
	}
	return wholeDays(now.Sub(*lastReview)) >= ReviewIntervalDays
}

func wholeDays(d time.Duration) int {
	days := int(d / (24 * time.Hour))
	if d < 0 && d%(24*time.Hour) != 0 {
		days--
	}
	return days
}

// NormalizeArchetype upper-cases and validates an archetype tag.
func NormalizeArchetype(a string) (string, error) {
	a = strings.ToUpper(strings.TrimSpace(a))
	if !archetypes[a] {
		return "", ErrInvalidArchetype
	}
	return a, nil
}

func ValidatePreferredMinutes(m int) error {
	if m < 5 || m > 120 {
		return ErrInvalidMinutes
	}
	return nil
}
