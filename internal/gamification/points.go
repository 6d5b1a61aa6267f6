package gamification

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"focus-backend/internal/models"
)

const (
	PointsPerMinute   = 10
	FirstSessionBonus = 50
	MaxSessionMinutes = 720
	DefaultLabel      = "Study"
)

func SessionPoints(minutes int, firstSessionOfDay bool) int {
	points := minutes * PointsPerMinute
	if firstSessionOfDay {
		points += FirstSessionBonus
	}
	return points
}

func ValidateDuration(minutes int) error {
	if minutes < 1 || minutes > MaxSessionMinutes {
		return ErrInvalidDuration
	}
	return nil
}

// Debit returns the balance after paying amount, or ErrInsufficientFunds.
func Debit(balance, amount int) (int, error) {
	if balance < amount {
		return balance, ErrInsufficientFunds
	}
	return balance - amount, nil
}

// CompleteSession credits a finished session to u and returns the session row
// to persist together with u.
func CompleteSession(u *models.User, minutes int, label string, now time.Time) (*models.StudySession, models.SessionCompletion) {
	update := AdvanceStreak(u.CurrentStreakDays, u.LastStreakDate, now)
	u.CurrentStreakDays = update.Streak
	u.LastStreakDate = update.LastStreakDate

	earned := SessionPoints(minutes, update.FirstSessionOfDay)
	u.CurrentPoints += earned

	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultLabel
	}
	ended := now
	session := &models.StudySession{
		ID:              uuid.New(),
		UserID:          u.ID,
		Label:           label,
		IntendedMinutes: minutes,
		StartedAt:       now,
		EndedAt:         &ended,
		Completed:       true,
	}

	return session, models.SessionCompletion{
		PointsEarned:      earned,
		NewTotalPoints:    u.CurrentPoints,
		Streak:            u.CurrentStreakDays,
		FirstSessionOfDay: update.FirstSessionOfDay,
	}
}
