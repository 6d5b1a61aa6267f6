package models

import (
	"time"

	"github.com/google/uuid"
)

// StudySession is written once per completed focus session and never edited.
type StudySession struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	Label           string     `json:"label"`
	IntendedMinutes int        `json:"intended_minutes"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	Completed       bool       `json:"completed"`
	AbandonReason   *string    `json:"abandon_reason,omitempty"`
}

type CompleteSessionRequest struct {
	DurationMinutes int    `json:"duration_minutes"`
	Label           string `json:"label"`
}

type SessionCompletion struct {
	PointsEarned      int  `json:"points_earned"`
	NewTotalPoints    int  `json:"new_total_points"`
	Streak            int  `json:"streak"`
	FirstSessionOfDay bool `json:"first_session_of_day"`
}

type DayCompletion struct {
	DayIndex  int  `json:"day_index"`
	Completed bool `json:"completed"`
}

type WeeklyStats struct {
	DaysWithSessions int             `json:"days_with_sessions"`
	DailyBreakdown   []DayCompletion `json:"daily_breakdown"`
	CurrentDayIndex  int             `json:"current_day_index"`
}
