package gamification

import (
	"time"

	"focus-backend/internal/models"
)

// DayIndex is 0 for Monday through 6 for Sunday.
func DayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeekStart is midnight on the Monday of t's week, in t's location.
func WeekStart(t time.Time) time.Time {
	return dateOf(t).AddDate(0, 0, -DayIndex(t))
}

// BuildWeeklyStats marks the days of today's week that saw at least one of the
// given completed-session start times. Starts outside the week are ignored.
func BuildWeeklyStats(today time.Time, starts []time.Time) models.WeeklyStats {
	monday := WeekStart(today)

	var seen [7]bool
	days := 0
	for _, s := range starts {
		idx := daysBetween(monday, s.In(today.Location()))
		if idx < 0 || idx > 6 {
			continue
		}
		if !seen[idx] {
			seen[idx] = true
			days++
		}
	}

	breakdown := make([]models.DayCompletion, 7)
	for i := range breakdown {
		breakdown[i] = models.DayCompletion{DayIndex: i, Completed: seen[i]}
	}

	return models.WeeklyStats{
		DaysWithSessions: days,
		DailyBreakdown:   breakdown,
		CurrentDayIndex:  DayIndex(today),
	}
}

// daysBetween counts calendar days from a to b, ignoring DST shifts.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua) / (24 * time.Hour))
}
