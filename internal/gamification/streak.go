package gamification

import "time"

type StreakUpdate struct {
	Streak            int
	FirstSessionOfDay bool
	LastStreakDate    *time.Time
}

// AdvanceStreak applies one completed session to a streak. Dates are compared
// in now's location with the time of day ignored. A last date in the future
// falls into the reset branch like any other gap.
func AdvanceStreak(streak int, last *time.Time, now time.Time) StreakUpdate {
	today := dateOf(now)

	if last != nil && dateOf(last.In(now.Location())).Equal(today) {
		return StreakUpdate{Streak: streak, FirstSessionOfDay: false, LastStreakDate: last}
	}

	switch {
	case last == nil:
		streak = 1
	case dateOf(last.In(now.Location())).Equal(today.AddDate(0, 0, -1)):
		streak++
	default:
		streak = 1
	}

	stamp := now
	return StreakUpdate{Streak: streak, FirstSessionOfDay: true, LastStreakDate: &stamp}
}

// StreakAtRisk reports whether the streak survives only if the user studies
// before the end of now's day.
func StreakAtRisk(streak int, last *time.Time, now time.Time) bool {
	if streak == 0 || last == nil {
		return false
	}
	return dateOf(last.In(now.Location())).Equal(dateOf(now).AddDate(0, 0, -1))
}
