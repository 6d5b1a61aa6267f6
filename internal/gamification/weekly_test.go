package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStartAndDayIndex(t *testing.T) {
	thursday := at(2026, 3, 12, 15) // 2026-03-12 is a Thursday
	assert.Equal(t, 3, DayIndex(thursday))
	assert.True(t, WeekStart(thursday).Equal(at(2026, 3, 9, 0)))

	sunday := at(2026, 3, 15, 23)
	assert.Equal(t, 6, DayIndex(sunday))
	assert.True(t, WeekStart(sunday).Equal(at(2026, 3, 9, 0)))

	monday := at(2026, 3, 9, 0)
	assert.Equal(t, 0, DayIndex(monday))
	assert.True(t, WeekStart(monday).Equal(monday))
}

func TestBuildWeeklyStats_MondayAndThursday(t *testing.T) {
	today := at(2026, 3, 13, 11) // Friday
	starts := []time.Time{
		at(2026, 3, 9, 8),
		at(2026, 3, 9, 20),
		at(2026, 3, 12, 14),
	}

	stats := BuildWeeklyStats(today, starts)

	assert.Equal(t, 2, stats.DaysWithSessions)
	assert.Equal(t, 4, stats.CurrentDayIndex)
	require.Len(t, stats.DailyBreakdown, 7)
	for i, d := range stats.DailyBreakdown {
		assert.Equal(t, i, d.DayIndex)
		assert.Equal(t, i == 0 || i == 3, d.Completed, "day %d", i)
	}
}

func TestBuildWeeklyStats_IgnoresOtherWeeks(t *testing.T) {
	today := at(2026, 3, 11, 11)
	starts := []time.Time{
		at(2026, 3, 8, 23), // previous Sunday
		at(2026, 3, 16, 1), // next Monday
	}

	stats := BuildWeeklyStats(today, starts)
	assert.Equal(t, 0, stats.DaysWithSessions)
	for _, d := range stats.DailyBreakdown {
		assert.False(t, d.Completed)
	}
}

func TestBuildWeeklyStats_AcrossDSTChange(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Skip("tzdata not available")
	}
	// Clocks move forward on Sunday 2026-03-29 in Madrid.
	today := time.Date(2026, 3, 29, 21, 0, 0, 0, madrid)
	starts := []time.Time{time.Date(2026, 3, 29, 10, 0, 0, 0, madrid)}

	stats := BuildWeeklyStats(today, starts)
	assert.Equal(t, 1, stats.DaysWithSessions)
	assert.True(t, stats.DailyBreakdown[6].Completed)
}

func TestReviewDue(t *testing.T) {
	now := at(2026, 3, 12, 12)

	assert.False(t, ReviewDue(now, now.Add(-2*24*time.Hour), nil), "inside grace period")
	assert.True(t, ReviewDue(now, now.Add(-3*24*time.Hour), nil), "grace period over")

	last := now.Add(-6 * 24 * time.Hour)
	assert.False(t, ReviewDue(now, now.Add(-60*24*time.Hour), &last))

	last = now.Add(-7 * 24 * time.Hour)
	assert.True(t, ReviewDue(now, now.Add(-60*24*time.Hour), &last))
}

func TestNormalizeArchetype(t *testing.T) {
	a, err := NormalizeArchetype(" b ")
	require.NoError(t, err)
	assert.Equal(t, "B", a)

	_, err = NormalizeArchetype("D")
	assert.ErrorIs(t, err, ErrInvalidArchetype)

	assert.NoError(t, ValidatePreferredMinutes(25))
	assert.ErrorIs(t, ValidatePreferredMinutes(0), ErrInvalidMinutes)
}
