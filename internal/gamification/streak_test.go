package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func TestAdvanceStreak(t *testing.T) {
	now := at(2026, 3, 12, 9)

	tests := []struct {
		name      string
		streak    int
		last      *time.Time
		wantStrk  int
		wantFirst bool
	}{
		{"first ever session", 0, nil, 1, true},
		{"studied yesterday", 4, ptr(at(2026, 3, 11, 23)), 5, true},
		{"yesterday just after midnight", 2, ptr(at(2026, 3, 11, 0)), 3, true},
		{"two day gap resets", 9, ptr(at(2026, 3, 10, 12)), 1, true},
		{"long gap resets", 30, ptr(at(2025, 12, 1, 8)), 1, true},
		{"future date resets", 3, ptr(at(2026, 3, 14, 8)), 1, true},
		{"same day keeps streak", 6, ptr(at(2026, 3, 12, 1)), 6, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := AdvanceStreak(tc.streak, tc.last, now)
			assert.Equal(t, tc.wantStrk, got.Streak)
			assert.Equal(t, tc.wantFirst, got.FirstSessionOfDay)
			if tc.wantFirst {
				assert.True(t, got.LastStreakDate.Equal(now), "last streak date should be the full timestamp of now")
			} else {
				assert.Equal(t, tc.last, got.LastStreakDate)
			}
		})
	}
}

func TestAdvanceStreak_UsesLocationOfNow(t *testing.T) {
	madrid, err := time.LoadLocation("Europe/Madrid")
	if err != nil {
		t.Skip("tzdata not available")
	}
	// 23:30 UTC on the 11th is already the 12th in Madrid.
	last := at(2026, 3, 11, 23).Add(30 * time.Minute)
	now := time.Date(2026, 3, 12, 20, 0, 0, 0, madrid)

	got := AdvanceStreak(3, &last, now)
	assert.False(t, got.FirstSessionOfDay)
	assert.Equal(t, 3, got.Streak)
}

func TestStreakAtRisk(t *testing.T) {
	now := at(2026, 3, 12, 18)

	assert.True(t, StreakAtRisk(3, ptr(at(2026, 3, 11, 7)), now))
	assert.False(t, StreakAtRisk(3, ptr(at(2026, 3, 12, 7)), now))
	assert.False(t, StreakAtRisk(3, ptr(at(2026, 3, 9, 7)), now))
	assert.False(t, StreakAtRisk(0, ptr(at(2026, 3, 11, 7)), now))
	assert.False(t, StreakAtRisk(2, nil, now))
}

func ptr(t time.Time) *time.Time { return &t }
