// Package gamification holds the rules that turn study sessions into
// streaks and grains, and grains into wheel prizes and shop items.
//
// Everything here is pure: functions take the current user state, a clock
// reading and (for the wheel) a random source, mutate the in-memory structs
// and return plain results. Persistence and commit are the caller's job.
package gamification

import (
	"math/rand/v2"
	"time"
)

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FixedClock always reports the same instant.
type FixedClock struct{ T time.Time }

func (c FixedClock) Now() time.Time { return c.T }

// RandomSource draws a uniform integer in [0, n).
type RandomSource interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRandom is backed by the process-wide math/rand/v2 generator, which is
// safe for concurrent use.
func DefaultRandom() RandomSource { return globalRand{} }

// NewSeededRandom returns a deterministic source. Not safe for concurrent use.
func NewSeededRandom(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
