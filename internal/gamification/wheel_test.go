package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focus-backend/internal/models"
)

type fixedDraw int

func (f fixedDraw) IntN(n int) int { return int(f) % n }

func TestWheelPick_Boundaries(t *testing.T) {
	w := DefaultWheel()

	cases := map[int]string{
		0:  "+5 grains",
		49: "+5 grains",
		50: "+20 grains",
		79: "+20 grains",
		80: "+50 grains",
		89: "+50 grains",
		90: "+5 minutes",
		99: "+5 minutes",
	}
	for draw, label := range cases {
		assert.Equal(t, label, w.Pick(fixedDraw(draw)).Label, "draw %d", draw)
	}
}

func TestWheelPick_FrequenciesMatchWeights(t *testing.T) {
	w := DefaultWheel()
	r := NewSeededRandom(42)

	const spins = 200000
	counts := map[string]int{}
	for i := 0; i < spins; i++ {
		counts[w.Pick(r).Label]++
	}

	for _, p := range DefaultPrizes {
		got := float64(counts[p.Label]) / spins * 100
		assert.InDelta(t, float64(p.Weight), got, 1.0, "prize %s", p.Label)
	}
}

func TestWheelSpin(t *testing.T) {
	w := DefaultWheel()

	t.Run("rejects when balance below cost", func(t *testing.T) {
		u := &models.User{CurrentPoints: 9}
		_, err := w.Spin(u, fixedDraw(0))
		assert.ErrorIs(t, err, ErrInsufficientFunds)
		assert.Equal(t, 9, u.CurrentPoints)
	})

	t.Run("debits cost then credits prize", func(t *testing.T) {
		u := &models.User{CurrentPoints: 300}
		res, err := w.Spin(u, fixedDraw(85))
		require.NoError(t, err)
		assert.Equal(t, "+50 grains", res.PrizeLabel)
		assert.Equal(t, 50, res.PrizeValue)
		assert.Equal(t, 340, res.NewBalance)
		assert.Equal(t, 340, u.CurrentPoints)
	})

	t.Run("exact cost with non-monetary prize", func(t *testing.T) {
		u := &models.User{CurrentPoints: 10}
		res, err := w.Spin(u, fixedDraw(95))
		require.NoError(t, err)
		assert.Equal(t, 0, res.PrizeValue)
		assert.Equal(t, 0, u.CurrentPoints)
	})
}

func TestNewWheel_Validation(t *testing.T) {
	_, err := NewWheel(10, nil)
	assert.Error(t, err)

	_, err = NewWheel(10, []Prize{{Label: "x", Value: 1, Weight: 0}})
	assert.Error(t, err)

	_, err = NewWheel(-1, DefaultPrizes)
	assert.Error(t, err)

	w, err := NewWheel(25, []Prize{{Label: "only", Value: 3, Weight: 7}})
	require.NoError(t, err)
	assert.Equal(t, 25, w.Cost())
	assert.Equal(t, "only", w.Pick(fixedDraw(6)).Label)
}
