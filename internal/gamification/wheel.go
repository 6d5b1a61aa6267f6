package gamification

import (
	"errors"

	"focus-backend/internal/models"
)

const DefaultSpinCost = 10

type Prize struct {
	Label  string `json:"label"`
	Value  int    `json:"value"`
	Weight int    `json:"weight"`
}

// DefaultPrizes weights sum to 100, so each weight reads as a percentage.
// The minutes prize carries no grains yet.
var DefaultPrizes = []Prize{
	{Label: "+5 grains", Value: 5, Weight: 50},
	{Label: "+20 grains", Value: 20, Weight: 30},
	{Label: "+50 grains", Value: 50, Weight: 10},
	{Label: "+5 minutes", Value: 0, Weight: 10},
}

// Wheel picks prizes with one draw against a cumulative weight table.
type Wheel struct {
	cost       int
	prizes     []Prize
	cumulative []int
	total      int
}

func NewWheel(cost int, prizes []Prize) (*Wheel, error) {
	if cost < 0 {
		return nil, errors.New("wheel cost must not be negative")
	}
	if len(prizes) == 0 {
		return nil, errors.New("wheel needs at least one prize")
	}

	w := &Wheel{
		cost:       cost,
		prizes:     append([]Prize(nil), prizes...),
		cumulative: make([]int, len(prizes)),
	}
	for i, p := range prizes {
		if p.Weight <= 0 {
			return nil, errors.New("prize weights must be positive")
		}
		w.total += p.Weight
		w.cumulative[i] = w.total
	}
	return w, nil
}

func DefaultWheel() *Wheel {
	w, _ := NewWheel(DefaultSpinCost, DefaultPrizes)
	return w
}

func (w *Wheel) Cost() int { return w.cost }

func (w *Wheel) Prizes() []Prize { return append([]Prize(nil), w.prizes...) }

// Pick returns the prize whose cumulative bound is the first to exceed a draw
// in [0, total).
func (w *Wheel) Pick(r RandomSource) Prize {
	draw := r.IntN(w.total)
	lo, hi := 0, len(w.cumulative)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if draw < w.cumulative[mid] {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return w.prizes[lo]
}

// Spin charges the cost, draws a prize and credits its value. u is untouched
// when the balance cannot cover the cost.
func (w *Wheel) Spin(u *models.User, r RandomSource) (models.SpinResult, error) {
	balance, err := Debit(u.CurrentPoints, w.cost)
	if err != nil {
		return models.SpinResult{}, err
	}

	prize := w.Pick(r)
	u.CurrentPoints = balance + prize.Value

	return models.SpinResult{
		PrizeLabel: prize.Label,
		PrizeValue: prize.Value,
		NewBalance: u.CurrentPoints,
	}, nil
}
