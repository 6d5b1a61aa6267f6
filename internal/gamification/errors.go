package gamification

import "errors"

var (
	ErrInsufficientFunds = errors.New("insufficient grains")
	ErrInvalidDuration   = errors.New("duration must be between 1 and 720 minutes")
	ErrInvalidArchetype  = errors.New("archetype must be A, B or C")
	ErrInvalidMinutes    = errors.New("preferred minutes must be between 5 and 120")
	ErrUnknownItem       = errors.New("item is not sold in the shop")
	ErrPriceMismatch     = errors.New("declared price does not match the shop price")
)
