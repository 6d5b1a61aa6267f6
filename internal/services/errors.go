package services

import (
	"errors"
	"time"

	"focus-backend/internal/gamification"
	"focus-backend/internal/repository"
)

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "Validation error" }

type ConflictError struct{ Message string }

func (e *ConflictError) Error() string { return e.Message }

type NotFoundError struct{ Message string }

func (e *NotFoundError) Error() string { return e.Message }

type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

// InsufficientFundsError means the balance does not cover a spin or purchase.
type InsufficientFundsError struct {
	Balance  int
	Required int
}

func (e *InsufficientFundsError) Error() string { return "Not enough grains" }

// TransientError wraps failures the client may retry as-is.
type TransientError struct {
	Message    string
	RetryAfter time.Duration
}

func (e *TransientError) Error() string { return e.Message }

var errUserGone = &UnauthorizedError{Message: "User no longer exists"}

// translate maps engine sentinels and repository failures onto service errors.
// Unknown errors pass through unchanged.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrTxConflict):
		return &TransientError{Message: "Too many concurrent updates, please retry", RetryAfter: time.Second}
	case errors.Is(err, gamification.ErrInvalidDuration):
		return &ValidationError{Fields: map[string]string{"duration_minutes": err.Error()}}
	case errors.Is(err, gamification.ErrInvalidArchetype):
		return &ValidationError{Fields: map[string]string{"archetype": err.Error()}}
	case errors.Is(err, gamification.ErrInvalidMinutes):
		return &ValidationError{Fields: map[string]string{"preferred_minutes": err.Error()}}
	case errors.Is(err, gamification.ErrUnknownItem):
		return &ValidationError{Fields: map[string]string{"item_id": err.Error()}}
	case errors.Is(err, gamification.ErrPriceMismatch):
		return &ValidationError{Fields: map[string]string{"price": err.Error()}}
	}
	return err
}

