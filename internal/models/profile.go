package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds the motivational archetype picked during onboarding.
// There is at most one profile per user.
type Profile struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	Archetype        string    `json:"archetype"`
	Bio              *string   `json:"bio,omitempty"`
	PreferredMinutes int       `json:"preferred_minutes"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type OnboardingRequest struct {
	Score            int     `json:"score"`
	Archetype        string  `json:"archetype"`
	PreferredMinutes int     `json:"preferred_minutes"`
	Bio              *string `json:"bio"`
}

type PlanUpdateRequest struct {
	NewArchetype string `json:"new_archetype"`
	NewMinutes   int    `json:"new_minutes"`
}
