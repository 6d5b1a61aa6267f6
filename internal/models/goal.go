package models

import (
	"time"

	"github.com/google/uuid"
)

type Goal struct {
	ID                uuid.UUID `json:"id"`
	UserID            uuid.UUID `json:"user_id"`
	Title             string    `json:"title"`
	Description       *string   `json:"description"`
	TargetMinutesWeek int       `json:"target_minutes_week"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
}

type GoalRequest struct {
	Title             string  `json:"title"`
	Description       *string `json:"description"`
	TargetMinutesWeek *int    `json:"target_minutes_week"`
	IsActive          *bool   `json:"is_active"`
}
