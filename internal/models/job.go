package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationJob is queued by the reminder scheduler and consumed by the worker pool.
type NotificationJob struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"` // "streak-reminder" | "weekly-review-reminder"
	UserID     uuid.UUID `json:"user_id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	Streak     int       `json:"streak"`
	EnqueuedAt time.Time `json:"enqueued_at"`
	Attempts   int       `json:"attempts"`
}

// WebSocket message types
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type PointsUpdate struct {
	Reason            string `json:"reason"` // "session_completed" | "wheel_spun" | "item_purchased"
	CurrentPoints     int    `json:"current_points"`
	CurrentStreakDays int    `json:"current_streak_days"`
	Delta             int    `json:"delta"`
}

// DomainEvent is the envelope published to the message broker after a commit.
type DomainEvent struct {
	ID         uuid.UUID   `json:"id"`
	Type       string      `json:"type"`
	UserID     uuid.UUID   `json:"user_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
	// Points is the balance snapshot pushed to connected clients, if any.
	Points *PointsUpdate `json:"points,omitempty"`
}

// API Error response
type APIError struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id"`
}

type ErrorResponse struct {
	Error APIError `json:"error"`
}
