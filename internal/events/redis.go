package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"focus-backend/internal/models"
)

const PointsUpdatedMessage = "points_updated"

// UserChannel is the pub/sub channel the websocket hub listens on per user.
func UserChannel(userID uuid.UUID) string {
	return "user_updates:" + userID.String()
}

// RedisPublisher pushes balance snapshots to the websocket hub. Events without
// a points snapshot are skipped.
type RedisPublisher struct {
	redis *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{redis: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, ev models.DomainEvent) error {
	if ev.Points == nil {
		return nil
	}

	data, err := json.Marshal(models.WSMessage{Type: PointsUpdatedMessage, Payload: ev.Points})
	if err != nil {
		return fmt.Errorf("failed to encode ws message: %w", err)
	}
	return p.redis.Publish(ctx, UserChannel(ev.UserID), string(data)).Err()
}
