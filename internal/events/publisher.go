// Package events delivers committed gamification changes to connected
// clients and to the message broker. Delivery is best effort: a failed
// publish never undoes a committed transaction.
package events

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"focus-backend/internal/models"
)

const (
	SessionCompleted = "session.completed"
	WheelSpun        = "wheel.spun"
	ItemPurchased    = "item.purchased"
	ProfileUpdated   = "profile.updated"
)

type Publisher interface {
	Publish(ctx context.Context, ev models.DomainEvent) error
}

// New builds an event envelope stamped with a fresh id.
func New(eventType string, userID uuid.UUID, at time.Time, data interface{}) models.DomainEvent {
	return models.DomainEvent{
		ID:         uuid.New(),
		Type:       eventType,
		UserID:     userID,
		OccurredAt: at,
		Data:       data,
	}
}

// Noop drops every event.
type Noop struct{}

func (Noop) Publish(context.Context, models.DomainEvent) error { return nil }

// Fanout hands each event to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, ev models.DomainEvent) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PublishLogged publishes ev and only logs a failure.
func PublishLogged(ctx context.Context, p Publisher, ev models.DomainEvent) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, ev); err != nil {
		log.Printf("events: failed to publish %s for user %s: %v", ev.Type, ev.UserID, err)
	}
}
