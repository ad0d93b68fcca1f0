package services

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

// Routing keys of the catalog events.
const (
	EventProductCreated = "product.created"
	EventProductUpdated = "product.updated"
	EventProductDeleted = "product.deleted"
	EventReviewCreated  = "review.created"
	EventReviewDeleted  = "review.deleted"
)

// EventPublisher sends catalog events to a message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// Cache stores encoded read models. Implementations treat an unreachable
// backend as a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// publishEvent never fails the caller: the record is already persisted.
func publishEvent(p EventPublisher, routingKey string, payload map[string]interface{}) {
	if p == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := p.Publish(routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", routingKey, err)
	}
}
