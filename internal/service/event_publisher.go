package service

import (
	"context"

	"alignai-be/internal/pkg/logger"
	"alignai-be/pkg/events"
)

// EventPublisher is satisfied by *nats.Publisher, including a nil one.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// publishEvent is fire-and-log: domain events never fail the request.
func publishEvent(ctx context.Context, pub EventPublisher, log logger.ILogger, eventType string, data map[string]interface{}) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, events.New(eventType, data)); err != nil {
		log.Warn("Events", "Failed to publish event", map[string]interface{}{"type": eventType, "error": err.Error()})
	}
}
