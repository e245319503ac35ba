package service

import (
	"context"
	"sync"

	"alignai-be/internal/pkg/logger"
	"alignai-be/pkg/events"
	pktNats "alignai-be/pkg/nats"
)

const auditDurable = "alignai-audit"

// EventSubscriber is satisfied by *nats.Subscriber.
type EventSubscriber interface {
	Subscribe(ctx context.Context, subject string, durableName string, handler pktNats.EventHandler) error
}

// IEventAuditService records every domain event that crosses the bus in the
// application log and keeps per-type counters.
type IEventAuditService interface {
	Start(ctx context.Context) error
	Counts() map[string]int64
}

type eventAuditService struct {
	subscriber EventSubscriber
	logger     logger.ILogger

	mu     sync.Mutex
	counts map[string]int64
}

func NewEventAuditService(subscriber EventSubscriber, log logger.ILogger) IEventAuditService {
	return &eventAuditService{
		subscriber: subscriber,
		logger:     log,
		counts:     map[string]int64{},
	}
}

func (s *eventAuditService) Start(ctx context.Context) error {
	return s.subscriber.Subscribe(ctx, events.Subject(">"), auditDurable, s.handle)
}

func (s *eventAuditService) handle(ctx context.Context, event events.Event) error {
	s.mu.Lock()
	s.counts[event.EventType()]++
	s.mu.Unlock()

	s.logger.Info("Events", "Domain event", map[string]interface{}{
		"type":        event.EventType(),
		"occurred_at": event.Timestamp(),
		"data":        event.Payload(),
	})
	return nil
}

func (s *eventAuditService) Counts() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int64, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}
