package billing

import (
	"github.com/rentworks/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// eventSource is any aggregate that records domain events.
type eventSource interface {
	PullDomainEvents() []shared.DomainEvent
}

// publishEvents drains the events an aggregate recorded during a completed
// unit of work and writes them to the structured log. The log is the event
// sink in this deployment; there is no broker.
func publishEvents(logger *zap.Logger, source eventSource) {
	for _, event := range source.PullDomainEvents() {
		logger.Info("domain event",
			zap.String("event_type", event.EventType()),
			zap.String("aggregate_type", event.AggregateType()),
			zap.String("aggregate_id", event.AggregateID().String()),
			zap.String("tenant_id", event.TenantID().String()),
		)
	}
}
