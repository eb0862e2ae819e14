package event

import (
	"context"
	"log/slog"
)

// LogPublisher drops events after logging them. Used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

var _ EventPublisher = (*LogPublisher)(nil)

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "LogPublisher")}
}

func (p *LogPublisher) PublishCustomerCreated(ctx context.Context, event CustomerCreatedEvent) error {
	p.logger.DebugContext(ctx, "Dropping event, no broker configured", slog.String("routingKey", routingKeyCustomerCreated), slog.String("eventId", event.EventID))
	return nil
}

func (p *LogPublisher) PublishCustomerUpdated(ctx context.Context, event CustomerUpdatedEvent) error {
	p.logger.DebugContext(ctx, "Dropping event, no broker configured", slog.String("routingKey", routingKeyCustomerUpdated), slog.String("eventId", event.EventID))
	return nil
}

func (p *LogPublisher) PublishCustomerDeleted(ctx context.Context, event CustomerDeletedEvent) error {
	p.logger.DebugContext(ctx, "Dropping event, no broker configured", slog.String("routingKey", routingKeyCustomerDeleted), slog.String("eventId", event.EventID))
	return nil
}
