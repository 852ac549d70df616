package ports

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
)

// OutboxMessage is one stored integration event awaiting relay to the message
// broker. Payload is the JSON-encoded event body.
type OutboxMessage struct {
	ID           kernel.UUID
	EventName    string
	TrackingCode string
	Payload      []byte
	CreatedAt    time.Time
	PublishedAt  *time.Time
}

// OutboxRepository defines the persistence contract for the transactional
// outbox: integration events are stored in the same transaction as the state
// change that produced them, then relayed at least once by a background job.
type OutboxRepository interface {
	// Add stores an integration event in the outbox.
	Add(ctx context.Context, event shipment.DomainEvent) error

	// GetUnpublished returns up to limit stored events that have not been
	// relayed yet, oldest first.
	GetUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished records that the given events were relayed.
	MarkPublished(ctx context.Context, ids []kernel.UUID) error
}

// EventPublisher sends integration events to the message broker. The key is
// the tracking code so per-shipment ordering is preserved on the broker.
type EventPublisher interface {
	Publish(ctx context.Context, key string, payload []byte) error
	Close() error
}
