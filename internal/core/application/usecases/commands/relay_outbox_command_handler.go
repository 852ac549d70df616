package commands

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
)

// relayBatchSize bounds a single relay pass so one slow broker round-trip
// cannot hold the transaction open indefinitely.
const relayBatchSize = 100

// RelayOutboxCommandHandler publishes pending outbox messages to the broker
// and marks them published in the same transaction. Messages are keyed by
// tracking code so all events of one shipment land on the same partition.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
}

// NewRelayOutboxCommandHandler creates a handler for outbox relaying.
func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the relay command. Returns the number of messages
// published.
func (h *RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	messages, err := uow.OutboxRepository().GetUnpublished(ctx, relayBatchSize)
	if err != nil {
		return 0, err
	}

	if len(messages) == 0 {
		return 0, uow.Commit(ctx)
	}

	published := make([]kernel.UUID, 0, len(messages))
	for _, message := range messages {
		if err = h.publisher.Publish(ctx, message.TrackingCode, message.Payload); err != nil {
			// Publish the rest next pass; what already went out is marked
			// below so redelivery stays bounded to the failed message.
			break
		}
		published = append(published, message.ID)
	}

	if len(published) == 0 {
		return 0, err
	}

	if markErr := uow.OutboxRepository().MarkPublished(ctx, published); markErr != nil {
		return 0, markErr
	}

	if commitErr := uow.Commit(ctx); commitErr != nil {
		return 0, commitErr
	}

	return len(published), err
}
