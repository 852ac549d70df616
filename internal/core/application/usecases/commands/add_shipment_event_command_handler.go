package commands

import (
	"context"

	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/ports"
)

// AddShipmentEventCommandHandler appends operational events to the
// append-only event log after running the kind-specific authorization
// predicate, and emits ShipmentEventAdded through the outbox.
type AddShipmentEventCommandHandler struct {
	uowFactory EventUoWFactory
	clock      ports.Clock
}

// NewAddShipmentEventCommandHandler creates a handler for event appends.
func NewAddShipmentEventCommandHandler(uowFactory EventUoWFactory, clock ports.Clock) AddShipmentEventCommandHandler {
	return AddShipmentEventCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the event append command.
func (h *AddShipmentEventCommandHandler) Handle(ctx context.Context, cmd AddShipmentEventCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.ShipmentRepository().Get(ctx, cmd.TrackingCode())
	if err != nil {
		return err
	}

	reg, err := uow.RegistryRepository().Get(ctx)
	if err != nil {
		return err
	}

	if err = cmd.Kind().Authorize(aggregate, cmd.Actor(), reg.IsAdmin(cmd.Actor())); err != nil {
		return err
	}

	now := h.clock.Now()

	logEntry, err := shipment.NewEvent(cmd.Location(), cmd.EventType(), now, cmd.Actor())
	if err != nil {
		return err
	}
	if err = uow.TrackingRepository().AppendEvent(ctx, cmd.TrackingCode(), logEntry); err != nil {
		return err
	}

	event, err := shipment.NewDomainEvent(shipment.EventShipmentEventAdded, cmd.TrackingCode().String(), now, map[string]any{
		"eventType": cmd.EventType(),
		"location":  cmd.Location(),
		"kind":      cmd.Kind().String(),
	})
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
