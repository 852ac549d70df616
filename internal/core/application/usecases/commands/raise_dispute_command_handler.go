package commands

import (
	"context"

	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/ports"
)

// RaiseDisputeCommandHandler opens a dispute. Raising one sets the disputed
// flag and records the reason without touching the lifecycle status.
type RaiseDisputeCommandHandler struct {
	uowFactory ShipmentUoWFactory
	clock      ports.Clock
}

// NewRaiseDisputeCommandHandler creates a handler for dispute raising.
func NewRaiseDisputeCommandHandler(uowFactory ShipmentUoWFactory, clock ports.Clock) RaiseDisputeCommandHandler {
	return RaiseDisputeCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the dispute raising command.
func (h *RaiseDisputeCommandHandler) Handle(ctx context.Context, cmd RaiseDisputeCommand) error {
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

	if err = aggregate.RaiseDispute(cmd.Actor(), cmd.Reason()); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	event, err := shipment.NewDomainEvent(shipment.EventDisputeRaised, cmd.TrackingCode().String(), h.clock.Now(), map[string]any{
		"actor":  cmd.Actor().String(),
		"reason": cmd.Reason(),
	})
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
