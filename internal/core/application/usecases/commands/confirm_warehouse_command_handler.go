package commands

import (
	"context"

	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/ports"
)

// ConfirmWarehouseCommandHandler handles the Pending -> WarehouseConfirmed
// transition. The accepted transition appends one status history entry and
// one event log entry with the fixed "Warehouse" location label, and emits
// ConfirmationUpdated through the outbox.
type ConfirmWarehouseCommandHandler struct {
	uowFactory ShipmentUoWFactory
	clock      ports.Clock
}

// NewConfirmWarehouseCommandHandler creates a handler for warehouse confirmation.
func NewConfirmWarehouseCommandHandler(uowFactory ShipmentUoWFactory, clock ports.Clock) ConfirmWarehouseCommandHandler {
	return ConfirmWarehouseCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the warehouse confirmation command.
func (h *ConfirmWarehouseCommandHandler) Handle(ctx context.Context, cmd ConfirmWarehouseCommand) error {
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

	oldStatus := aggregate.Status()
	if err = aggregate.ConfirmWarehouse(cmd.Actor()); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	now := h.clock.Now()

	change, err := shipment.NewStatusChange(oldStatus, aggregate.Status(), now, cmd.Actor(), "warehouse intake confirmed")
	if err != nil {
		return err
	}
	if err = uow.TrackingRepository().AppendStatusChange(ctx, cmd.TrackingCode(), change); err != nil {
		return err
	}

	logEntry, err := shipment.NewEvent(shipment.LocationWarehouse, shipment.EventTypeWarehouseConfirmed, now, cmd.Actor())
	if err != nil {
		return err
	}
	if err = uow.TrackingRepository().AppendEvent(ctx, cmd.TrackingCode(), logEntry); err != nil {
		return err
	}

	event, err := shipment.NewDomainEvent(shipment.EventConfirmationUpdated, cmd.TrackingCode().String(), now, map[string]any{
		"actor": cmd.Actor().String(),
		"stage": "warehouse",
	})
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
