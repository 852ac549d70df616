package commands

import (
	"context"

	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/ports"
)

// ApproveQualityCommandHandler handles the WarehouseConfirmed ->
// QualityApproved transition, appending the audit trail entries with the
// fixed "Quality Control" location label and emitting ConfirmationUpdated.
type ApproveQualityCommandHandler struct {
	uowFactory ShipmentUoWFactory
	clock      ports.Clock
}

// NewApproveQualityCommandHandler creates a handler for quality approval.
func NewApproveQualityCommandHandler(uowFactory ShipmentUoWFactory, clock ports.Clock) ApproveQualityCommandHandler {
	return ApproveQualityCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the quality approval command.
func (h *ApproveQualityCommandHandler) Handle(ctx context.Context, cmd ApproveQualityCommand) error {
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
	if err = aggregate.ApproveQuality(cmd.Actor()); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	now := h.clock.Now()

	change, err := shipment.NewStatusChange(oldStatus, aggregate.Status(), now, cmd.Actor(), "quality approved")
	if err != nil {
		return err
	}
	if err = uow.TrackingRepository().AppendStatusChange(ctx, cmd.TrackingCode(), change); err != nil {
		return err
	}

	logEntry, err := shipment.NewEvent(shipment.LocationQualityControl, shipment.EventTypeQualityApproved, now, cmd.Actor())
	if err != nil {
		return err
	}
	if err = uow.TrackingRepository().AppendEvent(ctx, cmd.TrackingCode(), logEntry); err != nil {
		return err
	}

	event, err := shipment.NewDomainEvent(shipment.EventConfirmationUpdated, cmd.TrackingCode().String(), now, map[string]any{
		"actor": cmd.Actor().String(),
		"stage": "quality",
	})
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
