package commands

import (
	"context"

	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/ports"
)

// StartTransitCommandHandler handles the QualityApproved -> InTransit
// transition by the carrier.
type StartTransitCommandHandler struct {
	uowFactory ShipmentUoWFactory
	clock      ports.Clock
}

// NewStartTransitCommandHandler creates a handler for transit start.
func NewStartTransitCommandHandler(uowFactory ShipmentUoWFactory, clock ports.Clock) StartTransitCommandHandler {
	return StartTransitCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the transit start command.
func (h *StartTransitCommandHandler) Handle(ctx context.Context, cmd StartTransitCommand) error {
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
	if err = aggregate.StartTransit(cmd.Actor()); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	change, err := shipment.NewStatusChange(oldStatus, aggregate.Status(), h.clock.Now(), cmd.Actor(), "picked up by carrier")
	if err != nil {
		return err
	}
	if err = uow.TrackingRepository().AppendStatusChange(ctx, cmd.TrackingCode(), change); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
