package commands

import (
	"context"

	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// CancelShipmentCommandHandler handles admin cancellation from any
// non-terminal state. The deposit is refunded to the creator exactly once; a
// rejected refund aborts the whole operation.
type CancelShipmentCommandHandler struct {
	uowFactory AdminEscrowUoWFactory
	settlement services.EscrowSettlement
	clock      ports.Clock
}

// NewCancelShipmentCommandHandler creates a handler for shipment cancellation.
func NewCancelShipmentCommandHandler(
	uowFactory AdminEscrowUoWFactory,
	settlement services.EscrowSettlement,
	clock ports.Clock,
) CancelShipmentCommandHandler {
	return CancelShipmentCommandHandler{
		uowFactory: uowFactory,
		settlement: settlement,
		clock:      clock,
	}
}

// Handle processes the cancellation command.
func (h *CancelShipmentCommandHandler) Handle(ctx context.Context, cmd CancelShipmentCommand) error {
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

	reg, err := uow.RegistryRepository().Get(ctx)
	if err != nil {
		return err
	}
	if !reg.IsAdmin(cmd.Actor()) {
		return errs.NewUnauthorizedError("admin")
	}

	aggregate, err := uow.ShipmentRepository().Get(ctx, cmd.TrackingCode())
	if err != nil {
		return err
	}

	oldStatus := aggregate.Status()
	if err = aggregate.Cancel(cmd.Reason()); err != nil {
		return err
	}

	refunded := !aggregate.Flags().EscrowSettled()
	if err = h.settlement.Refund(ctx, uow.LedgerGateway(), aggregate); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	now := h.clock.Now()

	change, err := shipment.NewStatusChange(oldStatus, aggregate.Status(), now, cmd.Actor(), cmd.Reason())
	if err != nil {
		return err
	}
	if err = uow.TrackingRepository().AppendStatusChange(ctx, cmd.TrackingCode(), change); err != nil {
		return err
	}

	cancelled, err := shipment.NewDomainEvent(shipment.EventShipmentCancelled, cmd.TrackingCode().String(), now, map[string]any{
		"actor":  cmd.Actor().String(),
		"reason": cmd.Reason(),
	})
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, cancelled); err != nil {
		return err
	}

	if refunded && aggregate.Flags().EscrowRefunded {
		escrowEvent, eventErr := shipment.NewDomainEvent(shipment.EventEscrowRefunded, cmd.TrackingCode().String(), now, map[string]any{
			"amount": aggregate.DepositAmount(),
			"to":     aggregate.Creator().String(),
		})
		if eventErr != nil {
			return eventErr
		}
		if err = uow.OutboxRepository().Add(ctx, escrowEvent); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
