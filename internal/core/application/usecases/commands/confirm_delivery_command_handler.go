package commands

import (
	"context"

	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
)

// ConfirmDeliveryCommandHandler handles the InTransit -> Delivered transition
// and settles the escrow: the deposit is released to the carrier exactly
// once. If the ledger gateway rejects the transfer the whole operation rolls
// back; neither the status change nor the escrow flag persists.
type ConfirmDeliveryCommandHandler struct {
	uowFactory EscrowUoWFactory
	settlement services.EscrowSettlement
	clock      ports.Clock
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery confirmation.
func NewConfirmDeliveryCommandHandler(
	uowFactory EscrowUoWFactory,
	settlement services.EscrowSettlement,
	clock ports.Clock,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
		settlement: settlement,
		clock:      clock,
	}
}

// Handle processes the delivery confirmation command.
func (h *ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error {
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
	if err = aggregate.ConfirmDelivery(cmd.Actor()); err != nil {
		return err
	}

	released := !aggregate.Flags().EscrowSettled()
	if err = h.settlement.Release(ctx, uow.LedgerGateway(), aggregate); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	now := h.clock.Now()

	change, err := shipment.NewStatusChange(oldStatus, aggregate.Status(), now, cmd.Actor(), "delivery confirmed by receiver")
	if err != nil {
		return err
	}
	if err = uow.TrackingRepository().AppendStatusChange(ctx, cmd.TrackingCode(), change); err != nil {
		return err
	}

	delivered, err := shipment.NewDomainEvent(shipment.EventShipmentDelivered, cmd.TrackingCode().String(), now, map[string]any{
		"actor": cmd.Actor().String(),
	})
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, delivered); err != nil {
		return err
	}

	if released && aggregate.Flags().EscrowReleased {
		escrowEvent, eventErr := shipment.NewDomainEvent(shipment.EventEscrowReleased, cmd.TrackingCode().String(), now, map[string]any{
			"amount": aggregate.DepositAmount(),
			"to":     aggregate.Carrier().String(),
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
