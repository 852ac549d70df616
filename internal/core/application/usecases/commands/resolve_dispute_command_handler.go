package commands

import (
	"context"

	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"
	"freight/internal/pkg/errs"
)

// ResolveDisputeCommandHandler closes an open dispute and forces the
// terminal outcome, bypassing the normal transition order and the terminal
// guard. Escrow settles in the direction the resolution selects; a shipment
// whose escrow already settled pays nothing further.
type ResolveDisputeCommandHandler struct {
	uowFactory AdminEscrowUoWFactory
	settlement services.EscrowSettlement
	clock      ports.Clock
}

// NewResolveDisputeCommandHandler creates a handler for dispute resolution.
func NewResolveDisputeCommandHandler(
	uowFactory AdminEscrowUoWFactory,
	settlement services.EscrowSettlement,
	clock ports.Clock,
) ResolveDisputeCommandHandler {
	return ResolveDisputeCommandHandler{
		uowFactory: uowFactory,
		settlement: settlement,
		clock:      clock,
	}
}

// Handle processes the dispute resolution command.
func (h *ResolveDisputeCommandHandler) Handle(ctx context.Context, cmd ResolveDisputeCommand) error {
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
	if err = aggregate.ResolveDispute(cmd.FavorCreator()); err != nil {
		return err
	}

	settleDue := !aggregate.Flags().EscrowSettled()
	if cmd.FavorCreator() {
		err = h.settlement.Refund(ctx, uow.LedgerGateway(), aggregate)
	} else {
		err = h.settlement.Release(ctx, uow.LedgerGateway(), aggregate)
	}
	if err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	now := h.clock.Now()

	change, err := shipment.NewStatusChange(oldStatus, aggregate.Status(), now, cmd.Actor(), "dispute resolved")
	if err != nil {
		return err
	}
	if err = uow.TrackingRepository().AppendStatusChange(ctx, cmd.TrackingCode(), change); err != nil {
		return err
	}

	resolved, err := shipment.NewDomainEvent(shipment.EventDisputeResolved, cmd.TrackingCode().String(), now, map[string]any{
		"favorCreator": cmd.FavorCreator(),
		"outcome":      aggregate.Status().String(),
	})
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, resolved); err != nil {
		return err
	}

	if settleDue && aggregate.Flags().EscrowSettled() {
		name := shipment.EventEscrowReleased
		to := aggregate.Carrier()
		if aggregate.Flags().EscrowRefunded {
			name = shipment.EventEscrowRefunded
			to = aggregate.Creator()
		}
		escrowEvent, eventErr := shipment.NewDomainEvent(name, cmd.TrackingCode().String(), now, map[string]any{
			"amount": aggregate.DepositAmount(),
			"to":     to.String(),
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
