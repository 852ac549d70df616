package commands

import (
	"context"

	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/ports"
)

// CreateShipmentCommandHandler handles the business logic for shipment
// registration: the deposit is reserved with the ledger gateway, the
// aggregate is stored, the synthetic "created" status history entry is
// appended and the ShipmentCreated event is written to the outbox - all in
// one transaction.
type CreateShipmentCommandHandler struct {
	uowFactory EscrowUoWFactory
	clock      ports.Clock
}

// NewCreateShipmentCommandHandler creates a handler for shipment registration.
func NewCreateShipmentCommandHandler(uowFactory EscrowUoWFactory, clock ports.Clock) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle processes the shipment creation command.
// A duplicate tracking code surfaces as an ObjectAlreadyExists error; a
// rejected deposit reservation aborts the whole operation.
func (h *CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := h.clock.Now()

	aggregate, err := shipment.NewShipment(
		cmd.TrackingCode(),
		cmd.ProductName(),
		cmd.Origin(),
		cmd.Destination(),
		cmd.Creator(),
		cmd.Carrier(),
		cmd.ShippingFee(),
		cmd.DepositAmount(),
		now,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.LedgerGateway().Reserve(ctx, cmd.TrackingCode(), cmd.Creator(), cmd.DepositAmount()); err != nil {
		return err
	}

	if err = uow.ShipmentRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	created, err := shipment.NewStatusChange(shipment.Unknown, shipment.Pending, now, cmd.Creator(), "created")
	if err != nil {
		return err
	}
	if err = uow.TrackingRepository().AppendStatusChange(ctx, cmd.TrackingCode(), created); err != nil {
		return err
	}

	event, err := shipment.NewDomainEvent(shipment.EventShipmentCreated, cmd.TrackingCode().String(), now, map[string]any{
		"deposit": cmd.DepositAmount(),
	})
	if err != nil {
		return err
	}
	if err = uow.OutboxRepository().Add(ctx, event); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
