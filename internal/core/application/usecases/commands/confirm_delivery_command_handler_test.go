package commands_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/domain/services"
	"freight/internal/pkg/errs"
)

func restoreShipment(
	t *testing.T,
	code kernel.TrackingCode,
	creator, carrier kernel.UUID,
	status shipment.Status,
	flags shipment.Flags,
	deposit int64,
) *shipment.Shipment {
	t.Helper()

	aggregate, err := shipment.RestoreShipment(
		code, "Goods", "A", "B", creator, carrier,
		nil, nil, status, flags, 0, deposit, 0, "", "", time.Now().UTC())
	require.NoError(t, err)

	return aggregate
}

func TestConfirmDeliveryCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	code := newTrackingCode(t, "TRK-DLV-1")
	creator := kernel.NewUUID()
	carrier := kernel.NewUUID()
	aggregate := restoreShipment(t, code, creator, carrier, shipment.InTransit,
		shipment.Flags{WarehouseConfirmed: true, QualityApproved: true}, 500)

	cmd, err := commands.NewConfirmDeliveryCommand(code, creator)
	require.NoError(t, err)

	shipmentRepo := new(CreateShipmentRepo)
	trackingRepo := new(CreateTrackingRepo)
	outboxRepo := new(CreateOutboxRepo)
	ledger := new(CreateLedgerGateway)
	uow := new(CreateUnitOfWork)
	factory := new(CreateUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("TrackingRepository").Return(trackingRepo)
	uow.On("OutboxRepository").Return(outboxRepo)
	uow.On("LedgerGateway").Return(ledger)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	shipmentRepo.On("Get", ctx, code).Return(aggregate, nil).Once()
	ledger.On("Release", ctx, code, carrier, int64(500)).Return(nil).Once()
	shipmentRepo.On("Update", ctx, aggregate).Return(nil).Once()
	trackingRepo.On("AppendStatusChange", ctx, code, mock.AnythingOfType("shipment.StatusChange")).Return(nil).Once()
	// Delivery event plus the escrow release event.
	outboxRepo.On("Add", ctx, mock.AnythingOfType("shipment.DomainEvent")).Return(nil).Times(2)

	handler := commands.NewConfirmDeliveryCommandHandler(factory, services.NewEscrowSettlement(), fixedClock{now: time.Now().UTC()})
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, shipment.Delivered, aggregate.Status())
	assert.True(t, aggregate.Flags().EscrowReleased)
	shipmentRepo.AssertExpectations(t)
	ledger.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestConfirmDeliveryCommandHandler_Handle_AlreadySettledEscrow(t *testing.T) {
	ctx := t.Context()
	code := newTrackingCode(t, "TRK-DLV-2")
	creator := kernel.NewUUID()
	carrier := kernel.NewUUID()
	aggregate := restoreShipment(t, code, creator, carrier, shipment.InTransit,
		shipment.Flags{WarehouseConfirmed: true, QualityApproved: true, EscrowReleased: true}, 500)

	cmd, err := commands.NewConfirmDeliveryCommand(code, creator)
	require.NoError(t, err)

	shipmentRepo := new(CreateShipmentRepo)
	trackingRepo := new(CreateTrackingRepo)
	outboxRepo := new(CreateOutboxRepo)
	ledger := new(CreateLedgerGateway)
	uow := new(CreateUnitOfWork)
	factory := new(CreateUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("TrackingRepository").Return(trackingRepo)
	uow.On("OutboxRepository").Return(outboxRepo)
	uow.On("LedgerGateway").Return(ledger)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	shipmentRepo.On("Get", ctx, code).Return(aggregate, nil).Once()
	shipmentRepo.On("Update", ctx, aggregate).Return(nil).Once()
	trackingRepo.On("AppendStatusChange", ctx, code, mock.AnythingOfType("shipment.StatusChange")).Return(nil).Once()
	// Only the delivery event; no second payout, no escrow event.
	outboxRepo.On("Add", ctx, mock.AnythingOfType("shipment.DomainEvent")).Return(nil).Once()

	handler := commands.NewConfirmDeliveryCommandHandler(factory, services.NewEscrowSettlement(), fixedClock{now: time.Now().UTC()})
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	ledger.AssertNotCalled(t, "Release")
	outboxRepo.AssertExpectations(t)
}

func TestConfirmDeliveryCommandHandler_Handle_TransferFailure(t *testing.T) {
	ctx := t.Context()
	code := newTrackingCode(t, "TRK-DLV-3")
	creator := kernel.NewUUID()
	carrier := kernel.NewUUID()
	aggregate := restoreShipment(t, code, creator, carrier, shipment.InTransit,
		shipment.Flags{WarehouseConfirmed: true, QualityApproved: true}, 500)

	cmd, err := commands.NewConfirmDeliveryCommand(code, creator)
	require.NoError(t, err)

	shipmentRepo := new(CreateShipmentRepo)
	ledger := new(CreateLedgerGateway)
	uow := new(CreateUnitOfWork)
	factory := new(CreateUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("LedgerGateway").Return(ledger)
	uow.On("Rollback", ctx).Return(nil).Once()

	shipmentRepo.On("Get", ctx, code).Return(aggregate, nil).Once()
	ledger.On("Release", ctx, code, carrier, int64(500)).
		Return(errors.New("ledger unavailable")).Once()

	handler := commands.NewConfirmDeliveryCommandHandler(factory, services.NewEscrowSettlement(), fixedClock{now: time.Now().UTC()})
	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrTransferFailed)
	uow.AssertNotCalled(t, "Commit")
	shipmentRepo.AssertNotCalled(t, "Update")
}

func TestConfirmDeliveryCommandHandler_Handle_WrongActor(t *testing.T) {
	ctx := t.Context()
	code := newTrackingCode(t, "TRK-DLV-4")
	aggregate := restoreShipment(t, code, kernel.NewUUID(), kernel.NewUUID(), shipment.InTransit,
		shipment.Flags{WarehouseConfirmed: true, QualityApproved: true}, 500)

	cmd, err := commands.NewConfirmDeliveryCommand(code, kernel.NewUUID())
	require.NoError(t, err)

	shipmentRepo := new(CreateShipmentRepo)
	uow := new(CreateUnitOfWork)
	factory := new(CreateUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("Rollback", ctx).Return(nil).Once()
	shipmentRepo.On("Get", ctx, code).Return(aggregate, nil).Once()

	handler := commands.NewConfirmDeliveryCommandHandler(factory, services.NewEscrowSettlement(), fixedClock{now: time.Now().UTC()})
	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	uow.AssertNotCalled(t, "Commit")
}

func TestConfirmDeliveryCommandHandler_Handle_ShipmentNotFound(t *testing.T) {
	ctx := t.Context()
	code := newTrackingCode(t, "TRK-DLV-5")
	cmd, err := commands.NewConfirmDeliveryCommand(code, kernel.NewUUID())
	require.NoError(t, err)

	shipmentRepo := new(CreateShipmentRepo)
	uow := new(CreateUnitOfWork)
	factory := new(CreateUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("Rollback", ctx).Return(nil).Once()
	shipmentRepo.On("Get", ctx, code).
		Return(nil, errs.NewObjectNotFoundError("shipment", code.String())).Once()

	handler := commands.NewConfirmDeliveryCommandHandler(factory, services.NewEscrowSettlement(), fixedClock{now: time.Now().UTC()})
	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}
