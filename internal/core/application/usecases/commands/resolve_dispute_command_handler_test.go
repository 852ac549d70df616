package commands_test

import (
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

func newDisputedShipment(t *testing.T, code kernel.TrackingCode, creator, carrier kernel.UUID) *shipment.Shipment {
	t.Helper()

	return restoreShipment(t, code, creator, carrier, shipment.InTransit,
		shipment.Flags{WarehouseConfirmed: true, QualityApproved: true, Disputed: true}, 600)
}

func TestResolveDisputeCommandHandler_Handle_FavorCreator(t *testing.T) {
	ctx := t.Context()
	code := newTrackingCode(t, "TRK-DSP-1")
	admin := kernel.NewUUID()
	creator := kernel.NewUUID()
	carrier := kernel.NewUUID()
	aggregate := newDisputedShipment(t, code, creator, carrier)

	cmd, err := commands.NewResolveDisputeCommand(code, admin, true)
	require.NoError(t, err)

	registryRepo := new(AdminRegistryRepo)
	shipmentRepo := new(CreateShipmentRepo)
	trackingRepo := new(CreateTrackingRepo)
	outboxRepo := new(CreateOutboxRepo)
	ledger := new(CreateLedgerGateway)
	uow := new(AdminUnitOfWork)
	factory := new(AdminUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RegistryRepository").Return(registryRepo)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("TrackingRepository").Return(trackingRepo)
	uow.On("OutboxRepository").Return(outboxRepo)
	uow.On("LedgerGateway").Return(ledger)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	registryRepo.On("Get", ctx).Return(newRegistryWithAdmin(t, admin), nil).Once()
	shipmentRepo.On("Get", ctx, code).Return(aggregate, nil).Once()
	ledger.On("Refund", ctx, code, creator, int64(600)).Return(nil).Once()
	shipmentRepo.On("Update", ctx, aggregate).Return(nil).Once()
	trackingRepo.On("AppendStatusChange", ctx, code, mock.AnythingOfType("shipment.StatusChange")).Return(nil).Once()
	// Resolution event plus the escrow refund event.
	outboxRepo.On("Add", ctx, mock.AnythingOfType("shipment.DomainEvent")).Return(nil).Times(2)

	handler := commands.NewResolveDisputeCommandHandler(factory, services.NewEscrowSettlement(), fixedClock{now: time.Now().UTC()})
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, shipment.Canceled, aggregate.Status())
	assert.False(t, aggregate.Flags().Disputed)
	assert.True(t, aggregate.Flags().EscrowRefunded)
	ledger.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestResolveDisputeCommandHandler_Handle_FavorCarrier(t *testing.T) {
	ctx := t.Context()
	code := newTrackingCode(t, "TRK-DSP-2")
	admin := kernel.NewUUID()
	creator := kernel.NewUUID()
	carrier := kernel.NewUUID()
	aggregate := newDisputedShipment(t, code, creator, carrier)

	cmd, err := commands.NewResolveDisputeCommand(code, admin, false)
	require.NoError(t, err)

	registryRepo := new(AdminRegistryRepo)
	shipmentRepo := new(CreateShipmentRepo)
	trackingRepo := new(CreateTrackingRepo)
	outboxRepo := new(CreateOutboxRepo)
	ledger := new(CreateLedgerGateway)
	uow := new(AdminUnitOfWork)
	factory := new(AdminUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RegistryRepository").Return(registryRepo)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("TrackingRepository").Return(trackingRepo)
	uow.On("OutboxRepository").Return(outboxRepo)
	uow.On("LedgerGateway").Return(ledger)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	registryRepo.On("Get", ctx).Return(newRegistryWithAdmin(t, admin), nil).Once()
	shipmentRepo.On("Get", ctx, code).Return(aggregate, nil).Once()
	ledger.On("Release", ctx, code, carrier, int64(600)).Return(nil).Once()
	shipmentRepo.On("Update", ctx, aggregate).Return(nil).Once()
	trackingRepo.On("AppendStatusChange", ctx, code, mock.AnythingOfType("shipment.StatusChange")).Return(nil).Once()
	outboxRepo.On("Add", ctx, mock.AnythingOfType("shipment.DomainEvent")).Return(nil).Times(2)

	handler := commands.NewResolveDisputeCommandHandler(factory, services.NewEscrowSettlement(), fixedClock{now: time.Now().UTC()})
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, shipment.Delivered, aggregate.Status())
	assert.True(t, aggregate.Flags().EscrowReleased)
	ledger.AssertExpectations(t)
}

func TestResolveDisputeCommandHandler_Handle_SettledEscrowPaysNothing(t *testing.T) {
	ctx := t.Context()
	code := newTrackingCode(t, "TRK-DSP-3")
	admin := kernel.NewUUID()
	creator := kernel.NewUUID()
	aggregate := restoreShipment(t, code, creator, kernel.NewUUID(), shipment.Canceled,
		shipment.Flags{Disputed: true, EscrowRefunded: true}, 600)

	cmd, err := commands.NewResolveDisputeCommand(code, admin, true)
	require.NoError(t, err)

	registryRepo := new(AdminRegistryRepo)
	shipmentRepo := new(CreateShipmentRepo)
	trackingRepo := new(CreateTrackingRepo)
	outboxRepo := new(CreateOutboxRepo)
	ledger := new(CreateLedgerGateway)
	uow := new(AdminUnitOfWork)
	factory := new(AdminUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RegistryRepository").Return(registryRepo)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("TrackingRepository").Return(trackingRepo)
	uow.On("OutboxRepository").Return(outboxRepo)
	uow.On("LedgerGateway").Return(ledger)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	registryRepo.On("Get", ctx).Return(newRegistryWithAdmin(t, admin), nil).Once()
	shipmentRepo.On("Get", ctx, code).Return(aggregate, nil).Once()
	shipmentRepo.On("Update", ctx, aggregate).Return(nil).Once()
	trackingRepo.On("AppendStatusChange", ctx, code, mock.AnythingOfType("shipment.StatusChange")).Return(nil).Once()
	// Only the resolution event; the deposit already left custody.
	outboxRepo.On("Add", ctx, mock.AnythingOfType("shipment.DomainEvent")).Return(nil).Once()

	handler := commands.NewResolveDisputeCommandHandler(factory, services.NewEscrowSettlement(), fixedClock{now: time.Now().UTC()})
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	ledger.AssertNotCalled(t, "Refund")
	ledger.AssertNotCalled(t, "Release")
	outboxRepo.AssertExpectations(t)
}

func TestResolveDisputeCommandHandler_Handle_NoOpenDispute(t *testing.T) {
	ctx := t.Context()
	code := newTrackingCode(t, "TRK-DSP-4")
	admin := kernel.NewUUID()
	aggregate := restoreShipment(t, code, kernel.NewUUID(), kernel.NewUUID(), shipment.InTransit,
		shipment.Flags{WarehouseConfirmed: true, QualityApproved: true}, 600)

	cmd, err := commands.NewResolveDisputeCommand(code, admin, true)
	require.NoError(t, err)

	registryRepo := new(AdminRegistryRepo)
	shipmentRepo := new(CreateShipmentRepo)
	uow := new(AdminUnitOfWork)
	factory := new(AdminUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RegistryRepository").Return(registryRepo)
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("Rollback", ctx).Return(nil).Once()
	registryRepo.On("Get", ctx).Return(newRegistryWithAdmin(t, admin), nil).Once()
	shipmentRepo.On("Get", ctx, code).Return(aggregate, nil).Once()

	handler := commands.NewResolveDisputeCommandHandler(factory, services.NewEscrowSettlement(), fixedClock{now: time.Now().UTC()})
	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrInvalidState)
	uow.AssertNotCalled(t, "Commit")
}

func TestResolveDisputeCommandHandler_Handle_NonAdminActor(t *testing.T) {
	ctx := t.Context()
	code := newTrackingCode(t, "TRK-DSP-5")
	cmd, err := commands.NewResolveDisputeCommand(code, kernel.NewUUID(), true)
	require.NoError(t, err)

	registryRepo := new(AdminRegistryRepo)
	uow := new(AdminUnitOfWork)
	factory := new(AdminUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RegistryRepository").Return(registryRepo)
	uow.On("Rollback", ctx).Return(nil).Once()
	registryRepo.On("Get", ctx).Return(newRegistryWithAdmin(t, kernel.NewUUID()), nil).Once()

	handler := commands.NewResolveDisputeCommandHandler(factory, services.NewEscrowSettlement(), fixedClock{now: time.Now().UTC()})
	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	uow.AssertNotCalled(t, "ShipmentRepository")
}
