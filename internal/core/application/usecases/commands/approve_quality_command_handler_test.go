package commands_test

import (
	"testing"
	"time"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func restoreWithInspector(
	t *testing.T,
	code kernel.TrackingCode,
	inspector kernel.UUID,
	status shipment.Status,
	flags shipment.Flags,
) *shipment.Shipment {
	t.Helper()

	aggregate, err := shipment.RestoreShipment(
		code, "Goods", "A", "B", kernel.NewUUID(), kernel.NewUUID(),
		nil, &inspector, status, flags, 0, 0, 0, "", "", time.Now().UTC())
	require.NoError(t, err)
	return aggregate
}

func TestApproveQualityCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	code := newTrackingCode(t, "TRK-QA-1")
	inspector := kernel.NewUUID()
	aggregate := restoreWithInspector(t, code, inspector, shipment.WarehouseConfirmed,
		shipment.Flags{WarehouseConfirmed: true})

	cmd, err := commands.NewApproveQualityCommand(code, inspector)
	require.NoError(t, err)

	shipmentRepo := new(CreateShipmentRepo)
	trackingRepo := new(CreateTrackingRepo)
	outboxRepo := new(CreateOutboxRepo)
	uow := new(CreateUnitOfWork)
	factory := new(LifecycleUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("TrackingRepository").Return(trackingRepo)
	uow.On("OutboxRepository").Return(outboxRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	shipmentRepo.On("Get", ctx, code).Return(aggregate, nil).Once()
	shipmentRepo.On("Update", ctx, aggregate).Return(nil).Once()
	trackingRepo.On("AppendStatusChange", ctx, code, mock.AnythingOfType("shipment.StatusChange")).Return(nil).Once()
	trackingRepo.On("AppendEvent", ctx, code, mock.MatchedBy(func(e shipment.Event) bool {
		return e.Location() == shipment.LocationQualityControl && e.EventType() == shipment.EventTypeQualityApproved
	})).Return(nil).Once()
	outboxRepo.On("Add", ctx, mock.AnythingOfType("shipment.DomainEvent")).Return(nil).Once()

	handler := commands.NewApproveQualityCommandHandler(factory, fixedClock{now: time.Now().UTC()})
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, shipment.QualityApproved, aggregate.Status())
	assert.True(t, aggregate.Flags().QualityApproved)
	trackingRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestApproveQualityCommandHandler_Handle_WrongActor(t *testing.T) {
	ctx := t.Context()
	code := newTrackingCode(t, "TRK-QA-2")
	aggregate := restoreWithInspector(t, code, kernel.NewUUID(), shipment.WarehouseConfirmed,
		shipment.Flags{WarehouseConfirmed: true})

	cmd, err := commands.NewApproveQualityCommand(code, kernel.NewUUID())
	require.NoError(t, err)

	shipmentRepo := new(CreateShipmentRepo)
	uow := new(CreateUnitOfWork)
	factory := new(LifecycleUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("Rollback", ctx).Return(nil).Once()
	shipmentRepo.On("Get", ctx, code).Return(aggregate, nil).Once()

	handler := commands.NewApproveQualityCommandHandler(factory, fixedClock{now: time.Now().UTC()})
	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	uow.AssertNotCalled(t, "Commit")
	shipmentRepo.AssertNotCalled(t, "Update")
}

func TestApproveQualityCommandHandler_Handle_WarehouseNotConfirmed(t *testing.T) {
	ctx := t.Context()
	code := newTrackingCode(t, "TRK-QA-3")
	inspector := kernel.NewUUID()
	aggregate := restoreWithInspector(t, code, inspector, shipment.Pending, shipment.Flags{})

	cmd, err := commands.NewApproveQualityCommand(code, inspector)
	require.NoError(t, err)

	shipmentRepo := new(CreateShipmentRepo)
	uow := new(CreateUnitOfWork)
	factory := new(LifecycleUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("Rollback", ctx).Return(nil).Once()
	shipmentRepo.On("Get", ctx, code).Return(aggregate, nil).Once()

	handler := commands.NewApproveQualityCommandHandler(factory, fixedClock{now: time.Now().UTC()})
	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, shipment.Pending, aggregate.Status())
	uow.AssertNotCalled(t, "Commit")
}
