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

func TestStartTransitCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	code := newTrackingCode(t, "TRK-TR-1")
	creator := kernel.NewUUID()
	carrier := kernel.NewUUID()
	aggregate := restoreShipment(t, code, creator, carrier, shipment.QualityApproved,
		shipment.Flags{WarehouseConfirmed: true, QualityApproved: true}, 0)

	cmd, err := commands.NewStartTransitCommand(code, carrier)
	require.NoError(t, err)

	shipmentRepo := new(CreateShipmentRepo)
	trackingRepo := new(CreateTrackingRepo)
	uow := new(CreateUnitOfWork)
	factory := new(LifecycleUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("TrackingRepository").Return(trackingRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	shipmentRepo.On("Get", ctx, code).Return(aggregate, nil).Once()
	shipmentRepo.On("Update", ctx, aggregate).Return(nil).Once()
	trackingRepo.On("AppendStatusChange", ctx, code, mock.AnythingOfType("shipment.StatusChange")).Return(nil).Once()

	handler := commands.NewStartTransitCommandHandler(factory, fixedClock{now: time.Now().UTC()})
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, shipment.InTransit, aggregate.Status())
	trackingRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestStartTransitCommandHandler_Handle_WrongActor(t *testing.T) {
	ctx := t.Context()
	code := newTrackingCode(t, "TRK-TR-2")
	aggregate := restoreShipment(t, code, kernel.NewUUID(), kernel.NewUUID(), shipment.QualityApproved,
		shipment.Flags{WarehouseConfirmed: true, QualityApproved: true}, 0)

	cmd, err := commands.NewStartTransitCommand(code, kernel.NewUUID())
	require.NoError(t, err)

	shipmentRepo := new(CreateShipmentRepo)
	uow := new(CreateUnitOfWork)
	factory := new(LifecycleUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("Rollback", ctx).Return(nil).Once()
	shipmentRepo.On("Get", ctx, code).Return(aggregate, nil).Once()

	handler := commands.NewStartTransitCommandHandler(factory, fixedClock{now: time.Now().UTC()})
	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrUnauthorized)
	uow.AssertNotCalled(t, "Commit")
	shipmentRepo.AssertNotCalled(t, "Update")
}

func TestStartTransitCommandHandler_Handle_QualityNotApproved(t *testing.T) {
	ctx := t.Context()
	code := newTrackingCode(t, "TRK-TR-3")
	carrier := kernel.NewUUID()
	aggregate := restoreShipment(t, code, kernel.NewUUID(), carrier, shipment.WarehouseConfirmed,
		shipment.Flags{WarehouseConfirmed: true}, 0)

	cmd, err := commands.NewStartTransitCommand(code, carrier)
	require.NoError(t, err)

	shipmentRepo := new(CreateShipmentRepo)
	uow := new(CreateUnitOfWork)
	factory := new(LifecycleUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ShipmentRepository").Return(shipmentRepo)
	uow.On("Rollback", ctx).Return(nil).Once()
	shipmentRepo.On("Get", ctx, code).Return(aggregate, nil).Once()

	handler := commands.NewStartTransitCommandHandler(factory, fixedClock{now: time.Now().UTC()})
	err = handler.Handle(ctx, cmd)

	assert.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, shipment.WarehouseConfirmed, aggregate.Status())
	uow.AssertNotCalled(t, "Commit")
}
