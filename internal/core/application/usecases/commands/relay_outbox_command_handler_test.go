package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/ports"
)

type RelayUnitOfWork struct{ mock.Mock }

func (m *RelayUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *RelayUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *RelayUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *RelayUnitOfWork) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type RelayUoWFactory struct{ mock.Mock }

func (m *RelayUoWFactory) Create() commands.OutboxUoW {
	args := m.Called()
	return args.Get(0).(commands.OutboxUoW)
}

type RelayPublisher struct{ mock.Mock }

func (m *RelayPublisher) Publish(ctx context.Context, key string, payload []byte) error {
	args := m.Called(ctx, key, payload)
	return args.Error(0)
}

func (m *RelayPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newOutboxMessage(trackingCode string, payload string) ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:           kernel.NewUUID(),
		EventName:    "ShipmentCreated",
		TrackingCode: trackingCode,
		Payload:      []byte(payload),
		CreatedAt:    time.Now().UTC(),
	}
}

func TestRelayOutboxCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRelayOutboxCommand()
	require.NoError(t, err)

	first := newOutboxMessage("TRK-OB-1", `{"name":"ShipmentCreated"}`)
	second := newOutboxMessage("TRK-OB-2", `{"name":"ShipmentDelivered"}`)

	outboxRepo := new(CreateOutboxRepo)
	publisher := new(RelayPublisher)
	uow := new(RelayUnitOfWork)
	factory := new(RelayUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OutboxRepository").Return(outboxRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	outboxRepo.On("GetUnpublished", ctx, 100).Return([]ports.OutboxMessage{first, second}, nil).Once()
	publisher.On("Publish", ctx, first.TrackingCode, first.Payload).Return(nil).Once()
	publisher.On("Publish", ctx, second.TrackingCode, second.Payload).Return(nil).Once()
	outboxRepo.On("MarkPublished", ctx, []kernel.UUID{first.ID, second.ID}).Return(nil).Once()

	handler := commands.NewRelayOutboxCommandHandler(factory, publisher)
	published, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, published)
	publisher.AssertExpectations(t)
	outboxRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRelayOutboxCommandHandler_Handle_EmptyOutbox(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRelayOutboxCommand()
	require.NoError(t, err)

	outboxRepo := new(CreateOutboxRepo)
	publisher := new(RelayPublisher)
	uow := new(RelayUnitOfWork)
	factory := new(RelayUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OutboxRepository").Return(outboxRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	outboxRepo.On("GetUnpublished", ctx, 100).Return([]ports.OutboxMessage{}, nil).Once()

	handler := commands.NewRelayOutboxCommandHandler(factory, publisher)
	published, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 0, published)
	publisher.AssertNotCalled(t, "Publish")
	outboxRepo.AssertNotCalled(t, "MarkPublished")
}

func TestRelayOutboxCommandHandler_Handle_BrokerFailureMidBatch(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRelayOutboxCommand()
	require.NoError(t, err)

	first := newOutboxMessage("TRK-OB-3", `{"name":"ShipmentCreated"}`)
	second := newOutboxMessage("TRK-OB-4", `{"name":"ShipmentCancelled"}`)

	outboxRepo := new(CreateOutboxRepo)
	publisher := new(RelayPublisher)
	uow := new(RelayUnitOfWork)
	factory := new(RelayUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OutboxRepository").Return(outboxRepo)
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	outboxRepo.On("GetUnpublished", ctx, 100).Return([]ports.OutboxMessage{first, second}, nil).Once()
	publisher.On("Publish", ctx, first.TrackingCode, first.Payload).Return(nil).Once()
	publisher.On("Publish", ctx, second.TrackingCode, second.Payload).
		Return(errors.New("broker unavailable")).Once()
	// Only the first message is marked; the second is retried next pass.
	outboxRepo.On("MarkPublished", ctx, []kernel.UUID{first.ID}).Return(nil).Once()

	handler := commands.NewRelayOutboxCommandHandler(factory, publisher)
	published, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Equal(t, 1, published)
	outboxRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRelayOutboxCommandHandler_Handle_FirstMessageFails(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewRelayOutboxCommand()
	require.NoError(t, err)

	message := newOutboxMessage("TRK-OB-5", `{"name":"ShipmentCreated"}`)

	outboxRepo := new(CreateOutboxRepo)
	publisher := new(RelayPublisher)
	uow := new(RelayUnitOfWork)
	factory := new(RelayUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OutboxRepository").Return(outboxRepo)
	uow.On("Rollback", ctx).Return(nil).Once()

	outboxRepo.On("GetUnpublished", ctx, 100).Return([]ports.OutboxMessage{message}, nil).Once()
	publisher.On("Publish", ctx, message.TrackingCode, message.Payload).
		Return(errors.New("broker unavailable")).Once()

	handler := commands.NewRelayOutboxCommandHandler(factory, publisher)
	published, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Equal(t, 0, published)
	outboxRepo.AssertNotCalled(t, "MarkPublished")
	uow.AssertNotCalled(t, "Commit")
}

func TestRelayOutboxCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	factory := new(RelayUoWFactory)

	handler := commands.NewRelayOutboxCommandHandler(factory, new(RelayPublisher))
	_, err := handler.Handle(ctx, commands.RelayOutboxCommand{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be created via NewRelayOutboxCommand constructor")
	factory.AssertNotCalled(t, "Create")
}
