package queries_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/shipmentrepo"
	"freight/internal/adapters/out/postgres/trackingrepo"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetShipmentQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetShipmentQueryHandler
}

func (suite *GetShipmentQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&shipmentrepo.ShipmentDTO{}, &trackingrepo.ShipmentEventDTO{},
		&trackingrepo.StatusChangeDTO{})
	suite.Require().NoError(err)

	suite.handler = queries.NewGetShipmentQueryHandler(db)
}

func (suite *GetShipmentQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetShipmentQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE shipments CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetShipmentQueryHandlerTestSuite) TestHandle_ExistingShipment_ReturnsReadModel() {
	code := suite.trackingCode("TRK-Q-1001")
	creator := kernel.NewUUID()
	carrier := kernel.NewUUID()

	aggregate, err := shipment.NewShipment(
		code, "Industrial pump", "Rotterdam", "Oslo",
		creator, carrier, 300, 900, time.Now().UTC(),
	)
	suite.Require().NoError(err)
	suite.saveShipment(aggregate)

	query, err := queries.NewGetShipmentQuery(code)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal("TRK-Q-1001", result.TrackingCode)
	suite.Equal("Industrial pump", result.ProductName)
	suite.Equal("Rotterdam", result.Origin)
	suite.Equal("Oslo", result.Destination)
	suite.True(creator.IsEqual(result.Creator))
	suite.True(carrier.IsEqual(result.Carrier))
	suite.Nil(result.WarehouseManager)
	suite.Nil(result.QualityInspector)
	suite.Equal(shipment.Pending, result.Status)
	suite.False(result.Flags.WarehouseConfirmed)
	suite.Equal(int64(300), result.ShippingFee)
	suite.Equal(int64(900), result.DepositAmount)
}

func (suite *GetShipmentQueryHandlerTestSuite) TestHandle_AssignedRolesAndFlags_AreMapped() {
	code := suite.trackingCode("TRK-Q-1002")
	creator := kernel.NewUUID()
	carrier := kernel.NewUUID()
	manager := kernel.NewUUID()
	inspector := kernel.NewUUID()

	aggregate, err := shipment.RestoreShipment(
		code, "Server racks", "Hamburg", "Vienna",
		creator, carrier, &manager, &inspector,
		shipment.QualityApproved,
		shipment.Flags{WarehouseConfirmed: true, QualityApproved: true},
		200, 700, 0, "", "", time.Now().UTC(),
	)
	suite.Require().NoError(err)
	suite.saveShipment(aggregate)

	query, err := queries.NewGetShipmentQuery(code)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Equal(shipment.QualityApproved, result.Status)
	suite.Require().NotNil(result.WarehouseManager)
	suite.True(manager.IsEqual(*result.WarehouseManager))
	suite.Require().NotNil(result.QualityInspector)
	suite.True(inspector.IsEqual(*result.QualityInspector))
	suite.True(result.Flags.WarehouseConfirmed)
	suite.True(result.Flags.QualityApproved)
	suite.False(result.Flags.Disputed)
}

func (suite *GetShipmentQueryHandlerTestSuite) TestHandle_UnknownTrackingCode_ReturnsNotFound() {
	code := suite.trackingCode("TRK-Q-MISSING")

	query, err := queries.NewGetShipmentQuery(code)
	suite.Require().NoError(err)

	_, err = suite.handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *GetShipmentQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetShipmentQuery{}

	_, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetShipmentQuery constructor")
}

func (suite *GetShipmentQueryHandlerTestSuite) trackingCode(value string) kernel.TrackingCode {
	code, err := kernel.NewTrackingCode(value)
	suite.Require().NoError(err)
	return code
}

func (suite *GetShipmentQueryHandlerTestSuite) saveShipment(aggregate *shipment.Shipment) {
	repo := shipmentrepo.NewGormShipmentRepository(suite.db, &mockAggregateTracker{})
	err := repo.Add(context.Background(), aggregate)
	suite.Require().NoError(err)
}

func TestGetShipmentQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetShipmentQueryHandlerTestSuite))
}

// mockAggregateTracker implements the repository tracker for test purposes.
// It's a no-op implementation since query tests don't dispatch domain events.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ string, _ any) {
	// No-op for query tests
}
