package queries_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/escrowledger"
	"freight/internal/adapters/out/postgres/shipmentrepo"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type GetEscrowAnomaliesQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetEscrowAnomaliesQueryHandler
}

func (suite *GetEscrowAnomaliesQueryHandlerTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&shipmentrepo.ShipmentDTO{}, &escrowledger.EscrowMovementDTO{})
	suite.Require().NoError(err)

	// The partial unique index normally blocks duplicate outbound rows.
	// The watchdog exists for ledgers where that guard was lost, so the
	// test recreates that condition.
	err = db.Exec("DROP INDEX IF EXISTS ux_escrow_outbound").Error
	suite.Require().NoError(err)

	suite.handler = queries.NewGetEscrowAnomaliesQueryHandler(db)
}

func (suite *GetEscrowAnomaliesQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetEscrowAnomaliesQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE shipments, escrow_movements CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetEscrowAnomaliesQueryHandlerTestSuite) TestHandle_CleanLedger_ReturnsEmptySlice() {
	suite.seedShipment("TRK-A-4001", false, false)
	suite.seedMovement("TRK-A-4001", "release", true)

	query := queries.NewGetEscrowAnomaliesQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetEscrowAnomaliesQueryHandlerTestSuite) TestHandle_ReleasedAndRefunded_IsReported() {
	suite.seedShipment("TRK-A-4002", true, true)

	query := queries.NewGetEscrowAnomaliesQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("TRK-A-4002", result[0].TrackingCode)
	suite.Equal(queries.AnomalyReleasedAndRefunded, result[0].Anomaly)
}

func (suite *GetEscrowAnomaliesQueryHandlerTestSuite) TestHandle_DuplicateOutboundMovements_AreReported() {
	suite.seedShipment("TRK-A-4003", true, false)
	suite.seedMovement("TRK-A-4003", "release", true)
	suite.seedMovement("TRK-A-4003", "refund", true)
	suite.seedMovement("TRK-A-4003", "reserve", false)

	query := queries.NewGetEscrowAnomaliesQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal("TRK-A-4003", result[0].TrackingCode)
	suite.Equal(queries.AnomalyDuplicateOutbound, result[0].Anomaly)
}

func (suite *GetEscrowAnomaliesQueryHandlerTestSuite) TestHandle_MixedViolations_SortedByTrackingCode() {
	suite.seedShipment("TRK-A-4005", true, true)
	suite.seedShipment("TRK-A-4004", false, true)
	suite.seedMovement("TRK-A-4004", "refund", true)
	suite.seedMovement("TRK-A-4004", "refund", true)

	query := queries.NewGetEscrowAnomaliesQuery()

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.Equal("TRK-A-4004", result[0].TrackingCode)
	suite.Equal(queries.AnomalyDuplicateOutbound, result[0].Anomaly)
	suite.Equal("TRK-A-4005", result[1].TrackingCode)
	suite.Equal(queries.AnomalyReleasedAndRefunded, result[1].Anomaly)
}

func (suite *GetEscrowAnomaliesQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	invalidQuery := queries.GetEscrowAnomaliesQuery{}

	result, err := suite.handler.Handle(context.Background(), invalidQuery)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.Contains(err.Error(), "must be created via NewGetEscrowAnomaliesQuery constructor")
}

func (suite *GetEscrowAnomaliesQueryHandlerTestSuite) seedShipment(code string, released, refunded bool) {
	dto := shipmentrepo.ShipmentDTO{
		TrackingCode:   code,
		ProductName:    "Machine parts",
		Origin:         "Gdansk",
		Destination:    "Porto",
		CreatorID:      kernel.NewUUID().Bytes(),
		CarrierID:      kernel.NewUUID().Bytes(),
		Status:         int(shipment.Delivered),
		EscrowReleased: released,
		EscrowRefunded: refunded,
		DepositAmount:  600,
		ShippingFee:    200,
		CreatedAt:      time.Now().UTC(),
	}
	err := suite.db.Create(&dto).Error
	suite.Require().NoError(err)
}

func (suite *GetEscrowAnomaliesQueryHandlerTestSuite) seedMovement(code, direction string, outbound bool) {
	dto := escrowledger.EscrowMovementDTO{
		TrackingCode:   code,
		Direction:      direction,
		Outbound:       outbound,
		CounterpartyID: kernel.NewUUID().Bytes(),
		Amount:         400,
		OccurredAt:     time.Now().UTC(),
	}
	err := suite.db.Create(&dto).Error
	suite.Require().NoError(err)
}

func TestGetEscrowAnomaliesQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetEscrowAnomaliesQueryHandlerTestSuite))
}
