package cmd

import (
	"time"

	httpin "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/kafka"
	"freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/redis"
	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/services"
	"freight/internal/core/ports"

	"gorm.io/gorm"
)

// ratingCacheTTL bounds how stale a cached carrier average can get even if an
// invalidation is lost.
const ratingCacheTTL = 5 * time.Minute

// systemClock supplies wall-clock time to the use cases.
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

// CompositionRoot wires adapters into use case handlers. All handlers share
// one unit of work factory, one settlement service and one event publisher.
type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	settlement  services.EscrowSettlement
	clock       ports.Clock
	publisher   *kafka.Publisher
	ratingCache *redis.RatingCache
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) CompositionRoot {
	clock := systemClock{}
	return CompositionRoot{
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB, clock),
		settlement:  services.NewEscrowSettlement(),
		clock:       clock,
		publisher:   kafka.NewPublisher(configs.KafkaHost, configs.KafkaEventTopic),
		ratingCache: redis.NewRatingCache(configs.RedisAddr, ratingCacheTTL),
	}
}

// Close releases outbound adapter resources.
func (c *CompositionRoot) Close() {
	_ = c.publisher.Close()
	_ = c.ratingCache.Close()
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.EscrowUoWFactory = FuncEscrowUoWFactory(func() commands.EscrowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateAssignActorsCommandHandler() commands.AssignActorsCommandHandler {
	var f commands.ActorsUoWFactory = FuncActorsUoWFactory(func() commands.ActorsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignActorsCommandHandler(f)
}

func (c *CompositionRoot) CreateConfirmWarehouseCommandHandler() commands.ConfirmWarehouseCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmWarehouseCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateApproveQualityCommandHandler() commands.ApproveQualityCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApproveQualityCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateStartTransitCommandHandler() commands.StartTransitCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartTransitCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateConfirmDeliveryCommandHandler() commands.ConfirmDeliveryCommandHandler {
	var f commands.EscrowUoWFactory = FuncEscrowUoWFactory(func() commands.EscrowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmDeliveryCommandHandler(f, c.settlement, c.clock)
}

func (c *CompositionRoot) CreateCancelShipmentCommandHandler() commands.CancelShipmentCommandHandler {
	var f commands.AdminEscrowUoWFactory = FuncAdminEscrowUoWFactory(func() commands.AdminEscrowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelShipmentCommandHandler(f, c.settlement, c.clock)
}

func (c *CompositionRoot) CreateAddShipmentEventCommandHandler() commands.AddShipmentEventCommandHandler {
	var f commands.EventUoWFactory = FuncEventUoWFactory(func() commands.EventUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddShipmentEventCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateRateShipmentCommandHandler() commands.RateShipmentCommandHandler {
	var f commands.RatingUoWFactory = FuncRatingUoWFactory(func() commands.RatingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRateShipmentCommandHandler(f, c.ratingCache, c.clock)
}

func (c *CompositionRoot) CreateRaiseDisputeCommandHandler() commands.RaiseDisputeCommandHandler {
	var f commands.ShipmentUoWFactory = FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRaiseDisputeCommandHandler(f, c.clock)
}

func (c *CompositionRoot) CreateResolveDisputeCommandHandler() commands.ResolveDisputeCommandHandler {
	var f commands.AdminEscrowUoWFactory = FuncAdminEscrowUoWFactory(func() commands.AdminEscrowUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResolveDisputeCommandHandler(f, c.settlement, c.clock)
}

func (c *CompositionRoot) CreateSetAuthorizedCommandHandler() commands.SetAuthorizedCommandHandler {
	var f commands.RegistryUoWFactory = FuncRegistryUoWFactory(func() commands.RegistryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetAuthorizedCommandHandler(f)
}

func (c *CompositionRoot) CreateTransferAdminCommandHandler() commands.TransferAdminCommandHandler {
	var f commands.RegistryUoWFactory = FuncRegistryUoWFactory(func() commands.RegistryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewTransferAdminCommandHandler(f)
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler() commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentEventsQueryHandler() queries.GetShipmentEventsQueryHandler {
	return queries.NewGetShipmentEventsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStatusHistoryQueryHandler() queries.GetStatusHistoryQueryHandler {
	return queries.NewGetStatusHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCarrierRatingQueryHandler() queries.GetCarrierRatingQueryHandler {
	return queries.NewGetCarrierRatingQueryHandler(c.gormDB, c.ratingCache)
}

func (c *CompositionRoot) CreateGetFullTrackingQueryHandler() queries.GetFullTrackingQueryHandler {
	return queries.NewGetFullTrackingQueryHandler(c.gormDB, c.ratingCache)
}

func (c *CompositionRoot) CreateGetEscrowAnomaliesQueryHandler() queries.GetEscrowAnomaliesQueryHandler {
	return queries.NewGetEscrowAnomaliesQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every handler into the HTTP server.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateShipmentCommandHandler(),
		c.CreateAssignActorsCommandHandler(),
		c.CreateConfirmWarehouseCommandHandler(),
		c.CreateApproveQualityCommandHandler(),
		c.CreateStartTransitCommandHandler(),
		c.CreateConfirmDeliveryCommandHandler(),
		c.CreateCancelShipmentCommandHandler(),
		c.CreateAddShipmentEventCommandHandler(),
		c.CreateRateShipmentCommandHandler(),
		c.CreateRaiseDisputeCommandHandler(),
		c.CreateResolveDisputeCommandHandler(),
		c.CreateSetAuthorizedCommandHandler(),
		c.CreateTransferAdminCommandHandler(),
		c.CreateGetShipmentQueryHandler(),
		c.CreateGetShipmentEventsQueryHandler(),
		c.CreateGetStatusHistoryQueryHandler(),
		c.CreateGetCarrierRatingQueryHandler(),
		c.CreateGetFullTrackingQueryHandler(),
		c.CreateGetEscrowAnomaliesQueryHandler(),
	)
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncEscrowUoWFactory func() commands.EscrowUoW

func (f FuncEscrowUoWFactory) Create() commands.EscrowUoW {
	return f()
}

type FuncAdminEscrowUoWFactory func() commands.AdminEscrowUoW

func (f FuncAdminEscrowUoWFactory) Create() commands.AdminEscrowUoW {
	return f()
}

type FuncActorsUoWFactory func() commands.ActorsUoW

func (f FuncActorsUoWFactory) Create() commands.ActorsUoW {
	return f()
}

type FuncEventUoWFactory func() commands.EventUoW

func (f FuncEventUoWFactory) Create() commands.EventUoW {
	return f()
}

type FuncRatingUoWFactory func() commands.RatingUoW

func (f FuncRatingUoWFactory) Create() commands.RatingUoW {
	return f()
}

type FuncRegistryUoWFactory func() commands.RegistryUoW

func (f FuncRegistryUoWFactory) Create() commands.RegistryUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
