// Package http exposes the shipment lifecycle over a JSON API. The calling
// identity arrives as the X-Actor-ID header; role checks happen in the
// domain, not here.
package http

import (
	"net/http"

	"freight/internal/core/application/usecases/commands"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ActorHeader carries the calling identity on every mutating request.
const ActorHeader = "X-Actor-ID"

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createShipmentHandler   commands.CreateShipmentCommandHandler
	assignActorsHandler     commands.AssignActorsCommandHandler
	confirmWarehouseHandler commands.ConfirmWarehouseCommandHandler
	approveQualityHandler   commands.ApproveQualityCommandHandler
	startTransitHandler     commands.StartTransitCommandHandler
	confirmDeliveryHandler  commands.ConfirmDeliveryCommandHandler
	cancelShipmentHandler   commands.CancelShipmentCommandHandler
	addEventHandler         commands.AddShipmentEventCommandHandler
	rateShipmentHandler     commands.RateShipmentCommandHandler
	raiseDisputeHandler     commands.RaiseDisputeCommandHandler
	resolveDisputeHandler   commands.ResolveDisputeCommandHandler
	setAuthorizedHandler    commands.SetAuthorizedCommandHandler
	transferAdminHandler    commands.TransferAdminCommandHandler

	getShipmentHandler        queries.GetShipmentQueryHandler
	getEventsHandler          queries.GetShipmentEventsQueryHandler
	getStatusHistoryHandler   queries.GetStatusHistoryQueryHandler
	getCarrierRatingHandler   queries.GetCarrierRatingQueryHandler
	getFullTrackingHandler    queries.GetFullTrackingQueryHandler
	getEscrowAnomaliesHandler queries.GetEscrowAnomaliesQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createShipmentHandler commands.CreateShipmentCommandHandler,
	assignActorsHandler commands.AssignActorsCommandHandler,
	confirmWarehouseHandler commands.ConfirmWarehouseCommandHandler,
	approveQualityHandler commands.ApproveQualityCommandHandler,
	startTransitHandler commands.StartTransitCommandHandler,
	confirmDeliveryHandler commands.ConfirmDeliveryCommandHandler,
	cancelShipmentHandler commands.CancelShipmentCommandHandler,
	addEventHandler commands.AddShipmentEventCommandHandler,
	rateShipmentHandler commands.RateShipmentCommandHandler,
	raiseDisputeHandler commands.RaiseDisputeCommandHandler,
	resolveDisputeHandler commands.ResolveDisputeCommandHandler,
	setAuthorizedHandler commands.SetAuthorizedCommandHandler,
	transferAdminHandler commands.TransferAdminCommandHandler,
	getShipmentHandler queries.GetShipmentQueryHandler,
	getEventsHandler queries.GetShipmentEventsQueryHandler,
	getStatusHistoryHandler queries.GetStatusHistoryQueryHandler,
	getCarrierRatingHandler queries.GetCarrierRatingQueryHandler,
	getFullTrackingHandler queries.GetFullTrackingQueryHandler,
	getEscrowAnomaliesHandler queries.GetEscrowAnomaliesQueryHandler,
) *Server {
	return &Server{
		createShipmentHandler:     createShipmentHandler,
		assignActorsHandler:       assignActorsHandler,
		confirmWarehouseHandler:   confirmWarehouseHandler,
		approveQualityHandler:     approveQualityHandler,
		startTransitHandler:       startTransitHandler,
		confirmDeliveryHandler:    confirmDeliveryHandler,
		cancelShipmentHandler:     cancelShipmentHandler,
		addEventHandler:           addEventHandler,
		rateShipmentHandler:       rateShipmentHandler,
		raiseDisputeHandler:       raiseDisputeHandler,
		resolveDisputeHandler:     resolveDisputeHandler,
		setAuthorizedHandler:      setAuthorizedHandler,
		transferAdminHandler:      transferAdminHandler,
		getShipmentHandler:        getShipmentHandler,
		getEventsHandler:          getEventsHandler,
		getStatusHistoryHandler:   getStatusHistoryHandler,
		getCarrierRatingHandler:   getCarrierRatingHandler,
		getFullTrackingHandler:    getFullTrackingHandler,
		getEscrowAnomaliesHandler: getEscrowAnomaliesHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/shipments", s.CreateShipment)
	api.GET("/shipments/:code", s.GetShipment)
	api.POST("/shipments/:code/actors", s.AssignActors)
	api.POST("/shipments/:code/confirm-warehouse", s.ConfirmWarehouse)
	api.POST("/shipments/:code/approve-quality", s.ApproveQuality)
	api.POST("/shipments/:code/start-transit", s.StartTransit)
	api.POST("/shipments/:code/confirm-delivery", s.ConfirmDelivery)
	api.POST("/shipments/:code/cancel", s.CancelShipment)
	api.POST("/shipments/:code/events", s.AddEvent)
	api.GET("/shipments/:code/events", s.GetEvents)
	api.GET("/shipments/:code/history", s.GetStatusHistory)
	api.GET("/shipments/:code/tracking", s.GetFullTracking)
	api.POST("/shipments/:code/feedback", s.RateOrDispute)
	api.POST("/shipments/:code/resolve-dispute", s.ResolveDispute)
	api.GET("/carriers/:id/rating", s.GetCarrierRating)
	api.POST("/registry/authorized", s.SetAuthorized)
	api.POST("/registry/admin", s.TransferAdmin)
	api.GET("/escrow/anomalies", s.GetEscrowAnomalies)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// actor extracts the calling identity from the X-Actor-ID header.
func actor(ctx echo.Context) (kernel.UUID, error) {
	raw := ctx.Request().Header.Get(ActorHeader)
	if raw == "" {
		return kernel.UUID{}, errs.NewValueIsRequiredError(ActorHeader)
	}

	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(ActorHeader, err)
	}

	return id, nil
}

// trackingCode extracts the tracking code path parameter.
func trackingCode(ctx echo.Context) (kernel.TrackingCode, error) {
	return kernel.NewTrackingCode(ctx.Param("code"))
}

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(ctx echo.Context) error {
	creator, err := actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req CreateShipmentRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	code, err := kernel.NewTrackingCode(req.TrackingCode)
	if err != nil {
		return respondError(ctx, err)
	}

	carrier, err := kernel.UUIDFromString(req.Carrier)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("carrier", err))
	}

	cmd, err := commands.NewCreateShipmentCommand(
		code, req.ProductName, req.Origin, req.Destination,
		creator, carrier, req.ShippingFee, req.DepositAmount,
	)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.createShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// AssignActors handles POST /api/v1/shipments/:code/actors.
func (s *Server) AssignActors(ctx echo.Context) error {
	caller, err := actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	code, err := trackingCode(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req AssignActorsRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	var manager, inspector *kernel.UUID
	if req.Manager != nil {
		id, idErr := kernel.UUIDFromString(*req.Manager)
		if idErr != nil {
			return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("manager", idErr))
		}
		manager = &id
	}
	if req.Inspector != nil {
		id, idErr := kernel.UUIDFromString(*req.Inspector)
		if idErr != nil {
			return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("inspector", idErr))
		}
		inspector = &id
	}

	cmd, err := commands.NewAssignActorsCommand(code, caller, manager, inspector)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.assignActorsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// ConfirmWarehouse handles POST /api/v1/shipments/:code/confirm-warehouse.
func (s *Server) ConfirmWarehouse(ctx echo.Context) error {
	caller, err := actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	code, err := trackingCode(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewConfirmWarehouseCommand(code, caller)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.confirmWarehouseHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// ApproveQuality handles POST /api/v1/shipments/:code/approve-quality.
func (s *Server) ApproveQuality(ctx echo.Context) error {
	caller, err := actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	code, err := trackingCode(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewApproveQualityCommand(code, caller)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.approveQualityHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// StartTransit handles POST /api/v1/shipments/:code/start-transit.
func (s *Server) StartTransit(ctx echo.Context) error {
	caller, err := actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	code, err := trackingCode(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewStartTransitCommand(code, caller)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.startTransitHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// ConfirmDelivery handles POST /api/v1/shipments/:code/confirm-delivery.
func (s *Server) ConfirmDelivery(ctx echo.Context) error {
	caller, err := actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	code, err := trackingCode(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewConfirmDeliveryCommand(code, caller)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.confirmDeliveryHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// CancelShipment handles POST /api/v1/shipments/:code/cancel.
func (s *Server) CancelShipment(ctx echo.Context) error {
	caller, err := actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	code, err := trackingCode(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req CancelShipmentRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	cmd, err := commands.NewCancelShipmentCommand(code, caller, req.Reason)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.cancelShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// AddEvent handles POST /api/v1/shipments/:code/events.
func (s *Server) AddEvent(ctx echo.Context) error {
	caller, err := actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	code, err := trackingCode(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req AddEventRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	kind, err := shipment.EventKindFromString(req.Kind)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAddShipmentEventCommand(code, caller, kind, req.Location, req.EventType)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.addEventHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// RateOrDispute handles POST /api/v1/shipments/:code/feedback. One endpoint
// covers both outcomes: isDispute raises a dispute with the feedback text as
// the reason, otherwise the carrier is rated.
func (s *Server) RateOrDispute(ctx echo.Context) error {
	caller, err := actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	code, err := trackingCode(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req FeedbackRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	if req.IsDispute {
		cmd, cmdErr := commands.NewRaiseDisputeCommand(code, caller, req.Feedback)
		if cmdErr != nil {
			return respondError(ctx, cmdErr)
		}

		if err = s.raiseDisputeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
			return respondError(ctx, err)
		}

		return ctx.NoContent(http.StatusOK)
	}

	cmd, err := commands.NewRateShipmentCommand(code, caller, req.Rating, req.Feedback)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.rateShipmentHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// ResolveDispute handles POST /api/v1/shipments/:code/resolve-dispute.
func (s *Server) ResolveDispute(ctx echo.Context) error {
	caller, err := actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	code, err := trackingCode(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req ResolveDisputeRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	cmd, err := commands.NewResolveDisputeCommand(code, caller, req.FavorCreator)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.resolveDisputeHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// SetAuthorized handles POST /api/v1/registry/authorized.
func (s *Server) SetAuthorized(ctx echo.Context) error {
	caller, err := actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req SetAuthorizedRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	identity, err := kernel.UUIDFromString(req.Identity)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("identity", err))
	}

	cmd, err := commands.NewSetAuthorizedCommand(caller, identity, req.IsInspector, req.Enabled)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.setAuthorizedHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// TransferAdmin handles POST /api/v1/registry/admin.
func (s *Server) TransferAdmin(ctx echo.Context) error {
	caller, err := actor(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req TransferAdminRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidError("request body"))
	}

	newAdmin, err := kernel.UUIDFromString(req.NewAdmin)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("newAdmin", err))
	}

	cmd, err := commands.NewTransferAdminCommand(caller, newAdmin)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.transferAdminHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusOK)
}

// GetShipment handles GET /api/v1/shipments/:code.
func (s *Server) GetShipment(ctx echo.Context) error {
	code, err := trackingCode(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetShipmentQuery(code)
	if err != nil {
		return respondError(ctx, err)
	}

	resp, err := s.getShipmentHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toShipmentResponse(resp))
}

// GetEvents handles GET /api/v1/shipments/:code/events.
func (s *Server) GetEvents(ctx echo.Context) error {
	code, err := trackingCode(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetShipmentEventsQuery(code)
	if err != nil {
		return respondError(ctx, err)
	}

	events, err := s.getEventsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toEventResponses(events))
}

// GetStatusHistory handles GET /api/v1/shipments/:code/history.
func (s *Server) GetStatusHistory(ctx echo.Context) error {
	code, err := trackingCode(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetStatusHistoryQuery(code)
	if err != nil {
		return respondError(ctx, err)
	}

	history, err := s.getStatusHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toStatusChangeResponses(history))
}

// GetFullTracking handles GET /api/v1/shipments/:code/tracking.
func (s *Server) GetFullTracking(ctx echo.Context) error {
	code, err := trackingCode(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetFullTrackingQuery(code)
	if err != nil {
		return respondError(ctx, err)
	}

	resp, err := s.getFullTrackingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, FullTrackingResponse{
		Shipment:               toShipmentResponse(resp.Shipment),
		Events:                 toEventResponses(resp.Events),
		StatusHistory:          toStatusChangeResponses(resp.StatusHistory),
		CarrierAverageTimes100: resp.CarrierAverageTimes100,
	})
}

// GetCarrierRating handles GET /api/v1/carriers/:id/rating.
func (s *Server) GetCarrierRating(ctx echo.Context) error {
	carrierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("id", err))
	}

	query, err := queries.NewGetCarrierRatingQuery(carrierID)
	if err != nil {
		return respondError(ctx, err)
	}

	resp, err := s.getCarrierRatingHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, CarrierRatingResponse{
		CarrierID:       resp.CarrierID.String(),
		AverageTimes100: resp.AverageTimes100,
	})
}

// GetEscrowAnomalies handles GET /api/v1/escrow/anomalies.
func (s *Server) GetEscrowAnomalies(ctx echo.Context) error {
	query := queries.NewGetEscrowAnomaliesQuery()

	anomalies, err := s.getEscrowAnomaliesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]EscrowAnomalyResponse, len(anomalies))
	for i, anomaly := range anomalies {
		response[i] = EscrowAnomalyResponse{
			TrackingCode: anomaly.TrackingCode,
			Anomaly:      anomaly.Anomaly,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func toShipmentResponse(resp queries.GetShipmentQueryResponse) ShipmentResponse {
	var manager, inspector *string
	if resp.WarehouseManager != nil {
		s := resp.WarehouseManager.String()
		manager = &s
	}
	if resp.QualityInspector != nil {
		s := resp.QualityInspector.String()
		inspector = &s
	}

	return ShipmentResponse{
		TrackingCode:       resp.TrackingCode,
		ProductName:        resp.ProductName,
		Origin:             resp.Origin,
		Destination:        resp.Destination,
		Creator:            resp.Creator.String(),
		Carrier:            resp.Carrier.String(),
		WarehouseManager:   manager,
		QualityInspector:   inspector,
		Status:             resp.Status.String(),
		WarehouseConfirmed: resp.Flags.WarehouseConfirmed,
		QualityApproved:    resp.Flags.QualityApproved,
		ReceiverConfirmed:  resp.Flags.ReceiverConfirmed,
		EscrowReleased:     resp.Flags.EscrowReleased,
		EscrowRefunded:     resp.Flags.EscrowRefunded,
		Rated:              resp.Flags.Rated,
		Disputed:           resp.Flags.Disputed,
		DepositAmount:      resp.DepositAmount,
		ShippingFee:        resp.ShippingFee,
		Rating:             resp.Rating,
		Feedback:           resp.Feedback,
		DisputeReason:      resp.DisputeReason,
		CreatedAt:          resp.CreatedAt,
	}
}

func toEventResponses(events []queries.GetShipmentEventsQueryResponse) []EventResponse {
	response := make([]EventResponse, len(events))
	for i, event := range events {
		response[i] = EventResponse{
			Location:   event.Location,
			EventType:  event.EventType,
			Actor:      event.Actor.String(),
			OccurredAt: event.OccurredAt,
		}
	}
	return response
}

func toStatusChangeResponses(changes []queries.GetStatusHistoryQueryResponse) []StatusChangeResponse {
	response := make([]StatusChangeResponse, len(changes))
	for i, change := range changes {
		response[i] = StatusChangeResponse{
			OldStatus:  change.OldStatus.String(),
			NewStatus:  change.NewStatus.String(),
			Actor:      change.Actor.String(),
			Note:       change.Note,
			OccurredAt: change.OccurredAt,
		}
	}
	return response
}
