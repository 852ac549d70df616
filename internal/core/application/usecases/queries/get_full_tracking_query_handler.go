package queries

import (
	"context"

	"gorm.io/gorm"

	"freight/internal/core/ports"
)

// GetFullTrackingQueryHandler assembles the combined tracking view by
// composing the shipment, event log, status history, and carrier rating
// handlers.
type GetFullTrackingQueryHandler struct {
	shipmentHandler GetShipmentQueryHandler
	eventsHandler   GetShipmentEventsQueryHandler
	historyHandler  GetStatusHistoryQueryHandler
	ratingHandler   GetCarrierRatingQueryHandler
}

// NewGetFullTrackingQueryHandler creates a handler for combined tracking
// queries. Requires a GORM database connection and the rating cache used by
// the carrier rating read path.
func NewGetFullTrackingQueryHandler(db *gorm.DB, cache ports.RatingCache) GetFullTrackingQueryHandler {
	return GetFullTrackingQueryHandler{
		shipmentHandler: NewGetShipmentQueryHandler(db),
		eventsHandler:   NewGetShipmentEventsQueryHandler(db),
		historyHandler:  NewGetStatusHistoryQueryHandler(db),
		ratingHandler:   NewGetCarrierRatingQueryHandler(db, cache),
	}
}

// Handle executes the query to retrieve the combined tracking view.
// Returns an ObjectNotFound error when the tracking code is unknown.
func (h GetFullTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetFullTrackingQuery,
) (GetFullTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetFullTrackingQueryResponse{}, err
	}

	shipmentQuery, err := NewGetShipmentQuery(query.TrackingCode())
	if err != nil {
		return GetFullTrackingQueryResponse{}, err
	}

	shipmentResp, err := h.shipmentHandler.Handle(ctx, shipmentQuery)
	if err != nil {
		return GetFullTrackingQueryResponse{}, err
	}

	eventsQuery, err := NewGetShipmentEventsQuery(query.TrackingCode())
	if err != nil {
		return GetFullTrackingQueryResponse{}, err
	}

	events, err := h.eventsHandler.Handle(ctx, eventsQuery)
	if err != nil {
		return GetFullTrackingQueryResponse{}, err
	}

	historyQuery, err := NewGetStatusHistoryQuery(query.TrackingCode())
	if err != nil {
		return GetFullTrackingQueryResponse{}, err
	}

	history, err := h.historyHandler.Handle(ctx, historyQuery)
	if err != nil {
		return GetFullTrackingQueryResponse{}, err
	}

	ratingQuery, err := NewGetCarrierRatingQuery(shipmentResp.Carrier)
	if err != nil {
		return GetFullTrackingQueryResponse{}, err
	}

	rating, err := h.ratingHandler.Handle(ctx, ratingQuery)
	if err != nil {
		return GetFullTrackingQueryResponse{}, err
	}

	return GetFullTrackingQueryResponse{
		Shipment:               shipmentResp,
		Events:                 events,
		StatusHistory:          history,
		CarrierAverageTimes100: rating.AverageTimes100,
	}, nil
}
