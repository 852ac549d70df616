package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrGetFullTrackingQueryIsNotConstructed = errors.New(
		"GetFullTrackingQuery must be created via NewGetFullTrackingQuery constructor",
	)
)

// GetFullTrackingQuery retrieves the combined tracking view of one shipment:
// current state, event log, status history, and the carrier's scaled average
// rating in a single read model.
type GetFullTrackingQuery struct {
	trackingCode kernel.TrackingCode

	guard guard.ConstructorGuard
}

// NewGetFullTrackingQuery creates a query for the combined tracking view.
func NewGetFullTrackingQuery(code kernel.TrackingCode) (GetFullTrackingQuery, error) {
	if err := code.Validate(); err != nil {
		return GetFullTrackingQuery{}, err
	}

	return GetFullTrackingQuery{
		trackingCode: code,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetFullTrackingQueryIsNotConstructed if validation fails.
func (q GetFullTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetFullTrackingQueryIsNotConstructed)
}

// TrackingCode returns the tracking code being queried.
func (q GetFullTrackingQuery) TrackingCode() kernel.TrackingCode {
	return q.trackingCode
}

// GetFullTrackingQueryResponse combines the shipment state with both audit
// trails and the assigned carrier's average rating, scaled by 100.
type GetFullTrackingQueryResponse struct {
	Shipment               GetShipmentQueryResponse
	Events                 []GetShipmentEventsQueryResponse
	StatusHistory          []GetStatusHistoryQueryResponse
	CarrierAverageTimes100 int64
}
