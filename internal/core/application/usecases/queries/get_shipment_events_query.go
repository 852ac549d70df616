package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrGetShipmentEventsQueryIsNotConstructed = errors.New(
		"GetShipmentEventsQuery must be created via NewGetShipmentEventsQuery constructor",
	)
)

// GetShipmentEventsQuery retrieves the append-only event log of one shipment.
type GetShipmentEventsQuery struct {
	trackingCode kernel.TrackingCode

	guard guard.ConstructorGuard
}

// NewGetShipmentEventsQuery creates a query for a shipment's event log.
func NewGetShipmentEventsQuery(code kernel.TrackingCode) (GetShipmentEventsQuery, error) {
	if err := code.Validate(); err != nil {
		return GetShipmentEventsQuery{}, err
	}

	return GetShipmentEventsQuery{
		trackingCode: code,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetShipmentEventsQueryIsNotConstructed if validation fails.
func (q GetShipmentEventsQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentEventsQueryIsNotConstructed)
}

// TrackingCode returns the tracking code being queried.
func (q GetShipmentEventsQuery) TrackingCode() kernel.TrackingCode {
	return q.trackingCode
}

// GetShipmentEventsQueryResponse is one entry of the event log read model.
type GetShipmentEventsQueryResponse struct {
	Location   string
	EventType  string
	Actor      kernel.UUID
	OccurredAt time.Time
}
