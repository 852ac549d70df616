package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/guard"
)

var (
	ErrGetStatusHistoryQueryIsNotConstructed = errors.New(
		"GetStatusHistoryQuery must be created via NewGetStatusHistoryQuery constructor",
	)
)

// GetStatusHistoryQuery retrieves the append-only status history of one
// shipment.
type GetStatusHistoryQuery struct {
	trackingCode kernel.TrackingCode

	guard guard.ConstructorGuard
}

// NewGetStatusHistoryQuery creates a query for a shipment's status history.
func NewGetStatusHistoryQuery(code kernel.TrackingCode) (GetStatusHistoryQuery, error) {
	if err := code.Validate(); err != nil {
		return GetStatusHistoryQuery{}, err
	}

	return GetStatusHistoryQuery{
		trackingCode: code,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetStatusHistoryQueryIsNotConstructed if validation fails.
func (q GetStatusHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusHistoryQueryIsNotConstructed)
}

// TrackingCode returns the tracking code being queried.
func (q GetStatusHistoryQuery) TrackingCode() kernel.TrackingCode {
	return q.trackingCode
}

// GetStatusHistoryQueryResponse is one entry of the status history read
// model. OldStatus is Unknown for the synthetic creation entry.
type GetStatusHistoryQueryResponse struct {
	OldStatus  shipment.Status
	NewStatus  shipment.Status
	Actor      kernel.UUID
	Note       string
	OccurredAt time.Time
}
