// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/guard"
)

var (
	ErrGetShipmentQueryIsNotConstructed = errors.New(
		"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
	)
)

// GetShipmentQuery retrieves the current state of one shipment.
//
// Example:
//
//	query, err := NewGetShipmentQuery(code)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetShipmentQueryHandler(db)
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve shipment: %w", err)
//	}
//
//	fmt.Printf("Shipment %s is %s\n", resp.TrackingCode, resp.Status)
type GetShipmentQuery struct {
	trackingCode kernel.TrackingCode

	guard guard.ConstructorGuard
}

// NewGetShipmentQuery creates a query for one shipment by tracking code.
func NewGetShipmentQuery(code kernel.TrackingCode) (GetShipmentQuery, error) {
	if err := code.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}

	return GetShipmentQuery{
		trackingCode: code,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetShipmentQueryIsNotConstructed if validation fails.
func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// TrackingCode returns the tracking code being queried.
func (q GetShipmentQuery) TrackingCode() kernel.TrackingCode {
	return q.trackingCode
}

// GetShipmentQueryResponse is the shipment read model: the current
// lifecycle state plus the full confirmation flag set.
type GetShipmentQueryResponse struct {
	TrackingCode     string
	ProductName      string
	Origin           string
	Destination      string
	Creator          kernel.UUID
	Carrier          kernel.UUID
	WarehouseManager *kernel.UUID
	QualityInspector *kernel.UUID
	Status           shipment.Status
	Flags            shipment.Flags
	DepositAmount    int64
	ShippingFee      int64
	Rating           int
	Feedback         string
	DisputeReason    string
	CreatedAt        time.Time
}
