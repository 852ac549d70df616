// Package ports defines repository and gateway interfaces for the freight domain.
// These interfaces establish contracts between the domain layer and infrastructure,
// enabling dependency inversion and testability.
package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
type ShipmentRepository interface {
	// Add persists a new shipment aggregate.
	// Returns an ObjectAlreadyExists error when the tracking code is taken.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists changes to an existing shipment aggregate.
	// Returns an ObjectNotFound error when the shipment does not exist.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment aggregate by tracking code.
	// Returns an ObjectNotFound error when the shipment does not exist.
	Get(ctx context.Context, code kernel.TrackingCode) (*shipment.Shipment, error)
}

// TrackingRepository defines the persistence contract for the two append-only
// audit trails: the event log and the status history. Entries are immutable
// once appended; ordering is append order.
type TrackingRepository interface {
	// AppendEvent appends one entry to the shipment's event log.
	AppendEvent(ctx context.Context, code kernel.TrackingCode, event shipment.Event) error

	// AppendStatusChange appends one entry to the shipment's status history.
	AppendStatusChange(ctx context.Context, code kernel.TrackingCode, change shipment.StatusChange) error

	// GetEvents returns the shipment's event log in append order.
	GetEvents(ctx context.Context, code kernel.TrackingCode) ([]shipment.Event, error)

	// GetStatusChanges returns the shipment's status history in append order.
	GetStatusChanges(ctx context.Context, code kernel.TrackingCode) ([]shipment.StatusChange, error)
}
