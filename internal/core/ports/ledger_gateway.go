package ports

import (
	"context"
	"time"

	"freight/internal/core/domain/model/kernel"
)

// LedgerGateway is the abstract value-custody capability the lifecycle engine
// calls into. The engine never implements value transfer itself; it reserves
// the deposit at creation and moves it out exactly once at settlement.
//
// Implementations must keep a durable movement record so that at most one
// outbound movement per shipment can ever exist, even across process
// restarts. A rejected movement surfaces as a TransferFailed error and the
// enclosing operation must not persist any state.
type LedgerGateway interface {
	// Reserve takes the deposit from the creator into custody at creation.
	Reserve(ctx context.Context, code kernel.TrackingCode, from kernel.UUID, amount int64) error

	// Release pays the held deposit to the carrier.
	Release(ctx context.Context, code kernel.TrackingCode, to kernel.UUID, amount int64) error

	// Refund pays the held deposit back to the creator.
	Refund(ctx context.Context, code kernel.TrackingCode, to kernel.UUID, amount int64) error
}

// Clock supplies the current time to command handlers so timestamps are
// explicit and testable rather than ambient.
type Clock interface {
	Now() time.Time
}

// RatingCache is a read-through cache for the scaled carrier average rating.
type RatingCache interface {
	// Get returns the cached scaled average and whether it was present.
	Get(ctx context.Context, carrierID kernel.UUID) (int64, bool, error)

	// Set stores the scaled average.
	Set(ctx context.Context, carrierID kernel.UUID, averageTimes100 int64) error

	// Invalidate drops the cached value after a new rating lands.
	Invalidate(ctx context.Context, carrierID kernel.UUID) error
}
