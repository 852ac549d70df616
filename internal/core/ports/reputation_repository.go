package ports

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/registry"
	"freight/internal/core/domain/model/reputation"
)

// ReputationRepository defines the persistence contract for per-carrier
// rating aggregates.
type ReputationRepository interface {
	// Get retrieves the reputation aggregate for a carrier.
	// Returns an ObjectNotFound error when the carrier has never been rated.
	Get(ctx context.Context, carrierID kernel.UUID) (*reputation.CarrierStats, error)

	// Add persists a new reputation aggregate.
	Add(ctx context.Context, aggregate *reputation.CarrierStats) error

	// Update persists changes to an existing reputation aggregate.
	Update(ctx context.Context, aggregate *reputation.CarrierStats) error
}

// RegistryRepository defines the persistence contract for the authorization
// registry. The registry is a singleton aggregate.
type RegistryRepository interface {
	// Get retrieves the registry with both allow-lists loaded.
	// Returns an ObjectNotFound error when the registry was never seeded.
	Get(ctx context.Context) (*registry.Registry, error)

	// Save persists the registry, replacing the stored allow-lists.
	Save(ctx context.Context, aggregate *registry.Registry) error
}
