package reputationrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/reputation"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormReputationRepository implements ReputationRepository using GORM.
type GormReputationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormReputationRepository creates a new GORM reputation repository.
func NewGormReputationRepository(db *gorm.DB, tracker aggregateTracker) *GormReputationRepository {
	return &GormReputationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Get retrieves the rating aggregate for a carrier.
func (r *GormReputationRepository) Get(ctx context.Context, carrierID kernel.UUID) (*reputation.CarrierStats, error) {
	if err := carrierID.Validate(); err != nil {
		return nil, err
	}

	var dto CarrierStatsDTO
	if err := r.db.WithContext(ctx).First(&dto, "carrier_id = ?", carrierID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("carrier stats", carrierID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Add saves a new rating aggregate to the database.
func (r *GormReputationRepository) Add(ctx context.Context, aggregate *reputation.CarrierStats) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.CarrierID().String(), aggregate)
	return nil
}

// Update saves an existing rating aggregate to the database.
func (r *GormReputationRepository) Update(ctx context.Context, aggregate *reputation.CarrierStats) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CarrierStatsDTO{}).
		Where("carrier_id = ?", dto.CarrierID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("carrier stats", aggregate.CarrierID().String())
	}

	r.tracker.TrackAggregate(aggregate.CarrierID().String(), aggregate)
	return nil
}
