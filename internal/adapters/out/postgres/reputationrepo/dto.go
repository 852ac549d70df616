// Package reputationrepo persists per-carrier rating aggregates.
package reputationrepo

import (
	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/reputation"

	"github.com/google/uuid"
)

// CarrierStatsDTO represents the database structure for carrier rating
// aggregates. The sum and count are stored separately so the scaled average
// can always be recomputed without rounding drift.
type CarrierStatsDTO struct {
	CarrierID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TotalRatingPoints int64
	RatingCount       int64
}

// TableName specifies the database table name for carrier rating aggregates.
func (CarrierStatsDTO) TableName() string {
	return "carrier_stats"
}

func fromDomain(aggregate *reputation.CarrierStats) CarrierStatsDTO {
	return CarrierStatsDTO{
		CarrierID:         aggregate.CarrierID().Bytes(),
		TotalRatingPoints: aggregate.TotalRatingPoints(),
		RatingCount:       aggregate.RatingCount(),
	}
}

func toDomain(dto CarrierStatsDTO) (*reputation.CarrierStats, error) {
	carrierID, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}

	return reputation.RestoreCarrierStats(carrierID, dto.TotalRatingPoints, dto.RatingCount)
}
