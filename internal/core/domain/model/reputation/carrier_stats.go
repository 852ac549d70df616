package reputation

import (
	"errors"
	"fmt"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// AverageScale is the factor applied to the reported average rating so two
// decimal digits survive integer arithmetic.
const AverageScale = 100

// ErrCarrierStatsIsNotConstructed is returned when a CarrierStats instance
// was not created through NewCarrierStats or RestoreCarrierStats.
var ErrCarrierStatsIsNotConstructed = errors.New("CarrierStats must be created via NewCarrierStats constructor")

// CarrierStats is the per-carrier reputation aggregate. Both counters are
// monotonically increasing; one rated shipment contributes exactly one count
// and its rating in points.
type CarrierStats struct {
	carrierID         kernel.UUID
	totalRatingPoints int64
	ratingCount       int64

	isConstructed bool
}

// NewCarrierStats creates an empty reputation aggregate for a carrier.
func NewCarrierStats(carrierID kernel.UUID) (*CarrierStats, error) {
	if err := carrierID.Validate(); err != nil {
		return nil, err
	}

	return &CarrierStats{
		carrierID:     carrierID,
		isConstructed: true,
	}, nil
}

// RestoreCarrierStats reconstructs a reputation aggregate from persistence.
func RestoreCarrierStats(carrierID kernel.UUID, totalRatingPoints, ratingCount int64) (*CarrierStats, error) {
	if err := carrierID.Validate(); err != nil {
		return nil, err
	}
	if totalRatingPoints < 0 || ratingCount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("carrierStats",
			fmt.Errorf("counters must not be negative: points=%d count=%d", totalRatingPoints, ratingCount))
	}

	return &CarrierStats{
		carrierID:         carrierID,
		totalRatingPoints: totalRatingPoints,
		ratingCount:       ratingCount,
		isConstructed:     true,
	}, nil
}

// Validate ensures the aggregate was properly constructed.
func (c *CarrierStats) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCarrierStatsIsNotConstructed
	}

	return nil
}

// CarrierID returns the carrier identity this aggregate belongs to.
func (c *CarrierStats) CarrierID() kernel.UUID {
	return c.carrierID
}

// TotalRatingPoints returns the accumulated rating points.
func (c *CarrierStats) TotalRatingPoints() int64 {
	return c.totalRatingPoints
}

// RatingCount returns the number of rated shipments.
func (c *CarrierStats) RatingCount() int64 {
	return c.ratingCount
}

// AddRating accumulates one shipment rating. Rating bounds are enforced again
// here so the aggregate stays consistent even if a caller bypasses the
// shipment-level check.
func (c *CarrierStats) AddRating(rating int) error {
	if rating < 1 || rating > 5 {
		return errs.NewValueIsOutOfRangeError("rating", rating, 1, 5)
	}

	c.totalRatingPoints += int64(rating)
	c.ratingCount++
	return nil
}

// AverageTimes100 returns the average rating scaled by AverageScale,
// truncated toward zero. It returns 0 when no ratings exist.
func (c *CarrierStats) AverageTimes100() int64 {
	if c.ratingCount == 0 {
		return 0
	}
	return c.totalRatingPoints * AverageScale / c.ratingCount
}
