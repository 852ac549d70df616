package queries

import (
	"context"
	"database/sql"
	"errors"

	"freight/internal/core/domain/model/reputation"
	"freight/internal/core/ports"

	"gorm.io/gorm"
)

// GetCarrierRatingQueryHandler retrieves the scaled average rating of one
// carrier. Reads through the rating cache: a hit skips the database, a miss
// computes the average from carrier stats and stores it back. Cache failures
// degrade to database reads instead of failing the query.
type GetCarrierRatingQueryHandler struct {
	db    *gorm.DB
	cache ports.RatingCache
}

// NewGetCarrierRatingQueryHandler creates a handler for carrier rating
// queries.
func NewGetCarrierRatingQueryHandler(db *gorm.DB, cache ports.RatingCache) GetCarrierRatingQueryHandler {
	return GetCarrierRatingQueryHandler{db: db, cache: cache}
}

// Handle executes the query to retrieve one carrier's scaled average rating.
// An unrated carrier yields a zero average rather than an error.
func (h GetCarrierRatingQueryHandler) Handle(
	ctx context.Context,
	query GetCarrierRatingQuery,
) (GetCarrierRatingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCarrierRatingQueryResponse{}, err
	}

	if cached, ok, err := h.cache.Get(ctx, query.CarrierID()); err == nil && ok {
		return GetCarrierRatingQueryResponse{
			CarrierID:       query.CarrierID(),
			AverageTimes100: cached,
		}, nil
	}

	var totalPoints, ratingCount int64

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			total_rating_points,
			rating_count
		FROM carrier_stats
		WHERE carrier_id = ?
	`, query.CarrierID().Bytes()).Row()

	if err := row.Scan(&totalPoints, &ratingCount); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return GetCarrierRatingQueryResponse{}, err
		}
		totalPoints, ratingCount = 0, 0
	}

	var average int64
	if ratingCount > 0 {
		average = totalPoints * reputation.AverageScale / ratingCount
	}

	_ = h.cache.Set(ctx, query.CarrierID(), average)

	return GetCarrierRatingQueryResponse{
		CarrierID:       query.CarrierID(),
		AverageTimes100: average,
	}, nil
}
