package queries

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var (
	ErrGetCarrierRatingQueryIsNotConstructed = errors.New(
		"GetCarrierRatingQuery must be created via NewGetCarrierRatingQuery constructor",
	)
)

// GetCarrierRatingQuery retrieves the aggregated rating of one carrier.
//
// Example:
//
//	query, err := NewGetCarrierRatingQuery(carrierID)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetCarrierRatingQueryHandler(db, cache)
//
//	resp, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//
//	fmt.Printf("Carrier averages %d.%02d\n",
//	    resp.AverageTimes100/100, resp.AverageTimes100%100)
type GetCarrierRatingQuery struct {
	carrierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetCarrierRatingQuery creates a query for one carrier's rating.
func NewGetCarrierRatingQuery(carrierID kernel.UUID) (GetCarrierRatingQuery, error) {
	if err := carrierID.Validate(); err != nil {
		return GetCarrierRatingQuery{}, err
	}

	return GetCarrierRatingQuery{
		carrierID: carrierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetCarrierRatingQueryIsNotConstructed if validation fails.
func (q GetCarrierRatingQuery) Validate() error {
	return q.guard.Validate(ErrGetCarrierRatingQueryIsNotConstructed)
}

// CarrierID returns the carrier being queried.
func (q GetCarrierRatingQuery) CarrierID() kernel.UUID {
	return q.carrierID
}

// GetCarrierRatingQueryResponse is the carrier rating read model. The
// average is scaled by 100 so it stays integral; an unrated carrier reports
// zero.
type GetCarrierRatingQueryResponse struct {
	CarrierID       kernel.UUID
	AverageTimes100 int64
}
