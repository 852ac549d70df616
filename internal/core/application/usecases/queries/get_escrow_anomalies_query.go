package queries

import (
	"errors"

	"freight/internal/pkg/guard"
)

var (
	ErrGetEscrowAnomaliesQueryIsNotConstructed = errors.New(
		"GetEscrowAnomaliesQuery must be created via NewGetEscrowAnomaliesQuery constructor",
	)
)

// GetEscrowAnomaliesQuery scans for shipments whose escrow state violates the
// exactly-once settlement guarantee. A healthy system always returns an empty
// result; any row is an incident.
type GetEscrowAnomaliesQuery struct {
	guard guard.ConstructorGuard
}

// NewGetEscrowAnomaliesQuery creates a query for escrow consistency
// violations. This is a parameterless query that scans all shipments.
func NewGetEscrowAnomaliesQuery() GetEscrowAnomaliesQuery {
	return GetEscrowAnomaliesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetEscrowAnomaliesQueryIsNotConstructed if validation fails.
func (q GetEscrowAnomaliesQuery) Validate() error {
	return q.guard.Validate(ErrGetEscrowAnomaliesQueryIsNotConstructed)
}

// GetEscrowAnomaliesQueryResponse describes one escrow consistency violation.
type GetEscrowAnomaliesQueryResponse struct {
	TrackingCode string
	Anomaly      string
}

// Anomaly kinds reported by the escrow consistency scan.
const (
	AnomalyReleasedAndRefunded = "released_and_refunded"
	AnomalyDuplicateOutbound   = "duplicate_outbound_movement"
)
