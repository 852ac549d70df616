package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetEscrowAnomaliesQueryHandler scans for escrow consistency violations:
// shipments flagged both released and refunded, and tracking codes with more
// than one outbound ledger movement.
type GetEscrowAnomaliesQueryHandler struct {
	db *gorm.DB
}

// NewGetEscrowAnomaliesQueryHandler creates a handler for the escrow
// consistency scan. Requires a GORM database connection for query execution.
func NewGetEscrowAnomaliesQueryHandler(db *gorm.DB) GetEscrowAnomaliesQueryHandler {
	return GetEscrowAnomaliesQueryHandler{db: db}
}

// Handle executes the escrow consistency scan.
// Returns one row per violation, sorted by tracking code.
func (h GetEscrowAnomaliesQueryHandler) Handle(
	ctx context.Context,
	query GetEscrowAnomaliesQuery,
) ([]GetEscrowAnomaliesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	anomalies := make([]GetEscrowAnomaliesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT tracking_code, ? AS anomaly
		FROM shipments
		WHERE escrow_released AND escrow_refunded
		UNION ALL
		SELECT tracking_code, ? AS anomaly
		FROM escrow_movements
		WHERE outbound
		GROUP BY tracking_code
		HAVING COUNT(*) > 1
		ORDER BY tracking_code
	`, AnomalyReleasedAndRefunded, AnomalyDuplicateOutbound).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var anomaly GetEscrowAnomaliesQueryResponse

		err = rows.Scan(
			&anomaly.TrackingCode,
			&anomaly.Anomaly,
		)
		if err != nil {
			return nil, err
		}

		anomalies = append(anomalies, anomaly)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return anomalies, nil
}
