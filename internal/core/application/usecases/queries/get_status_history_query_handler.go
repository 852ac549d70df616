package queries

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetStatusHistoryQueryHandler retrieves the status history of one shipment
// from the database in append order.
type GetStatusHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetStatusHistoryQueryHandler creates a handler for status history
// queries. Requires a GORM database connection for query execution.
func NewGetStatusHistoryQueryHandler(db *gorm.DB) GetStatusHistoryQueryHandler {
	return GetStatusHistoryQueryHandler{db: db}
}

// Handle executes the query to retrieve a shipment's status history.
// Returns an ObjectNotFound error when the tracking code is unknown.
func (h GetStatusHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetStatusHistoryQuery,
) ([]GetStatusHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := shipmentExists(ctx, h.db, query.TrackingCode()); err != nil {
		return nil, err
	}

	changes := make([]GetStatusHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			old_status,
			new_status,
			actor_id,
			note,
			occurred_at
		FROM status_changes
		WHERE tracking_code = ?
		ORDER BY id
	`, query.TrackingCode().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var change GetStatusHistoryQueryResponse
		var oldStatus, newStatus int
		var actorID uuid.UUID

		err = rows.Scan(
			&oldStatus,
			&newStatus,
			&actorID,
			&change.Note,
			&change.OccurredAt,
		)
		if err != nil {
			return nil, err
		}

		actor, idErr := kernel.UUIDFromBytes(actorID[:])
		if idErr != nil {
			return nil, idErr
		}
		change.Actor = actor
		change.OldStatus = shipment.Status(oldStatus)
		change.NewStatus = shipment.Status(newStatus)
		changes = append(changes, change)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return changes, nil
}
