package queries

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentEventsQueryHandler retrieves the event log of one shipment from
// the database in append order.
type GetShipmentEventsQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentEventsQueryHandler creates a handler for event log queries.
// Requires a GORM database connection for query execution.
func NewGetShipmentEventsQueryHandler(db *gorm.DB) GetShipmentEventsQueryHandler {
	return GetShipmentEventsQueryHandler{db: db}
}

// Handle executes the query to retrieve a shipment's event log.
// Returns an ObjectNotFound error when the tracking code is unknown; a known
// shipment with no recorded events yields an empty slice.
func (h GetShipmentEventsQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentEventsQuery,
) ([]GetShipmentEventsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if err := shipmentExists(ctx, h.db, query.TrackingCode()); err != nil {
		return nil, err
	}

	events := make([]GetShipmentEventsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			location,
			event_type,
			actor_id,
			occurred_at
		FROM shipment_events
		WHERE tracking_code = ?
		ORDER BY id
	`, query.TrackingCode().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var event GetShipmentEventsQueryResponse
		var actorID uuid.UUID

		err = rows.Scan(
			&event.Location,
			&event.EventType,
			&actorID,
			&event.OccurredAt,
		)
		if err != nil {
			return nil, err
		}

		actor, idErr := kernel.UUIDFromBytes(actorID[:])
		if idErr != nil {
			return nil, idErr
		}
		event.Actor = actor
		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// shipmentExists reports ObjectNotFound for tracking codes that were never
// registered, so audit-trail queries can distinguish "unknown shipment" from
// "no entries yet".
func shipmentExists(ctx context.Context, db *gorm.DB, code kernel.TrackingCode) error {
	var count int64
	err := db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM shipments WHERE tracking_code = ?
	`, code.String()).Scan(&count).Error
	if err != nil {
		return err
	}

	if count == 0 {
		return errs.NewObjectNotFoundError("shipment", code.String())
	}

	return nil
}
