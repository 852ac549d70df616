package queries

import (
	"context"
	"database/sql"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentQueryHandler retrieves one shipment read model from the database.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type GetShipmentQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentQueryHandler creates a handler for shipment retrieval queries.
// Requires a GORM database connection for query execution.
func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle executes the query to retrieve one shipment.
// Returns an ObjectNotFound error when the tracking code is unknown.
func (h GetShipmentQueryHandler) Handle(
	ctx context.Context,
	query GetShipmentQuery,
) (GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	var resp GetShipmentQueryResponse
	var creatorID, carrierID uuid.UUID
	var managerID, inspectorID *uuid.UUID
	var status int

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			tracking_code,
			product_name,
			origin,
			destination,
			creator_id,
			carrier_id,
			warehouse_manager_id,
			quality_inspector_id,
			status,
			warehouse_confirmed,
			quality_approved,
			receiver_confirmed,
			escrow_released,
			escrow_refunded,
			rated,
			disputed,
			deposit_amount,
			shipping_fee,
			rating,
			feedback,
			dispute_reason,
			created_at
		FROM shipments
		WHERE tracking_code = ?
	`, query.TrackingCode().String()).Row()

	err := row.Scan(
		&resp.TrackingCode,
		&resp.ProductName,
		&resp.Origin,
		&resp.Destination,
		&creatorID,
		&carrierID,
		&managerID,
		&inspectorID,
		&status,
		&resp.Flags.WarehouseConfirmed,
		&resp.Flags.QualityApproved,
		&resp.Flags.ReceiverConfirmed,
		&resp.Flags.EscrowReleased,
		&resp.Flags.EscrowRefunded,
		&resp.Flags.Rated,
		&resp.Flags.Disputed,
		&resp.DepositAmount,
		&resp.ShippingFee,
		&resp.Rating,
		&resp.Feedback,
		&resp.DisputeReason,
		&resp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetShipmentQueryResponse{}, errs.NewObjectNotFoundError(
				"shipment", query.TrackingCode().String())
		}
		return GetShipmentQueryResponse{}, err
	}

	resp.Status = shipment.Status(status)

	creator, err := kernel.UUIDFromBytes(creatorID[:])
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}
	resp.Creator = creator

	carrier, err := kernel.UUIDFromBytes(carrierID[:])
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}
	resp.Carrier = carrier

	if managerID != nil {
		manager, idErr := kernel.UUIDFromBytes((*managerID)[:])
		if idErr != nil {
			return GetShipmentQueryResponse{}, idErr
		}
		resp.WarehouseManager = &manager
	}

	if inspectorID != nil {
		inspector, idErr := kernel.UUIDFromBytes((*inspectorID)[:])
		if idErr != nil {
			return GetShipmentQueryResponse{}, idErr
		}
		resp.QualityInspector = &inspector
	}

	return resp, nil
}
