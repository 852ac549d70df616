package trackingrepo

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"gorm.io/gorm"
)

// GormTrackingRepository implements TrackingRepository using GORM.
// Inserts only; existing rows are never updated or deleted.
type GormTrackingRepository struct {
	db *gorm.DB
}

// NewGormTrackingRepository creates a new GORM tracking repository.
func NewGormTrackingRepository(db *gorm.DB) *GormTrackingRepository {
	return &GormTrackingRepository{db: db}
}

// AppendEvent appends one entry to the shipment's event log.
func (r *GormTrackingRepository) AppendEvent(
	ctx context.Context,
	code kernel.TrackingCode,
	event shipment.Event,
) error {
	if err := code.Validate(); err != nil {
		return err
	}

	if err := event.Validate(); err != nil {
		return err
	}

	dto := eventFromDomain(code, event)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AppendStatusChange appends one entry to the shipment's status history.
func (r *GormTrackingRepository) AppendStatusChange(
	ctx context.Context,
	code kernel.TrackingCode,
	change shipment.StatusChange,
) error {
	if err := code.Validate(); err != nil {
		return err
	}

	if err := change.Validate(); err != nil {
		return err
	}

	dto := changeFromDomain(code, change)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetEvents returns the shipment's event log in append order.
func (r *GormTrackingRepository) GetEvents(
	ctx context.Context,
	code kernel.TrackingCode,
) ([]shipment.Event, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}

	var dtos []ShipmentEventDTO
	err := r.db.WithContext(ctx).
		Order("id").
		Find(&dtos, "tracking_code = ?", code.String()).Error
	if err != nil {
		return nil, err
	}

	events := make([]shipment.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, convErr := eventToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		events = append(events, event)
	}

	return events, nil
}

// GetStatusChanges returns the shipment's status history in append order.
func (r *GormTrackingRepository) GetStatusChanges(
	ctx context.Context,
	code kernel.TrackingCode,
) ([]shipment.StatusChange, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}

	var dtos []StatusChangeDTO
	err := r.db.WithContext(ctx).
		Order("id").
		Find(&dtos, "tracking_code = ?", code.String()).Error
	if err != nil {
		return nil, err
	}

	changes := make([]shipment.StatusChange, 0, len(dtos))
	for _, dto := range dtos {
		change, convErr := changeToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		changes = append(changes, change)
	}

	return changes, nil
}
