package shipmentrepo

import (
	"context"
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// uniqueViolation is the PostgreSQL error code for unique constraint failures.
const uniqueViolation = "23505"

// GormShipmentRepository implements ShipmentRepository using GORM.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id string, aggregate any)
}

// NewGormShipmentRepository creates a new GORM shipment repository.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shipment to the database.
// A tracking code collision surfaces as an ObjectAlreadyExists error.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errs.NewObjectAlreadyExistsError("shipment", dto.TrackingCode)
		}
		return err
	}

	aggregate.MarkStored()
	r.tracker.TrackAggregate(dto.TrackingCode, aggregate)
	return nil
}

// Update saves an existing shipment to the database.
// Writes every column so cleared flags and zero values persist. The WHERE
// clause pins status and flags to the values the aggregate was loaded with,
// so a concurrent writer that already advanced the state machine makes this
// update affect zero rows instead of silently overwriting.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	storedFlags := aggregate.StoredFlags()
	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where(`tracking_code = ? AND status = ?
			AND warehouse_confirmed = ? AND quality_approved = ? AND receiver_confirmed = ?
			AND escrow_released = ? AND escrow_refunded = ? AND rated = ? AND disputed = ?`,
			dto.TrackingCode,
			int(aggregate.StoredStatus()),
			storedFlags.WarehouseConfirmed,
			storedFlags.QualityApproved,
			storedFlags.ReceiverConfirmed,
			storedFlags.EscrowReleased,
			storedFlags.EscrowRefunded,
			storedFlags.Rated,
			storedFlags.Disputed,
		).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&ShipmentDTO{}).
			Where("tracking_code = ?", dto.TrackingCode).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("shipment", dto.TrackingCode)
		}
		return errs.NewInvalidStateError("shipment was modified concurrently")
	}

	aggregate.MarkStored()
	r.tracker.TrackAggregate(dto.TrackingCode, aggregate)
	return nil
}

// Get retrieves a shipment by tracking code.
func (r *GormShipmentRepository) Get(ctx context.Context, code kernel.TrackingCode) (*shipment.Shipment, error) {
	if err := code.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := r.db.WithContext(ctx).First(&dto, "tracking_code = ?", code.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment", code.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
