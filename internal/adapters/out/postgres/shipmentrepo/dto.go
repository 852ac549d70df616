// Package shipmentrepo provides data transfer objects and mapping functions for shipment persistence.
// This package implements the repository pattern for the shipment domain aggregate, handling
// the conversion between domain entities and database representations.
package shipmentrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentDTO represents the database structure for persisting shipment aggregates.
// The tracking code is the natural primary key; confirmation flags are stored as
// individual columns so the escrow watchdog can scan them with plain SQL.
type ShipmentDTO struct {
	TrackingCode       string     `gorm:"primaryKey;size:64"`
	ProductName        string     `gorm:"not null"`
	Origin             string     `gorm:"not null"`
	Destination        string     `gorm:"not null"`
	CreatorID          uuid.UUID  `gorm:"type:uuid;index"`
	CarrierID          uuid.UUID  `gorm:"type:uuid;index"`
	WarehouseManagerID *uuid.UUID `gorm:"type:uuid"`
	QualityInspectorID *uuid.UUID `gorm:"type:uuid"`
	Status             int        `gorm:"index"`
	WarehouseConfirmed bool
	QualityApproved    bool
	ReceiverConfirmed  bool
	EscrowReleased     bool
	EscrowRefunded     bool
	Rated              bool
	Disputed           bool
	DepositAmount      int64
	ShippingFee        int64
	Rating             int
	Feedback           string
	DisputeReason      string
	CreatedAt          time.Time
}

// TableName specifies the database table name for shipment entities.
// Overrides GORM's default naming convention to use "shipments".
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// fromDomain converts a shipment domain aggregate to its database representation.
func fromDomain(aggregate *shipment.Shipment) ShipmentDTO {
	var managerID, inspectorID *uuid.UUID
	if id := aggregate.WarehouseManager(); id != nil {
		raw := id.Bytes()
		managerID = &raw
	}
	if id := aggregate.QualityInspector(); id != nil {
		raw := id.Bytes()
		inspectorID = &raw
	}

	flags := aggregate.Flags()

	return ShipmentDTO{
		TrackingCode:       aggregate.TrackingCode().String(),
		ProductName:        aggregate.ProductName(),
		Origin:             aggregate.Origin(),
		Destination:        aggregate.Destination(),
		CreatorID:          aggregate.Creator().Bytes(),
		CarrierID:          aggregate.Carrier().Bytes(),
		WarehouseManagerID: managerID,
		QualityInspectorID: inspectorID,
		Status:             int(aggregate.Status()),
		WarehouseConfirmed: flags.WarehouseConfirmed,
		QualityApproved:    flags.QualityApproved,
		ReceiverConfirmed:  flags.ReceiverConfirmed,
		EscrowReleased:     flags.EscrowReleased,
		EscrowRefunded:     flags.EscrowRefunded,
		Rated:              flags.Rated,
		Disputed:           flags.Disputed,
		DepositAmount:      aggregate.DepositAmount(),
		ShippingFee:        aggregate.ShippingFee(),
		Rating:             aggregate.Rating(),
		Feedback:           aggregate.Feedback(),
		DisputeReason:      aggregate.DisputeReason(),
		CreatedAt:          aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a shipment domain aggregate.
// Reconstructs the complete aggregate including flags using RestoreShipment.
func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	code, err := kernel.NewTrackingCode(dto.TrackingCode)
	if err != nil {
		return nil, err
	}

	creator, err := kernel.UUIDFromBytes(dto.CreatorID[:])
	if err != nil {
		return nil, err
	}

	carrier, err := kernel.UUIDFromBytes(dto.CarrierID[:])
	if err != nil {
		return nil, err
	}

	var manager *kernel.UUID
	if dto.WarehouseManagerID != nil {
		id, managerErr := kernel.UUIDFromBytes((*dto.WarehouseManagerID)[:])
		if managerErr != nil {
			return nil, managerErr
		}
		manager = &id
	}

	var inspector *kernel.UUID
	if dto.QualityInspectorID != nil {
		id, inspectorErr := kernel.UUIDFromBytes((*dto.QualityInspectorID)[:])
		if inspectorErr != nil {
			return nil, inspectorErr
		}
		inspector = &id
	}

	return shipment.RestoreShipment(
		code,
		dto.ProductName,
		dto.Origin,
		dto.Destination,
		creator,
		carrier,
		manager,
		inspector,
		shipment.Status(dto.Status),
		shipment.Flags{
			WarehouseConfirmed: dto.WarehouseConfirmed,
			QualityApproved:    dto.QualityApproved,
			ReceiverConfirmed:  dto.ReceiverConfirmed,
			EscrowReleased:     dto.EscrowReleased,
			EscrowRefunded:     dto.EscrowRefunded,
			Rated:              dto.Rated,
			Disputed:           dto.Disputed,
		},
		dto.ShippingFee,
		dto.DepositAmount,
		dto.Rating,
		dto.Feedback,
		dto.DisputeReason,
		dto.CreatedAt,
	)
}
