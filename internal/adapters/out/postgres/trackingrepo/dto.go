// Package trackingrepo persists the two append-only audit trails of a
// shipment: the event log and the status history. Rows are immutable once
// inserted; the auto-increment key preserves append order.
package trackingrepo

import (
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"

	"github.com/google/uuid"
)

// ShipmentEventDTO represents one row of the shipment event log.
type ShipmentEventDTO struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	TrackingCode string    `gorm:"size:64;index"`
	Location     string    `gorm:"not null"`
	EventType    string    `gorm:"not null"`
	ActorID      uuid.UUID `gorm:"type:uuid"`
	OccurredAt   time.Time
}

// TableName specifies the database table name for event log entries.
func (ShipmentEventDTO) TableName() string {
	return "shipment_events"
}

// StatusChangeDTO represents one row of the shipment status history.
type StatusChangeDTO struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	TrackingCode string    `gorm:"size:64;index"`
	OldStatus    int
	NewStatus    int
	ActorID      uuid.UUID `gorm:"type:uuid"`
	Note         string
	OccurredAt   time.Time
}

// TableName specifies the database table name for status history entries.
func (StatusChangeDTO) TableName() string {
	return "status_changes"
}

func eventFromDomain(code kernel.TrackingCode, event shipment.Event) ShipmentEventDTO {
	return ShipmentEventDTO{
		TrackingCode: code.String(),
		Location:     event.Location(),
		EventType:    event.EventType(),
		ActorID:      event.Actor().Bytes(),
		OccurredAt:   event.OccurredAt(),
	}
}

func eventToDomain(dto ShipmentEventDTO) (shipment.Event, error) {
	actor, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return shipment.Event{}, err
	}

	return shipment.NewEvent(dto.Location, dto.EventType, dto.OccurredAt, actor)
}

func changeFromDomain(code kernel.TrackingCode, change shipment.StatusChange) StatusChangeDTO {
	return StatusChangeDTO{
		TrackingCode: code.String(),
		OldStatus:    int(change.OldStatus()),
		NewStatus:    int(change.NewStatus()),
		ActorID:      change.Actor().Bytes(),
		Note:         change.Note(),
		OccurredAt:   change.OccurredAt(),
	}
}

func changeToDomain(dto StatusChangeDTO) (shipment.StatusChange, error) {
	actor, err := kernel.UUIDFromBytes(dto.ActorID[:])
	if err != nil {
		return shipment.StatusChange{}, err
	}

	return shipment.NewStatusChange(
		shipment.Status(dto.OldStatus),
		shipment.Status(dto.NewStatus),
		dto.OccurredAt,
		actor,
		dto.Note,
	)
}
