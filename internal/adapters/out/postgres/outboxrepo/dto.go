// Package outboxrepo persists the transactional outbox. Integration events
// are stored in the same transaction as the state change that produced them
// and relayed to the broker at least once by a background job.
package outboxrepo

import (
	"encoding/json"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/core/ports"

	"github.com/google/uuid"
)

// OutboxMessageDTO represents one stored integration event. Payload holds the
// JSON-encoded event body; PublishedAt is null until the relay job confirms
// broker delivery.
type OutboxMessageDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventName    string    `gorm:"not null"`
	TrackingCode string    `gorm:"size:64;index"`
	Payload      []byte    `gorm:"type:jsonb"`
	CreatedAt    time.Time
	PublishedAt  *time.Time `gorm:"index"`
}

// TableName specifies the database table name for outbox messages.
func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

// messageBody is the wire shape of a relayed event.
type messageBody struct {
	Name         string         `json:"name"`
	TrackingCode string         `json:"trackingCode"`
	OccurredAt   time.Time      `json:"occurredAt"`
	Payload      map[string]any `json:"payload"`
}

func fromDomain(event shipment.DomainEvent) (OutboxMessageDTO, error) {
	payload, err := json.Marshal(messageBody{
		Name:         event.Name,
		TrackingCode: event.TrackingCode,
		OccurredAt:   event.OccurredAt,
		Payload:      event.Payload,
	})
	if err != nil {
		return OutboxMessageDTO{}, err
	}

	return OutboxMessageDTO{
		ID:           kernel.NewUUID().Bytes(),
		EventName:    event.Name,
		TrackingCode: event.TrackingCode,
		Payload:      payload,
		CreatedAt:    event.OccurredAt,
	}, nil
}

func toMessage(dto OutboxMessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:           id,
		EventName:    dto.EventName,
		TrackingCode: dto.TrackingCode,
		Payload:      dto.Payload,
		CreatedAt:    dto.CreatedAt,
		PublishedAt:  dto.PublishedAt,
	}, nil
}
