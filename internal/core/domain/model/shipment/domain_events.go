package shipment

import (
	"time"

	"freight/internal/pkg/errs"
)

// Names of the integration events emitted by shipment operations. Events are
// written to the transactional outbox together with the state change and
// relayed to the message broker by a background job.
const (
	EventShipmentCreated     = "ShipmentCreated"
	EventConfirmationUpdated = "ConfirmationUpdated"
	EventShipmentEventAdded  = "ShipmentEventAdded"
	EventShipmentDelivered   = "ShipmentDelivered"
	EventShipmentCancelled   = "ShipmentCancelled"
	EventCarrierRated        = "CarrierRated"
	EventDisputeRaised       = "DisputeRaised"
	EventDisputeResolved     = "DisputeResolved"
	EventEscrowReleased      = "EscrowReleased"
	EventEscrowRefunded      = "EscrowRefunded"
)

// DomainEvent is an integration event destined for the outbox. The tracking
// code doubles as the partitioning key so all events of one shipment stay
// ordered on the broker.
type DomainEvent struct {
	Name         string
	TrackingCode string
	OccurredAt   time.Time
	Payload      map[string]any
}

// NewDomainEvent creates a validated integration event.
func NewDomainEvent(name string, trackingCode string, occurredAt time.Time, payload map[string]any) (DomainEvent, error) {
	if name == "" {
		return DomainEvent{}, errs.NewValueIsRequiredError("name")
	}
	if trackingCode == "" {
		return DomainEvent{}, errs.NewValueIsRequiredError("trackingCode")
	}
	if occurredAt.IsZero() {
		return DomainEvent{}, errs.NewValueIsRequiredError("occurredAt")
	}
	if payload == nil {
		payload = map[string]any{}
	}

	return DomainEvent{
		Name:         name,
		TrackingCode: trackingCode,
		OccurredAt:   occurredAt,
		Payload:      payload,
	}, nil
}
