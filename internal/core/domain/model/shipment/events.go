package shipment

import (
	"errors"
	"fmt"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

// Fixed location labels recorded by the confirmation transitions.
const (
	LocationWarehouse      = "Warehouse"
	LocationQualityControl = "Quality Control"
)

// Event types recorded by the confirmation transitions.
const (
	EventTypeWarehouseConfirmed = "warehouse_confirmed"
	EventTypeQualityApproved    = "quality_approved"
)

var (
	// ErrEventIsNotConstructed is returned when a ShipmentEvent was not created
	// via NewEvent.
	ErrEventIsNotConstructed = errors.New("ShipmentEvent must be created via NewEvent constructor")

	// ErrStatusChangeIsNotConstructed is returned when a StatusChange was not
	// created via NewStatusChange.
	ErrStatusChangeIsNotConstructed = errors.New("StatusChange must be created via NewStatusChange constructor")
)

// Event is one immutable entry of a shipment's append-only event log.
// Ordering is append order; entries are never modified or deleted.
type Event struct {
	location   string
	eventType  string
	occurredAt time.Time
	actor      kernel.UUID

	guard guard.ConstructorGuard
}

// NewEvent creates a validated event log entry.
// Location and eventType must be non-empty; actor must be a valid identity.
func NewEvent(location, eventType string, occurredAt time.Time, actor kernel.UUID) (Event, error) {
	if location == "" {
		return Event{}, errs.NewValueIsRequiredError("location")
	}
	if eventType == "" {
		return Event{}, errs.NewValueIsRequiredError("eventType")
	}
	if err := actor.Validate(); err != nil {
		return Event{}, err
	}
	if occurredAt.IsZero() {
		return Event{}, errs.NewValueIsRequiredError("occurredAt")
	}

	return Event{
		location:   location,
		eventType:  eventType,
		occurredAt: occurredAt,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Location returns the recorded location label.
func (e Event) Location() string { return e.location }

// EventType returns the recorded event type string.
func (e Event) EventType() string { return e.eventType }

// OccurredAt returns the event timestamp.
func (e Event) OccurredAt() time.Time { return e.occurredAt }

// Actor returns the identity that recorded the event.
func (e Event) Actor() kernel.UUID { return e.actor }

// Validate ensures the event was created through the constructor.
func (e Event) Validate() error {
	return e.guard.Validate(ErrEventIsNotConstructed)
}

// StatusChange is one immutable entry of a shipment's status history.
// Exactly one entry is appended per accepted state transition, including the
// synthetic "created" entry at creation time.
type StatusChange struct {
	oldStatus  Status
	newStatus  Status
	occurredAt time.Time
	actor      kernel.UUID
	note       string

	guard guard.ConstructorGuard
}

// NewStatusChange creates a validated status history entry.
// The old status may be Unknown only for the synthetic creation entry.
func NewStatusChange(oldStatus, newStatus Status, occurredAt time.Time, actor kernel.UUID, note string) (StatusChange, error) {
	if err := newStatus.Validate(); err != nil {
		return StatusChange{}, err
	}
	if err := actor.Validate(); err != nil {
		return StatusChange{}, err
	}
	if occurredAt.IsZero() {
		return StatusChange{}, errs.NewValueIsRequiredError("occurredAt")
	}

	return StatusChange{
		oldStatus:  oldStatus,
		newStatus:  newStatus,
		occurredAt: occurredAt,
		actor:      actor,
		note:       note,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// OldStatus returns the status before the transition.
func (c StatusChange) OldStatus() Status { return c.oldStatus }

// NewStatus returns the status after the transition.
func (c StatusChange) NewStatus() Status { return c.newStatus }

// OccurredAt returns the transition timestamp.
func (c StatusChange) OccurredAt() time.Time { return c.occurredAt }

// Actor returns the identity that performed the transition.
func (c StatusChange) Actor() kernel.UUID { return c.actor }

// Note returns the free-form transition note.
func (c StatusChange) Note() string { return c.note }

// Validate ensures the status change was created through the constructor.
func (c StatusChange) Validate() error {
	return c.guard.Validate(ErrStatusChangeIsNotConstructed)
}

// EventKind is the closed set of operational event categories. Each kind
// carries its own authorization predicate, replacing the numeric role/opType
// fan-out of earlier designs. Appending an event never changes the shipment
// status.
type EventKind int

const (
	// EventKindUnknown represents an invalid or undefined kind.
	EventKindUnknown EventKind = iota

	// EventKindWarehouse is an inspection event recorded by the warehouse
	// manager.
	EventKindWarehouse

	// EventKindQuality is an inspection event recorded by the quality
	// inspector.
	EventKindQuality

	// EventKindTransit is a transit event recorded by the carrier; allowed
	// only while the shipment is InTransit.
	EventKindTransit

	// EventKindGeneric is a generic operational event recorded by the admin,
	// the carrier, the warehouse manager or the quality inspector.
	EventKindGeneric

	// EventKindLocation is a location update; same actor set as
	// EventKindGeneric.
	EventKindLocation
)

func getEventKindStrings() map[EventKind]string {
	return map[EventKind]string{
		EventKindUnknown:   "Unknown",
		EventKindWarehouse: "Warehouse",
		EventKindQuality:   "Quality",
		EventKindTransit:   "Transit",
		EventKindGeneric:   "Generic",
		EventKindLocation:  "Location",
	}
}

// EventKindFromString parses a kind name as produced by String.
func EventKindFromString(s string) (EventKind, error) {
	for kind, name := range getEventKindStrings() {
		if kind != EventKindUnknown && name == s {
			return kind, nil
		}
	}
	return EventKindUnknown, errs.NewValueIsInvalidErrorWithCause("eventKind",
		fmt.Errorf("%q is not a valid event kind", s))
}

// Validate checks that the kind is a member of the closed set.
func (k EventKind) Validate() error {
	switch k {
	case EventKindWarehouse, EventKindQuality, EventKindTransit, EventKindGeneric, EventKindLocation:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("eventKind", fmt.Errorf("%d is not a valid event kind", k))
	}
}

// String returns the human-readable name of the kind.
func (k EventKind) String() string {
	if str, ok := getEventKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

// Authorize checks whether actor may append an event of this kind to the
// given shipment. isAdmin reports whether actor is the registry admin.
func (k EventKind) Authorize(s *Shipment, actor kernel.UUID, isAdmin bool) error {
	switch k {
	case EventKindWarehouse:
		if s.WarehouseManager() == nil || !actor.IsEqual(*s.WarehouseManager()) {
			return errs.NewUnauthorizedError("warehouse manager")
		}
		return nil

	case EventKindQuality:
		if s.QualityInspector() == nil || !actor.IsEqual(*s.QualityInspector()) {
			return errs.NewUnauthorizedError("quality inspector")
		}
		return nil

	case EventKindTransit:
		if !actor.IsEqual(s.Carrier()) {
			return errs.NewUnauthorizedError("carrier")
		}
		if s.Status() != InTransit {
			return errs.NewInvalidStateError("shipment is not in transit")
		}
		return nil

	case EventKindGeneric, EventKindLocation:
		if isAdmin || actor.IsEqual(s.Carrier()) {
			return nil
		}
		if s.WarehouseManager() != nil && actor.IsEqual(*s.WarehouseManager()) {
			return nil
		}
		if s.QualityInspector() != nil && actor.IsEqual(*s.QualityInspector()) {
			return nil
		}
		return errs.NewUnauthorizedError("admin, carrier, warehouse manager or quality inspector")

	default:
		return errs.NewValueIsInvalidErrorWithCause("eventKind", fmt.Errorf("%d is not a valid event kind", k))
	}
}
