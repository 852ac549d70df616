package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/shipment"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrAddShipmentEventCommandIsNotConstructed = errors.New(
	"AddShipmentEventCommand must be created via NewAddShipmentEventCommand constructor",
)

// AddShipmentEventCommand appends one operational event to a shipment's
// event log. The event kind selects the authorization predicate; appending
// never changes the lifecycle status.
type AddShipmentEventCommand struct { //nolint:recvcheck //using for validation
	trackingCode kernel.TrackingCode
	actor        kernel.UUID
	kind         shipment.EventKind
	location     string
	eventType    string

	guard guard.ConstructorGuard
}

// NewAddShipmentEventCommand creates a command to append an operational event.
// Location and event type must be non-empty and the kind must be a member of
// the closed kind set.
func NewAddShipmentEventCommand(
	trackingCode kernel.TrackingCode,
	actor kernel.UUID,
	kind shipment.EventKind,
	location string,
	eventType string,
) (AddShipmentEventCommand, error) {
	cmd := AddShipmentEventCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		trackingCode.Validate(),
		actor.Validate(),
		kind.Validate(),
		cmd.setStrings(location, eventType),
	); err != nil {
		return AddShipmentEventCommand{}, err
	}

	cmd.trackingCode = trackingCode
	cmd.actor = actor
	cmd.kind = kind
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddShipmentEventCommand) Validate() error {
	return c.guard.Validate(ErrAddShipmentEventCommandIsNotConstructed)
}

// TrackingCode returns the shipment identifier.
func (c AddShipmentEventCommand) TrackingCode() kernel.TrackingCode {
	return c.trackingCode
}

// Actor returns the acting identity.
func (c AddShipmentEventCommand) Actor() kernel.UUID {
	return c.actor
}

// Kind returns the event category.
func (c AddShipmentEventCommand) Kind() shipment.EventKind {
	return c.kind
}

// Location returns the reported location.
func (c AddShipmentEventCommand) Location() string {
	return c.location
}

// EventType returns the reported event type.
func (c AddShipmentEventCommand) EventType() string {
	return c.eventType
}

func (c *AddShipmentEventCommand) setStrings(location, eventType string) error {
	if location == "" {
		return errs.NewValueIsRequiredError("location")
	}
	if eventType == "" {
		return errs.NewValueIsRequiredError("eventType")
	}

	c.location = location
	c.eventType = eventType
	return nil
}
