package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrCancelShipmentCommandIsNotConstructed = errors.New(
	"CancelShipmentCommand must be created via NewCancelShipmentCommand constructor",
)

// CancelShipmentCommand cancels a non-terminal shipment and refunds the held
// deposit to the creator. Admin only.
type CancelShipmentCommand struct { //nolint:recvcheck //using for validation
	trackingCode kernel.TrackingCode
	actor        kernel.UUID
	reason       string

	guard guard.ConstructorGuard
}

// NewCancelShipmentCommand creates a command to cancel a shipment.
// The cancellation reason must be non-empty.
func NewCancelShipmentCommand(trackingCode kernel.TrackingCode, actor kernel.UUID, reason string) (CancelShipmentCommand, error) {
	cmd := CancelShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		trackingCode.Validate(),
		actor.Validate(),
		cmd.setReason(reason),
	); err != nil {
		return CancelShipmentCommand{}, err
	}

	cmd.trackingCode = trackingCode
	cmd.actor = actor
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCancelShipmentCommandIsNotConstructed)
}

// TrackingCode returns the shipment identifier.
func (c CancelShipmentCommand) TrackingCode() kernel.TrackingCode {
	return c.trackingCode
}

// Actor returns the acting identity.
func (c CancelShipmentCommand) Actor() kernel.UUID {
	return c.actor
}

// Reason returns the cancellation reason.
func (c CancelShipmentCommand) Reason() string {
	return c.reason
}

func (c *CancelShipmentCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	c.reason = reason
	return nil
}
