package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand records delivery confirmation by the creator
// (receiver), which releases the held deposit to the carrier.
type ConfirmDeliveryCommand struct { //nolint:recvcheck //using for validation
	trackingCode kernel.TrackingCode
	actor        kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmDeliveryCommand creates a command to confirm delivery.
func NewConfirmDeliveryCommand(trackingCode kernel.TrackingCode, actor kernel.UUID) (ConfirmDeliveryCommand, error) {
	cmd := ConfirmDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		trackingCode.Validate(),
		actor.Validate(),
	); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	cmd.trackingCode = trackingCode
	cmd.actor = actor
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

// TrackingCode returns the shipment identifier.
func (c ConfirmDeliveryCommand) TrackingCode() kernel.TrackingCode {
	return c.trackingCode
}

// Actor returns the acting identity.
func (c ConfirmDeliveryCommand) Actor() kernel.UUID {
	return c.actor
}
