package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrConfirmWarehouseCommandIsNotConstructed = errors.New(
	"ConfirmWarehouseCommand must be created via NewConfirmWarehouseCommand constructor",
)

// ConfirmWarehouseCommand records warehouse intake confirmation by the
// assigned warehouse manager.
type ConfirmWarehouseCommand struct { //nolint:recvcheck //using for validation
	trackingCode kernel.TrackingCode
	actor        kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmWarehouseCommand creates a command to confirm warehouse intake.
func NewConfirmWarehouseCommand(trackingCode kernel.TrackingCode, actor kernel.UUID) (ConfirmWarehouseCommand, error) {
	cmd := ConfirmWarehouseCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		trackingCode.Validate(),
		actor.Validate(),
	); err != nil {
		return ConfirmWarehouseCommand{}, err
	}

	cmd.trackingCode = trackingCode
	cmd.actor = actor
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmWarehouseCommand) Validate() error {
	return c.guard.Validate(ErrConfirmWarehouseCommandIsNotConstructed)
}

// TrackingCode returns the shipment identifier.
func (c ConfirmWarehouseCommand) TrackingCode() kernel.TrackingCode {
	return c.trackingCode
}

// Actor returns the acting identity.
func (c ConfirmWarehouseCommand) Actor() kernel.UUID {
	return c.actor
}
