package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var ErrRaiseDisputeCommandIsNotConstructed = errors.New(
	"RaiseDisputeCommand must be created via NewRaiseDisputeCommand constructor",
)

// RaiseDisputeCommand opens a dispute on a shipment that has not reached a
// terminal status. Only the
// creator or the carrier may raise one, and only one dispute can be open at
// a time.
type RaiseDisputeCommand struct { //nolint:recvcheck //using for validation
	trackingCode kernel.TrackingCode
	actor        kernel.UUID
	reason       string

	guard guard.ConstructorGuard
}

// NewRaiseDisputeCommand creates a command to raise a dispute.
// The reason must be non-empty.
func NewRaiseDisputeCommand(trackingCode kernel.TrackingCode, actor kernel.UUID, reason string) (RaiseDisputeCommand, error) {
	cmd := RaiseDisputeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		trackingCode.Validate(),
		actor.Validate(),
		cmd.setReason(reason),
	); err != nil {
		return RaiseDisputeCommand{}, err
	}

	cmd.trackingCode = trackingCode
	cmd.actor = actor
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RaiseDisputeCommand) Validate() error {
	return c.guard.Validate(ErrRaiseDisputeCommandIsNotConstructed)
}

// TrackingCode returns the shipment identifier.
func (c RaiseDisputeCommand) TrackingCode() kernel.TrackingCode {
	return c.trackingCode
}

// Actor returns the acting identity.
func (c RaiseDisputeCommand) Actor() kernel.UUID {
	return c.actor
}

// Reason returns the dispute reason.
func (c RaiseDisputeCommand) Reason() string {
	return c.reason
}

func (c *RaiseDisputeCommand) setReason(reason string) error {
	if reason == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	c.reason = reason
	return nil
}
