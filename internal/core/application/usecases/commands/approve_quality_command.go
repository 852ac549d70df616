package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrApproveQualityCommandIsNotConstructed = errors.New(
	"ApproveQualityCommand must be created via NewApproveQualityCommand constructor",
)

// ApproveQualityCommand records quality approval by the assigned quality
// inspector.
type ApproveQualityCommand struct { //nolint:recvcheck //using for validation
	trackingCode kernel.TrackingCode
	actor        kernel.UUID

	guard guard.ConstructorGuard
}

// NewApproveQualityCommand creates a command to approve shipment quality.
func NewApproveQualityCommand(trackingCode kernel.TrackingCode, actor kernel.UUID) (ApproveQualityCommand, error) {
	cmd := ApproveQualityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		trackingCode.Validate(),
		actor.Validate(),
	); err != nil {
		return ApproveQualityCommand{}, err
	}

	cmd.trackingCode = trackingCode
	cmd.actor = actor
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApproveQualityCommand) Validate() error {
	return c.guard.Validate(ErrApproveQualityCommandIsNotConstructed)
}

// TrackingCode returns the shipment identifier.
func (c ApproveQualityCommand) TrackingCode() kernel.TrackingCode {
	return c.trackingCode
}

// Actor returns the acting identity.
func (c ApproveQualityCommand) Actor() kernel.UUID {
	return c.actor
}
