package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrResolveDisputeCommandIsNotConstructed = errors.New(
	"ResolveDisputeCommand must be created via NewResolveDisputeCommand constructor",
)

// ResolveDisputeCommand closes an open dispute, forcing the terminal outcome:
// favorCreator selects cancellation with refund, otherwise delivery with
// release. Admin only.
type ResolveDisputeCommand struct { //nolint:recvcheck //using for validation
	trackingCode kernel.TrackingCode
	actor        kernel.UUID
	favorCreator bool

	guard guard.ConstructorGuard
}

// NewResolveDisputeCommand creates a command to resolve a dispute.
func NewResolveDisputeCommand(trackingCode kernel.TrackingCode, actor kernel.UUID, favorCreator bool) (ResolveDisputeCommand, error) {
	cmd := ResolveDisputeCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		trackingCode.Validate(),
		actor.Validate(),
	); err != nil {
		return ResolveDisputeCommand{}, err
	}

	cmd.trackingCode = trackingCode
	cmd.actor = actor
	cmd.favorCreator = favorCreator
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveDisputeCommand) Validate() error {
	return c.guard.Validate(ErrResolveDisputeCommandIsNotConstructed)
}

// TrackingCode returns the shipment identifier.
func (c ResolveDisputeCommand) TrackingCode() kernel.TrackingCode {
	return c.trackingCode
}

// Actor returns the acting identity.
func (c ResolveDisputeCommand) Actor() kernel.UUID {
	return c.actor
}

// FavorCreator reports whether the resolution favors the creator.
func (c ResolveDisputeCommand) FavorCreator() bool {
	return c.favorCreator
}
