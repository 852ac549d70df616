package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrSetAuthorizedCommandIsNotConstructed = errors.New(
	"SetAuthorizedCommand must be created via NewSetAuthorizedCommand constructor",
)

// SetAuthorizedCommand toggles an identity's membership in one of the two
// authorization registry allow-lists. Admin only.
type SetAuthorizedCommand struct { //nolint:recvcheck //using for validation
	actor       kernel.UUID
	identity    kernel.UUID
	isInspector bool
	enabled     bool

	guard guard.ConstructorGuard
}

// NewSetAuthorizedCommand creates a command to toggle allow-list membership.
func NewSetAuthorizedCommand(actor, identity kernel.UUID, isInspector, enabled bool) (SetAuthorizedCommand, error) {
	cmd := SetAuthorizedCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		identity.Validate(),
	); err != nil {
		return SetAuthorizedCommand{}, err
	}

	cmd.actor = actor
	cmd.identity = identity
	cmd.isInspector = isInspector
	cmd.enabled = enabled
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetAuthorizedCommand) Validate() error {
	return c.guard.Validate(ErrSetAuthorizedCommandIsNotConstructed)
}

// Actor returns the acting identity.
func (c SetAuthorizedCommand) Actor() kernel.UUID {
	return c.actor
}

// Identity returns the identity whose membership is toggled.
func (c SetAuthorizedCommand) Identity() kernel.UUID {
	return c.identity
}

// IsInspector reports whether the inspector allow-list is targeted.
func (c SetAuthorizedCommand) IsInspector() bool {
	return c.isInspector
}

// Enabled reports whether membership is granted or revoked.
func (c SetAuthorizedCommand) Enabled() bool {
	return c.enabled
}
