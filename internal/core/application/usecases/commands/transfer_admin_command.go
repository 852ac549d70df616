package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/guard"
)

var ErrTransferAdminCommandIsNotConstructed = errors.New(
	"TransferAdminCommand must be created via NewTransferAdminCommand constructor",
)

// TransferAdminCommand hands the registry admin role to another identity.
type TransferAdminCommand struct { //nolint:recvcheck //using for validation
	actor    kernel.UUID
	newAdmin kernel.UUID

	guard guard.ConstructorGuard
}

// NewTransferAdminCommand creates a command to transfer the admin role.
func NewTransferAdminCommand(actor, newAdmin kernel.UUID) (TransferAdminCommand, error) {
	cmd := TransferAdminCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		actor.Validate(),
		newAdmin.Validate(),
	); err != nil {
		return TransferAdminCommand{}, err
	}

	cmd.actor = actor
	cmd.newAdmin = newAdmin
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransferAdminCommand) Validate() error {
	return c.guard.Validate(ErrTransferAdminCommandIsNotConstructed)
}

// Actor returns the acting identity.
func (c TransferAdminCommand) Actor() kernel.UUID {
	return c.actor
}

// NewAdmin returns the identity receiving the admin role.
func (c TransferAdminCommand) NewAdmin() kernel.UUID {
	return c.newAdmin
}
