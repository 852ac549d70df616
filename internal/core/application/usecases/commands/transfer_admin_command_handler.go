package commands

import (
	"context"
)

// TransferAdminCommandHandler handles admin role handover.
type TransferAdminCommandHandler struct {
	uowFactory RegistryUoWFactory
}

// NewTransferAdminCommandHandler creates a handler for admin handover.
func NewTransferAdminCommandHandler(uowFactory RegistryUoWFactory) TransferAdminCommandHandler {
	return TransferAdminCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the admin handover command.
func (h *TransferAdminCommandHandler) Handle(ctx context.Context, cmd TransferAdminCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	reg, err := uow.RegistryRepository().Get(ctx)
	if err != nil {
		return err
	}

	if err = reg.TransferAdmin(cmd.Actor(), cmd.NewAdmin()); err != nil {
		return err
	}

	if err = uow.RegistryRepository().Save(ctx, reg); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
