package commands

import (
	"context"
)

// SetAuthorizedCommandHandler handles allow-list membership changes in the
// authorization registry.
type SetAuthorizedCommandHandler struct {
	uowFactory RegistryUoWFactory
}

// NewSetAuthorizedCommandHandler creates a handler for allow-list changes.
func NewSetAuthorizedCommandHandler(uowFactory RegistryUoWFactory) SetAuthorizedCommandHandler {
	return SetAuthorizedCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the allow-list change command.
func (h *SetAuthorizedCommandHandler) Handle(ctx context.Context, cmd SetAuthorizedCommand) error {
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

	if err = reg.SetAuthorized(cmd.Actor(), cmd.Identity(), cmd.IsInspector(), cmd.Enabled()); err != nil {
		return err
	}

	if err = uow.RegistryRepository().Save(ctx, reg); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
