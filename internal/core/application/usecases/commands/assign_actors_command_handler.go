package commands

import (
	"context"

	"freight/internal/pkg/errs"
)

// AssignActorsCommandHandler handles warehouse manager and quality inspector
// assignment. Only the shipment creator or the registry admin may assign
// roles, and each identity must be on the matching allow-list at assignment
// time. Roles are re-assignable while the shipment is not terminal.
type AssignActorsCommandHandler struct {
	uowFactory ActorsUoWFactory
}

// NewAssignActorsCommandHandler creates a handler for role assignment.
func NewAssignActorsCommandHandler(uowFactory ActorsUoWFactory) AssignActorsCommandHandler {
	return AssignActorsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the role assignment command.
func (h *AssignActorsCommandHandler) Handle(ctx context.Context, cmd AssignActorsCommand) error {
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

	aggregate, err := uow.ShipmentRepository().Get(ctx, cmd.TrackingCode())
	if err != nil {
		return err
	}

	if !cmd.Actor().IsEqual(aggregate.Creator()) && !reg.IsAdmin(cmd.Actor()) {
		return errs.NewUnauthorizedError("creator or admin")
	}

	if manager := cmd.Manager(); manager != nil {
		if !reg.IsManager(*manager) {
			return errs.NewUnauthorizedErrorWithCause("warehouse manager",
				errs.NewValueIsInvalidError("manager is not on the allow-list"))
		}
		if err = aggregate.AssignWarehouseManager(*manager); err != nil {
			return err
		}
	}

	if inspector := cmd.Inspector(); inspector != nil {
		if !reg.IsInspector(*inspector) {
			return errs.NewUnauthorizedErrorWithCause("quality inspector",
				errs.NewValueIsInvalidError("inspector is not on the allow-list"))
		}
		if err = aggregate.AssignQualityInspector(*inspector); err != nil {
			return err
		}
	}

	if err = uow.ShipmentRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
