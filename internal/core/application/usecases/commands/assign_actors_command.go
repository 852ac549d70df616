package commands

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
	"freight/internal/pkg/guard"
)

var (
	ErrAssignActorsCommandIsNotConstructed = errors.New(
		"AssignActorsCommand must be created via NewAssignActorsCommand constructor",
	)
	ErrNoRoleSupplied = errors.New("at least one of manager or inspector must be supplied")
)

// AssignActorsCommand assigns the warehouse manager and/or the quality
// inspector of a shipment. Either role may be omitted; supplying neither is
// rejected. Both identities must be on the matching authorization registry
// allow-list at assignment time.
type AssignActorsCommand struct { //nolint:recvcheck //using for validation
	trackingCode kernel.TrackingCode
	actor        kernel.UUID
	manager      *kernel.UUID
	inspector    *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignActorsCommand creates a command to assign workflow roles.
func NewAssignActorsCommand(
	trackingCode kernel.TrackingCode,
	actor kernel.UUID,
	manager *kernel.UUID,
	inspector *kernel.UUID,
) (AssignActorsCommand, error) {
	cmd := AssignActorsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTrackingCode(trackingCode),
		cmd.setActor(actor),
		cmd.setRoles(manager, inspector),
	); err != nil {
		return AssignActorsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignActorsCommand) Validate() error {
	return c.guard.Validate(ErrAssignActorsCommandIsNotConstructed)
}

// TrackingCode returns the shipment identifier.
func (c AssignActorsCommand) TrackingCode() kernel.TrackingCode {
	return c.trackingCode
}

// Actor returns the acting identity.
func (c AssignActorsCommand) Actor() kernel.UUID {
	return c.actor
}

// Manager returns the warehouse manager to assign, or nil.
func (c AssignActorsCommand) Manager() *kernel.UUID {
	return c.manager
}

// Inspector returns the quality inspector to assign, or nil.
func (c AssignActorsCommand) Inspector() *kernel.UUID {
	return c.inspector
}

func (c *AssignActorsCommand) setTrackingCode(trackingCode kernel.TrackingCode) error {
	if err := trackingCode.Validate(); err != nil {
		return err
	}
	c.trackingCode = trackingCode
	return nil
}

func (c *AssignActorsCommand) setActor(actor kernel.UUID) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *AssignActorsCommand) setRoles(manager, inspector *kernel.UUID) error {
	if manager == nil && inspector == nil {
		return ErrNoRoleSupplied
	}
	if manager != nil {
		if err := manager.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("manager", err)
		}
	}
	if inspector != nil {
		if err := inspector.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause("inspector", err)
		}
	}

	c.manager = manager
	c.inspector = inspector
	return nil
}
