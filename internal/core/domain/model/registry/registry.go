package registry

import (
	"errors"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"
)

// ErrRegistryIsNotConstructed is returned when a Registry instance was not
// created through NewRegistry or RestoreRegistry.
var ErrRegistryIsNotConstructed = errors.New("Registry must be created via NewRegistry constructor")

// Registry is the authorization registry aggregate: it holds the single admin
// identity and two allow-lists, eligible warehouse managers and eligible
// quality inspectors. It carries no state machine logic; role assignment
// operations consult it for membership at assignment time.
type Registry struct {
	admin      kernel.UUID
	managers   map[kernel.UUID]struct{}
	inspectors map[kernel.UUID]struct{}

	isConstructed bool
}

// NewRegistry creates a registry with the given admin and empty allow-lists.
func NewRegistry(admin kernel.UUID) (*Registry, error) {
	if err := admin.Validate(); err != nil {
		return nil, err
	}

	return &Registry{
		admin:         admin,
		managers:      map[kernel.UUID]struct{}{},
		inspectors:    map[kernel.UUID]struct{}{},
		isConstructed: true,
	}, nil
}

// RestoreRegistry reconstructs a registry from persistence.
func RestoreRegistry(admin kernel.UUID, managers, inspectors []kernel.UUID) (*Registry, error) {
	reg, err := NewRegistry(admin)
	if err != nil {
		return nil, err
	}

	for _, m := range managers {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		reg.managers[m] = struct{}{}
	}
	for _, i := range inspectors {
		if err := i.Validate(); err != nil {
			return nil, err
		}
		reg.inspectors[i] = struct{}{}
	}

	return reg, nil
}

// Validate ensures the registry was properly constructed.
func (r *Registry) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrRegistryIsNotConstructed
	}

	return nil
}

// Admin returns the current admin identity.
func (r *Registry) Admin() kernel.UUID {
	return r.admin
}

// IsAdmin reports whether identity is the registry admin.
func (r *Registry) IsAdmin(identity kernel.UUID) bool {
	return identity.IsEqual(r.admin)
}

// IsManager reports whether identity is on the warehouse manager allow-list.
func (r *Registry) IsManager(identity kernel.UUID) bool {
	_, ok := r.managers[identity]
	return ok
}

// IsInspector reports whether identity is on the quality inspector allow-list.
func (r *Registry) IsInspector(identity kernel.UUID) bool {
	_, ok := r.inspectors[identity]
	return ok
}

// Managers returns the warehouse manager allow-list.
func (r *Registry) Managers() []kernel.UUID {
	members := make([]kernel.UUID, 0, len(r.managers))
	for m := range r.managers {
		members = append(members, m)
	}
	return members
}

// Inspectors returns the quality inspector allow-list.
func (r *Registry) Inspectors() []kernel.UUID {
	members := make([]kernel.UUID, 0, len(r.inspectors))
	for i := range r.inspectors {
		members = append(members, i)
	}
	return members
}

// SetAuthorized toggles identity's membership in one of the two allow-lists.
// Only the admin may call it.
func (r *Registry) SetAuthorized(actor, identity kernel.UUID, isInspector, enabled bool) error {
	if !r.IsAdmin(actor) {
		return errs.NewUnauthorizedError("admin")
	}
	if err := identity.Validate(); err != nil {
		return err
	}

	list := r.managers
	if isInspector {
		list = r.inspectors
	}

	if enabled {
		list[identity] = struct{}{}
	} else {
		delete(list, identity)
	}
	return nil
}

// TransferAdmin hands the admin role to newAdmin. Only the current admin may
// call it, and the null identity is rejected.
func (r *Registry) TransferAdmin(actor, newAdmin kernel.UUID) error {
	if !r.IsAdmin(actor) {
		return errs.NewUnauthorizedError("admin")
	}
	if err := newAdmin.Validate(); err != nil {
		return err
	}

	r.admin = newAdmin
	return nil
}
