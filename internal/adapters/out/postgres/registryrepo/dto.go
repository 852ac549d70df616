// Package registryrepo persists the authorization registry: the admin and
// the two role allow-lists. The registry is a singleton aggregate stored as
// one row per (identity, role) pair.
package registryrepo

import (
	"github.com/google/uuid"
)

// Role labels stored in the registry table.
const (
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleInspector = "inspector"
)

// RegistryEntryDTO represents one (identity, role) membership row.
type RegistryEntryDTO struct {
	IdentityID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role       string    `gorm:"size:16;primaryKey"`
}

// TableName specifies the database table name for registry memberships.
func (RegistryEntryDTO) TableName() string {
	return "registry_entries"
}
