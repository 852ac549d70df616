package registryrepo

import (
	"context"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/registry"
	"freight/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRegistryRepository implements RegistryRepository using GORM.
type GormRegistryRepository struct {
	db *gorm.DB
}

// NewGormRegistryRepository creates a new GORM registry repository.
func NewGormRegistryRepository(db *gorm.DB) *GormRegistryRepository {
	return &GormRegistryRepository{db: db}
}

// Get retrieves the registry with both allow-lists loaded.
// Returns an ObjectNotFound error when no admin row was ever seeded.
func (r *GormRegistryRepository) Get(ctx context.Context) (*registry.Registry, error) {
	var dtos []RegistryEntryDTO
	if err := r.db.WithContext(ctx).Find(&dtos).Error; err != nil {
		return nil, err
	}

	var admin *kernel.UUID
	managers := make([]kernel.UUID, 0)
	inspectors := make([]kernel.UUID, 0)

	for _, dto := range dtos {
		identity, err := kernel.UUIDFromBytes(dto.IdentityID[:])
		if err != nil {
			return nil, err
		}

		switch dto.Role {
		case RoleAdmin:
			admin = &identity
		case RoleManager:
			managers = append(managers, identity)
		case RoleInspector:
			inspectors = append(inspectors, identity)
		}
	}

	if admin == nil {
		return nil, errs.NewObjectNotFoundError("registry", "admin")
	}

	return registry.RestoreRegistry(*admin, managers, inspectors)
}

// Save persists the registry, replacing the stored memberships. Meant to run
// inside a unit of work so the delete and re-insert are atomic.
func (r *GormRegistryRepository) Save(ctx context.Context, aggregate *registry.Registry) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dtos := make([]RegistryEntryDTO, 0, 1+len(aggregate.Managers())+len(aggregate.Inspectors()))
	dtos = append(dtos, RegistryEntryDTO{
		IdentityID: aggregate.Admin().Bytes(),
		Role:       RoleAdmin,
	})
	for _, manager := range aggregate.Managers() {
		dtos = append(dtos, RegistryEntryDTO{
			IdentityID: manager.Bytes(),
			Role:       RoleManager,
		})
	}
	for _, inspector := range aggregate.Inspectors() {
		dtos = append(dtos, RegistryEntryDTO{
			IdentityID: inspector.Bytes(),
			Role:       RoleInspector,
		})
	}

	if err := r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&RegistryEntryDTO{}).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}
