package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/core/domain/model/registry"
	"freight/internal/pkg/errs"
)

func TestNewRegistry(t *testing.T) {
	t.Run("valid admin", func(t *testing.T) {
		admin := kernel.NewUUID()

		reg, err := registry.NewRegistry(admin)

		require.NoError(t, err)
		assert.NoError(t, reg.Validate())
		assert.True(t, reg.Admin().IsEqual(admin))
		assert.True(t, reg.IsAdmin(admin))
		assert.Empty(t, reg.Managers())
		assert.Empty(t, reg.Inspectors())
	})

	t.Run("invalid admin", func(t *testing.T) {
		_, err := registry.NewRegistry(kernel.UUID{})
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestRestoreRegistry(t *testing.T) {
	admin := kernel.NewUUID()
	manager := kernel.NewUUID()
	inspector := kernel.NewUUID()

	t.Run("restores both allow-lists", func(t *testing.T) {
		reg, err := registry.RestoreRegistry(admin,
			[]kernel.UUID{manager}, []kernel.UUID{inspector})

		require.NoError(t, err)
		assert.True(t, reg.IsManager(manager))
		assert.True(t, reg.IsInspector(inspector))
		assert.False(t, reg.IsManager(inspector))
		assert.False(t, reg.IsInspector(manager))
	})

	t.Run("rejects invalid members", func(t *testing.T) {
		_, err := registry.RestoreRegistry(admin, []kernel.UUID{{}}, nil)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

		_, err = registry.RestoreRegistry(admin, nil, []kernel.UUID{{}})
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestRegistry_Validate(t *testing.T) {
	t.Run("zero value registry", func(t *testing.T) {
		var reg registry.Registry
		assert.ErrorIs(t, reg.Validate(), registry.ErrRegistryIsNotConstructed)
	})

	t.Run("nil registry", func(t *testing.T) {
		var reg *registry.Registry
		assert.ErrorIs(t, reg.Validate(), registry.ErrRegistryIsNotConstructed)
	})
}

func TestRegistry_SetAuthorized(t *testing.T) {
	admin := kernel.NewUUID()

	t.Run("admin grants and revokes manager membership", func(t *testing.T) {
		reg, err := registry.NewRegistry(admin)
		require.NoError(t, err)
		member := kernel.NewUUID()

		require.NoError(t, reg.SetAuthorized(admin, member, false, true))
		assert.True(t, reg.IsManager(member))
		assert.False(t, reg.IsInspector(member))

		require.NoError(t, reg.SetAuthorized(admin, member, false, false))
		assert.False(t, reg.IsManager(member))
	})

	t.Run("admin grants inspector membership", func(t *testing.T) {
		reg, err := registry.NewRegistry(admin)
		require.NoError(t, err)
		member := kernel.NewUUID()

		require.NoError(t, reg.SetAuthorized(admin, member, true, true))
		assert.True(t, reg.IsInspector(member))
		assert.False(t, reg.IsManager(member))
	})

	t.Run("revoking an absent member is a no-op", func(t *testing.T) {
		reg, err := registry.NewRegistry(admin)
		require.NoError(t, err)

		assert.NoError(t, reg.SetAuthorized(admin, kernel.NewUUID(), true, false))
	})

	t.Run("non-admin caller", func(t *testing.T) {
		reg, err := registry.NewRegistry(admin)
		require.NoError(t, err)

		err = reg.SetAuthorized(kernel.NewUUID(), kernel.NewUUID(), false, true)
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("invalid identity", func(t *testing.T) {
		reg, err := registry.NewRegistry(admin)
		require.NoError(t, err)

		err = reg.SetAuthorized(admin, kernel.UUID{}, false, true)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestRegistry_TransferAdmin(t *testing.T) {
	t.Run("current admin hands over the role", func(t *testing.T) {
		admin := kernel.NewUUID()
		newAdmin := kernel.NewUUID()
		reg, err := registry.NewRegistry(admin)
		require.NoError(t, err)

		require.NoError(t, reg.TransferAdmin(admin, newAdmin))

		assert.True(t, reg.IsAdmin(newAdmin))
		assert.False(t, reg.IsAdmin(admin), "previous admin loses the role")
	})

	t.Run("non-admin caller", func(t *testing.T) {
		reg, err := registry.NewRegistry(kernel.NewUUID())
		require.NoError(t, err)

		err = reg.TransferAdmin(kernel.NewUUID(), kernel.NewUUID())
		assert.ErrorIs(t, err, errs.ErrUnauthorized)
	})

	t.Run("null identity target", func(t *testing.T) {
		admin := kernel.NewUUID()
		reg, err := registry.NewRegistry(admin)
		require.NoError(t, err)

		err = reg.TransferAdmin(admin, kernel.UUID{})
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}
