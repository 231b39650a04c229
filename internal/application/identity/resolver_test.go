package identity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/solarsync-api/internal/application/identity"
	"github.com/jhoicas/solarsync-api/internal/domain"
	"github.com/jhoicas/solarsync-api/internal/domain/entity"
	"github.com/jhoicas/solarsync-api/internal/testutil/memstore"
)

func seedUser(t *testing.T, store *memstore.Store, id string, role entity.Role, companyID *string) {
	t.Helper()
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{
		ID: id, Email: id + "@test.com", FullName: id, Role: role, CompanyID: companyID,
	}))
}

func TestResolve_ProveedorConEmpresa(t *testing.T) {
	store := memstore.New()
	companyID := "c1"
	seedUser(t, store, "u1", entity.RoleSupplier, &companyID)

	id, err := identity.NewResolver(store.Users()).Resolve(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.Identity{UserID: "u1", Role: entity.RoleSupplier, CompanyID: "c1"}, id)
}

func TestResolve_SoloProveedoresConservanEmpresa(t *testing.T) {
	store := memstore.New()
	companyID := "c1"
	seedUser(t, store, "u2", entity.RoleInstaller, &companyID)

	id, err := identity.NewResolver(store.Users()).Resolve(context.Background(), "u2")
	require.NoError(t, err)
	assert.False(t, id.HasCompany())
}

func TestResolve_UsuarioInexistente(t *testing.T) {
	_, err := identity.NewResolver(memstore.New().Users()).Resolve(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolve_SinUsuario(t *testing.T) {
	_, err := identity.NewResolver(memstore.New().Users()).Resolve(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResolve_ErrorDeAlmacenamiento(t *testing.T) {
	store := memstore.New()
	store.FailOn("users.get", errors.New("conexión perdida"))

	_, err := identity.NewResolver(store.Users()).Resolve(context.Background(), "u1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
}
