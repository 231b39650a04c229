package bootstrap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/solarsync-api/internal/application/bootstrap"
	"github.com/jhoicas/solarsync-api/internal/domain"
	"github.com/jhoicas/solarsync-api/internal/domain/entity"
	"github.com/jhoicas/solarsync-api/internal/testutil/memstore"
	"github.com/jhoicas/solarsync-api/pkg/logger"
	"github.com/jhoicas/solarsync-api/pkg/password"
)

func newSeeder() (*bootstrap.Seeder, *memstore.Store) {
	store := memstore.New()
	hasher := password.NewBcryptHasher(bcrypt.MinCost)
	return bootstrap.NewSeeder(store.Users(), store.Plans(), hasher, logger.Nop()), store
}

func TestSeedPlans_EsIdempotente(t *testing.T) {
	seeder, store := newSeeder()
	ctx := context.Background()

	n, err := seeder.SeedPlans(ctx, bootstrap.DefaultPlans())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = seeder.SeedPlans(ctx, bootstrap.DefaultPlans())
	require.NoError(t, err)
	assert.Equal(t, 0, n, "la segunda pasada no debe crear planes")

	plans, err := store.Plans().List(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 3)
	assert.Equal(t, "Basic", plans[0].Name, "ordenados por precio")
	assert.Equal(t, "Enterprise", plans[2].Name)
	assert.Nil(t, plans[2].MaxProducts, "Enterprise no tiene límite de productos")
}

func TestSeedPlans_PropagaErrorDeAlmacenamiento(t *testing.T) {
	seeder, store := newSeeder()
	store.FailOn("plans.create", assert.AnError)

	_, err := seeder.SeedPlans(context.Background(), bootstrap.DefaultPlans())
	assert.ErrorIs(t, err, assert.AnError)
}

func TestSeedAdmin_CreaUnaSolaVez(t *testing.T) {
	seeder, store := newSeeder()
	ctx := context.Background()

	created, err := seeder.SeedAdmin(ctx, " Admin@SolarSync.io ", "cambiar123", "")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = seeder.SeedAdmin(ctx, "admin@solarsync.io", "otra", "")
	require.NoError(t, err)
	assert.False(t, created)

	u, err := store.Users().GetByEmail(ctx, "admin@solarsync.io")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleAdmin, u.Role)
	assert.Nil(t, u.CompanyID)
	assert.Equal(t, "Administrador", u.FullName)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("cambiar123")))
}

func TestSeedAdmin_SinCredenciales_Falla(t *testing.T) {
	seeder, _ := newSeeder()
	_, err := seeder.SeedAdmin(context.Background(), "", "x", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
