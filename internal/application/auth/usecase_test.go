package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/solarsync-api/internal/application/auth"
	"github.com/jhoicas/solarsync-api/internal/application/dto"
	"github.com/jhoicas/solarsync-api/internal/application/identity"
	"github.com/jhoicas/solarsync-api/internal/domain"
	"github.com/jhoicas/solarsync-api/internal/domain/entity"
	"github.com/jhoicas/solarsync-api/internal/testutil/memstore"
	"github.com/jhoicas/solarsync-api/pkg/jwt"
	"github.com/jhoicas/solarsync-api/pkg/logger"
	"github.com/jhoicas/solarsync-api/pkg/password"
)

const testSecret = "secreto-de-pruebas"

func newAuth(store *memstore.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(
		store.TxRunner(),
		store.Users(),
		store.Companies(),
		password.NewBcryptHasher(bcrypt.MinCost),
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"},
		logger.Nop(),
	)
}

func strPtr(s string) *string { return &s }

// ── Registro ───────────────────────────────────────────────────────────────────

func TestRegister_ProveedorCreaEmpresa(t *testing.T) {
	store := memstore.New()
	uc := newAuth(store)

	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "Ventas@SolarMax.com", Password: "secreto1", FullName: "Ana", Role: "supplier",
		CompanyName: strPtr("SolarMax"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ventas@solarmax.com", out.Email)
	require.NotNil(t, out.CompanyID)
	require.NotNil(t, out.CompanyName)
	assert.Equal(t, "SolarMax", *out.CompanyName)

	company, err := store.Companies().GetByID(context.Background(), *out.CompanyID)
	require.NoError(t, err)
	require.NotNil(t, company)
	assert.Equal(t, "SolarMax", company.Name)
}

func TestRegister_InstaladorSinEmpresa(t *testing.T) {
	uc := newAuth(memstore.New())

	out, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "luis@instala.com", Password: "secreto1", FullName: "Luis", Role: "installer",
		CompanyName: strPtr("se ignora"),
	})
	require.NoError(t, err)
	assert.Nil(t, out.CompanyID)
}

func TestRegister_EntradasInvalidas(t *testing.T) {
	uc := newAuth(memstore.New())
	cases := []struct {
		name string
		in   dto.RegisterRequest
	}{
		{"admin no se auto-registra", dto.RegisterRequest{Email: "a@b.com", Password: "secreto1", FullName: "A", Role: "admin"}},
		{"rol desconocido", dto.RegisterRequest{Email: "a@b.com", Password: "secreto1", FullName: "A", Role: "root"}},
		{"proveedor sin empresa", dto.RegisterRequest{Email: "a@b.com", Password: "secreto1", FullName: "A", Role: "supplier"}},
		{"proveedor con empresa en blanco", dto.RegisterRequest{Email: "a@b.com", Password: "secreto1", FullName: "A", Role: "supplier", CompanyName: strPtr("  ")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RegisterUser(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := newAuth(memstore.New())
	in := dto.RegisterRequest{Email: "luis@instala.com", Password: "secreto1", FullName: "Luis", Role: "installer"}

	_, err := uc.RegisterUser(context.Background(), in)
	require.NoError(t, err)

	in.Email = "LUIS@instala.com"
	_, err = uc.RegisterUser(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_FalloAlCrearUsuarioDeshaceEmpresa(t *testing.T) {
	store := memstore.New()
	uc := newAuth(store)
	store.FailOn("users.create", errors.New("disco lleno"))

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "ventas@solarmax.com", Password: "secreto1", FullName: "Ana", Role: "supplier",
		CompanyName: strPtr("SolarMax"),
	})
	require.Error(t, err)

	companies, err := store.Companies().ListWithSubscription(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, companies, "la empresa no debe sobrevivir al rollback")
}

// ── Login ──────────────────────────────────────────────────────────────────────

func TestLogin_RoundTripYResolucionDeIdentidad(t *testing.T) {
	store := memstore.New()
	uc := newAuth(store)
	reg, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "ventas@solarmax.com", Password: "secreto1", FullName: "Ana", Role: "supplier",
		CompanyName: strPtr("SolarMax"),
	})
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ventas@solarmax.com", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, reg.ID, out.User.ID)
	require.NotNil(t, out.User.CompanyName)
	assert.Equal(t, "SolarMax", *out.User.CompanyName)

	userID, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)

	id, err := identity.NewResolver(store.Users()).Resolve(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSupplier, id.Role)
	assert.Equal(t, *reg.CompanyID, id.CompanyID)
}

func TestLogin_PasswordIncorrectoYEmailDesconocido(t *testing.T) {
	uc := newAuth(memstore.New())
	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{
		Email: "luis@instala.com", Password: "secreto1", FullName: "Luis", Role: "installer",
	})
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "luis@instala.com", Password: "otro"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@instala.com", Password: "secreto1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestMe_DevuelveEmpresaSoloSiExiste(t *testing.T) {
	uc := newAuth(memstore.New())

	out := uc.Me(entity.Identity{UserID: "u1", Role: entity.RoleInstaller})
	assert.Nil(t, out.CompanyID)

	out = uc.Me(entity.Identity{UserID: "u2", Role: entity.RoleSupplier, CompanyID: "c1"})
	require.NotNil(t, out.CompanyID)
	assert.Equal(t, "c1", *out.CompanyID)
}
