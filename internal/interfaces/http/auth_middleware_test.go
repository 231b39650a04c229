package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/solarsync-api/internal/application/identity"
	"github.com/jhoicas/solarsync-api/internal/domain/entity"
	apphttp "github.com/jhoicas/solarsync-api/internal/interfaces/http"
	"github.com/jhoicas/solarsync-api/internal/testutil/memstore"
	pkgjwt "github.com/jhoicas/solarsync-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret   = "test-secret-key-for-unit-tests"
	testAdminID     = "00000000-0000-0000-0000-000000000001"
	testSupplierID  = "00000000-0000-0000-0000-000000000002"
	testInstallerID = "00000000-0000-0000-0000-000000000003"
	testCompanyID   = "00000000-0000-0000-0000-0000000000c1"
	testIssuer      = "solarsync-test"
	testExpMin      = 60
)

// seededResolver devuelve un resolver real sobre un memstore con un usuario por rol.
func seededResolver(t *testing.T) (*identity.Resolver, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	ctx := context.Background()
	companyID := testCompanyID
	users := []entity.User{
		{ID: testAdminID, Email: "admin@test.io", Role: entity.RoleAdmin},
		{ID: testSupplierID, Email: "sup@test.io", Role: entity.RoleSupplier, CompanyID: &companyID},
		{ID: testInstallerID, Email: "inst@test.io", Role: entity.RoleInstaller},
	}
	for _, u := range users {
		u := u
		require.NoError(t, store.Users().Create(ctx, &u))
	}
	return identity.NewResolver(store.Users()), store
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para validar el JWT
//   - IdentityMiddleware para resolver rol y empresa
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve la identidad si pasa los middlewares
func buildTestApp(t *testing.T, allowedRoles ...entity.Role) (*fiber.App, *memstore.Store) {
	t.Helper()
	resolver, store := seededResolver(t)
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.IdentityMiddleware(resolver),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			id, _ := apphttp.GetIdentity(c)
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":         true,
				"role":       string(id.Role),
				"company_id": id.CompanyID,
			})
		},
	)
	return app, store
}

// tokenFor genera un JWT para el usuario indicado.
func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: El usuario tiene el rol requerido → debe pasar (HTTP 200).
func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app, _ := buildTestApp(t, entity.RoleAdmin)
	resp := doRequest(t, app, tokenFor(t, testAdminID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"admin debe poder acceder a ruta restringida a admin")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"], "la respuesta debe incluir ok:true")
	assert.Equal(t, "admin", body["role"], "el rol sale de la base, no del token")
}

// Caso 1b: El usuario tiene uno de los roles permitidos (multi-rol) → HTTP 200.
func TestRequireRole_ProveedorAccedeRutaAdminOProveedor(t *testing.T) {
	app, _ := buildTestApp(t, entity.RoleAdmin, entity.RoleSupplier)
	resp := doRequest(t, app, tokenFor(t, testSupplierID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testCompanyID, body["company_id"], "el proveedor conserva su empresa")
}

// Caso 2: El usuario tiene un rol diferente al requerido → HTTP 403 Forbidden.
func TestRequireRole_InstaladorBloqueadoEnRutaAdmin(t *testing.T) {
	app, _ := buildTestApp(t, entity.RoleAdmin)
	resp := doRequest(t, app, tokenFor(t, testInstallerID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"instalador no debe poder acceder a ruta restringida a admin")
	assert.Contains(t, bodyString(t, resp), "FORBIDDEN",
		"la respuesta de error debe incluir el código FORBIDDEN")
}

// Caso 3: Sin header Authorization → HTTP 401 MISSING_TOKEN.
func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	app, _ := buildTestApp(t, entity.RoleAdmin)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_TOKEN")
}

// Caso 4: Token inválido / malformado → HTTP 401 INVALID_TOKEN.
func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app, _ := buildTestApp(t, entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "INVALID_TOKEN")
}

// Caso 5: Esquema distinto de Bearer → HTTP 401.
func TestAuthMiddleware_EsquemaNoBearer_Retorna401(t *testing.T) {
	app, _ := buildTestApp(t, entity.RoleAdmin)
	resp := doRequest(t, app, "Basic dXNlcjpwYXNz")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 6: Token firmado con otro secreto → HTTP 401.
func TestAuthMiddleware_SecretoAjeno_Retorna401(t *testing.T) {
	app, _ := buildTestApp(t, entity.RoleAdmin)
	tok, err := pkgjwt.Generate("otro-secret-completamente-distinto", testAdminID, testIssuer, testExpMin)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests IdentityMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Token válido de un usuario que ya no existe → 401, nunca acceso.
func TestIdentityMiddleware_UsuarioInexistente_Retorna401(t *testing.T) {
	app, _ := buildTestApp(t, entity.RoleAdmin, entity.RoleSupplier, entity.RoleInstaller)
	resp := doRequest(t, app, tokenFor(t, "00000000-0000-0000-0000-0000000000ff"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Fallo de la base al resolver → 500 sin detalle del error.
func TestIdentityMiddleware_FalloDeBase_Retorna500(t *testing.T) {
	app, store := buildTestApp(t, entity.RoleAdmin)
	store.FailOn("users.get", errors.New("conexión perdida"))

	resp := doRequest(t, app, tokenFor(t, testAdminID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := bodyString(t, resp)
	assert.Contains(t, body, "INTERNAL")
	assert.NotContains(t, body, "conexión perdida")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware: el token solo transporta el user id
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeUserID(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		_, resolved := apphttp.GetIdentity(c)
		return c.JSON(fiber.Map{
			"user_id":  apphttp.GetUserID(c),
			"resolved": resolved,
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", tokenFor(t, testSupplierID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testSupplierID, body["user_id"])
	assert.Equal(t, false, body["resolved"], "sin IdentityMiddleware no hay identidad")
}

// RequireRole sin identidad resuelta (middleware mal encadenado) → 401.
func TestRequireRole_SinIdentidad_Retorna401(t *testing.T) {
	app := fiber.New()
	app.Get("/x", apphttp.RequireRole(entity.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/x", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
