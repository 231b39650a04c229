package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/solarsync-api/internal/domain"
	"github.com/jhoicas/solarsync-api/internal/domain/access"
	"github.com/jhoicas/solarsync-api/internal/domain/entity"
)

var (
	installer = entity.Identity{UserID: "u-installer", Role: entity.RoleInstaller}
	supplier  = entity.Identity{UserID: "u-supplier", Role: entity.RoleSupplier, CompanyID: "c-acme"}
	otherSup  = entity.Identity{UserID: "u-other", Role: entity.RoleSupplier, CompanyID: "c-other"}
	admin     = entity.Identity{UserID: "u-admin", Role: entity.RoleAdmin}
)

func TestRequireRole(t *testing.T) {
	assert.NoError(t, access.RequireRole(admin, entity.RoleAdmin))
	assert.NoError(t, access.RequireRole(installer, entity.RoleInstaller))

	err := access.RequireRole(supplier, entity.RoleInstaller)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, access.RequireRole(installer, entity.RoleAdmin), domain.ErrForbidden)
}

func TestRequireCompanyMember(t *testing.T) {
	assert.NoError(t, access.RequireCompanyMember(supplier))
	assert.ErrorIs(t, access.RequireCompanyMember(installer), domain.ErrForbidden)
	assert.ErrorIs(t, access.RequireCompanyMember(admin), domain.ErrForbidden)
}

func TestRequireLeadParty(t *testing.T) {
	lead := &entity.Lead{ID: "l-1", InstallerID: installer.UserID, SupplierID: "c-acme"}

	cases := []struct {
		name    string
		id      entity.Identity
		allowed bool
	}{
		{"instalador creador", installer, true},
		{"miembro del proveedor destino", supplier, true},
		{"proveedor ajeno", otherSup, false},
		{"admin sin empresa", admin, false},
		{"otro instalador", entity.Identity{UserID: "u-x", Role: entity.RoleInstaller}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := access.RequireLeadParty(tc.id, lead)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrForbidden)
			}
		})
	}
}

func TestRequireLeadParty_IdentidadVaciaNoCoincideConLeadVacio(t *testing.T) {
	// Un lead sin instalador ni empresa nunca habilita a una identidad sin datos.
	assert.ErrorIs(t, access.RequireLeadParty(entity.Identity{}, &entity.Lead{}), domain.ErrForbidden)
	assert.ErrorIs(t, access.RequireLeadParty(supplier, nil), domain.ErrForbidden)
}
