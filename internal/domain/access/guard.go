// Package access agrupa las verificaciones de autorización que preceden a toda operación
// sensible. Son funciones puras sobre estado ya leído: no hacen I/O.
package access

import (
	"fmt"

	"github.com/jhoicas/solarsync-api/internal/domain"
	"github.com/jhoicas/solarsync-api/internal/domain/entity"
)

// RequireRole falla con ErrForbidden si el rol resuelto no es el esperado.
func RequireRole(id entity.Identity, role entity.Role) error {
	if id.Role != role {
		return fmt.Errorf("%w: se requiere rol %s", domain.ErrForbidden, role)
	}
	return nil
}

// RequireCompanyMember falla con ErrForbidden si el usuario no pertenece a ninguna empresa.
func RequireCompanyMember(id entity.Identity) error {
	if !id.HasCompany() {
		return fmt.Errorf("%w: el usuario no está asociado a una empresa", domain.ErrForbidden)
	}
	return nil
}

// RequireLeadParty falla con ErrForbidden salvo que el usuario sea el instalador que creó el lead
// o miembro de la empresa destino.
func RequireLeadParty(id entity.Identity, lead *entity.Lead) error {
	if lead == nil {
		return domain.ErrForbidden
	}
	if id.UserID != "" && id.UserID == lead.InstallerID {
		return nil
	}
	if id.MemberOf(lead.SupplierID) {
		return nil
	}
	return domain.ErrForbidden
}
