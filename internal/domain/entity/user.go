package entity

import (
	"fmt"
	"time"
)

// Role es el rol cerrado de un usuario. Se asigna en el registro y no cambia.
type Role string

// Roles válidos para User.
const (
	RoleInstaller Role = "installer"
	RoleSupplier  Role = "supplier"
	RoleAdmin     Role = "admin"
)

// ParseRole convierte el nombre persistido en user_roles a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleInstaller, RoleSupplier, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("rol desconocido %q", s)
}

// User representa un usuario del marketplace.
// CompanyID solo existe para proveedores (se fija una vez en el registro).
type User struct {
	ID           string
	Email        string
	FullName     string
	Role         Role
	CompanyID    *string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity es el resultado de resolver un usuario autenticado: rol y empresa (si aplica).
type Identity struct {
	UserID    string
	Role      Role
	CompanyID string // vacío si el usuario no pertenece a ninguna empresa
}

// HasCompany informa si la identidad es miembro de alguna empresa.
func (i Identity) HasCompany() bool { return i.CompanyID != "" }

// MemberOf informa si la identidad pertenece a la empresa indicada.
func (i Identity) MemberOf(companyID string) bool {
	return i.CompanyID != "" && i.CompanyID == companyID
}
