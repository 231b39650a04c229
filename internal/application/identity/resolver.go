// Package identity resuelve, para cada petición autenticada, el rol y la empresa del usuario
// leyendo siempre el estado persistido. El token solo aporta el user id.
package identity

import (
	"context"
	"fmt"

	"github.com/jhoicas/solarsync-api/internal/domain"
	"github.com/jhoicas/solarsync-api/internal/domain/entity"
	"github.com/jhoicas/solarsync-api/internal/domain/repository"
)

// Resolver traduce un user id autenticado a su Identity.
type Resolver struct {
	userRepo repository.UserRepository
}

// NewResolver construye el resolver.
func NewResolver(userRepo repository.UserRepository) *Resolver {
	return &Resolver{userRepo: userRepo}
}

// Resolve devuelve el rol y la empresa vigentes del usuario.
// Un usuario que ya no existe es ErrNotFound; solo los proveedores conservan su empresa.
func (r *Resolver) Resolve(ctx context.Context, userID string) (entity.Identity, error) {
	if userID == "" {
		return entity.Identity{}, domain.ErrUnauthorized
	}
	user, err := r.userRepo.GetByID(ctx, userID)
	if err != nil {
		return entity.Identity{}, fmt.Errorf("resolver identidad: %w", err)
	}
	if user == nil {
		return entity.Identity{}, domain.ErrNotFound
	}
	id := entity.Identity{UserID: user.ID, Role: user.Role}
	if user.Role == entity.RoleSupplier && user.CompanyID != nil {
		id.CompanyID = *user.CompanyID
	}
	return id, nil
}
