package repository

import (
	"context"

	"github.com/jhoicas/solarsync-api/internal/domain/entity"
)

// ReviewRepository puerto de persistencia para reseñas.
type ReviewRepository interface {
	// Create devuelve domain.ErrConflict si el usuario ya reseñó el producto.
	Create(ctx context.Context, review *entity.Review) error
	Exists(ctx context.Context, productID, userID string) (bool, error)
	// ListByProduct devuelve las reseñas más recientes primero.
	ListByProduct(ctx context.Context, productID string) ([]*entity.Review, error)
}
