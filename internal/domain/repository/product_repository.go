package repository

import (
	"context"

	"github.com/jhoicas/solarsync-api/internal/domain/entity"
)

// ProductFilter filtros opcionales del catálogo.
type ProductFilter struct {
	Category string
	Brand    string // subcadena, sin distinguir mayúsculas
}

// ProductRepository puerto de lectura del catálogo.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// ListBySupplier devuelve los productos de la empresa ordenados por nombre.
	ListBySupplier(ctx context.Context, supplierID string) ([]*entity.Product, error)
}
