package repository

import (
	"context"

	"github.com/jhoicas/solarsync-api/internal/domain/entity"
)

// CompanyFilter filtros opcionales para buscar empresas.
type CompanyFilter struct {
	State string // coincidencia exacta (se compara en mayúsculas)
	City  string // sin distinguir mayúsculas
}

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// GetForUpdate obtiene la empresa y bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Company, error)
	// GetName devuelve el nombre visible o nil si la empresa no existe.
	GetName(ctx context.Context, id string) (*string, error)
	Search(ctx context.Context, filter CompanyFilter) ([]*entity.Company, error)
	ListWithSubscription(ctx context.Context, limit, offset int) ([]*entity.CompanySubscriptionSummary, error)
}
