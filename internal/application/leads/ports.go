package leads

import (
	"context"

	"github.com/jhoicas/solarsync-api/internal/domain/entity"
)

// SupplierDirectory lectura del directorio que necesita el motor de leads.
// GetCompany devuelve (nil, nil) si la empresa no existe.
type SupplierDirectory interface {
	GetCompany(ctx context.Context, id string) (*entity.Company, error)
}
