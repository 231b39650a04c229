package repository

import (
	"context"
	"time"

	"github.com/jhoicas/solarsync-api/internal/domain/entity"
)

// LeadRepository define el puerto de persistencia para Lead.
// No hay borrado: los leads se conservan siempre.
type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	GetByID(ctx context.Context, id string) (*entity.Lead, error)
	// ListByInstaller devuelve los leads del instalador, más recientes primero, con el nombre del proveedor.
	ListByInstaller(ctx context.Context, installerID string) ([]*entity.LeadWithSupplier, error)
	// ListBySupplier devuelve los leads recibidos por la empresa, más recientes primero.
	// limit <= 0 no limita.
	ListBySupplier(ctx context.Context, companyID string, limit int) ([]*entity.Lead, error)
	// UpdateStatus actualiza estado y notas solo si el lead pertenece a la empresa.
	// Devuelve false si ninguna fila coincidió.
	UpdateStatus(ctx context.Context, id, companyID string, status entity.LeadStatus, notes *string, at time.Time) (bool, error)
	StatsBySupplier(ctx context.Context, companyID string) (entity.LeadStats, error)
}
