package repository

import (
	"context"
	"time"

	"github.com/jhoicas/solarsync-api/internal/domain/entity"
)

// SubscriptionRepository define el puerto para el historial company_subscriptions.
// El historial solo crece: cambiar de plan inserta una fila nueva.
type SubscriptionRepository interface {
	// DeactivateActive marca como inactive la fila activa de la empresa (si existe). Devuelve filas afectadas.
	DeactivateActive(ctx context.Context, companyID string, at time.Time) (int64, error)
	// Create inserta una fila; devuelve domain.ErrConflict si ya hay otra activa para la empresa.
	Create(ctx context.Context, sub *entity.CompanySubscription) error
	// CancelActive marca como cancelled la fila activa de la empresa. Devuelve filas afectadas.
	CancelActive(ctx context.Context, companyID string, at time.Time) (int64, error)
	GetActive(ctx context.Context, companyID string) (*entity.CompanySubscription, error)
	// ListByCompany devuelve el historial, más reciente primero.
	ListByCompany(ctx context.Context, companyID string) ([]*entity.CompanySubscription, error)
}
