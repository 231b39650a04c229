package subscription

import (
	"context"

	"github.com/jhoicas/solarsync-api/internal/domain/repository"
)

// TxRunner ejecuta el cambio de plan de forma atómica: desactivar la fila activa e insertar la
// nueva se confirman juntas o no se confirma ninguna.
type TxRunner interface {
	RunSubscription(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		planRepo repository.PlanRepository,
		subRepo repository.SubscriptionRepository,
	) error) error
}
