package subscription

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/solarsync-api/internal/application/dto"
	"github.com/jhoicas/solarsync-api/internal/domain"
	"github.com/jhoicas/solarsync-api/internal/domain/access"
	"github.com/jhoicas/solarsync-api/internal/domain/entity"
	"github.com/jhoicas/solarsync-api/internal/domain/repository"
	"github.com/jhoicas/solarsync-api/pkg/logger"
)

// PlanUseCase catálogo de planes (solo admin). Los planes son inmutables una vez creados.
type PlanUseCase struct {
	repo repository.PlanRepository
	log  *logger.Logger
}

// NewPlanUseCase construye el caso de uso.
func NewPlanUseCase(repo repository.PlanRepository, log *logger.Logger) *PlanUseCase {
	return &PlanUseCase{repo: repo, log: log.Component("plans")}
}

// Create registra un plan. Nombre repetido devuelve ErrConflict.
func (uc *PlanUseCase) Create(ctx context.Context, requester entity.Identity, in dto.CreatePlanRequest) (*dto.PlanResponse, error) {
	if err := access.RequireRole(requester, entity.RoleAdmin); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	cycle := entity.BillingCycle(strings.TrimSpace(in.BillingCycle))
	switch {
	case name == "":
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	case !cycle.Valid():
		return nil, fmt.Errorf("%w: billing_cycle %q no permitido", domain.ErrInvalidInput, in.BillingCycle)
	case in.Price.IsNegative():
		return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	case negative(in.MaxProducts) || negative(in.MaxUsers):
		return nil, fmt.Errorf("%w: los límites no pueden ser negativos", domain.ErrInvalidInput)
	}

	plan := &entity.Plan{
		ID:           uuid.New().String(),
		Name:         name,
		Description:  strings.TrimSpace(in.Description),
		Price:        in.Price,
		BillingCycle: cycle,
		MaxProducts:  in.MaxProducts,
		MaxUsers:     in.MaxUsers,
		Features:     in.Features,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("crear plan: %w", err)
	}
	uc.log.Info().Str("plan_id", plan.ID).Str("name", plan.Name).Msg("plan creado")
	out := dto.FromPlan(plan)
	return &out, nil
}

// List devuelve los planes por precio ascendente.
func (uc *PlanUseCase) List(ctx context.Context, requester entity.Identity) ([]dto.PlanResponse, error) {
	if err := access.RequireRole(requester, entity.RoleAdmin); err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar planes: %w", err)
	}
	out := make([]dto.PlanResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.FromPlan(p))
	}
	return out, nil
}

func negative(n *int) bool { return n != nil && *n < 0 }
