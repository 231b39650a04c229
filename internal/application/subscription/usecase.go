// Package subscription administra el plan de cada empresa. El historial solo crece y cada empresa
// tiene a lo sumo una fila activa en todo momento.
package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/solarsync-api/internal/application/dto"
	"github.com/jhoicas/solarsync-api/internal/domain"
	"github.com/jhoicas/solarsync-api/internal/domain/access"
	"github.com/jhoicas/solarsync-api/internal/domain/entity"
	"github.com/jhoicas/solarsync-api/internal/domain/repository"
	"github.com/jhoicas/solarsync-api/pkg/logger"
)

// SubscriptionUseCase casos de uso sobre company_subscriptions.
type SubscriptionUseCase struct {
	txRunner    TxRunner
	subRepo     repository.SubscriptionRepository
	planRepo    repository.PlanRepository
	companyRepo repository.CompanyRepository
	log         *logger.Logger
	now         func() time.Time
}

// NewSubscriptionUseCase construye el caso de uso.
func NewSubscriptionUseCase(
	txRunner TxRunner,
	subRepo repository.SubscriptionRepository,
	planRepo repository.PlanRepository,
	companyRepo repository.CompanyRepository,
	log *logger.Logger,
) *SubscriptionUseCase {
	return &SubscriptionUseCase{
		txRunner:    txRunner,
		subRepo:     subRepo,
		planRepo:    planRepo,
		companyRepo: companyRepo,
		log:         log.Component("subscription"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Assign deja a la empresa con el plan indicado como única suscripción activa.
// La fila activa previa (si existe) pasa a inactive en la misma transacción.
// Empresa o plan inexistentes devuelven ErrNotFound sin cambios.
func (uc *SubscriptionUseCase) Assign(ctx context.Context, requester entity.Identity, in dto.AssignSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	if err := access.RequireRole(requester, entity.RoleAdmin); err != nil {
		return nil, err
	}
	if in.CompanyID == "" || in.PlanID == "" {
		return nil, fmt.Errorf("%w: company_id y plan_id son obligatorios", domain.ErrInvalidInput)
	}

	var created *entity.CompanySubscription
	err := uc.txRunner.RunSubscription(ctx, func(
		companyRepo repository.CompanyRepository,
		planRepo repository.PlanRepository,
		subRepo repository.SubscriptionRepository,
	) error {
		// Bloquea la empresa: dos asignaciones concurrentes a la misma empresa se serializan aquí.
		company, err := companyRepo.GetForUpdate(ctx, in.CompanyID)
		if err != nil {
			return fmt.Errorf("bloquear empresa: %w", err)
		}
		if company == nil {
			return fmt.Errorf("%w: empresa %s", domain.ErrNotFound, in.CompanyID)
		}
		plan, err := planRepo.GetByID(ctx, in.PlanID)
		if err != nil {
			return fmt.Errorf("buscar plan: %w", err)
		}
		if plan == nil {
			return fmt.Errorf("%w: plan %s", domain.ErrNotFound, in.PlanID)
		}

		now := uc.now()
		if _, err := subRepo.DeactivateActive(ctx, company.ID, now); err != nil {
			return fmt.Errorf("desactivar suscripción: %w", err)
		}
		sub := &entity.CompanySubscription{
			ID:        uuid.New().String(),
			CompanyID: company.ID,
			PlanID:    plan.ID,
			Status:    entity.SubscriptionActive,
			StartDate: now,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := subRepo.Create(ctx, sub); err != nil {
			return fmt.Errorf("crear suscripción: %w", err)
		}
		created = sub
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("company_id", in.CompanyID).Str("plan_id", in.PlanID).Msg("asignación de plan fallida")
		return nil, err
	}

	uc.log.Info().Str("company_id", created.CompanyID).Str("plan_id", created.PlanID).Msg("plan asignado")
	out := dto.FromSubscription(created)
	return &out, nil
}

// History devuelve todas las filas de la empresa, más reciente primero.
func (uc *SubscriptionUseCase) History(ctx context.Context, requester entity.Identity, companyID string) ([]dto.SubscriptionResponse, error) {
	if err := access.RequireRole(requester, entity.RoleAdmin); err != nil {
		return nil, err
	}
	list, err := uc.subRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("historial de suscripciones: %w", err)
	}
	out := make([]dto.SubscriptionResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.FromSubscription(s))
	}
	return out, nil
}

// Cancel pasa la fila activa a cancelled. Sin fila activa devuelve ErrNotFound.
func (uc *SubscriptionUseCase) Cancel(ctx context.Context, requester entity.Identity, companyID string) error {
	if err := access.RequireRole(requester, entity.RoleAdmin); err != nil {
		return err
	}
	n, err := uc.subRepo.CancelActive(ctx, companyID, uc.now())
	if err != nil {
		uc.log.Error().Err(err).Str("company_id", companyID).Msg("no se pudo cancelar la suscripción")
		return fmt.Errorf("cancelar suscripción: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: la empresa no tiene suscripción activa", domain.ErrNotFound)
	}
	uc.log.Info().Str("company_id", companyID).Msg("suscripción cancelada")
	return nil
}

// Current suscripción activa de la empresa del usuario, con su plan.
func (uc *SubscriptionUseCase) Current(ctx context.Context, requester entity.Identity) (*dto.CurrentSubscriptionResponse, error) {
	if err := access.RequireCompanyMember(requester); err != nil {
		return nil, err
	}
	sub, err := uc.subRepo.GetActive(ctx, requester.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("suscripción activa: %w", err)
	}
	if sub == nil {
		return nil, domain.ErrNotFound
	}
	plan, err := uc.planRepo.GetByID(ctx, sub.PlanID)
	if err != nil {
		return nil, fmt.Errorf("buscar plan: %w", err)
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.CurrentSubscriptionResponse{
		SubscriptionResponse: dto.FromSubscription(sub),
		Plan:                 dto.FromPlan(plan),
	}, nil
}

// Overview lista empresas con su plan activo, ordenadas por nombre.
func (uc *SubscriptionUseCase) Overview(ctx context.Context, requester entity.Identity, page dto.PageRequest) (*dto.CompanySubscriptionListResponse, error) {
	if err := access.RequireRole(requester, entity.RoleAdmin); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.companyRepo.ListWithSubscription(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar empresas con suscripción: %w", err)
	}
	out := &dto.CompanySubscriptionListResponse{
		Items: make([]dto.CompanySubscriptionResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, s := range list {
		item := dto.CompanySubscriptionResponse{
			CompanyResponse:   dto.FromCompany(&s.Company),
			CurrentPlan:       s.CurrentPlan,
			SubscriptionStart: s.SubscriptionStart,
			SubscriptionEnd:   s.SubscriptionEnd,
		}
		if s.PlanStatus != nil {
			status := string(*s.PlanStatus)
			item.PlanStatus = &status
		}
		out.Items = append(out.Items, item)
	}
	return out, nil
}
