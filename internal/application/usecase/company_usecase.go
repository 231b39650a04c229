package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/solarsync-api/internal/application/dto"
	"github.com/jhoicas/solarsync-api/internal/domain"
	"github.com/jhoicas/solarsync-api/internal/domain/entity"
	"github.com/jhoicas/solarsync-api/internal/domain/repository"
	"github.com/jhoicas/solarsync-api/pkg/logger"
)

// CompanyUseCase lectura del directorio de empresas proveedoras.
type CompanyUseCase struct {
	repo        repository.CompanyRepository
	productRepo repository.ProductRepository
	viewRepo    repository.ProfileViewRepository
	log         *logger.Logger
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(
	repo repository.CompanyRepository,
	productRepo repository.ProductRepository,
	viewRepo repository.ProfileViewRepository,
	log *logger.Logger,
) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, productRepo: productRepo, viewRepo: viewRepo, log: log.Component("directory")}
}

// GetCompany obtiene una empresa por ID; (nil, nil) si no existe.
func (uc *CompanyUseCase) GetCompany(ctx context.Context, id string) (*entity.Company, error) {
	return uc.repo.GetByID(ctx, id)
}

// GetDisplayName nombre visible de la empresa; nil si no existe.
func (uc *CompanyUseCase) GetDisplayName(ctx context.Context, id string) (*string, error) {
	return uc.repo.GetName(ctx, id)
}

// Search busca empresas por estado (exacto, en mayúsculas) y ciudad (sin distinguir mayúsculas).
func (uc *CompanyUseCase) Search(ctx context.Context, state, city string) ([]dto.CompanyResponse, error) {
	list, err := uc.repo.Search(ctx, repository.CompanyFilter{
		State: strings.ToUpper(strings.TrimSpace(state)),
		City:  strings.TrimSpace(city),
	})
	if err != nil {
		return nil, fmt.Errorf("buscar empresas: %w", err)
	}
	out := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.FromCompany(c))
	}
	return out, nil
}

// GetProfile devuelve la empresa con su catálogo y registra la visita.
// La visita es best-effort: si falla se registra en log y la lectura continúa.
func (uc *CompanyUseCase) GetProfile(ctx context.Context, id string) (*dto.CompanyProfileResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("buscar empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	products, err := uc.productRepo.ListBySupplier(ctx, company.ID)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}

	if err := uc.viewRepo.Record(ctx, company.ID, time.Now().UTC()); err != nil {
		uc.log.Warn().Err(err).Str("company_id", company.ID).Msg("no se pudo registrar la visita al perfil")
	}

	out := &dto.CompanyProfileResponse{
		CompanyResponse: dto.FromCompany(company),
		Products:        make([]dto.ProductResponse, 0, len(products)),
	}
	for _, p := range products {
		out.Products = append(out.Products, dto.FromProduct(p))
	}
	return out, nil
}
