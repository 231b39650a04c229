// Package leads gestiona el ciclo de vida de las solicitudes de cotización: un instalador
// crea el lead contra una empresa proveedora y los miembros de esa empresa lo hacen avanzar.
package leads

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/solarsync-api/internal/application/dto"
	"github.com/jhoicas/solarsync-api/internal/application/ports"
	"github.com/jhoicas/solarsync-api/internal/domain"
	"github.com/jhoicas/solarsync-api/internal/domain/access"
	"github.com/jhoicas/solarsync-api/internal/domain/entity"
	"github.com/jhoicas/solarsync-api/internal/domain/repository"
	"github.com/jhoicas/solarsync-api/pkg/logger"
)

const defaultContactMethod = "email"

// LeadUseCase casos de uso de leads.
type LeadUseCase struct {
	leadRepo  repository.LeadRepository
	directory SupplierDirectory
	notifier  ports.LeadNotifier
	sanitizer ports.TextSanitizer
	log       *logger.Logger
	now       func() time.Time
}

// NewLeadUseCase construye el caso de uso. notifier puede ser nil (sin avisos).
func NewLeadUseCase(
	leadRepo repository.LeadRepository,
	directory SupplierDirectory,
	notifier ports.LeadNotifier,
	sanitizer ports.TextSanitizer,
	log *logger.Logger,
) *LeadUseCase {
	return &LeadUseCase{
		leadRepo:  leadRepo,
		directory: directory,
		notifier:  notifier,
		sanitizer: sanitizer,
		log:       log.Component("leads"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Create registra un lead en estado pending. Solo instaladores; el proveedor debe existir.
// Tras persistir encola el aviso al proveedor sin esperar su resultado.
func (uc *LeadUseCase) Create(ctx context.Context, requester entity.Identity, in dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	if err := access.RequireRole(requester, entity.RoleInstaller); err != nil {
		return nil, err
	}

	description := uc.sanitizer.Text(in.ProjectDescription)
	contactEmail := strings.TrimSpace(in.ContactEmail)
	if description == "" || contactEmail == "" {
		return nil, fmt.Errorf("%w: project_description y contact_email son obligatorios", domain.ErrInvalidInput)
	}
	if in.EstimatedBudget != nil && in.EstimatedBudget.IsNegative() {
		return nil, fmt.Errorf("%w: estimated_budget no puede ser negativo", domain.ErrInvalidInput)
	}

	supplier, err := uc.directory.GetCompany(ctx, in.SupplierID)
	if err != nil {
		return nil, fmt.Errorf("buscar proveedor: %w", err)
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, in.SupplierID)
	}

	contactMethod := uc.sanitizer.Text(in.PreferredContactMethod)
	if contactMethod == "" {
		contactMethod = defaultContactMethod
	}
	now := uc.now()
	lead := &entity.Lead{
		ID:                     uuid.New().String(),
		InstallerID:            requester.UserID,
		SupplierID:             supplier.ID,
		ProjectDescription:     description,
		ProjectType:            uc.sanitizer.Text(in.ProjectType),
		EstimatedBudget:        in.EstimatedBudget,
		Location:               uc.sanitizer.Text(in.Location),
		ContactEmail:           contactEmail,
		ContactPhone:           uc.sanitizer.Text(in.ContactPhone),
		PreferredContactMethod: contactMethod,
		Timeline:               uc.sanitizer.Text(in.Timeline),
		Status:                 entity.LeadStatusPending,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := uc.leadRepo.Create(ctx, lead); err != nil {
		uc.log.Error().Err(err).Str("supplier_id", supplier.ID).Msg("no se pudo crear el lead")
		return nil, fmt.Errorf("crear lead: %w", err)
	}

	uc.log.Info().Str("lead_id", lead.ID).Str("supplier_id", supplier.ID).Msg("lead creado")
	if uc.notifier != nil {
		uc.notifier.LeadCreated(ports.LeadCreatedEvent{
			LeadID:             lead.ID,
			SupplierID:         supplier.ID,
			SupplierName:       supplier.Name,
			InstallerID:        lead.InstallerID,
			ContactEmail:       lead.ContactEmail,
			ProjectDescription: lead.ProjectDescription,
			CreatedAt:          lead.CreatedAt,
		})
	}

	out := dto.FromLead(lead)
	return &out, nil
}

// Get devuelve el lead al instalador que lo creó o a un miembro de la empresa destino.
// Para cualquier otro usuario responde ErrNotFound: no se revela que el lead existe.
func (uc *LeadUseCase) Get(ctx context.Context, requester entity.Identity, leadID string) (*dto.LeadResponse, error) {
	lead, err := uc.leadRepo.GetByID(ctx, leadID)
	if err != nil {
		return nil, fmt.Errorf("buscar lead: %w", err)
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	if err := access.RequireLeadParty(requester, lead); err != nil {
		return nil, domain.ErrNotFound
	}
	out := dto.FromLead(lead)
	return &out, nil
}

// ListMine lista los leads creados por el instalador, más recientes primero.
func (uc *LeadUseCase) ListMine(ctx context.Context, requester entity.Identity) ([]dto.LeadWithSupplierResponse, error) {
	if err := access.RequireRole(requester, entity.RoleInstaller); err != nil {
		return nil, err
	}
	list, err := uc.leadRepo.ListByInstaller(ctx, requester.UserID)
	if err != nil {
		return nil, fmt.Errorf("listar leads del instalador: %w", err)
	}
	out := make([]dto.LeadWithSupplierResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.LeadWithSupplierResponse{LeadResponse: dto.FromLead(&l.Lead), SupplierName: l.SupplierName})
	}
	return out, nil
}

// ListReceived lista los leads dirigidos a la empresa del usuario, más recientes primero.
func (uc *LeadUseCase) ListReceived(ctx context.Context, requester entity.Identity) ([]dto.LeadResponse, error) {
	if err := access.RequireCompanyMember(requester); err != nil {
		return nil, err
	}
	list, err := uc.leadRepo.ListBySupplier(ctx, requester.CompanyID, 0)
	if err != nil {
		return nil, fmt.Errorf("listar leads recibidos: %w", err)
	}
	return dto.FromLeads(list), nil
}

// UpdateStatus cambia estado y notas de un lead de la empresa del usuario.
// Cualquier estado del conjunto es aceptado; no se impone orden entre ellos.
// Un lead inexistente o de otra empresa es ErrNotFound y no se modifica nada.
func (uc *LeadUseCase) UpdateStatus(ctx context.Context, requester entity.Identity, leadID string, in dto.UpdateLeadStatusRequest) error {
	if err := access.RequireCompanyMember(requester); err != nil {
		return err
	}
	status := entity.LeadStatus(strings.TrimSpace(in.Status))
	if !status.Valid() {
		return fmt.Errorf("%w: estado %q no permitido", domain.ErrInvalidInput, in.Status)
	}
	var notes *string
	if in.Notes != nil {
		clean := uc.sanitizer.Text(*in.Notes)
		notes = &clean
	}

	updated, err := uc.leadRepo.UpdateStatus(ctx, leadID, requester.CompanyID, status, notes, uc.now())
	if err != nil {
		uc.log.Error().Err(err).Str("lead_id", leadID).Msg("no se pudo actualizar el lead")
		return fmt.Errorf("actualizar lead: %w", err)
	}
	if !updated {
		return domain.ErrNotFound
	}
	uc.log.Info().Str("lead_id", leadID).Str("status", string(status)).Msg("estado de lead actualizado")
	return nil
}

// Stats contadores de leads de la empresa del usuario.
func (uc *LeadUseCase) Stats(ctx context.Context, requester entity.Identity) (entity.LeadStats, error) {
	if err := access.RequireCompanyMember(requester); err != nil {
		return entity.LeadStats{}, err
	}
	st, err := uc.leadRepo.StatsBySupplier(ctx, requester.CompanyID)
	if err != nil {
		return entity.LeadStats{}, fmt.Errorf("estadísticas de leads: %w", err)
	}
	return st, nil
}
