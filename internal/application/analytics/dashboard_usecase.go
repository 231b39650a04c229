// Package analytics contiene el panel de analítica del proveedor: visitas a su perfil y
// actividad de leads recibidos.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/solarsync-api/internal/application/dto"
	"github.com/jhoicas/solarsync-api/internal/domain/access"
	"github.com/jhoicas/solarsync-api/internal/domain/entity"
	"github.com/jhoicas/solarsync-api/internal/domain/repository"
)

const (
	dashboardPeriodDays  = 30 // ventana de la gráfica de visitas
	dashboardRecentLeads = 5  // leads en el widget "recientes"
)

// DashboardUseCase genera el resumen del panel del proveedor.
//
// Fuente de datos: ProfileViewRepository y LeadRepository (consultas read-only).
type DashboardUseCase struct {
	viewRepo repository.ProfileViewRepository
	leadRepo repository.LeadRepository
	now      func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(viewRepo repository.ProfileViewRepository, leadRepo repository.LeadRepository) *DashboardUseCase {
	return &DashboardUseCase{
		viewRepo: viewRepo,
		leadRepo: leadRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetSupplierAnalytics construye el SupplierAnalyticsDTO para la empresa del usuario.
//
// Tres llamadas en paralelo:
//  1. Stats de visitas (total + últimos 30 días por día)
//  2. StatsBySupplier          → TotalLeads + PendingLeads
//  3. ListBySupplier(top 5)    → RecentLeads
func (uc *DashboardUseCase) GetSupplierAnalytics(ctx context.Context, requester entity.Identity) (*dto.SupplierAnalyticsDTO, error) {
	if err := access.RequireCompanyMember(requester); err != nil {
		return nil, err
	}
	companyID := requester.CompanyID
	since := uc.now().Truncate(24*time.Hour).AddDate(0, 0, -(dashboardPeriodDays - 1))

	type viewsResult struct {
		stats entity.ProfileViewStats
		err   error
	}
	type leadStatsResult struct {
		stats entity.LeadStats
		err   error
	}
	type recentResult struct {
		leads []*entity.Lead
		err   error
	}

	viewsCh := make(chan viewsResult, 1)
	statsCh := make(chan leadStatsResult, 1)
	recentCh := make(chan recentResult, 1)

	go func() {
		st, err := uc.viewRepo.Stats(ctx, companyID, since)
		viewsCh <- viewsResult{st, err}
	}()
	go func() {
		st, err := uc.leadRepo.StatsBySupplier(ctx, companyID)
		statsCh <- leadStatsResult{st, err}
	}()
	go func() {
		list, err := uc.leadRepo.ListBySupplier(ctx, companyID, dashboardRecentLeads)
		recentCh <- recentResult{list, err}
	}()

	views := <-viewsCh
	stats := <-statsCh
	recent := <-recentCh

	if views.err != nil {
		return nil, fmt.Errorf("dashboard: visitas: %w", views.err)
	}
	if stats.err != nil {
		return nil, fmt.Errorf("dashboard: leads: %w", stats.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("dashboard: leads recientes: %w", recent.err)
	}

	daily := make([]dto.DailyViewsDTO, 0, len(views.stats.Daily))
	for _, d := range views.stats.Daily {
		daily = append(daily, dto.DailyViewsDTO{Date: d.Day.Format("2006-01-02"), Views: d.Views})
	}

	return &dto.SupplierAnalyticsDTO{
		TotalViews:      views.stats.Total,
		ViewsPast30Days: views.stats.LastPeriod,
		DailyViews:      daily,
		TotalLeads:      stats.stats.Total,
		PendingLeads:    stats.stats.Pending,
		RecentLeads:     dto.FromLeads(recent.leads),
	}, nil
}
