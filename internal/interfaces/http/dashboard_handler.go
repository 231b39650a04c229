package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/solarsync-api/internal/application/analytics"
)

// DashboardHandler maneja el panel del proveedor.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetAnalytics devuelve visitas al perfil y actividad de leads de la empresa del proveedor.
// GET /api/dashboard/analytics
//
// Respuesta: SupplierAnalyticsDTO (total_views, views_past_30_days, daily_views[30],
// total_leads, pending_leads, recent_leads[5]).
// Las ventanas de fechas se calculan en el servidor.
func (h *DashboardHandler) GetAnalytics(c *fiber.Ctx) error {
	id, ok := GetIdentity(c)
	if !ok {
		return missingIdentity(c)
	}
	out, err := h.uc.GetSupplierAnalytics(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
