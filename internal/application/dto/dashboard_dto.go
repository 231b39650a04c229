package dto

// DailyViewsDTO visitas de un día (fecha YYYY-MM-DD) para la gráfica del dashboard.
type DailyViewsDTO struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
}

// SupplierAnalyticsDTO resumen del panel del proveedor.
type SupplierAnalyticsDTO struct {
	TotalViews      int             `json:"total_views"`
	ViewsPast30Days int             `json:"views_past_30_days"`
	DailyViews      []DailyViewsDTO `json:"daily_views"`
	TotalLeads      int             `json:"total_leads"`
	PendingLeads    int             `json:"pending_leads"`
	RecentLeads     []LeadResponse  `json:"recent_leads"`
}
