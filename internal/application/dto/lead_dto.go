package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLeadRequest solicitud de cotización de un instalador a un proveedor.
type CreateLeadRequest struct {
	SupplierID             string           `json:"supplier_id" validate:"required"`
	ProjectDescription     string           `json:"project_description" validate:"required,max=5000"`
	ProjectType            string           `json:"project_type" validate:"max=100"`
	EstimatedBudget        *decimal.Decimal `json:"estimated_budget"`
	Location               string           `json:"location" validate:"max=200"`
	ContactEmail           string           `json:"contact_email" validate:"required,email"`
	ContactPhone           string           `json:"contact_phone" validate:"max=50"`
	PreferredContactMethod string           `json:"preferred_contact_method" validate:"max=50"`
	Timeline               string           `json:"timeline" validate:"max=100"`
}

// UpdateLeadStatusRequest nuevo estado y notas del proveedor.
// El estado se valida en el caso de uso contra el conjunto fijo.
type UpdateLeadStatusRequest struct {
	Status string  `json:"status" validate:"required"`
	Notes  *string `json:"notes" validate:"omitempty,max=5000"`
}

// LeadResponse salida de un lead.
type LeadResponse struct {
	ID                     string           `json:"id"`
	InstallerID            string           `json:"installer_id"`
	SupplierID             string           `json:"supplier_id"`
	ProjectDescription     string           `json:"project_description"`
	ProjectType            string           `json:"project_type,omitempty"`
	EstimatedBudget        *decimal.Decimal `json:"estimated_budget,omitempty"`
	Location               string           `json:"location,omitempty"`
	ContactEmail           string           `json:"contact_email"`
	ContactPhone           string           `json:"contact_phone,omitempty"`
	PreferredContactMethod string           `json:"preferred_contact_method,omitempty"`
	Timeline               string           `json:"timeline,omitempty"`
	Status                 string           `json:"status"`
	Notes                  *string          `json:"notes,omitempty"`
	CreatedAt              time.Time        `json:"created_at"`
	UpdatedAt              time.Time        `json:"updated_at"`
}

// LeadWithSupplierResponse lead del instalador con el nombre del proveedor.
type LeadWithSupplierResponse struct {
	LeadResponse
	SupplierName string `json:"supplier_name"`
}
