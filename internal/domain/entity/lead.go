package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeadStatus estado de una solicitud de cotización.
type LeadStatus string

// Camino convencional: pending → contacted → quoted → closed.
// El orden no se impone: cualquier valor del conjunto es aceptado al actualizar.
const (
	LeadStatusPending   LeadStatus = "pending"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQuoted    LeadStatus = "quoted"
	LeadStatusClosed    LeadStatus = "closed"
)

// LeadStatuses conjunto fijo de estados válidos.
var LeadStatuses = []LeadStatus{LeadStatusPending, LeadStatusContacted, LeadStatusQuoted, LeadStatusClosed}

// Valid informa si el estado pertenece al conjunto fijo.
func (s LeadStatus) Valid() bool {
	for _, v := range LeadStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Lead solicitud de cotización creada por un instalador contra una empresa proveedora.
type Lead struct {
	ID                     string
	InstallerID            string // usuario creador (dueño)
	SupplierID             string // empresa destino
	ProjectDescription     string
	ProjectType            string
	EstimatedBudget        *decimal.Decimal
	Location               string
	ContactEmail           string
	ContactPhone           string
	PreferredContactMethod string
	Timeline               string
	Status                 LeadStatus
	Notes                  *string
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// LeadWithSupplier lead enriquecido con el nombre visible del proveedor.
type LeadWithSupplier struct {
	Lead
	SupplierName string
}

// LeadStats contadores de leads recibidos por una empresa.
type LeadStats struct {
	Total   int
	Pending int
}
