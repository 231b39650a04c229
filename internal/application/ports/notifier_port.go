package ports

import "time"

// LeadCreatedEvent datos que recibe el proveedor cuando un instalador le envía un lead.
type LeadCreatedEvent struct {
	LeadID             string
	SupplierID         string
	SupplierName       string
	InstallerID        string
	ContactEmail       string
	ProjectDescription string
	CreatedAt          time.Time
}

// LeadNotifier define el puerto de salida para avisar al proveedor de un lead nuevo.
// La entrega es best-effort: LeadCreated encola y retorna sin esperar resultado,
// y un fallo en la notificación nunca afecta a la creación del lead.
type LeadNotifier interface {
	LeadCreated(event LeadCreatedEvent)
}
