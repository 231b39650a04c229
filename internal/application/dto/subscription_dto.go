package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePlanRequest entrada para crear un plan (solo admin).
type CreatePlanRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=100"`
	Description  string          `json:"description" validate:"max=1000"`
	Price        decimal.Decimal `json:"price"`
	BillingCycle string          `json:"billing_cycle" validate:"required"`
	MaxProducts  *int            `json:"max_products"`
	MaxUsers     *int            `json:"max_users"`
	Features     string          `json:"features"`
}

// PlanResponse salida de un plan.
type PlanResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Price        decimal.Decimal `json:"price"`
	BillingCycle string          `json:"billing_cycle"`
	MaxProducts  *int            `json:"max_products,omitempty"`
	MaxUsers     *int            `json:"max_users,omitempty"`
	Features     string          `json:"features,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// AssignSubscriptionRequest cambia el plan activo de una empresa.
type AssignSubscriptionRequest struct {
	CompanyID string `json:"company_id" validate:"required"`
	PlanID    string `json:"plan_id" validate:"required"`
}

// SubscriptionResponse fila del historial de suscripciones.
type SubscriptionResponse struct {
	ID        string     `json:"id"`
	CompanyID string     `json:"company_id"`
	PlanID    string     `json:"plan_id"`
	Status    string     `json:"status"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CompanySubscriptionResponse empresa con los datos de su suscripción activa.
type CompanySubscriptionResponse struct {
	CompanyResponse
	CurrentPlan       *string    `json:"current_plan"`
	PlanStatus        *string    `json:"plan_status"`
	SubscriptionStart *time.Time `json:"subscription_start"`
	SubscriptionEnd   *time.Time `json:"subscription_end"`
}

// CompanySubscriptionListResponse listado paginado para el panel de administración.
type CompanySubscriptionListResponse struct {
	Items []CompanySubscriptionResponse `json:"items"`
	Page  PageResponse                  `json:"page"`
}

// CurrentSubscriptionResponse suscripción activa de la empresa con el detalle de su plan.
type CurrentSubscriptionResponse struct {
	SubscriptionResponse
	Plan PlanResponse `json:"plan"`
}
