package entity

import "time"

// SubscriptionStatus estado de una fila de company_subscriptions.
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionInactive  SubscriptionStatus = "inactive"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

// CompanySubscription fila del historial de suscripciones de una empresa.
// A lo sumo una fila por empresa está activa; cambiar de plan inserta una fila nueva.
type CompanySubscription struct {
	ID        string
	CompanyID string
	PlanID    string
	Status    SubscriptionStatus
	StartDate time.Time
	EndDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CompanySubscriptionSummary empresa con su suscripción activa (si tiene).
type CompanySubscriptionSummary struct {
	Company           Company
	CurrentPlan       *string
	PlanStatus        *SubscriptionStatus
	SubscriptionStart *time.Time
	SubscriptionEnd   *time.Time
}
