package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingCycle ciclo de cobro de un plan.
type BillingCycle string

const (
	BillingMonthly BillingCycle = "monthly"
	BillingYearly  BillingCycle = "yearly"
)

// Valid informa si el ciclo es monthly o yearly.
func (b BillingCycle) Valid() bool {
	return b == BillingMonthly || b == BillingYearly
}

// Plan plan de suscripción. Inmutable después de creado por un admin.
type Plan struct {
	ID           string
	Name         string
	Description  string
	Price        decimal.Decimal
	BillingCycle BillingCycle
	MaxProducts  *int // nil = sin límite
	MaxUsers     *int
	Features     string // JSON con las funcionalidades del plan
	CreatedAt    time.Time
}
