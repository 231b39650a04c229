package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo de un proveedor.
type Product struct {
	ID          string
	SupplierID  string
	Name        string
	Description string
	Price       *decimal.Decimal
	Category    string
	Brand       string
	CreatedAt   time.Time
}
