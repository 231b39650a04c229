package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyResponse salida pública de una empresa del directorio.
type CompanyResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Website     string    `json:"website,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CompanyProfileResponse empresa con su catálogo de productos.
type CompanyProfileResponse struct {
	CompanyResponse
	Products []ProductResponse `json:"products"`
}

// ProductResponse salida de un producto del catálogo.
type ProductResponse struct {
	ID          string           `json:"id"`
	SupplierID  string           `json:"supplier_id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Category    string           `json:"category,omitempty"`
	Brand       string           `json:"brand,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// CreateReviewRequest reseña de un producto.
type CreateReviewRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required"`
	Comment   string `json:"comment" validate:"max=2000"`
}

// ReviewResponse salida de una reseña.
type ReviewResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
