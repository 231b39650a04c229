package dto

import "time"

// RegisterRequest entrada para registro: los proveedores deben indicar el nombre de su empresa.
type RegisterRequest struct {
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=6,max=72"`
	FullName    string  `json:"full_name" validate:"required,min=1,max=200"`
	Role        string  `json:"role" validate:"required"`
	CompanyName *string `json:"company_name" validate:"omitempty,max=200"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name"`
	Role        string    `json:"role"`
	CompanyID   *string   `json:"company_id,omitempty"`
	CompanyName *string   `json:"company_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse identidad autenticada más el token Bearer que solo transporta el user id.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// IdentityResponse rol y empresa resueltos para el usuario autenticado.
type IdentityResponse struct {
	UserID    string  `json:"user_id"`
	Role      string  `json:"role"`
	CompanyID *string `json:"company_id,omitempty"`
}
