package entity

import "time"

// Company representa una empresa proveedora del directorio.
type Company struct {
	ID          string
	Name        string
	Description string
	Address     string
	City        string
	State       string // sigla del estado, en mayúsculas (ej. SP)
	Phone       string
	Email       string
	Website     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
