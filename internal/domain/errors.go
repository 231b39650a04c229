package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los casos de uso devuelven estos sentinelas (o los envuelven con %w) y la capa HTTP
// los traduce a un código estable; los clientes ramifican por código, nunca por mensaje.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("credenciales inválidas")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)
