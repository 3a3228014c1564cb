package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrIntegrityBlocked  = errors.New("eliminación bloqueada: deuda laboral pendiente")
	ErrPersistence       = errors.New("error de persistencia")
)
