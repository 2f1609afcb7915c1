package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrLocationOccupied  = errors.New("la locación ya está asignada a otra etapa activa")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrReferenced        = errors.New("el recurso está referenciado por otros registros")
	ErrTimeout           = errors.New("la operación excedió el tiempo límite")
)
