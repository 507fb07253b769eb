package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los casos de uso los retornan
// tal cual y la capa HTTP los traduce a códigos de estado.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidReference  = errors.New("referencia de catálogo inexistente")
	ErrInvalidTransfer   = errors.New("traslado inválido entre bodegas")
	ErrInvalidState      = errors.New("transición de estado no permitida")
	ErrAssetUnavailable  = errors.New("activo no disponible para reserva")
)
