package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                = errors.New("recurso no encontrado")
	ErrInvalidInput            = errors.New("entrada inválida")
	ErrInsufficientStock       = errors.New("stock insuficiente")
	ErrSignMismatch            = errors.New("el signo de la cantidad no coincide con el tipo de movimiento")
	ErrInvalidConversionFactor = errors.New("factor de conversión inválido (debe ser mayor que cero)")
)
