package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// ErrValidation relación o medida mal formada (rechazada al crear, nunca se corrige en silencio).
	ErrValidation = errors.New("validación fallida")
	// ErrDimensionMismatch aritmética o comparación entre dimensiones distintas.
	ErrDimensionMismatch = errors.New("dimensiones de medida incompatibles")
	// ErrIncompatibleDimension conversión hacia una unidad de otra dimensión.
	ErrIncompatibleDimension = errors.New("la unidad destino pertenece a otra dimensión")
	// ErrInvalidRange fecha inicial posterior a la final.
	ErrInvalidRange = errors.New("rango de fechas inválido")
)
