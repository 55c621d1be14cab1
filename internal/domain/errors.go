package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// ErrValidation, ErrConnection y ErrConstraint son la taxonomía de fallos de los registradores.
var (
	ErrValidation   = errors.New("entrada inválida")
	ErrConnection   = errors.New("base de datos no disponible")
	ErrConstraint   = errors.New("restricción de esquema violada")
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUnauthorized = errors.New("no autorizado")
)
