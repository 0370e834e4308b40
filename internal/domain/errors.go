package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInactiveAccount    = errors.New("cuenta inactiva")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Asistencia
	ErrOutsideGeofence = errors.New("fuera del radio permitido del lugar de trabajo")
	ErrPositionFailure = errors.New("no se pudo obtener la ubicación")
	ErrInvalidPunch    = errors.New("marcación no permitida en el estado actual")

	// Respaldo
	ErrInvalidBackup = errors.New("archivo de respaldo inválido")

	// Operaciones que el proveedor de identidad no ofrece sin un servicio adicional.
	ErrNotImplemented = errors.New("operación no disponible: requiere un servicio de backend adicional")
)
