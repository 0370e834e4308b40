package geofence

import "fmt"

// PositionErrorCode fallos que el cliente puede reportar al pedir la ubicación.
type PositionErrorCode string

const (
	PositionUnsupported      PositionErrorCode = "unsupported"
	PositionPermissionDenied PositionErrorCode = "permission_denied"
	PositionUnavailable      PositionErrorCode = "position_unavailable"
	PositionTimeout          PositionErrorCode = "timeout"
)

const positionUnknownDescription = "Error desconocido al obtener la ubicación."

var positionMessages = map[PositionErrorCode]string{
	PositionUnsupported:      "Este dispositivo no permite obtener la ubicación.",
	PositionPermissionDenied: "Permiso de ubicación denegado. Habilítelo para poder marcar.",
	PositionUnavailable:      "La ubicación no está disponible en este momento.",
	PositionTimeout:          "Se agotó el tiempo de espera al obtener la ubicación.",
}

// PositionError fallo tipado de posicionamiento. Nunca es fatal: solo
// deshabilita las marcaciones hasta que el usuario lo resuelva.
type PositionError struct {
	Code PositionErrorCode
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("geofence: %s", e.Code)
}

// Message devuelve el texto para el usuario.
func (e *PositionError) Message() string {
	return MessageFor(e.Code)
}

// MessageFor devuelve el texto para el usuario de cada código.
func MessageFor(code PositionErrorCode) string {
	if m, ok := positionMessages[code]; ok {
		return m
	}
	return positionUnknownDescription
}

// KnownCode indica si el código es uno de los cuatro fallos tipados.
func KnownCode(code PositionErrorCode) bool {
	_, ok := positionMessages[code]
	return ok
}
