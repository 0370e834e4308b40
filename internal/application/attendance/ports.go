// Package attendance orquesta marcaciones, hojas de tiempo, tablero y
// exportaciones sobre el núcleo puro de internal/domain/attendance.
package attendance

import (
	"context"
	"time"

	"github.com/jhoicas/asistencia-api/internal/domain/entity"
)

// WorkplaceProvider devuelve la configuración vigente del lugar de trabajo.
type WorkplaceProvider interface {
	Effective(ctx context.Context) (cfg entity.WorkplaceConfig, isDefault bool, err error)
}

// Requester identidad del usuario que hace la petición.
type Requester struct {
	UserID string
	Role   string
}

// IsAdmin informa si el solicitante es administrador.
func (r Requester) IsAdmin() bool { return r.Role == entity.RoleAdmin }

// TimesheetRenderer convierte la hoja de tiempos a un documento descargable.
type TimesheetRenderer interface {
	Render(ctx context.Context, doc TimesheetDocument) ([]byte, error)
	ContentType() string
	Extension() string
}

// TimesheetDocument contenido a exportar.
type TimesheetDocument struct {
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Rows        []ExportRow
}

// dayBounds ventana de lectura que contiene el día local de t completo, de
// mediodía a mediodía de los días vecinos; EventsOfDay recorta por fecha.
func dayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	l := t.In(loc)
	noon := time.Date(l.Year(), l.Month(), l.Day(), 12, 0, 0, 0, loc)
	return noon.AddDate(0, 0, -1), noon.AddDate(0, 0, 1)
}
