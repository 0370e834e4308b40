package repository

import (
	"context"

	"github.com/jhoicas/asistencia-api/internal/domain/entity"
)

// BackupStore aplica una restauración completa: reemplaza por ID usuarios y
// marcaciones en una sola unidad atómica. Los registros que no vienen en el
// respaldo se conservan.
type BackupStore interface {
	ReplaceByID(ctx context.Context, users []entity.User, events []entity.ClockEvent) error
}
