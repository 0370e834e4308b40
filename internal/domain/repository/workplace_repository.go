package repository

import (
	"context"

	"github.com/jhoicas/asistencia-api/internal/domain/entity"
)

// WorkplaceRepository persiste la configuración única del lugar de trabajo.
// Get devuelve (nil, nil) si aún no se ha guardado ninguna.
type WorkplaceRepository interface {
	Get(ctx context.Context) (*entity.WorkplaceConfig, error)
	Save(ctx context.Context, cfg *entity.WorkplaceConfig) error
}
