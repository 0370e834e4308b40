package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/asistencia-api/internal/domain/entity"
	"github.com/jhoicas/asistencia-api/internal/domain/repository"
)

var _ repository.WorkplaceRepository = (*WorkplaceRepo)(nil)

// WorkplaceRepo persiste la fila única de workplace_config.
type WorkplaceRepo struct {
	q Querier
}

// NewWorkplaceRepository construye el adaptador.
func NewWorkplaceRepository(q Querier) *WorkplaceRepo {
	return &WorkplaceRepo{q: q}
}

// Get devuelve la configuración guardada o (nil, nil) si aún no existe.
func (r *WorkplaceRepo) Get(ctx context.Context) (*entity.WorkplaceConfig, error) {
	var (
		cfg    entity.WorkplaceConfig
		radius decimal.Decimal
		hours  decimal.Decimal
	)
	err := r.q.QueryRow(ctx, `
		SELECT latitude, longitude, allowed_radius_meters, standard_workday_hours, updated_at, updated_by
		FROM workplace_config WHERE id = 1`,
	).Scan(&cfg.Latitude, &cfg.Longitude, &radius, &hours, &cfg.UpdatedAt, &cfg.UpdatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get workplace config: %w", err)
	}
	cfg.AllowedRadiusMeters = radius.InexactFloat64()
	cfg.StandardWorkdayHours = hours.InexactFloat64()
	return &cfg, nil
}

// Save inserta o reemplaza la configuración.
func (r *WorkplaceRepo) Save(ctx context.Context, cfg *entity.WorkplaceConfig) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO workplace_config (id, latitude, longitude, allowed_radius_meters, standard_workday_hours, updated_at, updated_by)
		VALUES (1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
		    latitude               = EXCLUDED.latitude,
		    longitude              = EXCLUDED.longitude,
		    allowed_radius_meters  = EXCLUDED.allowed_radius_meters,
		    standard_workday_hours = EXCLUDED.standard_workday_hours,
		    updated_at             = EXCLUDED.updated_at,
		    updated_by             = EXCLUDED.updated_by`,
		cfg.Latitude, cfg.Longitude,
		decimal.NewFromFloat(cfg.AllowedRadiusMeters).Round(2),
		decimal.NewFromFloat(cfg.StandardWorkdayHours).Round(2),
		cfg.UpdatedAt, cfg.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("save workplace config: %w", err)
	}
	return nil
}
