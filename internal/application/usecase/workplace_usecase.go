package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/asistencia-api/internal/application/dto"
	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
	"github.com/jhoicas/asistencia-api/internal/domain/geofence"
	"github.com/jhoicas/asistencia-api/internal/domain/repository"
	"github.com/jhoicas/asistencia-api/pkg/logger"
)

// WorkplaceUseCase lectura y guardado de la configuración del lugar de trabajo
// y verificación de geocerca.
type WorkplaceUseCase struct {
	repo     repository.WorkplaceRepository
	defaults entity.WorkplaceConfig
	enforce  bool
	log      *logger.Logger
	now      func() time.Time
}

// NewWorkplaceUseCase defaults se usa mientras ningún administrador guarde la configuración.
func NewWorkplaceUseCase(repo repository.WorkplaceRepository, defaults entity.WorkplaceConfig, enforce bool, log *logger.Logger) *WorkplaceUseCase {
	return &WorkplaceUseCase{
		repo:     repo,
		defaults: defaults,
		enforce:  enforce,
		log:      log.Component("workplace"),
		now:      time.Now,
	}
}

// Effective devuelve la configuración guardada o la de arranque; isDefault
// indica que aún no hay una guardada.
func (uc *WorkplaceUseCase) Effective(ctx context.Context) (cfg entity.WorkplaceConfig, isDefault bool, err error) {
	saved, err := uc.repo.Get(ctx)
	if err != nil {
		return entity.WorkplaceConfig{}, false, fmt.Errorf("workplace: obtener configuración: %w", err)
	}
	if saved == nil {
		return uc.defaults, true, nil
	}
	return *saved, false, nil
}

// Get configuración vigente más la política de posicionamiento para el cliente.
func (uc *WorkplaceUseCase) Get(ctx context.Context) (*dto.WorkplaceResponse, error) {
	cfg, isDefault, err := uc.Effective(ctx)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(cfg, isDefault), nil
}

// Save valida y guarda la configuración (solo administradores).
func (uc *WorkplaceUseCase) Save(ctx context.Context, adminID string, in dto.WorkplaceRequest) (*dto.WorkplaceResponse, error) {
	if in.AllowedRadiusMeters <= 0 || in.StandardWorkdayHours <= 0 || in.StandardWorkdayHours > 24 {
		return nil, domain.ErrInvalidInput
	}
	cfg := entity.WorkplaceConfig{
		Latitude:             in.Latitude,
		Longitude:            in.Longitude,
		AllowedRadiusMeters:  in.AllowedRadiusMeters,
		StandardWorkdayHours: in.StandardWorkdayHours,
		UpdatedAt:            uc.now(),
		UpdatedBy:            adminID,
	}
	if err := uc.repo.Save(ctx, &cfg); err != nil {
		uc.log.Error().Err(err).Str("admin_id", adminID).Msg("no se pudo guardar la configuración")
		return nil, err
	}
	uc.log.Info().
		Str("admin_id", adminID).
		Float64("latitude", cfg.Latitude).
		Float64("longitude", cfg.Longitude).
		Float64("radius_m", cfg.AllowedRadiusMeters).
		Float64("workday_h", cfg.StandardWorkdayHours).
		Msg("configuración del lugar de trabajo guardada")
	return uc.toResponse(cfg, false), nil
}

// Check verifica la posición reportada. Un fallo de posicionamiento no es un
// error: devuelve allowed=false con el mensaje para el usuario.
func (uc *WorkplaceUseCase) Check(ctx context.Context, in dto.GeofenceCheckRequest) (*dto.GeofenceCheckResponse, error) {
	cfg, _, err := uc.Effective(ctx)
	if err != nil {
		return nil, err
	}
	if in.PositionError != "" {
		return &dto.GeofenceCheckResponse{
			Allowed:      false,
			RadiusMeters: cfg.AllowedRadiusMeters,
			Message:      geofence.MessageFor(geofence.PositionErrorCode(in.PositionError)),
		}, nil
	}
	if in.Latitude == nil || in.Longitude == nil {
		return nil, fmt.Errorf("%w: latitude y longitude son obligatorias", domain.ErrInvalidInput)
	}
	res := geofence.Check(geofence.Position{Latitude: *in.Latitude, Longitude: *in.Longitude}, cfg)
	out := &dto.GeofenceCheckResponse{
		Allowed:        res.Allowed,
		DistanceMeters: &res.DistanceMeters,
		RadiusMeters:   res.RadiusMeters,
	}
	if !res.Allowed {
		out.Message = fmt.Sprintf("Está a %.0f m del lugar de trabajo; el radio permitido es %.0f m.", res.DistanceMeters, res.RadiusMeters)
	}
	return out, nil
}

func (uc *WorkplaceUseCase) toResponse(cfg entity.WorkplaceConfig, isDefault bool) *dto.WorkplaceResponse {
	out := &dto.WorkplaceResponse{
		Latitude:             cfg.Latitude,
		Longitude:            cfg.Longitude,
		AllowedRadiusMeters:  cfg.AllowedRadiusMeters,
		StandardWorkdayHours: cfg.StandardWorkdayHours,
		UpdatedBy:            cfg.UpdatedBy,
		IsDefault:            isDefault,
		EnforceGeofence:      uc.enforce,
		PositionPolicy: dto.PositionPolicyDTO{
			TimeoutMs:    geofence.DefaultPositionPolicy.Timeout.Milliseconds(),
			HighAccuracy: geofence.DefaultPositionPolicy.HighAccuracy,
		},
	}
	if !cfg.UpdatedAt.IsZero() {
		t := cfg.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}
