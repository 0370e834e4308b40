package attendance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/asistencia-api/internal/application/dto"
	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/internal/domain/attendance"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
	"github.com/jhoicas/asistencia-api/internal/domain/geofence"
	"github.com/jhoicas/asistencia-api/internal/domain/repository"
	"github.com/jhoicas/asistencia-api/pkg/logger"
)

// ClockUseCase marcaciones del empleado y edición manual por administradores.
type ClockUseCase struct {
	events    repository.ClockEventRepository
	users     repository.UserRepository
	workplace WorkplaceProvider
	enforce   bool
	loc       *time.Location
	log       *logger.Logger
	now       func() time.Time
}

// NewClockUseCase construye el caso de uso. Con enforce=false la geocerca solo
// informa la distancia y no bloquea la marcación.
func NewClockUseCase(
	events repository.ClockEventRepository,
	users repository.UserRepository,
	workplace WorkplaceProvider,
	enforce bool,
	loc *time.Location,
	log *logger.Logger,
) *ClockUseCase {
	if loc == nil {
		loc = time.Local
	}
	return &ClockUseCase{
		events:    events,
		users:     users,
		workplace: workplace,
		enforce:   enforce,
		loc:       loc,
		log:       log.Component("clock"),
		now:       time.Now,
	}
}

// Punch registra una marcación del usuario autenticado.
//
// Retorna:
//   - domain.ErrInactiveAccount  si la cuenta está desactivada.
//   - domain.ErrPositionFailure  si el dispositivo no pudo dar la ubicación.
//   - domain.ErrOutsideGeofence  si la posición está fuera del radio.
//   - domain.ErrInvalidPunch     si el tipo no sigue a la última marcación del día.
func (uc *ClockUseCase) Punch(ctx context.Context, userID string, in dto.PunchRequest) (*dto.PunchResponse, error) {
	kind := entity.ClockKind(in.Kind)
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: tipo de marcación %q", domain.ErrInvalidInput, in.Kind)
	}
	if err := uc.requireActive(ctx, userID); err != nil {
		return nil, err
	}

	distance, err := uc.checkPosition(ctx, userID, in)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	today, err := uc.dayEvents(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	if !attendance.CanPunch(kind, today) {
		return nil, fmt.Errorf("%w: se esperaba %s", domain.ErrInvalidPunch,
			strings.Join(kindsToStrings(attendance.NextKinds(today)), " o "))
	}

	ev := entity.ClockEvent{
		ID:        uuid.New().String(),
		UserID:    userID,
		Timestamp: now.UTC(),
		Kind:      kind,
		Note:      strings.TrimSpace(in.Note),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.events.Create(ctx, &ev); err != nil {
		uc.log.Error().Err(err).Str("user_id", userID).Str("kind", in.Kind).Msg("no se pudo guardar la marcación")
		return nil, err
	}

	logEv := uc.log.Info().Str("user_id", userID).Str("kind", in.Kind).Str("event_id", ev.ID)
	if distance != nil {
		logEv = logEv.Float64("distance_m", *distance)
	}
	logEv.Msg("marcación registrada")

	return &dto.PunchResponse{
		Event:          toEventResponse(ev),
		DistanceMeters: distance,
		NextKinds:      kindsToStrings(attendance.NextKinds(append(today, ev))),
	}, nil
}

// checkPosition aplica la geocerca. Devuelve la distancia cuando hay coordenadas.
func (uc *ClockUseCase) checkPosition(ctx context.Context, userID string, in dto.PunchRequest) (*float64, error) {
	if in.PositionError != "" {
		if !uc.enforce {
			return nil, nil
		}
		code := geofence.PositionErrorCode(in.PositionError)
		uc.log.Warn().Str("user_id", userID).Str("position_error", in.PositionError).Msg("marcación sin ubicación")
		return nil, fmt.Errorf("%w: %s", domain.ErrPositionFailure, geofence.MessageFor(code))
	}
	if in.Latitude == nil || in.Longitude == nil {
		if !uc.enforce {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: latitude y longitude son obligatorias", domain.ErrInvalidInput)
	}

	cfg, _, err := uc.workplace.Effective(ctx)
	if err != nil {
		return nil, err
	}
	res := geofence.Check(geofence.Position{Latitude: *in.Latitude, Longitude: *in.Longitude}, cfg)
	if !res.Allowed && uc.enforce {
		uc.log.Warn().
			Str("user_id", userID).
			Float64("distance_m", res.DistanceMeters).
			Float64("radius_m", res.RadiusMeters).
			Msg("marcación fuera de la geocerca")
		return nil, fmt.Errorf("%w: a %.0f m (radio %.0f m)", domain.ErrOutsideGeofence, res.DistanceMeters, res.RadiusMeters)
	}
	d := res.DistanceMeters
	return &d, nil
}

// Today marcaciones del día local del usuario, su registro derivado y los
// tipos de marcación habilitados.
func (uc *ClockUseCase) Today(ctx context.Context, userID string) (*dto.TodayResponse, error) {
	now := uc.now()
	today, err := uc.dayEvents(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	out := &dto.TodayResponse{
		Date:      now.In(uc.loc).Format(attendance.DateLayout),
		Events:    toEventResponses(today),
		NextKinds: kindsToStrings(attendance.NextKinds(today)),
	}
	if len(today) > 0 {
		rec, err := uc.todayRecord(ctx, userID, now)
		if err != nil {
			return nil, err
		}
		out.Record = rec
	}
	return out, nil
}

// todayRecord registro de hoy con el banco de horas de todo el historial del
// usuario hasta hoy inclusive.
func (uc *ClockUseCase) todayRecord(ctx context.Context, userID string, now time.Time) (*dto.DailyRecordDTO, error) {
	cfg, _, err := uc.workplace.Effective(ctx)
	if err != nil {
		return nil, err
	}
	_, end := dayBounds(now, uc.loc)
	history, err := uc.events.List(ctx, repository.ClockEventFilter{UserID: userID, To: &end})
	if err != nil {
		return nil, fmt.Errorf("clock: listar historial: %w", err)
	}
	key := now.In(uc.loc).Format(attendance.DateLayout)
	for _, r := range attendance.Accumulate(attendance.Aggregate(history, cfg.StandardWorkday(), uc.loc), attendance.Descending) {
		if r.DateKey() == key {
			rec := toRecordDTO(r, nil)
			return &rec, nil
		}
	}
	return nil, nil
}

// CreateManual alta de una marcación con instante explícito por un
// administrador. No pasa por geocerca ni por la secuencia del día.
func (uc *ClockUseCase) CreateManual(ctx context.Context, adminID string, in dto.ManualEventRequest) (*dto.ClockEventResponse, error) {
	kind := entity.ClockKind(in.Kind)
	if !kind.Valid() || in.Timestamp.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	now := uc.now()
	ev := entity.ClockEvent{
		ID:        uuid.New().String(),
		UserID:    in.UserID,
		Timestamp: in.Timestamp.UTC(),
		Kind:      kind,
		Note:      strings.TrimSpace(in.Note),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.events.Create(ctx, &ev); err != nil {
		uc.log.Error().Err(err).Str("admin_id", adminID).Str("user_id", in.UserID).Msg("no se pudo crear la marcación manual")
		return nil, err
	}
	uc.log.Info().Str("admin_id", adminID).Str("user_id", in.UserID).Str("event_id", ev.ID).Str("kind", in.Kind).Msg("marcación manual creada")
	out := toEventResponse(ev)
	return &out, nil
}

// UpdateEvent cambia instante y/o nota de una marcación.
func (uc *ClockUseCase) UpdateEvent(ctx context.Context, adminID, id string, in dto.UpdateEventRequest) (*dto.ClockEventResponse, error) {
	ev, err := uc.events.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ev == nil {
		return nil, domain.ErrNotFound
	}
	if in.Timestamp == nil && in.Note == nil {
		return nil, fmt.Errorf("%w: nada que actualizar", domain.ErrInvalidInput)
	}
	if in.Timestamp != nil {
		if in.Timestamp.IsZero() {
			return nil, domain.ErrInvalidInput
		}
		ev.Timestamp = in.Timestamp.UTC()
	}
	if in.Note != nil {
		ev.Note = strings.TrimSpace(*in.Note)
	}
	ev.UpdatedAt = uc.now()
	if err := uc.events.Update(ctx, ev); err != nil {
		uc.log.Error().Err(err).Str("admin_id", adminID).Str("event_id", id).Msg("no se pudo editar la marcación")
		return nil, err
	}
	uc.log.Info().Str("admin_id", adminID).Str("event_id", id).Time("timestamp", ev.Timestamp).Msg("marcación editada")
	out := toEventResponse(*ev)
	return &out, nil
}

// DeleteEvent elimina una marcación.
func (uc *ClockUseCase) DeleteEvent(ctx context.Context, adminID, id string) error {
	if err := uc.events.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.log.Error().Err(err).Str("admin_id", adminID).Str("event_id", id).Msg("no se pudo eliminar la marcación")
		}
		return err
	}
	uc.log.Warn().Str("admin_id", adminID).Str("event_id", id).Msg("marcación eliminada")
	return nil
}

func (uc *ClockUseCase) requireActive(ctx context.Context, userID string) error {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if !user.IsActive {
		return domain.ErrInactiveAccount
	}
	return nil
}

func (uc *ClockUseCase) dayEvents(ctx context.Context, userID string, now time.Time) ([]entity.ClockEvent, error) {
	from, to := dayBounds(now, uc.loc)
	events, err := uc.events.List(ctx, repository.ClockEventFilter{UserID: userID, From: &from, To: &to})
	if err != nil {
		return nil, fmt.Errorf("clock: listar marcaciones del día: %w", err)
	}
	return attendance.EventsOfDay(events, userID, now, uc.loc), nil
}
