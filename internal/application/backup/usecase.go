// Package backup exporta e importa el respaldo JSON completo de usuarios y
// marcaciones.
package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/asistencia-api/internal/application/dto"
	"github.com/jhoicas/asistencia-api/internal/domain/backup"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
	"github.com/jhoicas/asistencia-api/internal/domain/repository"
	"github.com/jhoicas/asistencia-api/pkg/logger"
)

// UseCase respaldo y restauración.
type UseCase struct {
	users  repository.UserRepository
	events repository.ClockEventRepository
	store  repository.BackupStore
	log    *logger.Logger
	now    func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(users repository.UserRepository, events repository.ClockEventRepository, store repository.BackupStore, log *logger.Logger) *UseCase {
	return &UseCase{users: users, events: events, store: store, log: log.Component("backup"), now: time.Now}
}

// Export serializa todas las cuentas y marcaciones. Devuelve también el
// nombre de archivo sugerido.
func (uc *UseCase) Export(ctx context.Context) ([]byte, string, error) {
	list, err := uc.users.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("backup: listar usuarios: %w", err)
	}
	users := make([]entity.User, 0, len(list))
	for _, u := range list {
		users = append(users, *u)
	}
	events, err := uc.events.List(ctx, repository.ClockEventFilter{})
	if err != nil {
		return nil, "", fmt.Errorf("backup: listar marcaciones: %w", err)
	}

	now := uc.now().UTC()
	data, err := backup.Encode(users, events, now)
	if err != nil {
		return nil, "", err
	}
	uc.log.Info().Int("users", len(users)).Int("time_entries", len(events)).Msg("respaldo exportado")
	return data, fmt.Sprintf("asistencia_respaldo_%s.json", now.Format("20060102_150405")), nil
}

// Import valida el archivo completo y luego reemplaza por ID en una sola
// transacción. Un archivo inválido devuelve domain.ErrInvalidBackup sin
// escribir nada.
func (uc *UseCase) Import(ctx context.Context, adminID string, data []byte) (*dto.BackupImportResult, error) {
	snap, err := backup.Decode(data)
	if err != nil {
		uc.log.Warn().Err(err).Str("admin_id", adminID).Msg("respaldo rechazado")
		return nil, err
	}
	if err := uc.store.ReplaceByID(ctx, snap.Users, snap.Events); err != nil {
		uc.log.Error().Err(err).Str("admin_id", adminID).Msg("no se pudo aplicar el respaldo")
		return nil, err
	}
	uc.log.Info().
		Str("admin_id", adminID).
		Int("users", len(snap.Users)).
		Int("time_entries", len(snap.Events)).
		Int("skipped_users", snap.SkippedUsers).
		Int("skipped_time_entries", snap.SkippedEvents).
		Msg("respaldo importado")
	return &dto.BackupImportResult{
		Users:         len(snap.Users),
		Events:        len(snap.Events),
		SkippedUsers:  snap.SkippedUsers,
		SkippedEvents: snap.SkippedEvents,
		ExportedAt:    snap.ExportedAt,
	}, nil
}
