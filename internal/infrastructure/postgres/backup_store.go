package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
	"github.com/jhoicas/asistencia-api/internal/domain/repository"
)

var _ repository.BackupStore = (*BackupStore)(nil)

const upsertUserSQL = `
	INSERT INTO users (id, name, email, password_hash, role, is_active, created_at, updated_at)
	VALUES ($1, $2, $3, '', $4, $5, $6, $6)
	ON CONFLICT (id) DO UPDATE SET
	    name       = EXCLUDED.name,
	    email      = EXCLUDED.email,
	    role       = EXCLUDED.role,
	    is_active  = EXCLUDED.is_active,
	    updated_at = EXCLUDED.updated_at`

const upsertClockEventSQL = `
	INSERT INTO clock_events (id, user_id, ts, kind, note, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $6)
	ON CONFLICT (id) DO UPDATE SET
	    user_id    = EXCLUDED.user_id,
	    ts         = EXCLUDED.ts,
	    kind       = EXCLUDED.kind,
	    note       = EXCLUDED.note,
	    updated_at = EXCLUDED.updated_at`

// BackupStore ejecuta la restauración dentro de una transacción PostgreSQL.
type BackupStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewBackupStore construye el store con el pool.
func NewBackupStore(pool *pgxpool.Pool) *BackupStore {
	return &BackupStore{pool: pool, now: time.Now}
}

// ReplaceByID encola todos los upserts en un pgx.Batch y hace Commit solo si
// todos se aplican. El hash de contraseña de cuentas existentes no se toca;
// las cuentas nuevas quedan sin contraseña hasta que un administrador la asigne.
func (s *BackupStore) ReplaceByID(ctx context.Context, users []entity.User, events []entity.ClockEvent) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	now := s.now().UTC()
	batch := &pgx.Batch{}
	for _, u := range users {
		batch.Queue(upsertUserSQL, u.ID, u.Name, u.Email, u.Role, u.IsActive, now)
	}
	for _, e := range events {
		batch.Queue(upsertClockEventSQL, e.ID, e.UserID, e.Timestamp, string(e.Kind), e.Note, now)
	}

	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			switch {
			case isForeignKeyViolation(err):
				return fmt.Errorf("%w: marcación de un usuario inexistente", domain.ErrInvalidBackup)
			case isUniqueViolation(err):
				return fmt.Errorf("%w: email duplicado entre cuentas distintas", domain.ErrInvalidBackup)
			}
			return fmt.Errorf("apply backup batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
