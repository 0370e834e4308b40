package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
	"github.com/jhoicas/asistencia-api/internal/domain/repository"
)

var _ repository.ClockEventRepository = (*ClockEventRepo)(nil)

const clockEventColumns = `id, user_id, ts, kind, note, created_at, updated_at`

// ClockEventRepo implementación de ClockEventRepository (usable con pool o tx).
type ClockEventRepo struct {
	q Querier
}

// NewClockEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClockEventRepository(q Querier) *ClockEventRepo {
	return &ClockEventRepo{q: q}
}

// Create persiste una marcación.
func (r *ClockEventRepo) Create(ctx context.Context, e *entity.ClockEvent) error {
	query := `
		INSERT INTO clock_events (` + clockEventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, e.ID, e.UserID, e.Timestamp, string(e.Kind), e.Note, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrUserNotFound
		}
		return fmt.Errorf("insert clock event: %w", err)
	}
	return nil
}

// GetByID obtiene una marcación; (nil, nil) si no existe.
func (r *ClockEventRepo) GetByID(ctx context.Context, id string) (*entity.ClockEvent, error) {
	e, err := scanClockEvent(r.q.QueryRow(ctx, `SELECT `+clockEventColumns+` FROM clock_events WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get clock event: %w", err)
	}
	return &e, nil
}

// Update persiste solo timestamp y nota.
func (r *ClockEventRepo) Update(ctx context.Context, e *entity.ClockEvent) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE clock_events SET ts = $2, note = $3, updated_at = $4 WHERE id = $1`,
		e.ID, e.Timestamp, e.Note, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update clock event: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una marcación.
func (r *ClockEventRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM clock_events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete clock event: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve las marcaciones que cumplen el filtro, ascendente por instante.
func (r *ClockEventRepo) List(ctx context.Context, f repository.ClockEventFilter) ([]entity.ClockEvent, error) {
	var (
		conds []string
		args  []any
	)
	if f.UserID != "" {
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		conds = append(conds, fmt.Sprintf("ts >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		conds = append(conds, fmt.Sprintf("ts < $%d", len(args)))
	}
	query := `SELECT ` + clockEventColumns + ` FROM clock_events`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY ts, id"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clock events: %w", err)
	}
	defer rows.Close()

	var list []entity.ClockEvent
	for rows.Next() {
		e, err := scanClockEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan clock event: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

func scanClockEvent(row pgx.Row) (entity.ClockEvent, error) {
	var (
		e    entity.ClockEvent
		kind string
	)
	err := row.Scan(&e.ID, &e.UserID, &e.Timestamp, &kind, &e.Note, &e.CreatedAt, &e.UpdatedAt)
	e.Kind = entity.ClockKind(kind)
	return e, err
}
