package repository

import (
	"context"
	"time"

	"github.com/jhoicas/asistencia-api/internal/domain/entity"
)

// ClockEventFilter recorta la lectura de marcaciones. Campos vacíos no filtran.
// From es inclusivo y To exclusivo (instantes).
type ClockEventFilter struct {
	UserID string
	From   *time.Time
	To     *time.Time
}

// ClockEventRepository define el puerto de persistencia para ClockEvent (DIP).
type ClockEventRepository interface {
	Create(ctx context.Context, event *entity.ClockEvent) error
	GetByID(ctx context.Context, id string) (*entity.ClockEvent, error)
	// Update solo persiste Timestamp, Note y UpdatedAt.
	Update(ctx context.Context, event *entity.ClockEvent) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ClockEventFilter) ([]entity.ClockEvent, error)
}
