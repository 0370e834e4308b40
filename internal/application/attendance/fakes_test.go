package attendance

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
	"github.com/jhoicas/asistencia-api/internal/domain/repository"
)

var bogota = time.FixedZone("COT", -5*3600)

type memEvents struct {
	mu     sync.Mutex
	events map[string]entity.ClockEvent
}

func newMemEvents(events ...entity.ClockEvent) *memEvents {
	m := &memEvents{events: make(map[string]entity.ClockEvent)}
	for _, e := range events {
		m.events[e.ID] = e
	}
	return m
}

func (m *memEvents) Create(_ context.Context, e *entity.ClockEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[e.ID] = *e
	return nil
}

func (m *memEvents) GetByID(_ context.Context, id string) (*entity.ClockEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.events[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (m *memEvents) Update(_ context.Context, e *entity.ClockEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.events[e.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Timestamp, cur.Note, cur.UpdatedAt = e.Timestamp, e.Note, e.UpdatedAt
	m.events[e.ID] = cur
	return nil
}

func (m *memEvents) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

func (m *memEvents) List(_ context.Context, f repository.ClockEventFilter) ([]entity.ClockEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.ClockEvent
	for _, e := range m.events {
		if f.UserID != "" && e.UserID != f.UserID {
			continue
		}
		if f.From != nil && e.Timestamp.Before(*f.From) {
			continue
		}
		if f.To != nil && !e.Timestamp.Before(*f.To) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

type memUsers struct {
	users []*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.users = append(m.users, u)
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Update(context.Context, *entity.User) error   { return nil }
func (m *memUsers) List(context.Context) ([]*entity.User, error) { return m.users, nil }
func (m *memUsers) Delete(context.Context, string) error         { return nil }

type fixedWorkplace struct {
	cfg entity.WorkplaceConfig
}

func (w fixedWorkplace) Effective(context.Context) (entity.WorkplaceConfig, bool, error) {
	return w.cfg, false, nil
}

var office = entity.WorkplaceConfig{
	Latitude:             4.6097,
	Longitude:            -74.0817,
	AllowedRadiusMeters:  100,
	StandardWorkdayHours: 8,
}

func at(day, hhmm string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", day+" "+hhmm, bogota)
	if err != nil {
		panic(err)
	}
	return t
}

func event(id, user string, kind entity.ClockKind, ts time.Time) entity.ClockEvent {
	return entity.ClockEvent{ID: id, UserID: user, Kind: kind, Timestamp: ts}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ptr[T any](v T) *T { return &v }
