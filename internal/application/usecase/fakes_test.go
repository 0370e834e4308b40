package usecase_test

import (
	"context"
	"strings"

	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
)

type memUsers struct {
	byID map[string]*entity.User
}

func newMemUsers(users ...*entity.User) *memUsers {
	m := &memUsers{byID: make(map[string]*entity.User)}
	for _, u := range users {
		m.byID[u.ID] = u
	}
	return m
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.byID {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	if _, ok := m.byID[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) List(context.Context) ([]*entity.User, error) {
	out := make([]*entity.User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.byID, id)
	return nil
}

type memWorkplace struct {
	saved *entity.WorkplaceConfig
}

func (m *memWorkplace) Get(context.Context) (*entity.WorkplaceConfig, error) {
	return m.saved, nil
}

func (m *memWorkplace) Save(_ context.Context, cfg *entity.WorkplaceConfig) error {
	cp := *cfg
	m.saved = &cp
	return nil
}
