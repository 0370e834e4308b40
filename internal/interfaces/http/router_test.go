package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/asistencia-api/internal/application/attendance"
	"github.com/jhoicas/asistencia-api/internal/application/auth"
	"github.com/jhoicas/asistencia-api/internal/application/backup"
	"github.com/jhoicas/asistencia-api/internal/application/usecase"
	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
	"github.com/jhoicas/asistencia-api/internal/domain/repository"
	apphttp "github.com/jhoicas/asistencia-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/asistencia-api/pkg/jwt"
	"github.com/jhoicas/asistencia-api/pkg/logger"
)

// ─── fakes en memoria ────────────────────────────────────────────────────────

type memUsers struct {
	mu   sync.Mutex
	byID map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) Update(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[u.ID] = u
	return nil
}

func (m *memUsers) List(context.Context) ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, nil
}

func (m *memUsers) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, id)
	return nil
}

type memEvents struct {
	mu     sync.Mutex
	events []entity.ClockEvent
}

func (m *memEvents) Create(_ context.Context, e *entity.ClockEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, *e)
	return nil
}

func (m *memEvents) GetByID(_ context.Context, id string) (*entity.ClockEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			cp := e
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memEvents) Update(_ context.Context, e *entity.ClockEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.events {
		if m.events[i].ID == e.ID {
			m.events[i] = *e
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memEvents) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.events {
		if m.events[i].ID == id {
			m.events = append(m.events[:i], m.events[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
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
	return out, nil
}

type memWorkplace struct {
	saved *entity.WorkplaceConfig
	err   error
}

func (m *memWorkplace) Get(context.Context) (*entity.WorkplaceConfig, error) { return m.saved, m.err }

func (m *memWorkplace) Save(_ context.Context, cfg *entity.WorkplaceConfig) error {
	cp := *cfg
	m.saved = &cp
	return nil
}

type nopStore struct{ calls int }

func (s *nopStore) ReplaceByID(context.Context, []entity.User, []entity.ClockEvent) error {
	s.calls++
	return nil
}

type stubRenderer struct{}

func (stubRenderer) Render(context.Context, attendance.TimesheetDocument) ([]byte, error) {
	return []byte("hoja"), nil
}
func (stubRenderer) ContentType() string { return "application/test" }
func (stubRenderer) Extension() string   { return "xlsx" }

// ─── app de prueba ───────────────────────────────────────────────────────────

var office = entity.WorkplaceConfig{Latitude: 4.6097, Longitude: -74.0817, AllowedRadiusMeters: 100, StandardWorkdayHours: 8}

type testEnv struct {
	app       *fiber.App
	events    *memEvents
	workplace *memWorkplace
	store     *nopStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := &memUsers{byID: map[string]*entity.User{
		"admin-1": {ID: "admin-1", Name: "Marta Ruiz", Email: "marta@example.com", Role: entity.RoleAdmin, IsActive: true},
		"emp-1":   {ID: "emp-1", Name: "Ana Pérez", Email: "ana@example.com", Role: entity.RoleEmployee, IsActive: true},
	}}
	env := &testEnv{events: &memEvents{}, workplace: &memWorkplace{}, store: &nopStore{}}
	log := logger.Nop()
	bogota := time.FixedZone("COT", -5*3600)

	workplaceUC := usecase.NewWorkplaceUseCase(env.workplace, office, true, log)
	env.app = fiber.New()
	apphttp.Router(env.app, apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}, log),
		UserUC:      usecase.NewUserUseCase(users, log),
		WorkplaceUC: workplaceUC,
		ClockUC:     attendance.NewClockUseCase(env.events, users, workplaceUC, true, bogota, log),
		TimesheetUC: attendance.NewTimesheetUseCase(env.events, users, workplaceUC,
			map[string]attendance.TimesheetRenderer{"xlsx": stubRenderer{}}, 9, bogota, log),
		BackupUC:  backup.NewUseCase(users, env.events, env.store, log),
		JWTSecret: testJWTSecret,
	})
	return env
}

func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (e *testEnv) do(t *testing.T, method, path, auth string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	_ = json.Unmarshal(raw, &out)
	return resp, out
}

// ─── tests ───────────────────────────────────────────────────────────────────

func TestPunch_DentroDeLaGeocercaYLuegoFueraDeSecuencia(t *testing.T) {
	env := newTestEnv(t)
	emp := bearer(t, "emp-1", entity.RoleEmployee)
	body := map[string]interface{}{"kind": "clock_in", "latitude": 4.6098, "longitude": -74.0816}

	resp, out := env.do(t, http.MethodPost, "/api/clock/punch", emp, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, []interface{}{"break_start", "clock_out"}, out["next_kinds"])

	resp, out = env.do(t, http.MethodPost, "/api/clock/punch", emp, body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_PUNCH", out["code"])
}

func TestPunch_FueraDeLaGeocerca(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]interface{}{"kind": "clock_in", "latitude": 4.7, "longitude": -74.0817}

	resp, out := env.do(t, http.MethodPost, "/api/clock/punch", bearer(t, "emp-1", entity.RoleEmployee), body)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "OUTSIDE_GEOFENCE", out["code"])
	assert.Empty(t, env.events.events)
}

func TestPunch_TipoInvalido_DetalleDeValidacion(t *testing.T) {
	env := newTestEnv(t)
	body := map[string]interface{}{"kind": "lunch", "latitude": 4.6097, "longitude": -74.0817}

	resp, out := env.do(t, http.MethodPost, "/api/clock/punch", bearer(t, "emp-1", entity.RoleEmployee), body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", out["code"])
	details, ok := out["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "oneof", details["kind"])
}

func TestGeofenceCheck_FalloDePosicion(t *testing.T) {
	env := newTestEnv(t)
	resp, out := env.do(t, http.MethodPost, "/api/geofence/check", bearer(t, "emp-1", entity.RoleEmployee),
		map[string]interface{}{"position_error": "permission_denied"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, out["allowed"])
	assert.Contains(t, out["message"], "Permiso de ubicación denegado")
}

func TestRutasAdmin_EmpleadoRecibe403(t *testing.T) {
	env := newTestEnv(t)
	emp := bearer(t, "emp-1", entity.RoleEmployee)

	for _, path := range []string{"/api/users", "/api/admin/backup"} {
		resp, out := env.do(t, http.MethodGet, path, emp, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode, path)
		assert.Equal(t, "FORBIDDEN", out["code"], path)
	}
	resp, _ := env.do(t, http.MethodPut, "/api/workplace", emp,
		map[string]interface{}{"latitude": 0, "longitude": 0, "allowed_radius_meters": 50, "standard_workday_hours": 8})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestTimesheet_EmpleadoNoVeOtroUsuario(t *testing.T) {
	env := newTestEnv(t)
	resp, out := env.do(t, http.MethodGet, "/api/timesheet?user_id=admin-1", bearer(t, "emp-1", entity.RoleEmployee), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", out["code"])
}

func TestTimesheetExport_Adjunto(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodGet, "/api/timesheet/export?format=xlsx", nil)
	req.Header.Set("Authorization", bearer(t, "emp-1", entity.RoleEmployee))
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/test", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="asistencia_ana_perez.xlsx"`, resp.Header.Get("Content-Disposition"))
	data, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "hoja", string(data))
}

func TestBackupImport_ArchivoInvalidoNoEscribe(t *testing.T) {
	env := newTestEnv(t)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/backup", strings.NewReader(`{"users": {}}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", bearer(t, "admin-1", entity.RoleAdmin))
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Zero(t, env.store.calls)
}

func TestBackupImport_Multipart(t *testing.T) {
	env := newTestEnv(t)
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "respaldo.json")
	require.NoError(t, err)
	_, err = fw.Write([]byte(`{"users": [{"id": "u9", "name": "Nuevo"}], "time_entries": []}`))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/backup", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", bearer(t, "admin-1", entity.RoleAdmin))
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, float64(1), out["users"])
	assert.Equal(t, 1, env.store.calls)
}

func TestErrorDesconocido_Responde500Generico(t *testing.T) {
	env := newTestEnv(t)
	env.workplace.err = errors.New("conexión rechazada")

	resp, out := env.do(t, http.MethodGet, "/api/workplace", bearer(t, "emp-1", entity.RoleEmployee), nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", out["code"])
	assert.NotContains(t, out["message"], "conexión")
}

func TestPasswordReset_NoImplementado(t *testing.T) {
	env := newTestEnv(t)
	resp, out := env.do(t, http.MethodPost, "/api/auth/password-reset", "", map[string]interface{}{"email": "ana@example.com"})
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
	assert.Equal(t, "NOT_IMPLEMENTED", out["code"])
}
