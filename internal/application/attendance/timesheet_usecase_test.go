package attendance

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/asistencia-api/internal/application/dto"
	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
	"github.com/jhoicas/asistencia-api/pkg/logger"
)

type captureRenderer struct {
	doc TimesheetDocument
}

func (r *captureRenderer) Render(_ context.Context, doc TimesheetDocument) ([]byte, error) {
	r.doc = doc
	return []byte("ok"), nil
}
func (r *captureRenderer) ContentType() string { return "text/plain" }
func (r *captureRenderer) Extension() string   { return "txt" }

// Ana: 9 h el 2, 7 h el 3, 8 h el 10 (hoy, entrada tarde). Luis: trabajando hoy.
func timesheetEvents() *memEvents {
	return newMemEvents(
		event("a1", "u1", entity.KindClockIn, at("2026-03-02", "08:00")),
		event("a2", "u1", entity.KindClockOut, at("2026-03-02", "17:00")),
		event("a3", "u1", entity.KindClockIn, at("2026-03-03", "08:00")),
		event("a4", "u1", entity.KindClockOut, at("2026-03-03", "15:00")),
		event("a5", "u1", entity.KindClockIn, at("2026-03-10", "00:30")),
		event("a6", "u1", entity.KindClockOut, at("2026-03-10", "08:30")),
		event("b1", "u2", entity.KindClockIn, at("2026-03-10", "09:15")),
		event("c1", "u1", entity.KindClockIn, at("2026-02-27", "08:00")),
		event("c2", "u1", entity.KindClockOut, at("2026-02-27", "18:00")),
	)
}

func newTimesheet(t *testing.T, r TimesheetRenderer) *TimesheetUseCase {
	t.Helper()
	users := &memUsers{users: []*entity.User{
		{ID: "u1", Name: "Ana Pérez", IsActive: true},
		{ID: "u2", Name: "Luis", IsActive: true},
	}}
	uc := NewTimesheetUseCase(timesheetEvents(), users, fixedWorkplace{cfg: office},
		map[string]TimesheetRenderer{"xlsx": r}, 9, bogota, logger.Nop())
	uc.now = fixedClock(at("2026-03-10", "12:00"))
	return uc
}

func hours(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestQuery_EmpleadoSoloVeLoSuyo(t *testing.T) {
	uc := newTimesheet(t, &captureRenderer{})
	emp := Requester{UserID: "u2", Role: entity.RoleEmployee}

	_, err := uc.Query(context.Background(), emp, dto.TimesheetQuery{UserID: "u1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.Query(context.Background(), emp, dto.TimesheetQuery{})
	require.NoError(t, err)
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "u2", out.Records[0].UserID)
	assert.Equal(t, "incomplete", out.Records[0].Status)
}

func TestQuery_BancoDeHorasAscendente(t *testing.T) {
	uc := newTimesheet(t, &captureRenderer{})
	admin := Requester{UserID: "adm", Role: entity.RoleAdmin}

	out, err := uc.Query(context.Background(), admin, dto.TimesheetQuery{UserID: "u1", From: "2026-03-01", Order: "asc"})
	require.NoError(t, err)
	require.Equal(t, 3, out.Count)

	got := out.Records
	assert.Equal(t, "2026-03-02", got[0].Date)
	assert.Equal(t, "Ana Pérez", got[0].UserName)
	assert.True(t, hours("1").Equal(got[0].Balance))
	assert.True(t, hours("1").Equal(got[0].Accumulated))
	assert.True(t, hours("-1").Equal(got[1].Balance))
	assert.True(t, hours("0").Equal(got[1].Accumulated))
	assert.True(t, hours("0").Equal(got[2].Accumulated))
	assert.Equal(t, []string{"a1", "a2"}, got[0].EventIDs)
}

func TestQuery_RangoInvalido(t *testing.T) {
	uc := newTimesheet(t, &captureRenderer{})
	admin := Requester{UserID: "adm", Role: entity.RoleAdmin}

	_, err := uc.Query(context.Background(), admin, dto.TimesheetQuery{From: "2026-03-10", To: "2026-03-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Query(context.Background(), admin, dto.TimesheetQuery{From: "10/03/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExport_FilasYNombreDeArchivo(t *testing.T) {
	r := &captureRenderer{}
	uc := newTimesheet(t, r)
	admin := Requester{UserID: "adm", Role: entity.RoleAdmin}

	data, filename, contentType, err := uc.Export(context.Background(), admin,
		dto.TimesheetQuery{UserID: "u1", From: "2026-03-01", To: "2026-03-03", Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), data)
	assert.Equal(t, "text/plain", contentType)
	assert.Equal(t, "asistencia_ana_perez_2026-03-01_2026-03-03.txt", filename)

	require.Len(t, r.doc.Rows, 2)
	first := r.doc.Rows[0]
	assert.Equal(t, "2026-03-02", first.Date)
	assert.Equal(t, "Ana Pérez", first.Employee)
	assert.Equal(t, "08:00", first.ClockIn)
	assert.Equal(t, "", first.BreakStart)
	assert.Equal(t, "17:00", first.ClockOut)
	assert.Equal(t, "+01:00", first.Balance)
	assert.Equal(t, "-01:00", r.doc.Rows[1].Balance)
	assert.Equal(t, "+00:00", r.doc.Rows[1].Accumulated)
	assert.Equal(t, "Completo", first.Status)
}

func TestExport_FormatoNoSoportado(t *testing.T) {
	uc := newTimesheet(t, &captureRenderer{})
	_, _, _, err := uc.Export(context.Background(), Requester{UserID: "u1"}, dto.TimesheetQuery{Format: "csv"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSummary_Administrador(t *testing.T) {
	uc := newTimesheet(t, &captureRenderer{})

	out, err := uc.Summary(context.Background(), Requester{UserID: "adm", Role: entity.RoleAdmin})
	require.NoError(t, err)

	// Marzo: 9 + 7 + 8 horas; extra solo el día 2; saldo total incluye febrero (+2).
	// Luis entra a las 09:15: un atraso.
	assert.True(t, hours("24").Equal(out.MonthWorkedHours), out.MonthWorkedHours.String())
	assert.True(t, hours("1").Equal(out.MonthOvertimeHours))
	assert.True(t, hours("2").Equal(out.TotalBalanceHours))
	assert.Equal(t, 1, out.LateArrivals)
	assert.Equal(t, 1, out.CurrentlyWorking)
	assert.Equal(t, 4, out.MonthRecords)
	assert.Equal(t, "2026-03", out.MonthLabel)
}

func TestSummary_EmpleadoSoloSusRegistros(t *testing.T) {
	uc := newTimesheet(t, &captureRenderer{})

	out, err := uc.Summary(context.Background(), Requester{UserID: "u2", Role: entity.RoleEmployee})
	require.NoError(t, err)
	assert.Equal(t, 1, out.LateArrivals)
	assert.Equal(t, 1, out.CurrentlyWorking)
	assert.True(t, out.MonthWorkedHours.IsZero())
}

func TestFormatSignedDuration(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "+00:00"},
		{90 * time.Minute, "+01:30"},
		{-(2*time.Hour + 5*time.Minute), "-02:05"},
		{125*time.Hour + 59*time.Second, "+125:00"},
		{-30 * time.Second, "-00:00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatSignedDuration(tc.d), tc.d.String())
	}
}

func TestExportFilename_SoloASCII(t *testing.T) {
	assert.Equal(t, "asistencia_jose_nunez_2026-03-01_2026-03-31.xlsx",
		ExportFilename("José Núñez", "2026-03-01", "2026-03-31", "xlsx"))
	assert.Equal(t, "asistencia_todos.pdf", ExportFilename("todos", "", "", "pdf"))
}

func TestQuery_DiaSinMedianocheEnLaZonaHoraria(t *testing.T) {
	asuncion, err := time.LoadLocation("America/Asuncion")
	require.NoError(t, err)
	events := newMemEvents(
		event("d1", "u1", entity.KindClockIn, time.Date(2023, 10, 1, 8, 0, 0, 0, asuncion)),
		event("d2", "u1", entity.KindClockOut, time.Date(2023, 10, 1, 17, 0, 0, 0, asuncion)),
		event("d3", "u1", entity.KindClockIn, time.Date(2023, 9, 30, 23, 30, 0, 0, asuncion)),
	)
	users := &memUsers{users: []*entity.User{{ID: "u1", Name: "Ana Pérez", IsActive: true}}}
	uc := NewTimesheetUseCase(events, users, fixedWorkplace{cfg: office}, nil, 9, asuncion, logger.Nop())

	out, err := uc.Query(context.Background(), Requester{UserID: "u1", Role: entity.RoleAdmin},
		dto.TimesheetQuery{From: "2023-10-01", To: "2023-10-01"})
	require.NoError(t, err)
	require.Len(t, out.Records, 1)
	assert.Equal(t, "2023-10-01", out.Records[0].Date)
	assert.Equal(t, "9", out.Records[0].WorkedHours.String())
}
