package attendance_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/asistencia-api/internal/domain/attendance"
	"github.com/jhoicas/asistencia-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var bogota = time.FixedZone("COT", -5*3600)

const eightHours = 8 * time.Hour

func at(day string, hhmm string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", day+" "+hhmm, bogota)
	if err != nil {
		panic(err)
	}
	return t
}

func ev(id, user string, kind entity.ClockKind, ts time.Time, note string) entity.ClockEvent {
	return entity.ClockEvent{ID: id, UserID: user, Kind: kind, Timestamp: ts, Note: note}
}

func fullDay(prefix, user, day string) []entity.ClockEvent {
	return []entity.ClockEvent{
		ev(prefix+"1", user, entity.KindClockIn, at(day, "08:00"), ""),
		ev(prefix+"2", user, entity.KindBreakStart, at(day, "12:00"), ""),
		ev(prefix+"3", user, entity.KindBreakEnd, at(day, "13:00"), ""),
		ev(prefix+"4", user, entity.KindClockOut, at(day, "17:00"), ""),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Aggregate
// ──────────────────────────────────────────────────────────────────────────────

func TestAggregate_JornadaCompletaConPausa(t *testing.T) {
	recs := attendance.Aggregate(fullDay("a", "u1", "2026-03-02"), eightHours, bogota)
	require.Len(t, recs, 1)

	r := recs[0]
	assert.Equal(t, "u1", r.UserID)
	assert.Equal(t, "2026-03-02", r.DateKey())
	assert.Equal(t, 8.0, r.WorkedHours())
	assert.Equal(t, 0.0, r.BalanceHours())
	assert.Equal(t, attendance.StatusComplete, r.Status)
	require.NotNil(t, r.ClockIn)
	require.NotNil(t, r.BreakStart)
	require.NotNil(t, r.BreakEnd)
	require.NotNil(t, r.ClockOut)
	assert.Len(t, r.Events, 4)
}

func TestAggregate_SinPausa_TrabajadoEsSalidaMenosEntrada(t *testing.T) {
	events := []entity.ClockEvent{
		ev("2", "u1", entity.KindClockOut, at("2026-03-02", "16:30"), ""),
		ev("1", "u1", entity.KindClockIn, at("2026-03-02", "07:15"), ""),
	}
	recs := attendance.Aggregate(events, eightHours, bogota)
	require.Len(t, recs, 1)
	assert.Equal(t, 9*time.Hour+15*time.Minute, recs[0].Worked)
	assert.Equal(t, 75*time.Minute, recs[0].Balance)
	assert.Equal(t, attendance.StatusComplete, recs[0].Status)
}

func TestAggregate_SoloEntrada_Incompleto(t *testing.T) {
	recs := attendance.Aggregate([]entity.ClockEvent{
		ev("1", "u1", entity.KindClockIn, at("2026-03-02", "08:00"), ""),
	}, eightHours, bogota)
	require.Len(t, recs, 1)
	assert.Equal(t, time.Duration(0), recs[0].Worked)
	assert.Equal(t, time.Duration(0), recs[0].Balance)
	assert.Equal(t, attendance.StatusIncomplete, recs[0].Status)
}

func TestAggregate_PausaIncompletaNoSeDescuenta(t *testing.T) {
	events := []entity.ClockEvent{
		ev("1", "u1", entity.KindClockIn, at("2026-03-02", "08:00"), ""),
		ev("2", "u1", entity.KindBreakStart, at("2026-03-02", "12:00"), ""),
		ev("3", "u1", entity.KindClockOut, at("2026-03-02", "17:00"), ""),
	}
	recs := attendance.Aggregate(events, eightHours, bogota)
	require.Len(t, recs, 1)
	assert.Equal(t, 9*time.Hour, recs[0].Worked)
	assert.Nil(t, recs[0].BreakEnd)
}

func TestAggregate_TrabajadoNegativoSeLimitaACero(t *testing.T) {
	events := []entity.ClockEvent{
		ev("1", "u1", entity.KindClockIn, at("2026-03-02", "08:00"), ""),
		ev("2", "u1", entity.KindClockOut, at("2026-03-02", "09:00"), ""),
		ev("3", "u1", entity.KindBreakStart, at("2026-03-02", "10:00"), ""),
		ev("4", "u1", entity.KindBreakEnd, at("2026-03-02", "14:00"), ""),
	}
	recs := attendance.Aggregate(events, eightHours, bogota)
	require.Len(t, recs, 1)
	assert.Equal(t, time.Duration(0), recs[0].Worked)
	assert.Equal(t, -eightHours, recs[0].Balance)
}

func TestAggregate_TipoDuplicado_GanaElPrimero(t *testing.T) {
	events := []entity.ClockEvent{
		ev("2", "u1", entity.KindClockIn, at("2026-03-02", "08:30"), ""),
		ev("1", "u1", entity.KindClockIn, at("2026-03-02", "08:00"), ""),
		ev("3", "u1", entity.KindClockOut, at("2026-03-02", "16:00"), ""),
	}
	recs := attendance.Aggregate(events, eightHours, bogota)
	require.Len(t, recs, 1)
	assert.Equal(t, at("2026-03-02", "08:00"), *recs[0].ClockIn)
	assert.Len(t, recs[0].Events, 3, "todas las marcaciones crudas siguen visibles")
	assert.Equal(t, "1", recs[0].Events[0].ID)
}

func TestAggregate_ObservacionConcatenaNotasEnOrden(t *testing.T) {
	events := []entity.ClockEvent{
		ev("3", "u1", entity.KindClockOut, at("2026-03-02", "17:00"), "salida médica"),
		ev("1", "u1", entity.KindClockIn, at("2026-03-02", "08:00"), "tráfico"),
		ev("2", "u1", entity.KindBreakStart, at("2026-03-02", "12:00"), "   "),
	}
	recs := attendance.Aggregate(events, eightHours, bogota)
	require.Len(t, recs, 1)
	assert.Equal(t, "tráfico | salida médica", recs[0].Observation)
}

func TestAggregate_AgrupaPorUsuarioYDiaLocal(t *testing.T) {
	var events []entity.ClockEvent
	events = append(events, fullDay("a", "u1", "2026-03-02")...)
	events = append(events, fullDay("b", "u1", "2026-03-03")...)
	events = append(events, fullDay("c", "u2", "2026-03-02")...)
	// 23:30 hora local del 3 = 04:30 UTC del 4: pertenece al día 3.
	events = append(events, ev("d1", "u2", entity.KindClockIn, at("2026-03-03", "23:30"), ""))

	recs := attendance.Aggregate(events, eightHours, bogota)
	require.Len(t, recs, 4)

	keys := make([]string, 0, len(recs))
	for _, r := range recs {
		keys = append(keys, r.DateKey()+"/"+r.UserID)
	}
	assert.Equal(t, []string{"2026-03-03/u1", "2026-03-03/u2", "2026-03-02/u1", "2026-03-02/u2"}, keys)
}

func TestAggregate_DeterministaEIdempotente(t *testing.T) {
	var events []entity.ClockEvent
	events = append(events, fullDay("a", "u1", "2026-03-02")...)
	events = append(events, fullDay("b", "u2", "2026-03-02")...)
	events = append(events, ev("x", "u1", entity.KindClockIn, at("2026-03-02", "08:00"), "dup"))

	first := attendance.Aggregate(events, eightHours, bogota)

	reversed := make([]entity.ClockEvent, len(events))
	for i, e := range events {
		reversed[len(events)-1-i] = e
	}
	second := attendance.Aggregate(reversed, eightHours, bogota)

	assert.Equal(t, first, second)
}

func TestAggregate_NoModificaLaEntrada(t *testing.T) {
	events := []entity.ClockEvent{
		ev("2", "u1", entity.KindClockOut, at("2026-03-02", "17:00"), ""),
		ev("1", "u1", entity.KindClockIn, at("2026-03-02", "08:00"), ""),
	}
	attendance.Aggregate(events, eightHours, bogota)
	assert.Equal(t, "2", events[0].ID)
	assert.Equal(t, "1", events[1].ID)
}

func TestAggregate_SinMarcaciones(t *testing.T) {
	assert.Empty(t, attendance.Aggregate(nil, eightHours, bogota))
}
