package attendance

import (
	"strings"
	"time"

	"github.com/jhoicas/asistencia-api/internal/domain/entity"
)

// DefaultLateHour hora local a partir de la cual una entrada cuenta como atraso.
const DefaultLateHour = 9

// SummaryOptions parámetros del cálculo de estadísticas.
type SummaryOptions struct {
	StandardWorkday time.Duration
	LateHour        int
	Now             time.Time
	Location        *time.Location
}

// Summary contadores del tablero.
type Summary struct {
	MonthWorked      time.Duration // horas trabajadas en el mes en curso
	TotalBalance     time.Duration // saldo de todo el historial, todos los usuarios
	MonthOvertime    time.Duration // Σ max(0, trabajado − jornada) del mes
	LateArrivals     int           // entradas del mes con hora local >= LateHour
	CurrentlyWorking int           // usuarios cuya última marcación de hoy no es salida
	MonthRecords     int
}

// Summarize calcula las estadísticas a partir del conjunto completo (sin
// filtrar) de registros diarios y de las marcaciones crudas.
func Summarize(records []DailyRecord, events []entity.ClockEvent, opts SummaryOptions) Summary {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	now := opts.Now.In(loc)
	month := now.Format("2006-01")

	var s Summary
	for _, r := range records {
		s.TotalBalance += r.Balance

		if !strings.HasPrefix(r.DateKey(), month) {
			continue
		}
		s.MonthRecords++
		s.MonthWorked += r.Worked
		if extra := r.Worked - opts.StandardWorkday; extra > 0 {
			s.MonthOvertime += extra
		}
		if r.ClockIn != nil && r.ClockIn.In(loc).Hour() >= opts.LateHour {
			s.LateArrivals++
		}
	}

	s.CurrentlyWorking = CountCurrentlyWorking(events, now, loc)
	return s
}

// CountCurrentlyWorking toma, por usuario, la última marcación del día de now
// y cuenta los usuarios cuya última marcación existe y no es una salida.
func CountCurrentlyWorking(events []entity.ClockEvent, now time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.Local
	}
	today := now.In(loc).Format(DateLayout)

	last := make(map[string]entity.ClockEvent)
	for _, e := range events {
		if e.Timestamp.In(loc).Format(DateLayout) != today {
			continue
		}
		prev, ok := last[e.UserID]
		if !ok || after(e, prev) {
			last[e.UserID] = e
		}
	}

	n := 0
	for _, e := range last {
		if e.Kind != entity.KindClockOut {
			n++
		}
	}
	return n
}

// after replica el orden de sortEvents: timestamp y luego ID.
func after(a, b entity.ClockEvent) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.After(b.Timestamp)
	}
	return a.ID > b.ID
}
