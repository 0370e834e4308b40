// Package attendance deriva los registros diarios de asistencia a partir de
// las marcaciones crudas y calcula horas trabajadas, saldo, banco de horas y
// estadísticas del tablero.
//
// Todas las funciones son puras: reciben una instantánea de marcaciones y
// configuración, nunca modifican su entrada y no devuelven errores.
package attendance

import (
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/asistencia-api/internal/domain/entity"
)

// DateLayout formato de fecha de calendario usado en claves y reportes.
const DateLayout = "2006-01-02"

// ObservationSeparator separa las notas concatenadas de un día.
const ObservationSeparator = " | "

// Status estado del registro diario.
type Status string

const (
	StatusComplete   Status = "complete"
	StatusIncomplete Status = "incomplete"
)

// DailyRecord agregado por usuario y día de calendario. Se recalcula en cada
// lectura; nunca se persiste.
type DailyRecord struct {
	UserID      string
	Day         string    // YYYY-MM-DD en la zona horaria de visualización
	Date        time.Time // mediodía local de Day
	ClockIn     *time.Time
	BreakStart  *time.Time
	BreakEnd    *time.Time
	ClockOut    *time.Time
	Worked      time.Duration
	Balance     time.Duration
	Status      Status
	Observation string
	Events      []entity.ClockEvent // todas las marcaciones del día, ascendente
}

// DateKey fecha del registro en formato YYYY-MM-DD.
func (r DailyRecord) DateKey() string {
	if r.Day != "" {
		return r.Day
	}
	return r.Date.Format(DateLayout)
}

// WorkedHours horas trabajadas en decimal.
func (r DailyRecord) WorkedHours() float64 { return r.Worked.Hours() }

// BalanceHours saldo del día en horas (con signo).
func (r DailyRecord) BalanceHours() float64 { return r.Balance.Hours() }

type dayKey struct {
	userID string
	date   string
}

// Aggregate agrupa las marcaciones por (usuario, día local) y deriva un
// DailyRecord por grupo, ordenado por fecha descendente y luego por usuario.
//
// Si un tipo de marcación aparece más de una vez en el día, solo la más
// temprana ocupa el campo canónico; las demás quedan visibles en Events.
func Aggregate(events []entity.ClockEvent, standardWorkday time.Duration, loc *time.Location) []DailyRecord {
	if loc == nil {
		loc = time.Local
	}
	groups := make(map[dayKey][]entity.ClockEvent)
	for _, e := range events {
		k := dayKey{userID: e.UserID, date: e.Timestamp.In(loc).Format(DateLayout)}
		groups[k] = append(groups[k], e)
	}

	records := make([]DailyRecord, 0, len(groups))
	for k, group := range groups {
		sortEvents(group)
		records = append(records, buildRecord(k, group, standardWorkday, loc))
	}

	sort.Slice(records, func(i, j int) bool { return newerFirst(records[i], records[j]) })
	return records
}

// newerFirst orden de salida de Aggregate: fecha descendente, usuario ascendente.
func newerFirst(a, b DailyRecord) bool {
	if ka, kb := a.DateKey(), b.DateKey(); ka != kb {
		return ka > kb
	}
	return a.UserID < b.UserID
}

// CalendarDay interpreta YYYY-MM-DD como el mediodía local de ese día. La
// medianoche no sirve: en zonas que adelantan el reloj a las 00:00 no existe
// y time la normaliza al día anterior.
func CalendarDay(day string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	d, err := time.Parse(DateLayout, day)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, loc), nil
}

func buildRecord(k dayKey, group []entity.ClockEvent, standardWorkday time.Duration, loc *time.Location) DailyRecord {
	day, _ := CalendarDay(k.date, loc)
	rec := DailyRecord{
		UserID: k.userID,
		Day:    k.date,
		Date:   day,
		Events: group,
	}

	var notes []string
	for i := range group {
		e := group[i]
		ts := e.Timestamp
		switch e.Kind {
		case entity.KindClockIn:
			if rec.ClockIn == nil {
				rec.ClockIn = &ts
			}
		case entity.KindBreakStart:
			if rec.BreakStart == nil {
				rec.BreakStart = &ts
			}
		case entity.KindBreakEnd:
			if rec.BreakEnd == nil {
				rec.BreakEnd = &ts
			}
		case entity.KindClockOut:
			if rec.ClockOut == nil {
				rec.ClockOut = &ts
			}
		}
		if n := strings.TrimSpace(e.Note); n != "" {
			notes = append(notes, n)
		}
	}
	rec.Observation = strings.Join(notes, ObservationSeparator)

	rec.Status = StatusIncomplete
	if rec.ClockIn != nil && rec.ClockOut != nil {
		rec.Status = StatusComplete
		rec.Worked = WorkedDuration(*rec.ClockIn, *rec.ClockOut, rec.BreakStart, rec.BreakEnd)
		rec.Balance = rec.Worked - standardWorkday
	}
	return rec
}

// WorkedDuration (salida − entrada) − (fin pausa − inicio pausa); la pausa
// solo se descuenta si ambos extremos existen. Nunca es negativa.
func WorkedDuration(in, out time.Time, breakStart, breakEnd *time.Time) time.Duration {
	d := out.Sub(in)
	if breakStart != nil && breakEnd != nil {
		d -= breakEnd.Sub(*breakStart)
	}
	if d < 0 {
		return 0
	}
	return d
}

// sortEvents ordena ascendente por timestamp; el ID desempata para que el
// resultado sea determinista.
func sortEvents(events []entity.ClockEvent) {
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].Timestamp.Before(events[j].Timestamp)
		}
		return events[i].ID < events[j].ID
	})
}
