package attendance

import (
	"time"

	"github.com/jhoicas/asistencia-api/internal/domain/entity"
)

// EventsOfDay devuelve, ordenadas ascendente, las marcaciones del usuario cuyo
// día local coincide con el de day.
func EventsOfDay(events []entity.ClockEvent, userID string, day time.Time, loc *time.Location) []entity.ClockEvent {
	if loc == nil {
		loc = time.Local
	}
	key := day.In(loc).Format(DateLayout)
	var out []entity.ClockEvent
	for _, e := range events {
		if e.UserID == userID && e.Timestamp.In(loc).Format(DateLayout) == key {
			out = append(out, e)
		}
	}
	sortEvents(out)
	return out
}

// NextKinds marcaciones válidas a continuación según la última del día:
//
//	(ninguna)    -> clock_in
//	clock_in     -> break_start, clock_out
//	break_start  -> break_end
//	break_end    -> clock_out
//	clock_out    -> (ninguna)
//
// dayEvents debe estar en orden ascendente (ver EventsOfDay).
func NextKinds(dayEvents []entity.ClockEvent) []entity.ClockKind {
	if len(dayEvents) == 0 {
		return []entity.ClockKind{entity.KindClockIn}
	}
	switch dayEvents[len(dayEvents)-1].Kind {
	case entity.KindClockIn:
		return []entity.ClockKind{entity.KindBreakStart, entity.KindClockOut}
	case entity.KindBreakStart:
		return []entity.ClockKind{entity.KindBreakEnd}
	case entity.KindBreakEnd:
		return []entity.ClockKind{entity.KindClockOut}
	default:
		return nil
	}
}

// CanPunch indica si kind es una de las siguientes marcaciones válidas.
func CanPunch(kind entity.ClockKind, dayEvents []entity.ClockEvent) bool {
	for _, k := range NextKinds(dayEvents) {
		if k == kind {
			return true
		}
	}
	return false
}
