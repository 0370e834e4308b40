package entity

import "time"

// ClockKind tipo de marcación.
type ClockKind string

const (
	KindClockIn    ClockKind = "clock_in"
	KindBreakStart ClockKind = "break_start"
	KindBreakEnd   ClockKind = "break_end"
	KindClockOut   ClockKind = "clock_out"
)

// Valid indica si k es un tipo de marcación conocido.
func (k ClockKind) Valid() bool {
	switch k {
	case KindClockIn, KindBreakStart, KindBreakEnd, KindClockOut:
		return true
	}
	return false
}

// ClockEvent es una marcación puntual de un empleado.
// Solo Timestamp y Note pueden editarse, y solo por un administrador.
type ClockEvent struct {
	ID        string
	UserID    string
	Timestamp time.Time
	Kind      ClockKind
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
