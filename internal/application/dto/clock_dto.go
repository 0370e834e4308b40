package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PunchRequest marcación del usuario autenticado. Debe traer coordenadas o,
// si el dispositivo falló, el código de error de posicionamiento.
type PunchRequest struct {
	Kind          string   `json:"kind" validate:"required,oneof=clock_in break_start break_end clock_out"`
	Note          string   `json:"note" validate:"max=500"`
	Latitude      *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude     *float64 `json:"longitude" validate:"omitempty,longitude"`
	PositionError string   `json:"position_error" validate:"omitempty,oneof=unsupported permission_denied position_unavailable timeout"`
}

// ManualEventRequest alta manual de una marcación por un administrador.
type ManualEventRequest struct {
	UserID    string    `json:"user_id" validate:"required"`
	Kind      string    `json:"kind" validate:"required,oneof=clock_in break_start break_end clock_out"`
	Timestamp time.Time `json:"timestamp" validate:"required"`
	Note      string    `json:"note" validate:"max=500"`
}

// UpdateEventRequest edición de una marcación: solo instante y nota.
type UpdateEventRequest struct {
	Timestamp *time.Time `json:"timestamp"`
	Note      *string    `json:"note" validate:"omitempty,max=500"`
}

// ClockEventResponse marcación en respuestas.
type ClockEventResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
	Note      string    `json:"note"`
}

// PunchResponse resultado de una marcación aceptada.
type PunchResponse struct {
	Event          ClockEventResponse `json:"event"`
	DistanceMeters *float64           `json:"distance_meters,omitempty"`
	NextKinds      []string           `json:"next_kinds"`
}

// TodayResponse estado del día del usuario: marcaciones, registro derivado y
// qué botones habilitar.
type TodayResponse struct {
	Date      string               `json:"date"`
	Events    []ClockEventResponse `json:"events"`
	Record    *DailyRecordDTO      `json:"record,omitempty"`
	NextKinds []string             `json:"next_kinds"`
}

// DailyRecordDTO registro diario derivado.
type DailyRecordDTO struct {
	UserID      string          `json:"user_id"`
	UserName    string          `json:"user_name,omitempty"`
	Date        string          `json:"date"`
	ClockIn     *time.Time      `json:"clock_in"`
	BreakStart  *time.Time      `json:"break_start"`
	BreakEnd    *time.Time      `json:"break_end"`
	ClockOut    *time.Time      `json:"clock_out"`
	WorkedHours decimal.Decimal `json:"worked_hours"`
	Balance     decimal.Decimal `json:"balance_hours"`
	Accumulated decimal.Decimal `json:"accumulated_hours"`
	Status      string          `json:"status"`
	Observation string          `json:"observation"`
	EventIDs    []string        `json:"event_ids"`
}
