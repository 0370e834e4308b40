package dto

import "github.com/shopspring/decimal"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"` // campo -> regla incumplida
}

// Hours convierte horas decimales al formato de respuesta (2 decimales).
func Hours(h float64) decimal.Decimal {
	return decimal.NewFromFloat(h).Round(2)
}
