package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	MonthWorkedHours   decimal.Decimal `json:"month_worked_hours"`
	TotalBalanceHours  decimal.Decimal `json:"total_balance_hours"`
	MonthOvertimeHours decimal.Decimal `json:"month_overtime_hours"`
	LateArrivals       int             `json:"late_arrivals"`
	CurrentlyWorking   int             `json:"currently_working"`
	MonthRecords       int             `json:"month_records"`

	// Metadatos del período
	MonthLabel string `json:"month_label"` // ej: "2026-03"
}
