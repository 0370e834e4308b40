package dto

// TimesheetQuery filtros de la hoja de tiempos (fechas YYYY-MM-DD, inclusivas).
type TimesheetQuery struct {
	UserID string `query:"user_id"`
	From   string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To     string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Order  string `query:"order" validate:"omitempty,oneof=asc desc"`
	Format string `query:"format" validate:"omitempty,oneof=xlsx pdf"`
}

// TimesheetResponse registros filtrados con su banco de horas.
type TimesheetResponse struct {
	Records []DailyRecordDTO `json:"records"`
	Count   int              `json:"count"`
}
