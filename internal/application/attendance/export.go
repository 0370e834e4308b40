package attendance

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/asistencia-api/internal/domain/attendance"
)

// ExportRow fila de la hoja de tiempos exportada. Las horas del día van en
// HH:MM de la zona de visualización; los saldos con signo explícito.
type ExportRow struct {
	Date        string
	Employee    string
	ClockIn     string
	BreakStart  string
	BreakEnd    string
	ClockOut    string
	WorkedHours decimal.Decimal
	Balance     string
	Accumulated string
	Status      string
	Observation string
}

// ExportColumns encabezados en el orden de ExportRow.
var ExportColumns = []string{
	"Fecha", "Empleado", "Entrada", "Inicio pausa", "Fin pausa", "Salida",
	"Horas trabajadas", "Saldo", "Banco de horas", "Estado", "Observación",
}

// Values fila como texto, en el orden de ExportColumns.
func (r ExportRow) Values() []string {
	return []string{
		r.Date, r.Employee, r.ClockIn, r.BreakStart, r.BreakEnd, r.ClockOut,
		r.WorkedHours.StringFixed(2), r.Balance, r.Accumulated, r.Status, r.Observation,
	}
}

var statusLabels = map[attendance.Status]string{
	attendance.StatusComplete:   "Completo",
	attendance.StatusIncomplete: "Incompleto",
}

// BuildExportRows convierte los registros acumulados en filas de exportación.
func BuildExportRows(records []attendance.AccumulatedRecord, names map[string]string, loc *time.Location) []ExportRow {
	rows := make([]ExportRow, 0, len(records))
	for _, r := range records {
		name := names[r.UserID]
		if name == "" {
			name = r.UserID
		}
		rows = append(rows, ExportRow{
			Date:        r.DateKey(),
			Employee:    name,
			ClockIn:     FormatClock(r.ClockIn, loc),
			BreakStart:  FormatClock(r.BreakStart, loc),
			BreakEnd:    FormatClock(r.BreakEnd, loc),
			ClockOut:    FormatClock(r.ClockOut, loc),
			WorkedHours: decimal.NewFromFloat(r.WorkedHours()).Round(2),
			Balance:     FormatSignedDuration(r.Balance),
			Accumulated: FormatSignedDuration(r.Accumulated),
			Status:      statusLabels[r.Status],
			Observation: r.Observation,
		})
	}
	return rows
}

// FormatClock hora local HH:MM, o vacío si no hay marcación.
func FormatClock(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format("15:04")
}

// FormatSignedDuration "+HH:MM" / "-HH:MM"; el cero se muestra positivo.
// Los segundos se truncan.
func FormatSignedDuration(d time.Duration) string {
	sign := "+"
	if d < 0 {
		sign = "-"
		d = -d
	}
	total := int64(d / time.Minute)
	return fmt.Sprintf("%s%02d:%02d", sign, total/60, total%60)
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// ExportFilename nombre de archivo ASCII: "asistencia_<sujeto>_<desde>_<hasta>.<ext>".
// Los acentos se eliminan y los demás caracteres se reemplazan por "_".
func ExportFilename(subject, from, to, ext string) string {
	parts := []string{"asistencia", subject}
	if from != "" {
		parts = append(parts, from)
	}
	if to != "" {
		parts = append(parts, to)
	}
	base := foldASCII(strings.Join(parts, "_"))
	base = strings.Trim(unsafeFilename.ReplaceAllString(base, "_"), "_")
	return strings.ToLower(base) + "." + ext
}

func foldASCII(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
