// Package pdf genera la hoja de tiempos en PDF con Maroto v2.
//
// Layout de la página A4 horizontal:
//
//	┌──────────────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + empleado / rango  │  Fecha de generación           │
//	│  ──────────────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Empleado | Entrada | Pausas | Salida | Horas | Saldos │
//	│  ──────────────────────────────────────────────────────────────────  │
//	│  FOOTER: total de registros                                          │
//	└──────────────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appattendance "github.com/jhoicas/asistencia-api/internal/application/attendance"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary  = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray     = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite    = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe   = &props.Color{Red: 240, Green: 244, Blue: 248}
	colorNegative = &props.Color{Red: 176, Green: 32, Blue: 32}
)

// gridSize columnas de la grilla; la suma de columnWidths.
const gridSize = 24

// columnWidths ancho de cada columna, en el orden de appattendance.ExportColumns.
var columnWidths = []int{2, 3, 2, 2, 2, 2, 2, 2, 2, 2, 3}

// ── Renderer ──────────────────────────────────────────────────────────────────

var _ appattendance.TimesheetRenderer = (*TimesheetRenderer)(nil)

// TimesheetRenderer implementa appattendance.TimesheetRenderer usando Maroto v2.
type TimesheetRenderer struct{}

// NewTimesheetRenderer construye el generador.
func NewTimesheetRenderer() *TimesheetRenderer { return &TimesheetRenderer{} }

func (g *TimesheetRenderer) ContentType() string { return "application/pdf" }
func (g *TimesheetRenderer) Extension() string   { return "pdf" }

// Render genera el PDF y devuelve sus bytes.
func (g *TimesheetRenderer) Render(_ context.Context, doc appattendance.TimesheetDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(gridSize).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(doc.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(doc.Rows) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(len(doc.Rows)))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y sujeto (izq), fecha de generación (der).
func headerRow(doc appattendance.TimesheetDocument) core.Row {
	return row.New(16).Add(
		col.New(16).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.Subtitle, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(8).Add(
			text.New("Generado: "+doc.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera con fondo de color primario.
func tableHeaderRow() core.Row {
	cols := make([]core.Col, 0, len(columnWidths))
	for i, label := range appattendance.ExportColumns {
		cols = append(cols, col.New(columnWidths[i]).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: columnAlign(i),
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRows: una fila por registro diario, con franjas alternas.
func tableRows(rows []appattendance.ExportRow) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for n, r := range rows {
		values := r.Values()
		cols := make([]core.Col, 0, len(values))
		for i, v := range values {
			p := props.Text{Size: 7, Align: columnAlign(i), Top: 1, Left: 1, Right: 1}
			if (i == 7 || i == 8) && len(v) > 0 && v[0] == '-' {
				p.Color = colorNegative
			}
			cols = append(cols, col.New(columnWidths[i]).Add(text.New(nonEmpty(v, "—"), p)))
		}
		rw := row.New(6).Add(cols...)
		if n%2 == 1 {
			rw = rw.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, rw)
	}
	return result
}

func footerRow(count int) core.Row {
	return row.New(8).Add(col.New(gridSize).Add(
		text.New(fmt.Sprintf("Total de registros: %d", count), props.Text{
			Size: 8, Align: align.Right, Top: 2, Color: colorGray,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// columnAlign horas y saldos a la derecha, texto libre a la izquierda.
func columnAlign(i int) align.Type {
	switch {
	case i >= 2 && i <= 5:
		return align.Center
	case i >= 6 && i <= 8:
		return align.Right
	default:
		return align.Left
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
