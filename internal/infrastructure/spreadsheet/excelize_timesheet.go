// Package spreadsheet genera la hoja de tiempos en XLSX con excelize.
package spreadsheet

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	appattendance "github.com/jhoicas/asistencia-api/internal/application/attendance"
)

// SheetName nombre de la hoja con los registros.
const SheetName = "Asistencia"

// workedHoursColumn índice (1-based) de la columna numérica de horas.
const workedHoursColumn = 7

var columnWidths = []float64{12, 24, 9, 12, 10, 9, 16, 10, 15, 12, 40}

var _ appattendance.TimesheetRenderer = (*TimesheetRenderer)(nil)

// TimesheetRenderer implementa appattendance.TimesheetRenderer con excelize.
type TimesheetRenderer struct{}

// NewTimesheetRenderer construye el generador.
func NewTimesheetRenderer() *TimesheetRenderer { return &TimesheetRenderer{} }

func (g *TimesheetRenderer) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (g *TimesheetRenderer) Extension() string { return "xlsx" }

// Render escribe encabezados en la fila 1 y un registro por fila. Las horas
// trabajadas son numéricas; los saldos quedan como texto "+HH:MM".
func (g *TimesheetRenderer) Render(_ context.Context, doc appattendance.TimesheetDocument) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	header := make([]interface{}, 0, len(appattendance.ExportColumns))
	for _, c := range appattendance.ExportColumns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: encabezados: %w", err)
	}

	for i, r := range doc.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := r.Values()
		row := make([]interface{}, 0, len(values))
		for j, v := range values {
			if j+1 == workedHoursColumn {
				row = append(row, r.WorkedHours.InexactFloat64())
				continue
			}
			row = append(row, v)
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}

	if err := g.applyLayout(f, len(doc.Rows)); err != nil {
		return nil, err
	}
	if doc.Title != "" {
		_ = f.SetDocProps(&excelize.DocProperties{Title: doc.Title, Subject: doc.Subtitle})
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *TimesheetRenderer) applyLayout(f *excelize.File, rows int) error {
	lastCol, err := excelize.ColumnNumberToName(len(columnWidths))
	if err != nil {
		return err
	}
	for i, w := range columnWidths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, name, name, w); err != nil {
			return fmt.Errorf("xlsx: ancho de columna: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"00467F"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("xlsx: estilo de encabezado: %w", err)
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle); err != nil {
		return err
	}

	if rows > 0 {
		hoursStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
		if err != nil {
			return fmt.Errorf("xlsx: estilo de horas: %w", err)
		}
		col, _ := excelize.ColumnNumberToName(workedHoursColumn)
		if err := f.SetCellStyle(SheetName, fmt.Sprintf("%s2", col), fmt.Sprintf("%s%d", col, rows+1), hoursStyle); err != nil {
			return err
		}
	}

	return f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
