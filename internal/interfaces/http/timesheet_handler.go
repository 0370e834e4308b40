package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/asistencia-api/internal/application/attendance"
	"github.com/jhoicas/asistencia-api/internal/application/dto"
)

// TimesheetHandler hoja de tiempos, exportaciones y tablero.
type TimesheetHandler struct {
	uc *attendance.TimesheetUseCase
}

// NewTimesheetHandler construye el handler.
func NewTimesheetHandler(uc *attendance.TimesheetUseCase) *TimesheetHandler {
	return &TimesheetHandler{uc: uc}
}

// Query godoc
// @Summary      Registros diarios con banco de horas
// @Description  Un empleado solo ve sus registros; un administrador cualquiera o todos.
// @Tags         timesheet
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query  string  false  "ID de usuario"
// @Param        from     query  string  false  "YYYY-MM-DD inclusivo"
// @Param        to       query  string  false  "YYYY-MM-DD inclusivo"
// @Param        order    query  string  false  "asc | desc (defecto)"
// @Success      200  {object}  dto.TimesheetResponse
// @Router       /api/timesheet [get]
func (h *TimesheetHandler) Query(c *fiber.Ctx) error {
	var q dto.TimesheetQuery
	if e := parseQuery(c, &q); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Query(c.UserContext(), requester(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Descargar hoja de tiempos (XLSX o PDF)
// @Tags         timesheet
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        format   query  string  false  "xlsx (defecto) | pdf"
// @Param        user_id  query  string  false  "ID de usuario"
// @Param        from     query  string  false  "YYYY-MM-DD"
// @Param        to       query  string  false  "YYYY-MM-DD"
// @Success      200  {file}  binary
// @Router       /api/timesheet/export [get]
func (h *TimesheetHandler) Export(c *fiber.Ctx) error {
	var q dto.TimesheetQuery
	if e := parseQuery(c, &q); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	data, filename, contentType, err := h.uc.Export(c.UserContext(), requester(c), q)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

// Summary godoc
// @Summary      Estadísticas del tablero
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *TimesheetHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext(), requester(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
