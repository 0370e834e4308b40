package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/asistencia-api/internal/application/attendance"
	"github.com/jhoicas/asistencia-api/internal/application/dto"
)

// ClockHandler marcaciones del usuario y edición manual por administradores.
type ClockHandler struct {
	uc *attendance.ClockUseCase
}

// NewClockHandler construye el handler.
func NewClockHandler(uc *attendance.ClockUseCase) *ClockHandler {
	return &ClockHandler{uc: uc}
}

// Punch godoc
// @Summary      Registrar marcación
// @Description  Valida geocerca y secuencia del día (entrada, pausa, fin de pausa, salida).
// @Tags         clock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.PunchRequest  true  "tipo, nota y posición"
// @Success      201   {object}  dto.PunchResponse
// @Failure      403   {object}  dto.ErrorResponse  "fuera de la geocerca o sin ubicación"
// @Failure      409   {object}  dto.ErrorResponse  "marcación fuera de secuencia"
// @Router       /api/clock/punch [post]
func (h *ClockHandler) Punch(c *fiber.Ctx) error {
	var in dto.PunchRequest
	if e := parseBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Punch(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Today godoc
// @Summary      Estado del día del usuario
// @Tags         clock
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.TodayResponse
// @Router       /api/clock/today [get]
func (h *ClockHandler) Today(c *fiber.Ctx) error {
	out, err := h.uc.Today(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateManual godoc
// @Summary      Alta manual de marcación (admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.ManualEventRequest  true  "usuario, tipo, instante"
// @Success      201   {object}  dto.ClockEventResponse
// @Router       /api/admin/events [post]
func (h *ClockHandler) CreateManual(c *fiber.Ctx) error {
	var in dto.ManualEventRequest
	if e := parseBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.CreateManual(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateEvent godoc
// @Summary      Editar instante o nota de una marcación (admin)
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string                  true  "ID de la marcación"
// @Param        body  body  dto.UpdateEventRequest  true  "timestamp y/o note"
// @Success      200   {object}  dto.ClockEventResponse
// @Router       /api/admin/events/{id} [put]
func (h *ClockHandler) UpdateEvent(c *fiber.Ctx) error {
	var in dto.UpdateEventRequest
	if e := parseBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.UpdateEvent(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DeleteEvent godoc
// @Summary      Eliminar marcación (admin)
// @Tags         admin
// @Security     BearerAuth
// @Param        id   path  string  true  "ID de la marcación"
// @Success      204
// @Router       /api/admin/events/{id} [delete]
func (h *ClockHandler) DeleteEvent(c *fiber.Ctx) error {
	if err := h.uc.DeleteEvent(c.UserContext(), GetUserID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
