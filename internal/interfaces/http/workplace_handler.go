package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/asistencia-api/internal/application/dto"
	"github.com/jhoicas/asistencia-api/internal/application/usecase"
)

// WorkplaceHandler configuración del lugar de trabajo y verificación de geocerca.
type WorkplaceHandler struct {
	uc *usecase.WorkplaceUseCase
}

// NewWorkplaceHandler construye el handler.
func NewWorkplaceHandler(uc *usecase.WorkplaceUseCase) *WorkplaceHandler {
	return &WorkplaceHandler{uc: uc}
}

// Get godoc
// @Summary      Configuración vigente y política de ubicación
// @Tags         workplace
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.WorkplaceResponse
// @Router       /api/workplace [get]
func (h *WorkplaceHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Save godoc
// @Summary      Guardar configuración (admin)
// @Tags         workplace
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.WorkplaceRequest  true  "coordenadas, radio y jornada"
// @Success      200   {object}  dto.WorkplaceResponse
// @Router       /api/workplace [put]
func (h *WorkplaceHandler) Save(c *fiber.Ctx) error {
	var in dto.WorkplaceRequest
	if e := parseBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Save(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Check godoc
// @Summary      Verificar si una posición está dentro de la geocerca
// @Description  Un fallo de ubicación responde 200 con allowed=false y el mensaje para el usuario.
// @Tags         workplace
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.GeofenceCheckRequest  true  "posición o código de error"
// @Success      200   {object}  dto.GeofenceCheckResponse
// @Router       /api/geofence/check [post]
func (h *WorkplaceHandler) Check(c *fiber.Ctx) error {
	var in dto.GeofenceCheckRequest
	if e := parseBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Check(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
