package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/asistencia-api/internal/application/dto"
	"github.com/jhoicas/asistencia-api/internal/domain"
	"github.com/jhoicas/asistencia-api/pkg/logger"
)

type errorMapping struct {
	err    error
	status int
	code   string
}

// errorMappings orden relevante: se usa la primera coincidencia de errors.Is.
var errorMappings = []errorMapping{
	{domain.ErrInvalidBackup, fiber.StatusBadRequest, "INVALID_BACKUP"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrInactiveAccount, fiber.StatusForbidden, "INACTIVE_ACCOUNT"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrOutsideGeofence, fiber.StatusForbidden, "OUTSIDE_GEOFENCE"},
	{domain.ErrPositionFailure, fiber.StatusForbidden, "POSITION_UNAVAILABLE"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "USER_NOT_FOUND"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrInvalidPunch, fiber.StatusConflict, "INVALID_PUNCH"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrNotImplemented, fiber.StatusNotImplemented, "NOT_IMPLEMENTED"},
}

// writeError traduce errores de dominio a dto.ErrorResponse. Lo no
// reconocido responde 500 genérico; el detalle queda en el log de la petición.
func writeError(c *fiber.Ctx, err error) error {
	if err == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	c.Locals(logger.LocalError, err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}
