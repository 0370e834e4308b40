package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/asistencia-api/internal/application/auth"
	"github.com/jhoicas/asistencia-api/internal/application/dto"
)

// AuthHandler maneja login, sesión y contraseñas.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password, remember"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if e := parseBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Los tokens no tienen estado en el servidor; el cliente descarta el suyo.
// @Tags         auth
// @Success      204
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

// Me godoc
// @Summary      Usuario autenticado
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.UserResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ChangePassword godoc
// @Summary      Cambiar contraseña (reautentica con la actual)
// @Tags         auth
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  dto.ChangePasswordRequest  true  "contraseña actual y nueva"
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if e := parseBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	if err := h.uc.ChangePassword(c.UserContext(), GetUserID(c), in); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RequestPasswordReset godoc
// @Summary      Solicitar restablecimiento de contraseña
// @Tags         auth
// @Accept       json
// @Param        body  body  dto.PasswordResetRequest  true  "email"
// @Failure      501  {object}  dto.ErrorResponse
// @Router       /api/auth/password-reset [post]
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var in dto.PasswordResetRequest
	if e := parseBody(c, &in); e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	return writeError(c, h.uc.RequestPasswordReset(c.UserContext(), in))
}
