package http

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/asistencia-api/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores usan el nombre JSON/query del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// parseBody decodifica el JSON y valida las reglas `validate`. Devuelve el
// cuerpo de error a responder con 400, o nil.
func parseBody(c *fiber.Ctx, out interface{}) *dto.ErrorResponse {
	if err := c.BodyParser(out); err != nil {
		return &dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"}
	}
	return validationError(validate.Struct(out))
}

// parseQuery igual que parseBody para parámetros de consulta.
func parseQuery(c *fiber.Ctx, out interface{}) *dto.ErrorResponse {
	if err := c.QueryParser(out); err != nil {
		return &dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"}
	}
	return validationError(validate.Struct(out))
}

func validationError(err error) *dto.ErrorResponse {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return &dto.ErrorResponse{Code: "VALIDATION", Message: "entrada inválida"}
	}
	details := make(map[string]string, len(ve))
	for _, fe := range ve {
		details[fe.Field()] = fe.Tag()
	}
	return &dto.ErrorResponse{Code: "VALIDATION", Message: "validación fallida", Details: details}
}
