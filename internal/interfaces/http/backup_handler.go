package http

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/asistencia-api/internal/application/backup"
	"github.com/jhoicas/asistencia-api/internal/application/dto"
)

// maxBackupSize límite del archivo subido.
const maxBackupSize = 32 << 20

// BackupHandler descarga y restauración del respaldo JSON (admin).
type BackupHandler struct {
	uc *backup.UseCase
}

// NewBackupHandler construye el handler.
func NewBackupHandler(uc *backup.UseCase) *BackupHandler {
	return &BackupHandler{uc: uc}
}

// Export godoc
// @Summary      Descargar respaldo completo
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {file}  binary
// @Router       /api/admin/backup [get]
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	data, filename, err := h.uc.Export(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(data)
}

// Import godoc
// @Summary      Restaurar respaldo (upsert por ID)
// @Description  Acepta el JSON como cuerpo o como archivo multipart en el campo "file".
// @Tags         admin
// @Accept       json
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.BackupImportResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/backup [post]
func (h *BackupHandler) Import(c *fiber.Ctx) error {
	data, e := backupPayload(c)
	if e != nil {
		return c.Status(fiber.StatusBadRequest).JSON(e)
	}
	out, err := h.uc.Import(c.UserContext(), GetUserID(c), data)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func backupPayload(c *fiber.Ctx) ([]byte, *dto.ErrorResponse) {
	fh, err := c.FormFile("file")
	if err != nil {
		body := c.Body()
		if len(body) == 0 {
			return nil, &dto.ErrorResponse{Code: "INVALID_BODY", Message: "falta el archivo de respaldo"}
		}
		return append([]byte(nil), body...), nil
	}
	if fh.Size > maxBackupSize {
		return nil, &dto.ErrorResponse{Code: "INVALID_BODY", Message: "el archivo supera el tamaño permitido"}
	}
	f, err := fh.Open()
	if err != nil {
		return nil, &dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"}
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxBackupSize))
	if err != nil {
		return nil, &dto.ErrorResponse{Code: "INVALID_BODY", Message: "no se pudo leer el archivo"}
	}
	return data, nil
}
