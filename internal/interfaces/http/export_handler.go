package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cultivo-labs/cultivo-api/internal/application/export"
)

// ExportHandler expone la exportación del catálogo completo a XLSX.
type ExportHandler struct {
	uc *export.ExportUseCase
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *export.ExportUseCase) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// ExportExcel godoc
// @Summary      Exportar todas las colecciones a una planilla XLSX
// @Description  Una hoja por colección. La exportación corre con un tiempo
//               acotado; si excede el límite devuelve 504.
// @Tags         exportacion
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Failure      504  {object}  dto.ErrorResponse
// @Router       /api/exportar-excel [get]
func (h *ExportHandler) ExportExcel(c *fiber.Ctx) error {
	data, err := h.uc.ExportCatalog(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="cultivo.xlsx"`)
	return c.Send(data)
}
