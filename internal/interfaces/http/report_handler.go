package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cultivo-labs/cultivo-api/internal/application/analytics"
)

// ReportHandler expone el resumen puntual de una etapa en JSON, texto plano
// y PDF.
type ReportHandler struct {
	engine *analytics.Engine
	pdfGen analytics.StageReportPDFGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(engine *analytics.Engine, pdfGen analytics.StageReportPDFGenerator) *ReportHandler {
	return &ReportHandler{engine: engine, pdfGen: pdfGen}
}

// StageReport godoc
// @Summary      Resumen de etapa: consumo y gasto por producto, sub-etapas y costo por día
// @Tags         etapas
// @Produce      json
// @Param        id   path  string  true  "ID de la etapa"
// @Success      200  {object}  dto.StageReportDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/etapas/{id}/resumen [get]
func (h *ReportHandler) StageReport(c *fiber.Ctx) error {
	out, err := h.engine.StageReport(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// StageReportText godoc
// @Summary      Resumen de etapa en texto plano
// @Tags         etapas
// @Produce      plain
// @Param        id   path  string  true  "ID de la etapa"
// @Success      200  {string}  string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/etapas/{id}/resumen/texto [get]
func (h *ReportHandler) StageReportText(c *fiber.Ctx) error {
	report, err := h.engine.StageReport(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(analytics.RenderStageReportText(report))
}

// StageReportPDF godoc
// @Summary      Resumen de etapa en PDF
// @Tags         etapas
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la etapa"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/etapas/{id}/resumen/pdf [get]
func (h *ReportHandler) StageReportPDF(c *fiber.Ctx) error {
	report, err := h.engine.StageReport(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.pdfGen.GenerateStageReportPDF(c.Context(), report)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="resumen-etapa.pdf"`)
	return c.Send(doc)
}
