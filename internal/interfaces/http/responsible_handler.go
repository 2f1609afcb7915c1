package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cultivo-labs/cultivo-api/internal/application/dto"
	"github.com/cultivo-labs/cultivo-api/internal/application/usecase"
)

// ResponsibleHandler maneja los responsables de locación.
type ResponsibleHandler struct {
	uc *usecase.ResponsibleUseCase
}

// NewResponsibleHandler construye el handler.
func NewResponsibleHandler(uc *usecase.ResponsibleUseCase) *ResponsibleHandler {
	return &ResponsibleHandler{uc: uc}
}

// Create godoc
// @Summary      Crear responsable (color asignado de la paleta si no se indica)
// @Tags         responsables
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateResponsibleRequest  true  "Datos del responsable"
// @Success      201   {object}  dto.ResponsibleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/responsables [post]
func (h *ResponsibleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateResponsibleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar responsables (opcionalmente por locación)
// @Tags         responsables
// @Produce      json
// @Param        location_id  query  string  false  "Filtrar por locación"
// @Success      200  {array}  dto.ResponsibleResponse
// @Router       /api/responsables [get]
func (h *ResponsibleHandler) List(c *fiber.Ctx) error {
	if locationID := c.Query("location_id"); locationID != "" {
		out, err := h.uc.ListByLocation(locationID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar responsable
// @Tags         responsables
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del responsable"
// @Param        body  body  dto.UpdateResponsibleRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ResponsibleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/responsables/{id} [put]
func (h *ResponsibleHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateResponsibleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar responsable
// @Tags         responsables
// @Produce      json
// @Param        id   path  string  true  "ID del responsable"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/responsables/{id} [delete]
func (h *ResponsibleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "responsable eliminado"})
}
