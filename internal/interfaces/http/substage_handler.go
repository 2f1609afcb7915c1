package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cultivo-labs/cultivo-api/internal/application/dto"
	"github.com/cultivo-labs/cultivo-api/internal/application/process"
)

// SubstageHandler maneja las peticiones HTTP para sub-etapas.
type SubstageHandler struct {
	uc *process.SubstageUseCase
}

// NewSubstageHandler construye el handler.
func NewSubstageHandler(uc *process.SubstageUseCase) *SubstageHandler {
	return &SubstageHandler{uc: uc}
}

// Create godoc
// @Summary      Crear sub-etapa (nace pendiente, subordinada a una etapa)
// @Tags         subetapas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSubstageRequest  true  "Datos de la sub-etapa"
// @Success      201   {object}  dto.SubstageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/subetapas [post]
func (h *SubstageHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSubstageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sub, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(sub.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener sub-etapa por ID
// @Tags         subetapas
// @Produce      json
// @Param        id   path  string  true  "ID de la sub-etapa"
// @Success      200  {object}  dto.SubstageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/subetapas/{id} [get]
func (h *SubstageHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar sub-etapas (opcionalmente por etapa)
// @Tags         subetapas
// @Produce      json
// @Param        stage_id  query  string  false  "Filtrar por etapa"
// @Success      200  {array}  dto.SubstageResponse
// @Router       /api/subetapas [get]
func (h *SubstageHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Query("stage_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar sub-etapa
// @Tags         subetapas
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la sub-etapa"
// @Param        body  body  dto.UpdateSubstageRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.SubstageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/subetapas/{id} [put]
func (h *SubstageHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSubstageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sub, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(sub.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Start godoc
// @Summary      Iniciar sub-etapa (solo pendiente)
// @Tags         subetapas
// @Produce      json
// @Param        id   path  string  true  "ID de la sub-etapa"
// @Success      200  {object}  dto.SubstageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/subetapas/{id}/iniciar [post]
func (h *SubstageHandler) Start(c *fiber.Ctx) error {
	sub, err := h.uc.Start(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(sub.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Finish godoc
// @Summary      Finalizar sub-etapa (solo en progreso)
// @Tags         subetapas
// @Produce      json
// @Param        id   path  string  true  "ID de la sub-etapa"
// @Success      200  {object}  dto.SubstageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/subetapas/{id}/finalizar [post]
func (h *SubstageHandler) Finish(c *fiber.Ctx) error {
	sub, err := h.uc.Finish(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(sub.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar sub-etapa (bloqueado si tiene movimientos)
// @Tags         subetapas
// @Produce      json
// @Param        id   path  string  true  "ID de la sub-etapa"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/subetapas/{id} [delete]
func (h *SubstageHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "sub-etapa eliminada"})
}
