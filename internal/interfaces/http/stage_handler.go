package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cultivo-labs/cultivo-api/internal/application/dto"
	"github.com/cultivo-labs/cultivo-api/internal/application/process"
)

// StageHandler maneja las peticiones HTTP para etapas y su ciclo de vida.
type StageHandler struct {
	uc *process.StageUseCase
}

// NewStageHandler construye el handler.
func NewStageHandler(uc *process.StageUseCase) *StageHandler {
	return &StageHandler{uc: uc}
}

// Create godoc
// @Summary      Crear etapa (nace pendiente)
// @Tags         etapas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStageRequest  true  "Datos de la etapa"
// @Success      201   {object}  dto.StageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/etapas [post]
func (h *StageHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	stage, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(stage.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener etapa por ID (avance calculado en vivo)
// @Tags         etapas
// @Produce      json
// @Param        id   path  string  true  "ID de la etapa"
// @Success      200  {object}  dto.StageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/etapas/{id} [get]
func (h *StageHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar etapas
// @Tags         etapas
// @Produce      json
// @Success      200  {array}  dto.StageResponse
// @Router       /api/etapas [get]
func (h *StageHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar etapa (cambiar locación re-verifica exclusividad)
// @Tags         etapas
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la etapa"
// @Param        body  body  dto.UpdateStageRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.StageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/etapas/{id} [put]
func (h *StageHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	stage, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(stage.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Start godoc
// @Summary      Iniciar etapa (solo pendiente; exclusividad de locación atómica)
// @Tags         etapas
// @Produce      json
// @Param        id   path  string  true  "ID de la etapa"
// @Success      200  {object}  dto.StageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/etapas/{id}/iniciar [post]
func (h *StageHandler) Start(c *fiber.Ctx) error {
	stage, err := h.uc.Start(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(stage.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Finish godoc
// @Summary      Finalizar etapa (solo en progreso; congela la duración real)
// @Tags         etapas
// @Produce      json
// @Param        id   path  string  true  "ID de la etapa"
// @Success      200  {object}  dto.StageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/etapas/{id}/finalizar [post]
func (h *StageHandler) Finish(c *fiber.Ctx) error {
	stage, err := h.uc.Finish(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(stage.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Restart godoc
// @Summary      Reiniciar etapa completada como nuevo ciclo (clon pendiente)
// @Tags         etapas
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la etapa completada"
// @Param        body  body  dto.RestartStageRequest  false  "Nombre del nuevo ciclo"
// @Success      201   {object}  dto.StageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/etapas/{id}/reiniciar [post]
func (h *StageHandler) Restart(c *fiber.Ctx) error {
	var in dto.RestartStageRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	clone, err := h.uc.Restart(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetByID(clone.ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Delete godoc
// @Summary      Eliminar etapa (bloqueado si tiene sub-etapas o movimientos)
// @Tags         etapas
// @Produce      json
// @Param        id   path  string  true  "ID de la etapa"
// @Success      200  {object}  dto.MessageResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/etapas/{id} [delete]
func (h *StageHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "etapa eliminada"})
}
