package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cultivo-labs/cultivo-api/internal/application/dto"
	"github.com/cultivo-labs/cultivo-api/internal/application/usecase"
)

// PostItHandler maneja las notas rápidas del tablero.
type PostItHandler struct {
	uc *usecase.PostItUseCase
}

// NewPostItHandler construye el handler.
func NewPostItHandler(uc *usecase.PostItUseCase) *PostItHandler {
	return &PostItHandler{uc: uc}
}

// Create godoc
// @Summary      Crear nota
// @Tags         notas
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePostItRequest  true  "Datos de la nota"
// @Success      201   {object}  dto.PostItResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/postits [post]
func (h *PostItHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePostItRequest
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
// @Summary      Listar notas
// @Tags         notas
// @Produce      json
// @Success      200  {array}  dto.PostItResponse
// @Router       /api/postits [get]
func (h *PostItHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar nota
// @Tags         notas
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la nota"
// @Param        body  body  dto.UpdatePostItRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.PostItResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/postits/{id} [put]
func (h *PostItHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdatePostItRequest
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
// @Summary      Eliminar nota
// @Tags         notas
// @Produce      json
// @Param        id   path  string  true  "ID de la nota"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/postits/{id} [delete]
func (h *PostItHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "nota eliminada"})
}
