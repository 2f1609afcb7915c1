package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/cultivo-labs/cultivo-api/internal/application/dto"
	"github.com/cultivo-labs/cultivo-api/internal/application/usecase"
)

// RecipeHandler maneja documentos de recetas e imágenes subidas.
type RecipeHandler struct {
	uc *usecase.RecipeUseCase
}

// NewRecipeHandler construye el handler.
func NewRecipeHandler(uc *usecase.RecipeUseCase) *RecipeHandler {
	return &RecipeHandler{uc: uc}
}

func readUpload(c *fiber.Ctx, field string) (string, []byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, data, nil
}

// Upload godoc
// @Summary      Subir documento de receta (multipart: file, name)
// @Tags         recetas
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file    true   "Documento"
// @Param        name  formData  string  false  "Nombre descriptivo"
// @Success      201   {object}  dto.RecipeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/recetas [post]
func (h *RecipeHandler) Upload(c *fiber.Ctx) error {
	filename, data, err := readUpload(c, "file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "archivo requerido"})
	}
	out, err := h.uc.UploadRecipe(c.Context(), c.FormValue("name"), filename, data)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Download godoc
// @Summary      Descargar documento de receta
// @Tags         recetas
// @Produce      application/octet-stream
// @Param        id   path  string  true  "ID de la receta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recetas/{id}/descargar [get]
func (h *RecipeHandler) Download(c *fiber.Ctx) error {
	filename, data, err := h.uc.DownloadRecipe(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// List godoc
// @Summary      Listar documentos de recetas
// @Tags         recetas
// @Produce      json
// @Success      200  {array}  dto.RecipeResponse
// @Router       /api/recetas [get]
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListRecipes()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar documento de receta (y su archivo)
// @Tags         recetas
// @Produce      json
// @Param        id   path  string  true  "ID de la receta"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recetas/{id} [delete]
func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteRecipe(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "receta eliminada"})
}

// UploadImage godoc
// @Summary      Subir imagen con comentario (png, jpg, jpeg o gif)
// @Tags         recetas
// @Accept       multipart/form-data
// @Produce      json
// @Param        file     formData  file    true   "Imagen"
// @Param        title    formData  string  false  "Título"
// @Param        comment  formData  string  false  "Comentario"
// @Success      201      {object}  dto.RecipeImageResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Router       /api/recetas/imagenes [post]
func (h *RecipeHandler) UploadImage(c *fiber.Ctx) error {
	filename, data, err := readUpload(c, "file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "archivo requerido"})
	}
	out, err := h.uc.UploadImage(c.Context(), c.FormValue("title"), filename, c.FormValue("comment"), data)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListImages godoc
// @Summary      Listar imágenes subidas
// @Tags         recetas
// @Produce      json
// @Success      200  {array}  dto.RecipeImageResponse
// @Router       /api/recetas/imagenes [get]
func (h *RecipeHandler) ListImages(c *fiber.Ctx) error {
	out, err := h.uc.ListImages()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateImage godoc
// @Summary      Actualizar título o comentario de una imagen
// @Tags         recetas
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la imagen"
// @Param        body  body  dto.UpdateRecipeImageRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.RecipeImageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/recetas/imagenes/{id} [put]
func (h *RecipeHandler) UpdateImage(c *fiber.Ctx) error {
	var in dto.UpdateRecipeImageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateImage(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeleteImage godoc
// @Summary      Eliminar imagen (y su archivo)
// @Tags         recetas
// @Produce      json
// @Param        id   path  string  true  "ID de la imagen"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recetas/imagenes/{id} [delete]
func (h *RecipeHandler) DeleteImage(c *fiber.Ctx) error {
	if err := h.uc.DeleteImage(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "imagen eliminada"})
}
