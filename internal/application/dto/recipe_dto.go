package dto

import "time"

// RecipeResponse salida de una receta/documento.
type RecipeResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Filename   string    `json:"filename"`
	FileType   string    `json:"file_type"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// RecipeImageResponse salida de una imagen.
type RecipeImageResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Filename   string    `json:"filename"`
	Comment    string    `json:"comment"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// UpdateRecipeImageRequest entrada para editar título/comentario de una imagen.
type UpdateRecipeImageRequest struct {
	Title   *string `json:"title"`
	Comment *string `json:"comment"`
}
