package entity

import "time"

// Recipe es un documento subido (manual, receta) almacenado por el
// colaborador de archivos; el dominio solo guarda la referencia.
type Recipe struct {
	ID         string
	Name       string
	Filename   string
	FileType   string // pdf, docx...
	FilePath   string
	UploadedAt time.Time
}

// RecipeImage es una imagen subida con comentario.
type RecipeImage struct {
	ID         string
	Title      string
	Filename   string
	FilePath   string
	Comment    string
	UploadedAt time.Time
	UpdatedAt  time.Time
}
