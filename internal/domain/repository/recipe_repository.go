package repository

import "github.com/cultivo-labs/cultivo-api/internal/domain/entity"

// RecipeRepository define el puerto de persistencia para recetas/documentos.
type RecipeRepository interface {
	Create(recipe *entity.Recipe) error
	GetByID(id string) (*entity.Recipe, error)
	List() ([]*entity.Recipe, error)
	Delete(id string) error
}

// RecipeImageRepository define el puerto de persistencia para imágenes.
type RecipeImageRepository interface {
	Create(image *entity.RecipeImage) error
	GetByID(id string) (*entity.RecipeImage, error)
	Update(image *entity.RecipeImage) error
	List() ([]*entity.RecipeImage, error)
	Delete(id string) error
}
