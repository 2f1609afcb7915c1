package usecase

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cultivo-labs/cultivo-api/internal/application/dto"
	"github.com/cultivo-labs/cultivo-api/internal/application/ports"
	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
)

// Extensiones permitidas para documentos e imágenes subidas.
var allowedExtensions = map[string]bool{
	".txt": true, ".pdf": true, ".png": true, ".jpg": true, ".jpeg": true,
	".gif": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
}

// RecipeUseCase administra recetas/documentos e imágenes subidas. El
// contenido binario vive en el colaborador FileStorage; el dominio solo
// guarda la referencia por ruta.
type RecipeUseCase struct {
	recipeRepo repository.RecipeRepository
	imageRepo  repository.RecipeImageRepository
	storage    ports.FileStorage
}

// NewRecipeUseCase construye el caso de uso.
func NewRecipeUseCase(
	recipeRepo repository.RecipeRepository,
	imageRepo repository.RecipeImageRepository,
	storage ports.FileStorage,
) *RecipeUseCase {
	return &RecipeUseCase{recipeRepo: recipeRepo, imageRepo: imageRepo, storage: storage}
}

// UploadRecipe guarda el documento y registra la receta.
func (uc *RecipeUseCase) UploadRecipe(ctx context.Context, name, filename string, data []byte) (*dto.RecipeResponse, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if name == "" || filename == "" || len(data) == 0 || !allowedExtensions[ext] {
		return nil, domain.ErrInvalidInput
	}
	path, err := uc.storage.Save(ctx, "recipes", filename, data)
	if err != nil {
		return nil, err
	}
	recipe := &entity.Recipe{
		ID:         uuid.New().String(),
		Name:       name,
		Filename:   filename,
		FileType:   strings.TrimPrefix(ext, "."),
		FilePath:   path,
		UploadedAt: time.Now(),
	}
	if err := uc.recipeRepo.Create(recipe); err != nil {
		return nil, err
	}
	return toRecipeResponse(recipe), nil
}

// DownloadRecipe devuelve el nombre original y el contenido del documento.
func (uc *RecipeUseCase) DownloadRecipe(ctx context.Context, id string) (string, []byte, error) {
	recipe, err := uc.recipeRepo.GetByID(id)
	if err != nil {
		return "", nil, err
	}
	if recipe == nil {
		return "", nil, domain.ErrNotFound
	}
	data, err := uc.storage.Open(ctx, recipe.FilePath)
	if err != nil {
		return "", nil, err
	}
	return recipe.Filename, data, nil
}

// DeleteRecipe elimina la receta y su archivo.
func (uc *RecipeUseCase) DeleteRecipe(ctx context.Context, id string) error {
	recipe, err := uc.recipeRepo.GetByID(id)
	if err != nil {
		return err
	}
	if recipe == nil {
		return domain.ErrNotFound
	}
	if err := uc.storage.Delete(ctx, recipe.FilePath); err != nil {
		return err
	}
	return uc.recipeRepo.Delete(id)
}

// ListRecipes lista las recetas registradas.
func (uc *RecipeUseCase) ListRecipes() ([]dto.RecipeResponse, error) {
	recipes, err := uc.recipeRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecipeResponse, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, *toRecipeResponse(r))
	}
	return out, nil
}

// UploadImage guarda una imagen con título y comentario.
func (uc *RecipeUseCase) UploadImage(ctx context.Context, title, filename, comment string, data []byte) (*dto.RecipeImageResponse, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if title == "" || filename == "" || len(data) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" && ext != ".gif" {
		return nil, domain.ErrInvalidInput
	}
	path, err := uc.storage.Save(ctx, "images", filename, data)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	image := &entity.RecipeImage{
		ID:         uuid.New().String(),
		Title:      title,
		Filename:   filename,
		FilePath:   path,
		Comment:    comment,
		UploadedAt: now,
		UpdatedAt:  now,
	}
	if err := uc.imageRepo.Create(image); err != nil {
		return nil, err
	}
	return toRecipeImageResponse(image), nil
}

// UpdateImage edita título/comentario de una imagen.
func (uc *RecipeUseCase) UpdateImage(id string, in dto.UpdateRecipeImageRequest) (*dto.RecipeImageResponse, error) {
	image, err := uc.imageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, domain.ErrNotFound
	}
	if in.Title != nil {
		image.Title = *in.Title
	}
	if in.Comment != nil {
		image.Comment = *in.Comment
	}
	image.UpdatedAt = time.Now()
	if err := uc.imageRepo.Update(image); err != nil {
		return nil, err
	}
	return toRecipeImageResponse(image), nil
}

// DeleteImage elimina la imagen y su archivo.
func (uc *RecipeUseCase) DeleteImage(ctx context.Context, id string) error {
	image, err := uc.imageRepo.GetByID(id)
	if err != nil {
		return err
	}
	if image == nil {
		return domain.ErrNotFound
	}
	if err := uc.storage.Delete(ctx, image.FilePath); err != nil {
		return err
	}
	return uc.imageRepo.Delete(id)
}

// ListImages lista las imágenes registradas.
func (uc *RecipeUseCase) ListImages() ([]dto.RecipeImageResponse, error) {
	images, err := uc.imageRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecipeImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, *toRecipeImageResponse(img))
	}
	return out, nil
}

func toRecipeResponse(r *entity.Recipe) *dto.RecipeResponse {
	return &dto.RecipeResponse{
		ID:         r.ID,
		Name:       r.Name,
		Filename:   r.Filename,
		FileType:   r.FileType,
		UploadedAt: r.UploadedAt,
	}
}

func toRecipeImageResponse(i *entity.RecipeImage) *dto.RecipeImageResponse {
	return &dto.RecipeImageResponse{
		ID:         i.ID,
		Title:      i.Title,
		Filename:   i.Filename,
		Comment:    i.Comment,
		UploadedAt: i.UploadedAt,
	}
}
