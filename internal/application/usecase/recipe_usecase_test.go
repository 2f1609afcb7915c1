package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cultivo-labs/cultivo-api/internal/application/dto"
	"github.com/cultivo-labs/cultivo-api/internal/application/usecase"
	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/infrastructure/memory"
	"github.com/cultivo-labs/cultivo-api/internal/infrastructure/storage"
)

// newRecipeFixture arma el caso de uso de recetas con almacenamiento local
// sobre un directorio temporal.
func newRecipeFixture(t *testing.T) *usecase.RecipeUseCase {
	t.Helper()
	store := memory.NewStore()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return usecase.NewRecipeUseCase(
		memory.NewRecipeRepository(store),
		memory.NewRecipeImageRepository(store),
		files,
	)
}

func TestRecipeSubirYDescargar(t *testing.T) {
	uc := newRecipeFixture(t)
	contenido := []byte("1. Mezclar sustrato\n2. Regar")

	r, err := uc.UploadRecipe(context.Background(), "Preparación de sustrato", "sustrato.txt", contenido)
	require.NoError(t, err)
	assert.Equal(t, "txt", r.FileType)

	filename, data, err := uc.DownloadRecipe(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, "sustrato.txt", filename)
	assert.Equal(t, contenido, data)
}

func TestRecipeRechazaExtensionesNoPermitidas(t *testing.T) {
	uc := newRecipeFixture(t)

	_, err := uc.UploadRecipe(context.Background(), "Script", "hack.exe", []byte("MZ"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UploadRecipe(context.Background(), "Vacía", "receta.pdf", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecipeDeleteEliminaArchivoYRegistro(t *testing.T) {
	uc := newRecipeFixture(t)

	r, err := uc.UploadRecipe(context.Background(), "Receta", "receta.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)

	require.NoError(t, uc.DeleteRecipe(context.Background(), r.ID))

	_, _, err = uc.DownloadRecipe(context.Background(), r.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	lista, err := uc.ListRecipes()
	require.NoError(t, err)
	assert.Empty(t, lista)
}

func TestRecipeImagenesConComentario(t *testing.T) {
	uc := newRecipeFixture(t)

	img, err := uc.UploadImage(context.Background(), "Plántulas", "dia3.jpg", "día 3 tras la siembra", []byte{0xFF, 0xD8})
	require.NoError(t, err)
	assert.Equal(t, "día 3 tras la siembra", img.Comment)

	comentario := "día 3, germinación pareja"
	got, err := uc.UpdateImage(img.ID, dto.UpdateRecipeImageRequest{Comment: &comentario})
	require.NoError(t, err)
	assert.Equal(t, comentario, got.Comment)

	require.NoError(t, uc.DeleteImage(context.Background(), img.ID))
	imgs, err := uc.ListImages()
	require.NoError(t, err)
	assert.Empty(t, imgs)
}
