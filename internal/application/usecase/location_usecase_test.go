package usecase_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cultivo-labs/cultivo-api/internal/application/dto"
	"github.com/cultivo-labs/cultivo-api/internal/application/usecase"
	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/infrastructure/memory"
)

type locationFixture struct {
	uc        *usecase.LocationUseCase
	stages    *memory.StageRepository
	movements *memory.MovementRepository
}

// newLocationFixture arma el caso de uso de locaciones sobre memoria.
func newLocationFixture(t *testing.T) *locationFixture {
	t.Helper()
	store := memory.NewStore()
	f := &locationFixture{
		stages:    memory.NewStageRepository(store),
		movements: memory.NewMovementRepository(store),
	}
	f.uc = usecase.NewLocationUseCase(memory.NewLocationRepository(store), f.stages, f.movements)
	return f
}

func TestLocationCRUD(t *testing.T) {
	f := newLocationFixture(t)

	loc, err := f.uc.Create(dto.CreateLocationRequest{Name: "Invernadero A", Responsible: "Carlos"})
	require.NoError(t, err)

	nombre := "Invernadero A - Norte"
	got, err := f.uc.Update(loc.ID, dto.UpdateLocationRequest{Name: &nombre})
	require.NoError(t, err)
	assert.Equal(t, "Invernadero A - Norte", got.Name)

	todas, err := f.uc.List()
	require.NoError(t, err)
	assert.Len(t, todas, 1)

	require.NoError(t, f.uc.Delete(loc.ID))
	_, err = f.uc.GetByID(loc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocationCreateRequiereNombre(t *testing.T) {
	f := newLocationFixture(t)
	_, err := f.uc.Create(dto.CreateLocationRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLocationDeleteBloqueadoPorEtapaActiva(t *testing.T) {
	f := newLocationFixture(t)
	loc, err := f.uc.Create(dto.CreateLocationRequest{Name: "Invernadero A"})
	require.NoError(t, err)

	require.NoError(t, f.stages.Create(&entity.Stage{
		ID:         uuid.New().String(),
		Name:       "Germinación",
		LocationID: loc.ID,
		Status:     entity.StatusInProgress,
	}))

	err = f.uc.Delete(loc.ID)
	assert.ErrorIs(t, err, domain.ErrReferenced)
}

func TestLocationDeleteBloqueadoPorMovimientos(t *testing.T) {
	f := newLocationFixture(t)
	loc, err := f.uc.Create(dto.CreateLocationRequest{Name: "Invernadero A"})
	require.NoError(t, err)

	require.NoError(t, f.movements.Create(&entity.Movement{
		ID:          uuid.New().String(),
		Type:        entity.MovementTypeCompra,
		LocationID:  loc.ID,
		Responsible: "Carlos",
		Date:        time.Now(),
	}))

	err = f.uc.Delete(loc.ID)
	assert.ErrorIs(t, err, domain.ErrReferenced)
}

func TestLocationDeleteLibreConEtapaCompletada(t *testing.T) {
	f := newLocationFixture(t)
	loc, err := f.uc.Create(dto.CreateLocationRequest{Name: "Invernadero A"})
	require.NoError(t, err)

	// Una etapa completada ya no ocupa la locación.
	require.NoError(t, f.stages.Create(&entity.Stage{
		ID:         uuid.New().String(),
		Name:       "Germinación",
		LocationID: loc.ID,
		Status:     entity.StatusCompleted,
	}))
	require.NoError(t, f.uc.Delete(loc.ID))
}

func TestLocationDeleteBloqueadoPorTransferencia(t *testing.T) {
	f := newLocationFixture(t)
	loc, err := f.uc.Create(dto.CreateLocationRequest{Name: "Invernadero A"})
	require.NoError(t, err)

	require.NoError(t, f.movements.Create(&entity.Movement{
		ID:             uuid.New().String(),
		Type:           entity.MovementTypeTransferencia,
		FromLocationID: loc.ID,
		ToLocationID:   "otra",
		Responsible:    "Carlos",
		Date:           time.Now(),
	}))

	err = f.uc.Delete(loc.ID)
	assert.ErrorIs(t, err, domain.ErrReferenced)
}
