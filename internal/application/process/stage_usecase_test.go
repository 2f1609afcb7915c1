package process_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cultivo-labs/cultivo-api/internal/application/dto"
	"github.com/cultivo-labs/cultivo-api/internal/application/process"
	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────
// Fixtures
// ──────────────────────────────────────────────────────────────

type processFixture struct {
	stageUC   *process.StageUseCase
	subUC     *process.SubstageUseCase
	stages    *memory.StageRepository
	substages *memory.SubstageRepository
	locations *memory.LocationRepository
	movements *memory.MovementRepository
}

// newProcessFixture arma los casos de uso de etapas y sub-etapas sobre
// repositorios en memoria.
func newProcessFixture(t *testing.T) *processFixture {
	t.Helper()
	store := memory.NewStore()
	f := &processFixture{
		stages:    memory.NewStageRepository(store),
		substages: memory.NewSubstageRepository(store),
		locations: memory.NewLocationRepository(store),
		movements: memory.NewMovementRepository(store),
	}
	runner := memory.NewProcessTxRunner(store)
	f.stageUC = process.NewStageUseCase(runner, f.stages, f.substages, f.locations, f.movements)
	f.subUC = process.NewSubstageUseCase(runner, f.stages, f.substages, f.movements)
	return f
}

func (f *processFixture) seedLocation(t *testing.T, id, name string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, f.locations.Create(&entity.Location{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}))
}

// createStage crea una etapa pendiente vía el caso de uso.
func (f *processFixture) createStage(t *testing.T, name, locationID string, days int) *entity.Stage {
	t.Helper()
	stage, err := f.stageUC.Create(context.Background(), dto.CreateStageRequest{
		Name:             name,
		LocationID:       locationID,
		ExpectedDuration: days,
		Responsible:      "Carlos",
	})
	require.NoError(t, err)
	return stage
}

// backdateStart retrocede el inicio de una etapa para simular días transcurridos.
func (f *processFixture) backdateStart(t *testing.T, stageID string, days int) {
	t.Helper()
	stage, err := f.stages.GetByID(stageID)
	require.NoError(t, err)
	past := time.Now().Add(-time.Duration(days) * 24 * time.Hour)
	stage.StartTime = &past
	require.NoError(t, f.stages.Update(stage))
}

// ──────────────────────────────────────────────────────────────
// Máquina de estados
// ──────────────────────────────────────────────────────────────

func TestStageCicloDeVidaCompleto(t *testing.T) {
	f := newProcessFixture(t)
	stage := f.createStage(t, "Germinación", "", 7)
	assert.Equal(t, entity.StatusPending, stage.Status)
	assert.Nil(t, stage.StartTime)

	started, err := f.stageUC.Start(context.Background(), stage.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInProgress, started.Status)
	require.NotNil(t, started.StartTime)

	finished, err := f.stageUC.Finish(context.Background(), stage.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, finished.Status)
	require.NotNil(t, finished.EndTime)
	require.NotNil(t, finished.ActualDuration)
	assert.Equal(t, 0, *finished.ActualDuration)
}

func TestStageStartDobleRechazado(t *testing.T) {
	f := newProcessFixture(t)
	stage := f.createStage(t, "Germinación", "", 7)

	_, err := f.stageUC.Start(context.Background(), stage.ID)
	require.NoError(t, err)

	_, err = f.stageUC.Start(context.Background(), stage.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestStageFinishSinIniciarRechazado(t *testing.T) {
	f := newProcessFixture(t)
	stage := f.createStage(t, "Germinación", "", 7)

	_, err := f.stageUC.Finish(context.Background(), stage.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestStageFinishCongelaDuracion(t *testing.T) {
	f := newProcessFixture(t)
	stage := f.createStage(t, "Crecimiento", "", 30)

	_, err := f.stageUC.Start(context.Background(), stage.ID)
	require.NoError(t, err)
	f.backdateStart(t, stage.ID, 5)

	finished, err := f.stageUC.Finish(context.Background(), stage.ID)
	require.NoError(t, err)
	require.NotNil(t, finished.ActualDuration)
	assert.Equal(t, 5, *finished.ActualDuration)
}

func TestStageStartConcurrenteSoloUnoGana(t *testing.T) {
	f := newProcessFixture(t)
	stage := f.createStage(t, "Germinación", "", 7)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.stageUC.Start(context.Background(), stage.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, conflict int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		default:
			assert.ErrorIs(t, err, domain.ErrConflict)
			conflict++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflict)
}

// ──────────────────────────────────────────────────────────────
// Exclusividad de locación
// ──────────────────────────────────────────────────────────────

func TestStageLocacionOcupadaAlCrear(t *testing.T) {
	f := newProcessFixture(t)
	f.seedLocation(t, "loc-a", "Invernadero A")
	f.createStage(t, "Germinación", "loc-a", 7)

	_, err := f.stageUC.Create(context.Background(), dto.CreateStageRequest{
		Name:             "Crecimiento",
		LocationID:       "loc-a",
		ExpectedDuration: 30,
	})
	assert.ErrorIs(t, err, domain.ErrLocationOccupied)
}

func TestStageLocacionLiberadaAlCompletar(t *testing.T) {
	f := newProcessFixture(t)
	f.seedLocation(t, "loc-a", "Invernadero A")
	first := f.createStage(t, "Germinación", "loc-a", 7)

	_, err := f.stageUC.Start(context.Background(), first.ID)
	require.NoError(t, err)
	_, err = f.stageUC.Finish(context.Background(), first.ID)
	require.NoError(t, err)

	// Completada la primera, la locación queda libre.
	second := f.createStage(t, "Crecimiento", "loc-a", 30)
	assert.Equal(t, "loc-a", second.LocationID)
}

func TestStageUpdateReasignarLocacionOcupada(t *testing.T) {
	f := newProcessFixture(t)
	f.seedLocation(t, "loc-a", "Invernadero A")
	f.seedLocation(t, "loc-b", "Invernadero B")
	f.createStage(t, "Germinación", "loc-a", 7)
	other := f.createStage(t, "Crecimiento", "loc-b", 30)

	locA := "loc-a"
	_, err := f.stageUC.Update(context.Background(), other.ID, dto.UpdateStageRequest{LocationID: &locA})
	assert.ErrorIs(t, err, domain.ErrLocationOccupied)
}

func TestStageSinLocacionNoCompite(t *testing.T) {
	f := newProcessFixture(t)
	// Varias etapas sin locación conviven sin conflicto.
	f.createStage(t, "Germinación", "", 7)
	f.createStage(t, "Crecimiento", "", 30)
	stages, err := f.stageUC.List()
	require.NoError(t, err)
	assert.Len(t, stages, 2)
}

// ──────────────────────────────────────────────────────────────
// Reinicio de ciclo
// ──────────────────────────────────────────────────────────────

func TestStageRestartClonaComoNuevoCiclo(t *testing.T) {
	f := newProcessFixture(t)
	f.seedLocation(t, "loc-a", "Invernadero A")
	stage := f.createStage(t, "Germinación", "loc-a", 7)

	_, err := f.stageUC.Start(context.Background(), stage.ID)
	require.NoError(t, err)
	_, err = f.stageUC.Finish(context.Background(), stage.ID)
	require.NoError(t, err)

	clone, err := f.stageUC.Restart(context.Background(), stage.ID, dto.RestartStageRequest{})
	require.NoError(t, err)

	assert.NotEqual(t, stage.ID, clone.ID)
	assert.Equal(t, "Germinación", clone.Name)
	assert.Equal(t, "loc-a", clone.LocationID)
	assert.Equal(t, 7, clone.ExpectedDuration)
	assert.Equal(t, entity.StatusPending, clone.Status)
	assert.Nil(t, clone.StartTime)
	assert.Equal(t, "Germinación - Nuevo ciclo", clone.CycleName)
	assert.Equal(t, stage.ID, clone.ParentStageID)
}

func TestStageRestartConNombreDeCiclo(t *testing.T) {
	f := newProcessFixture(t)
	stage := f.createStage(t, "Germinación", "", 7)

	_, err := f.stageUC.Start(context.Background(), stage.ID)
	require.NoError(t, err)
	_, err = f.stageUC.Finish(context.Background(), stage.ID)
	require.NoError(t, err)

	clone, err := f.stageUC.Restart(context.Background(), stage.ID, dto.RestartStageRequest{CycleName: "Ciclo 2026-B"})
	require.NoError(t, err)
	assert.Equal(t, "Ciclo 2026-B", clone.CycleName)
}

func TestStageRestartSoloCompletadas(t *testing.T) {
	f := newProcessFixture(t)
	stage := f.createStage(t, "Germinación", "", 7)

	_, err := f.stageUC.Restart(context.Background(), stage.ID, dto.RestartStageRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────
// Borrado
// ──────────────────────────────────────────────────────────────

func TestStageDeleteBloqueadoPorSubetapas(t *testing.T) {
	f := newProcessFixture(t)
	stage := f.createStage(t, "Germinación", "", 7)
	_, err := f.subUC.Create(dto.CreateSubstageRequest{
		Name:             "Remojo",
		StageID:          stage.ID,
		ExpectedDuration: 2,
	})
	require.NoError(t, err)

	err = f.stageUC.Delete(context.Background(), stage.ID)
	assert.ErrorIs(t, err, domain.ErrReferenced)
}

func TestStageDeleteBloqueadoPorMovimientos(t *testing.T) {
	f := newProcessFixture(t)
	stage := f.createStage(t, "Germinación", "", 7)
	require.NoError(t, f.movements.Create(&entity.Movement{
		ID:          uuid.New().String(),
		Type:        entity.MovementTypeUso,
		StageID:     stage.ID,
		Responsible: "Carlos",
		Date:        time.Now(),
	}))

	err := f.stageUC.Delete(context.Background(), stage.ID)
	assert.ErrorIs(t, err, domain.ErrReferenced)
}

func TestStageDeleteSinReferencias(t *testing.T) {
	f := newProcessFixture(t)
	stage := f.createStage(t, "Germinación", "", 7)

	require.NoError(t, f.stageUC.Delete(context.Background(), stage.ID))
	_, err := f.stageUC.GetByID(stage.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────
// Validación y avance
// ──────────────────────────────────────────────────────────────

func TestStageCreateValidaEntrada(t *testing.T) {
	f := newProcessFixture(t)

	_, err := f.stageUC.Create(context.Background(), dto.CreateStageRequest{Name: "", ExpectedDuration: 7})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.stageUC.Create(context.Background(), dto.CreateStageRequest{Name: "Germinación", ExpectedDuration: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.stageUC.Create(context.Background(), dto.CreateStageRequest{
		Name: "Germinación", ExpectedDuration: 7, LocationID: "no-existe",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStageProgresoEnVivo(t *testing.T) {
	f := newProcessFixture(t)
	stage := f.createStage(t, "Crecimiento", "", 10)

	resp, err := f.stageUC.GetByID(stage.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(0), resp.Progress)

	_, err = f.stageUC.Start(context.Background(), stage.ID)
	require.NoError(t, err)
	f.backdateStart(t, stage.ID, 5)

	resp, err = f.stageUC.GetByID(stage.ID)
	require.NoError(t, err)
	assert.InDelta(t, 50, resp.Progress, 0.01)

	_, err = f.stageUC.Finish(context.Background(), stage.ID)
	require.NoError(t, err)
	resp, err = f.stageUC.GetByID(stage.ID)
	require.NoError(t, err)
	assert.Equal(t, float64(100), resp.Progress)
}
