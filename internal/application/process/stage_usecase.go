package process

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cultivo-labs/cultivo-api/internal/application/dto"
	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
)

// StageUseCase administra etapas y su máquina de estados
// pending → in_progress → completed (terminal).
//
// Invariante de exclusividad: una locación sirve a lo sumo a una etapa no
// completada. El chequeo se hace en el camino de escritura, dentro del
// TxRunner, nunca como filtro de UI.
type StageUseCase struct {
	txRunner     TxRunner
	stageRepo    repository.StageRepository
	substageRepo repository.SubstageRepository
	locationRepo repository.LocationRepository
	movementRepo repository.MovementRepository
}

// NewStageUseCase construye el caso de uso.
func NewStageUseCase(
	txRunner TxRunner,
	stageRepo repository.StageRepository,
	substageRepo repository.SubstageRepository,
	locationRepo repository.LocationRepository,
	movementRepo repository.MovementRepository,
) *StageUseCase {
	return &StageUseCase{
		txRunner:     txRunner,
		stageRepo:    stageRepo,
		substageRepo: substageRepo,
		locationRepo: locationRepo,
		movementRepo: movementRepo,
	}
}

// Create crea una etapa en estado pending. Si trae locación, verifica que
// exista y que no esté ocupada por otra etapa activa.
func (uc *StageUseCase) Create(ctx context.Context, in dto.CreateStageRequest) (*entity.Stage, error) {
	if in.Name == "" || in.ExpectedDuration <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.LocationID != "" {
		loc, err := uc.locationRepo.GetByID(in.LocationID)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	stage := &entity.Stage{
		ID:               uuid.New().String(),
		Name:             in.Name,
		Description:      in.Description,
		LocationID:       in.LocationID,
		ExpectedDuration: in.ExpectedDuration,
		Responsible:      in.Responsible,
		Status:           entity.StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err := uc.txRunner.Run(ctx, func(stageRepo repository.StageRepository, _ repository.SubstageRepository) error {
		if err := uc.checkExclusivity(stageRepo, stage.LocationID, ""); err != nil {
			return err
		}
		return stageRepo.Create(stage)
	})
	if err != nil {
		return nil, err
	}
	return stage, nil
}

// checkExclusivity falla si la locación ya está ocupada por otra etapa activa.
func (uc *StageUseCase) checkExclusivity(stageRepo repository.StageRepository, locationID, excludeStageID string) error {
	if locationID == "" {
		return nil
	}
	active, err := stageRepo.FindActiveByLocation(locationID, excludeStageID)
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return domain.ErrLocationOccupied
	}
	return nil
}

// Update edita la etapa en cualquier estado. Reasignar locación re-verifica
// exclusividad contra las demás etapas activas, atómicamente.
func (uc *StageUseCase) Update(ctx context.Context, id string, in dto.UpdateStageRequest) (*entity.Stage, error) {
	var updated *entity.Stage
	err := uc.txRunner.Run(ctx, func(stageRepo repository.StageRepository, _ repository.SubstageRepository) error {
		stage, err := stageRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if stage == nil {
			return domain.ErrNotFound
		}
		if in.Name != nil {
			if *in.Name == "" {
				return domain.ErrInvalidInput
			}
			stage.Name = *in.Name
		}
		if in.Description != nil {
			stage.Description = *in.Description
		}
		if in.ExpectedDuration != nil {
			if *in.ExpectedDuration <= 0 {
				return domain.ErrInvalidInput
			}
			stage.ExpectedDuration = *in.ExpectedDuration
		}
		if in.Responsible != nil {
			stage.Responsible = *in.Responsible
		}
		if in.LocationID != nil && *in.LocationID != stage.LocationID {
			if *in.LocationID != "" {
				loc, err := uc.locationRepo.GetByID(*in.LocationID)
				if err != nil {
					return err
				}
				if loc == nil {
					return domain.ErrNotFound
				}
				if stage.IsActive() {
					if err := uc.checkExclusivity(stageRepo, *in.LocationID, stage.ID); err != nil {
						return err
					}
				}
			}
			stage.LocationID = *in.LocationID
		}
		stage.UpdatedAt = time.Now()
		if err := stageRepo.Update(stage); err != nil {
			return err
		}
		updated = stage
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Start transiciona pending → in_progress y fija start_time una sola vez.
// Rechaza con conflicto de estado si la etapa ya inició o terminó, y con
// conflicto de exclusividad si su locación está ocupada por otra etapa activa.
func (uc *StageUseCase) Start(ctx context.Context, id string) (*entity.Stage, error) {
	var started *entity.Stage
	err := uc.txRunner.Run(ctx, func(stageRepo repository.StageRepository, _ repository.SubstageRepository) error {
		stage, err := stageRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if stage == nil {
			return domain.ErrNotFound
		}
		if stage.Status != entity.StatusPending {
			return domain.ErrConflict
		}
		if err := uc.checkExclusivity(stageRepo, stage.LocationID, stage.ID); err != nil {
			return err
		}
		now := time.Now()
		stage.Status = entity.StatusInProgress
		stage.StartTime = &now
		stage.UpdatedAt = now
		if err := stageRepo.Update(stage); err != nil {
			return err
		}
		started = stage
		return nil
	})
	if err != nil {
		return nil, err
	}
	return started, nil
}

// Finish transiciona in_progress → completed y congela actual_duration como
// los días enteros transcurridos desde start_time.
func (uc *StageUseCase) Finish(ctx context.Context, id string) (*entity.Stage, error) {
	var finished *entity.Stage
	err := uc.txRunner.Run(ctx, func(stageRepo repository.StageRepository, _ repository.SubstageRepository) error {
		stage, err := stageRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if stage == nil {
			return domain.ErrNotFound
		}
		if stage.Status != entity.StatusInProgress {
			return domain.ErrConflict
		}
		now := time.Now()
		duration := stage.ElapsedDays(now)
		stage.Status = entity.StatusCompleted
		stage.EndTime = &now
		stage.ActualDuration = &duration
		stage.UpdatedAt = now
		if err := stageRepo.Update(stage); err != nil {
			return err
		}
		finished = stage
		return nil
	})
	if err != nil {
		return nil, err
	}
	return finished, nil
}

// Restart clona una etapa completada como un nuevo ciclo pendiente,
// conservando nombre, locación, duración esperada y responsable. La nueva
// etapa guarda una referencia débil a la original.
func (uc *StageUseCase) Restart(ctx context.Context, id string, in dto.RestartStageRequest) (*entity.Stage, error) {
	source, err := uc.stageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, domain.ErrNotFound
	}
	if source.Status != entity.StatusCompleted {
		return nil, domain.ErrConflict
	}
	cycleName := in.CycleName
	if cycleName == "" {
		cycleName = source.Name + " - Nuevo ciclo"
	}
	now := time.Now()
	clone := &entity.Stage{
		ID:               uuid.New().String(),
		Name:             source.Name,
		Description:      source.Description,
		LocationID:       source.LocationID,
		ExpectedDuration: source.ExpectedDuration,
		Responsible:      source.Responsible,
		Status:           entity.StatusPending,
		CycleName:        cycleName,
		ParentStageID:    source.ID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err = uc.txRunner.Run(ctx, func(stageRepo repository.StageRepository, _ repository.SubstageRepository) error {
		if err := uc.checkExclusivity(stageRepo, clone.LocationID, ""); err != nil {
			return err
		}
		return stageRepo.Create(clone)
	})
	if err != nil {
		return nil, err
	}
	return clone, nil
}

// Delete elimina una etapa. Bloqueado mientras existan sub-etapas o
// movimientos que la referencien (política de borrado: bloquear, no cascada).
func (uc *StageUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(stageRepo repository.StageRepository, substageRepo repository.SubstageRepository) error {
		stage, err := stageRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if stage == nil {
			return domain.ErrNotFound
		}
		children, err := substageRepo.ListByStage(id)
		if err != nil {
			return err
		}
		if len(children) > 0 {
			return domain.ErrReferenced
		}
		referenced, err := uc.movementRepo.ExistsByStage(id)
		if err != nil {
			return err
		}
		if referenced {
			return domain.ErrReferenced
		}
		return stageRepo.Delete(id)
	})
}

// GetByID devuelve la etapa con avance y nombre de locación resueltos.
func (uc *StageUseCase) GetByID(id string) (*dto.StageResponse, error) {
	stage, err := uc.stageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if stage == nil {
		return nil, domain.ErrNotFound
	}
	resp := uc.toResponse(stage, time.Now())
	return &resp, nil
}

// List devuelve todas las etapas con avance calculado en vivo.
func (uc *StageUseCase) List() ([]dto.StageResponse, error) {
	stages, err := uc.stageRepo.List()
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.StageResponse, 0, len(stages))
	for _, s := range stages {
		out = append(out, uc.toResponse(s, now))
	}
	return out, nil
}

func (uc *StageUseCase) toResponse(stage *entity.Stage, now time.Time) dto.StageResponse {
	resp := dto.StageResponse{
		ID:               stage.ID,
		Name:             stage.Name,
		Description:      stage.Description,
		LocationID:       stage.LocationID,
		ExpectedDuration: stage.ExpectedDuration,
		Responsible:      stage.Responsible,
		Status:           stage.Status,
		StartTime:        stage.StartTime,
		EndTime:          stage.EndTime,
		ActualDuration:   stage.ActualDuration,
		Progress:         stage.Progress(now),
		CycleName:        stage.CycleName,
		ParentStageID:    stage.ParentStageID,
		CreatedAt:        stage.CreatedAt,
	}
	if stage.LocationID != "" {
		if loc, err := uc.locationRepo.GetByID(stage.LocationID); err == nil && loc != nil {
			resp.LocationName = loc.Name
		}
	}
	return resp
}
