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

// SubstageUseCase administra sub-etapas: la misma máquina de estados que las
// etapas, siempre subordinada a una etapa dueña y sin exclusividad de locación.
type SubstageUseCase struct {
	txRunner     TxRunner
	stageRepo    repository.StageRepository
	substageRepo repository.SubstageRepository
	movementRepo repository.MovementRepository
}

// NewSubstageUseCase construye el caso de uso.
func NewSubstageUseCase(
	txRunner TxRunner,
	stageRepo repository.StageRepository,
	substageRepo repository.SubstageRepository,
	movementRepo repository.MovementRepository,
) *SubstageUseCase {
	return &SubstageUseCase{
		txRunner:     txRunner,
		stageRepo:    stageRepo,
		substageRepo: substageRepo,
		movementRepo: movementRepo,
	}
}

// Create crea una sub-etapa pendiente bajo la etapa indicada.
func (uc *SubstageUseCase) Create(in dto.CreateSubstageRequest) (*entity.Substage, error) {
	if in.Name == "" || in.StageID == "" || in.ExpectedDuration <= 0 {
		return nil, domain.ErrInvalidInput
	}
	stage, err := uc.stageRepo.GetByID(in.StageID)
	if err != nil {
		return nil, err
	}
	if stage == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	substage := &entity.Substage{
		ID:               uuid.New().String(),
		Name:             in.Name,
		Description:      in.Description,
		StageID:          in.StageID,
		ExpectedDuration: in.ExpectedDuration,
		Responsible:      in.Responsible,
		Status:           entity.StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.substageRepo.Create(substage); err != nil {
		return nil, err
	}
	return substage, nil
}

// Update edita una sub-etapa en cualquier estado. La etapa dueña no cambia.
func (uc *SubstageUseCase) Update(id string, in dto.UpdateSubstageRequest) (*entity.Substage, error) {
	substage, err := uc.substageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if substage == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		substage.Name = *in.Name
	}
	if in.Description != nil {
		substage.Description = *in.Description
	}
	if in.ExpectedDuration != nil {
		if *in.ExpectedDuration <= 0 {
			return nil, domain.ErrInvalidInput
		}
		substage.ExpectedDuration = *in.ExpectedDuration
	}
	if in.Responsible != nil {
		substage.Responsible = *in.Responsible
	}
	substage.UpdatedAt = time.Now()
	if err := uc.substageRepo.Update(substage); err != nil {
		return nil, err
	}
	return substage, nil
}

// Start transiciona pending → in_progress de forma atómica.
func (uc *SubstageUseCase) Start(ctx context.Context, id string) (*entity.Substage, error) {
	var started *entity.Substage
	err := uc.txRunner.Run(ctx, func(_ repository.StageRepository, substageRepo repository.SubstageRepository) error {
		substage, err := substageRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if substage == nil {
			return domain.ErrNotFound
		}
		if substage.Status != entity.StatusPending {
			return domain.ErrConflict
		}
		now := time.Now()
		substage.Status = entity.StatusInProgress
		substage.StartTime = &now
		substage.UpdatedAt = now
		if err := substageRepo.Update(substage); err != nil {
			return err
		}
		started = substage
		return nil
	})
	if err != nil {
		return nil, err
	}
	return started, nil
}

// Finish transiciona in_progress → completed y congela actual_duration.
func (uc *SubstageUseCase) Finish(ctx context.Context, id string) (*entity.Substage, error) {
	var finished *entity.Substage
	err := uc.txRunner.Run(ctx, func(_ repository.StageRepository, substageRepo repository.SubstageRepository) error {
		substage, err := substageRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if substage == nil {
			return domain.ErrNotFound
		}
		if substage.Status != entity.StatusInProgress {
			return domain.ErrConflict
		}
		now := time.Now()
		duration := substage.ElapsedDays(now)
		substage.Status = entity.StatusCompleted
		substage.EndTime = &now
		substage.ActualDuration = &duration
		substage.UpdatedAt = now
		if err := substageRepo.Update(substage); err != nil {
			return err
		}
		finished = substage
		return nil
	})
	if err != nil {
		return nil, err
	}
	return finished, nil
}

// Delete elimina una sub-etapa; bloqueado si el libro la referencia.
func (uc *SubstageUseCase) Delete(id string) error {
	substage, err := uc.substageRepo.GetByID(id)
	if err != nil {
		return err
	}
	if substage == nil {
		return domain.ErrNotFound
	}
	referenced, err := uc.movementRepo.ExistsBySubstage(id)
	if err != nil {
		return err
	}
	if referenced {
		return domain.ErrReferenced
	}
	return uc.substageRepo.Delete(id)
}

// GetByID devuelve la sub-etapa con avance y nombre de etapa resueltos.
func (uc *SubstageUseCase) GetByID(id string) (*dto.SubstageResponse, error) {
	substage, err := uc.substageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if substage == nil {
		return nil, domain.ErrNotFound
	}
	resp := uc.toResponse(substage, time.Now())
	return &resp, nil
}

// List devuelve las sub-etapas, opcionalmente filtradas por etapa.
func (uc *SubstageUseCase) List(stageID string) ([]dto.SubstageResponse, error) {
	var (
		substages []*entity.Substage
		err       error
	)
	if stageID != "" {
		substages, err = uc.substageRepo.ListByStage(stageID)
	} else {
		substages, err = uc.substageRepo.List()
	}
	if err != nil {
		return nil, err
	}
	now := time.Now()
	out := make([]dto.SubstageResponse, 0, len(substages))
	for _, s := range substages {
		out = append(out, uc.toResponse(s, now))
	}
	return out, nil
}

func (uc *SubstageUseCase) toResponse(substage *entity.Substage, now time.Time) dto.SubstageResponse {
	resp := dto.SubstageResponse{
		ID:               substage.ID,
		Name:             substage.Name,
		Description:      substage.Description,
		StageID:          substage.StageID,
		ExpectedDuration: substage.ExpectedDuration,
		Responsible:      substage.Responsible,
		Status:           substage.Status,
		StartTime:        substage.StartTime,
		EndTime:          substage.EndTime,
		ActualDuration:   substage.ActualDuration,
		Progress:         substage.Progress(now),
		CreatedAt:        substage.CreatedAt,
	}
	if stage, err := uc.stageRepo.GetByID(substage.StageID); err == nil && stage != nil {
		resp.StageName = stage.Name
	}
	return resp
}
