package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/cultivo-labs/cultivo-api/internal/application/dto"
	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
)

// LocationUseCase casos de uso CRUD para locaciones.
// Política de borrado: bloquear (no cascada) si una etapa no completada ocupa
// la locación o si algún movimiento la referencia; se aplica uniformemente.
type LocationUseCase struct {
	repo         repository.LocationRepository
	stageRepo    repository.StageRepository
	movementRepo repository.MovementRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(
	repo repository.LocationRepository,
	stageRepo repository.StageRepository,
	movementRepo repository.MovementRepository,
) *LocationUseCase {
	return &LocationUseCase{repo: repo, stageRepo: stageRepo, movementRepo: movementRepo}
}

// Create crea una locación.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	location := &entity.Location{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Responsible: in.Responsible,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene una locación por ID.
func (uc *LocationUseCase) GetByID(id string) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	return toLocationResponse(location), nil
}

// Update actualiza una locación.
func (uc *LocationUseCase) Update(id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		location.Name = *in.Name
	}
	if in.Description != nil {
		location.Description = *in.Description
	}
	if in.Responsible != nil {
		location.Responsible = *in.Responsible
	}
	location.UpdatedAt = time.Now()
	if err := uc.repo.Update(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// Delete elimina una locación si ninguna etapa activa la ocupa y ningún
// movimiento la referencia.
func (uc *LocationUseCase) Delete(id string) error {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.ErrNotFound
	}
	active, err := uc.stageRepo.FindActiveByLocation(id, "")
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return domain.ErrReferenced
	}
	referenced, err := uc.movementRepo.ExistsByLocation(id)
	if err != nil {
		return err
	}
	if referenced {
		return domain.ErrReferenced
	}
	return uc.repo.Delete(id)
}

// List lista todas las locaciones.
func (uc *LocationUseCase) List() ([]dto.LocationResponse, error) {
	locations, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(locations))
	for _, l := range locations {
		out = append(out, *toLocationResponse(l))
	}
	return out, nil
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		Responsible: l.Responsible,
		CreatedAt:   l.CreatedAt,
	}
}
