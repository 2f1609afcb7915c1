package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/cultivo-labs/cultivo-api/internal/application/dto"
	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
)

// Paleta por defecto para responsables sin color asignado.
var responsibleColors = []string{
	"#4caf50", "#2196f3", "#ff9800", "#9c27b0",
	"#f44336", "#00bcd4", "#795548", "#607d8b",
}

// ResponsibleUseCase CRUD de responsables por locación.
type ResponsibleUseCase struct {
	repo         repository.ResponsibleRepository
	locationRepo repository.LocationRepository
}

// NewResponsibleUseCase construye el caso de uso.
func NewResponsibleUseCase(repo repository.ResponsibleRepository, locationRepo repository.LocationRepository) *ResponsibleUseCase {
	return &ResponsibleUseCase{repo: repo, locationRepo: locationRepo}
}

// Create asigna un responsable a una locación existente.
func (uc *ResponsibleUseCase) Create(in dto.CreateResponsibleRequest) (*dto.ResponsibleResponse, error) {
	if in.Name == "" || in.LocationID == "" {
		return nil, domain.ErrInvalidInput
	}
	location, err := uc.locationRepo.GetByID(in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	role := in.Role
	if role == "" {
		role = "Responsable"
	}
	color := in.Color
	if color == "" {
		existing, err := uc.repo.List()
		if err != nil {
			return nil, err
		}
		color = responsibleColors[len(existing)%len(responsibleColors)]
	}
	responsible := &entity.Responsible{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Role:       role,
		LocationID: in.LocationID,
		Color:      color,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.Create(responsible); err != nil {
		return nil, err
	}
	return toResponsibleResponse(responsible), nil
}

// Update edita un responsable; cambiar de locación exige que exista.
func (uc *ResponsibleUseCase) Update(id string, in dto.UpdateResponsibleRequest) (*dto.ResponsibleResponse, error) {
	responsible, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if responsible == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		responsible.Name = *in.Name
	}
	if in.Role != nil {
		responsible.Role = *in.Role
	}
	if in.Color != nil {
		responsible.Color = *in.Color
	}
	if in.LocationID != nil {
		location, err := uc.locationRepo.GetByID(*in.LocationID)
		if err != nil {
			return nil, err
		}
		if location == nil {
			return nil, domain.ErrNotFound
		}
		responsible.LocationID = *in.LocationID
	}
	if err := uc.repo.Update(responsible); err != nil {
		return nil, err
	}
	return toResponsibleResponse(responsible), nil
}

// Delete elimina un responsable.
func (uc *ResponsibleUseCase) Delete(id string) error {
	responsible, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if responsible == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// List lista todos los responsables.
func (uc *ResponsibleUseCase) List() ([]dto.ResponsibleResponse, error) {
	responsibles, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ResponsibleResponse, 0, len(responsibles))
	for _, r := range responsibles {
		out = append(out, *toResponsibleResponse(r))
	}
	return out, nil
}

// ListByLocation lista los responsables de una locación.
func (uc *ResponsibleUseCase) ListByLocation(locationID string) ([]dto.ResponsibleResponse, error) {
	responsibles, err := uc.repo.ListByLocation(locationID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ResponsibleResponse, 0, len(responsibles))
	for _, r := range responsibles {
		out = append(out, *toResponsibleResponse(r))
	}
	return out, nil
}

func toResponsibleResponse(r *entity.Responsible) *dto.ResponsibleResponse {
	return &dto.ResponsibleResponse{
		ID:         r.ID,
		Name:       r.Name,
		Role:       r.Role,
		LocationID: r.LocationID,
		Color:      r.Color,
		CreatedAt:  r.CreatedAt,
	}
}
