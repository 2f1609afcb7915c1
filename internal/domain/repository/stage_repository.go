package repository

import "github.com/cultivo-labs/cultivo-api/internal/domain/entity"

// StageRepository define el puerto de persistencia para Stage.
type StageRepository interface {
	Create(stage *entity.Stage) error
	GetByID(id string) (*entity.Stage, error)
	Update(stage *entity.Stage) error
	List() ([]*entity.Stage, error)
	Delete(id string) error
	// FindActiveByLocation devuelve las etapas no completadas que ocupan la
	// locación, excluyendo opcionalmente una etapa (para ediciones).
	FindActiveByLocation(locationID, excludeStageID string) ([]*entity.Stage, error)
	// GetForUpdate bloquea la etapa para una transición atómica.
	GetForUpdate(id string) (*entity.Stage, error)
}
