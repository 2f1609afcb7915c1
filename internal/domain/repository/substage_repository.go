package repository

import "github.com/cultivo-labs/cultivo-api/internal/domain/entity"

// SubstageRepository define el puerto de persistencia para Substage.
type SubstageRepository interface {
	Create(substage *entity.Substage) error
	GetByID(id string) (*entity.Substage, error)
	Update(substage *entity.Substage) error
	List() ([]*entity.Substage, error)
	ListByStage(stageID string) ([]*entity.Substage, error)
	Delete(id string) error
	GetForUpdate(id string) (*entity.Substage, error)
}
