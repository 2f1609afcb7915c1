package repository

import "github.com/cultivo-labs/cultivo-api/internal/domain/entity"

// ResponsibleRepository define el puerto de persistencia para responsables de locación.
type ResponsibleRepository interface {
	Create(responsible *entity.Responsible) error
	GetByID(id string) (*entity.Responsible, error)
	Update(responsible *entity.Responsible) error
	List() ([]*entity.Responsible, error)
	ListByLocation(locationID string) ([]*entity.Responsible, error)
	Delete(id string) error
}
