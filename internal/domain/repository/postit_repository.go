package repository

import "github.com/cultivo-labs/cultivo-api/internal/domain/entity"

// PostItRepository define el puerto de persistencia para PostIt.
type PostItRepository interface {
	Create(postit *entity.PostIt) error
	GetByID(id string) (*entity.PostIt, error)
	Update(postit *entity.PostIt) error
	List() ([]*entity.PostIt, error)
	Delete(id string) error
}
