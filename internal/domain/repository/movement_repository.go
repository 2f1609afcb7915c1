package repository

import (
	"time"

	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos.
// Campo vacío / nil = sin filtro.
type MovementFilter struct {
	Type       string
	LocationID string
	StageID    string
	SubstageID string
	From       *time.Time
	To         *time.Time
}

// MovementRepository define el puerto de persistencia para el libro de movimientos.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// Update solo persiste los campos de contexto mutables
	// (etapa, sub-etapa, locación, responsable, observaciones).
	Update(movement *entity.Movement) error
	List(filter MovementFilter) ([]*entity.Movement, error)
	Delete(id string) error
	// ExistsByProduct / ExistsByStage / ExistsBySubstage / ExistsByLocation
	// soportan las políticas de borrado bloqueado por referencias.
	ExistsByProduct(productID string) (bool, error)
	ExistsByStage(stageID string) (bool, error)
	ExistsBySubstage(substageID string) (bool, error)
	ExistsByLocation(locationID string) (bool, error)
}
