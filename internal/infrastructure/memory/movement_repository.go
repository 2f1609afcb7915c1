package memory

import (
	"sort"

	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
)

// MovementRepository implementa repository.MovementRepository sobre el Store.
type MovementRepository struct {
	store *Store
}

// NewMovementRepository crea el repositorio del libro de movimientos en memoria.
func NewMovementRepository(store *Store) *MovementRepository {
	return &MovementRepository{store: store}
}

func cloneMovement(m *entity.Movement) *entity.Movement {
	c := *m
	c.Lines = make([]entity.MovementLine, len(m.Lines))
	copy(c.Lines, m.Lines)
	return &c
}

func (r *MovementRepository) Create(movement *entity.Movement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.movements[movement.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.movements[movement.ID] = cloneMovement(movement)
	return nil
}

func (r *MovementRepository) GetByID(id string) (*entity.Movement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	m, ok := r.store.movements[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneMovement(m), nil
}

// Update solo persiste los campos de contexto; las líneas, el costo y la
// fecha del registro almacenado se conservan intactos.
func (r *MovementRepository) Update(movement *entity.Movement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cur, ok := r.store.movements[movement.ID]
	if !ok {
		return domain.ErrNotFound
	}
	c := cloneMovement(cur)
	c.StageID = movement.StageID
	c.SubstageID = movement.SubstageID
	c.LocationID = movement.LocationID
	c.LocationName = movement.LocationName
	c.Responsible = movement.Responsible
	c.Observations = movement.Observations
	r.store.movements[movement.ID] = c
	return nil
}

func (r *MovementRepository) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.Movement, 0, len(r.store.movements))
	for _, m := range r.store.movements {
		if !matchesFilter(m, filter) {
			continue
		}
		out = append(out, cloneMovement(m))
	}
	// Más recientes primero, como en el historial.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func matchesFilter(m *entity.Movement, f repository.MovementFilter) bool {
	if f.Type != "" && m.Type != f.Type {
		return false
	}
	if f.LocationID != "" && m.LocationID != f.LocationID {
		return false
	}
	if f.StageID != "" && m.StageID != f.StageID {
		return false
	}
	if f.SubstageID != "" && m.SubstageID != f.SubstageID {
		return false
	}
	if f.From != nil && m.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && m.Date.After(*f.To) {
		return false
	}
	return true
}

func (r *MovementRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.movements[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.movements, id)
	return nil
}

func (r *MovementRepository) ExistsByProduct(productID string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, m := range r.store.movements {
		if m.References(productID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MovementRepository) ExistsByStage(stageID string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, m := range r.store.movements {
		if m.StageID == stageID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MovementRepository) ExistsBySubstage(substageID string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, m := range r.store.movements {
		if m.SubstageID == substageID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MovementRepository) ExistsByLocation(locationID string) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, m := range r.store.movements {
		if m.LocationID == locationID || m.FromLocationID == locationID || m.ToLocationID == locationID {
			return true, nil
		}
	}
	return false, nil
}

var _ repository.MovementRepository = (*MovementRepository)(nil)
