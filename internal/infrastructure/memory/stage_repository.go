package memory

import (
	"sort"

	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
)

// StageRepository implementa repository.StageRepository sobre el Store.
type StageRepository struct {
	store *Store
}

// NewStageRepository crea el repositorio de etapas en memoria.
func NewStageRepository(store *Store) *StageRepository {
	return &StageRepository{store: store}
}

func cloneStage(s *entity.Stage) *entity.Stage {
	c := *s
	if s.StartTime != nil {
		t := *s.StartTime
		c.StartTime = &t
	}
	if s.EndTime != nil {
		t := *s.EndTime
		c.EndTime = &t
	}
	if s.ActualDuration != nil {
		d := *s.ActualDuration
		c.ActualDuration = &d
	}
	return &c
}

func (r *StageRepository) Create(stage *entity.Stage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.stages[stage.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.stages[stage.ID] = cloneStage(stage)
	return nil
}

func (r *StageRepository) GetByID(id string) (*entity.Stage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	s, ok := r.store.stages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneStage(s), nil
}

func (r *StageRepository) Update(stage *entity.Stage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.stages[stage.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.stages[stage.ID] = cloneStage(stage)
	return nil
}

func (r *StageRepository) List() ([]*entity.Stage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.Stage, 0, len(r.store.stages))
	for _, s := range r.store.stages {
		out = append(out, cloneStage(s))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *StageRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.stages[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.stages, id)
	return nil
}

func (r *StageRepository) FindActiveByLocation(locationID, excludeStageID string) ([]*entity.Stage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.Stage
	for _, s := range r.store.stages {
		if s.LocationID != locationID || s.ID == excludeStageID {
			continue
		}
		if s.IsActive() {
			out = append(out, cloneStage(s))
		}
	}
	return out, nil
}

// GetForUpdate en memoria equivale a GetByID; la exclusividad la garantiza el
// TxRunner serializando las transacciones.
func (r *StageRepository) GetForUpdate(id string) (*entity.Stage, error) {
	return r.GetByID(id)
}

var _ repository.StageRepository = (*StageRepository)(nil)
