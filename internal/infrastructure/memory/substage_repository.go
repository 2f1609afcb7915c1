package memory

import (
	"sort"

	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
)

// SubstageRepository implementa repository.SubstageRepository sobre el Store.
type SubstageRepository struct {
	store *Store
}

// NewSubstageRepository crea el repositorio de sub-etapas en memoria.
func NewSubstageRepository(store *Store) *SubstageRepository {
	return &SubstageRepository{store: store}
}

func cloneSubstage(s *entity.Substage) *entity.Substage {
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

func (r *SubstageRepository) Create(substage *entity.Substage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.substages[substage.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.substages[substage.ID] = cloneSubstage(substage)
	return nil
}

func (r *SubstageRepository) GetByID(id string) (*entity.Substage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	s, ok := r.store.substages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneSubstage(s), nil
}

func (r *SubstageRepository) Update(substage *entity.Substage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.substages[substage.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.substages[substage.ID] = cloneSubstage(substage)
	return nil
}

func (r *SubstageRepository) List() ([]*entity.Substage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.Substage, 0, len(r.store.substages))
	for _, s := range r.store.substages {
		out = append(out, cloneSubstage(s))
	}
	sortSubstages(out)
	return out, nil
}

func (r *SubstageRepository) ListByStage(stageID string) ([]*entity.Substage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.Substage
	for _, s := range r.store.substages {
		if s.StageID == stageID {
			out = append(out, cloneSubstage(s))
		}
	}
	sortSubstages(out)
	return out, nil
}

func sortSubstages(out []*entity.Substage) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
}

func (r *SubstageRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.substages[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.substages, id)
	return nil
}

func (r *SubstageRepository) GetForUpdate(id string) (*entity.Substage, error) {
	return r.GetByID(id)
}

var _ repository.SubstageRepository = (*SubstageRepository)(nil)
