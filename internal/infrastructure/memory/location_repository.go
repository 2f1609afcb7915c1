package memory

import (
	"sort"

	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
)

// LocationRepository implementa repository.LocationRepository sobre el Store.
type LocationRepository struct {
	store *Store
}

// NewLocationRepository crea el repositorio de locaciones en memoria.
func NewLocationRepository(store *Store) *LocationRepository {
	return &LocationRepository{store: store}
}

func cloneLocation(l *entity.Location) *entity.Location {
	c := *l
	return &c
}

func (r *LocationRepository) Create(location *entity.Location) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.locations[location.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.locations[location.ID] = cloneLocation(location)
	return nil
}

func (r *LocationRepository) GetByID(id string) (*entity.Location, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	l, ok := r.store.locations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneLocation(l), nil
}

func (r *LocationRepository) Update(location *entity.Location) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.locations[location.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.locations[location.ID] = cloneLocation(location)
	return nil
}

func (r *LocationRepository) List() ([]*entity.Location, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.Location, 0, len(r.store.locations))
	for _, l := range r.store.locations {
		out = append(out, cloneLocation(l))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *LocationRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.locations[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.locations, id)
	return nil
}

var _ repository.LocationRepository = (*LocationRepository)(nil)
