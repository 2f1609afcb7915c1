package memory

import (
	"sort"

	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
)

// Repositorios de las entidades colaborativas del tablero: post-its,
// recetas/documentos, imágenes y responsables.

// PostItRepository implementa repository.PostItRepository sobre el Store.
type PostItRepository struct {
	store *Store
}

// NewPostItRepository crea el repositorio de post-its en memoria.
func NewPostItRepository(store *Store) *PostItRepository {
	return &PostItRepository{store: store}
}

func (r *PostItRepository) Create(postit *entity.PostIt) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.postits[postit.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *postit
	r.store.postits[postit.ID] = &c
	return nil
}

func (r *PostItRepository) GetByID(id string) (*entity.PostIt, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.postits[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (r *PostItRepository) Update(postit *entity.PostIt) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.postits[postit.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *postit
	r.store.postits[postit.ID] = &c
	return nil
}

func (r *PostItRepository) List() ([]*entity.PostIt, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.PostIt, 0, len(r.store.postits))
	for _, p := range r.store.postits {
		c := *p
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *PostItRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.postits[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.postits, id)
	return nil
}

// RecipeRepository implementa repository.RecipeRepository sobre el Store.
type RecipeRepository struct {
	store *Store
}

// NewRecipeRepository crea el repositorio de recetas en memoria.
func NewRecipeRepository(store *Store) *RecipeRepository {
	return &RecipeRepository{store: store}
}

func (r *RecipeRepository) Create(recipe *entity.Recipe) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.recipes[recipe.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *recipe
	r.store.recipes[recipe.ID] = &c
	return nil
}

func (r *RecipeRepository) GetByID(id string) (*entity.Recipe, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.recipes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *rec
	return &c, nil
}

func (r *RecipeRepository) List() ([]*entity.Recipe, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.Recipe, 0, len(r.store.recipes))
	for _, rec := range r.store.recipes {
		c := *rec
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UploadedAt.Before(out[j].UploadedAt)
	})
	return out, nil
}

func (r *RecipeRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.recipes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.recipes, id)
	return nil
}

// RecipeImageRepository implementa repository.RecipeImageRepository.
type RecipeImageRepository struct {
	store *Store
}

// NewRecipeImageRepository crea el repositorio de imágenes en memoria.
func NewRecipeImageRepository(store *Store) *RecipeImageRepository {
	return &RecipeImageRepository{store: store}
}

func (r *RecipeImageRepository) Create(image *entity.RecipeImage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.recipeImages[image.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *image
	r.store.recipeImages[image.ID] = &c
	return nil
}

func (r *RecipeImageRepository) GetByID(id string) (*entity.RecipeImage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	img, ok := r.store.recipeImages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *img
	return &c, nil
}

func (r *RecipeImageRepository) Update(image *entity.RecipeImage) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.recipeImages[image.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *image
	r.store.recipeImages[image.ID] = &c
	return nil
}

func (r *RecipeImageRepository) List() ([]*entity.RecipeImage, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.RecipeImage, 0, len(r.store.recipeImages))
	for _, img := range r.store.recipeImages {
		c := *img
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UploadedAt.Equal(out[j].UploadedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UploadedAt.Before(out[j].UploadedAt)
	})
	return out, nil
}

func (r *RecipeImageRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.recipeImages[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.recipeImages, id)
	return nil
}

// ResponsibleRepository implementa repository.ResponsibleRepository.
type ResponsibleRepository struct {
	store *Store
}

// NewResponsibleRepository crea el repositorio de responsables en memoria.
func NewResponsibleRepository(store *Store) *ResponsibleRepository {
	return &ResponsibleRepository{store: store}
}

func (r *ResponsibleRepository) Create(responsible *entity.Responsible) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.responsibles[responsible.ID]; ok {
		return domain.ErrDuplicate
	}
	c := *responsible
	r.store.responsibles[responsible.ID] = &c
	return nil
}

func (r *ResponsibleRepository) GetByID(id string) (*entity.Responsible, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	resp, ok := r.store.responsibles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *resp
	return &c, nil
}

func (r *ResponsibleRepository) Update(responsible *entity.Responsible) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.responsibles[responsible.ID]; !ok {
		return domain.ErrNotFound
	}
	c := *responsible
	r.store.responsibles[responsible.ID] = &c
	return nil
}

func (r *ResponsibleRepository) List() ([]*entity.Responsible, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.Responsible, 0, len(r.store.responsibles))
	for _, resp := range r.store.responsibles {
		c := *resp
		out = append(out, &c)
	}
	sortResponsibles(out)
	return out, nil
}

func (r *ResponsibleRepository) ListByLocation(locationID string) ([]*entity.Responsible, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.Responsible
	for _, resp := range r.store.responsibles {
		if resp.LocationID == locationID {
			c := *resp
			out = append(out, &c)
		}
	}
	sortResponsibles(out)
	return out, nil
}

func sortResponsibles(out []*entity.Responsible) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
}

func (r *ResponsibleRepository) Delete(id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.responsibles[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.store.responsibles, id)
	return nil
}

var (
	_ repository.PostItRepository      = (*PostItRepository)(nil)
	_ repository.RecipeRepository      = (*RecipeRepository)(nil)
	_ repository.RecipeImageRepository = (*RecipeImageRepository)(nil)
	_ repository.ResponsibleRepository = (*ResponsibleRepository)(nil)
)
