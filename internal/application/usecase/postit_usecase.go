package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/cultivo-labs/cultivo-api/internal/application/dto"
	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
)

const defaultPostItColor = "#ffeb3b"

// PostItUseCase CRUD de notas del tablero.
type PostItUseCase struct {
	repo repository.PostItRepository
}

// NewPostItUseCase construye el caso de uso.
func NewPostItUseCase(repo repository.PostItRepository) *PostItUseCase {
	return &PostItUseCase{repo: repo}
}

// Create crea una nota.
func (uc *PostItUseCase) Create(in dto.CreatePostItRequest) (*dto.PostItResponse, error) {
	if in.Title == "" && in.Content == "" {
		return nil, domain.ErrInvalidInput
	}
	color := in.Color
	if color == "" {
		color = defaultPostItColor
	}
	now := time.Now()
	postit := &entity.PostIt{
		ID:        uuid.New().String(),
		Title:     in.Title,
		Content:   in.Content,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(postit); err != nil {
		return nil, err
	}
	return toPostItResponse(postit), nil
}

// Update edita una nota.
func (uc *PostItUseCase) Update(id string, in dto.UpdatePostItRequest) (*dto.PostItResponse, error) {
	postit, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if postit == nil {
		return nil, domain.ErrNotFound
	}
	if in.Title != nil {
		postit.Title = *in.Title
	}
	if in.Content != nil {
		postit.Content = *in.Content
	}
	if in.Color != nil {
		postit.Color = *in.Color
	}
	postit.UpdatedAt = time.Now()
	if err := uc.repo.Update(postit); err != nil {
		return nil, err
	}
	return toPostItResponse(postit), nil
}

// Delete elimina una nota.
func (uc *PostItUseCase) Delete(id string) error {
	postit, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if postit == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

// List lista todas las notas.
func (uc *PostItUseCase) List() ([]dto.PostItResponse, error) {
	postits, err := uc.repo.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.PostItResponse, 0, len(postits))
	for _, p := range postits {
		out = append(out, *toPostItResponse(p))
	}
	return out, nil
}

func toPostItResponse(p *entity.PostIt) *dto.PostItResponse {
	return &dto.PostItResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Color:     p.Color,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
