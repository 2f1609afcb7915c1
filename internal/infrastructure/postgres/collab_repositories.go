package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
)

// Repositorios de las entidades colaborativas: post-its, recetas/documentos,
// imágenes y responsables de locación.

var (
	_ repository.PostItRepository      = (*PostItRepo)(nil)
	_ repository.RecipeRepository      = (*RecipeRepo)(nil)
	_ repository.RecipeImageRepository = (*RecipeImageRepo)(nil)
	_ repository.ResponsibleRepository = (*ResponsibleRepo)(nil)
)

// PostItRepo implementación del puerto PostItRepository sobre PostgreSQL.
type PostItRepo struct {
	q Querier
}

// NewPostItRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPostItRepository(q Querier) *PostItRepo {
	return &PostItRepo{q: q}
}

func (r *PostItRepo) Create(postit *entity.PostIt) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO postits (id, title, content, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		postit.ID, postit.Title, postit.Content, postit.Color, postit.CreatedAt, postit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert postit: %w", err)
	}
	return nil
}

func (r *PostItRepo) GetByID(id string) (*entity.PostIt, error) {
	var p entity.PostIt
	err := r.q.QueryRow(context.Background(), `
		SELECT id, title, content, color, created_at, updated_at
		FROM postits WHERE id = $1`, id,
	).Scan(&p.ID, &p.Title, &p.Content, &p.Color, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get postit: %w", err)
	}
	return &p, nil
}

func (r *PostItRepo) Update(postit *entity.PostIt) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE postits SET title = $2, content = $3, color = $4, updated_at = $5
		WHERE id = $1`,
		postit.ID, postit.Title, postit.Content, postit.Color, postit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update postit: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostItRepo) List() ([]*entity.PostIt, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, title, content, color, created_at, updated_at
		FROM postits ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list postits: %w", err)
	}
	defer rows.Close()

	var out []*entity.PostIt
	for rows.Next() {
		var p entity.PostIt
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Color, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan postit: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *PostItRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM postits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete postit: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RecipeRepo implementación del puerto RecipeRepository sobre PostgreSQL.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

func (r *RecipeRepo) Create(recipe *entity.Recipe) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO recipes (id, name, filename, file_type, file_path, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		recipe.ID, recipe.Name, recipe.Filename, recipe.FileType, recipe.FilePath, recipe.UploadedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert recipe: %w", err)
	}
	return nil
}

func (r *RecipeRepo) GetByID(id string) (*entity.Recipe, error) {
	var rec entity.Recipe
	err := r.q.QueryRow(context.Background(), `
		SELECT id, name, filename, file_type, file_path, uploaded_at
		FROM recipes WHERE id = $1`, id,
	).Scan(&rec.ID, &rec.Name, &rec.Filename, &rec.FileType, &rec.FilePath, &rec.UploadedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return &rec, nil
}

func (r *RecipeRepo) List() ([]*entity.Recipe, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, name, filename, file_type, file_path, uploaded_at
		FROM recipes ORDER BY uploaded_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Recipe
	for rows.Next() {
		var rec entity.Recipe
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Filename, &rec.FileType, &rec.FilePath, &rec.UploadedAt); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}

func (r *RecipeRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RecipeImageRepo implementación del puerto RecipeImageRepository sobre PostgreSQL.
type RecipeImageRepo struct {
	q Querier
}

// NewRecipeImageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeImageRepository(q Querier) *RecipeImageRepo {
	return &RecipeImageRepo{q: q}
}

func (r *RecipeImageRepo) Create(image *entity.RecipeImage) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO recipe_images (id, title, filename, file_path, comment, uploaded_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		image.ID, image.Title, image.Filename, image.FilePath, image.Comment,
		image.UploadedAt, image.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert recipe image: %w", err)
	}
	return nil
}

func (r *RecipeImageRepo) GetByID(id string) (*entity.RecipeImage, error) {
	var img entity.RecipeImage
	err := r.q.QueryRow(context.Background(), `
		SELECT id, title, filename, file_path, comment, uploaded_at, updated_at
		FROM recipe_images WHERE id = $1`, id,
	).Scan(&img.ID, &img.Title, &img.Filename, &img.FilePath, &img.Comment, &img.UploadedAt, &img.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get recipe image: %w", err)
	}
	return &img, nil
}

func (r *RecipeImageRepo) Update(image *entity.RecipeImage) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE recipe_images SET title = $2, comment = $3, updated_at = $4
		WHERE id = $1`,
		image.ID, image.Title, image.Comment, image.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update recipe image: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RecipeImageRepo) List() ([]*entity.RecipeImage, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, title, filename, file_path, comment, uploaded_at, updated_at
		FROM recipe_images ORDER BY uploaded_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list recipe images: %w", err)
	}
	defer rows.Close()

	var out []*entity.RecipeImage
	for rows.Next() {
		var img entity.RecipeImage
		if err := rows.Scan(&img.ID, &img.Title, &img.Filename, &img.FilePath, &img.Comment, &img.UploadedAt, &img.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe image: %w", err)
		}
		out = append(out, &img)
	}
	return out, rows.Err()
}

func (r *RecipeImageRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM recipe_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe image: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ResponsibleRepo implementación del puerto ResponsibleRepository sobre PostgreSQL.
type ResponsibleRepo struct {
	q Querier
}

// NewResponsibleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewResponsibleRepository(q Querier) *ResponsibleRepo {
	return &ResponsibleRepo{q: q}
}

func (r *ResponsibleRepo) Create(responsible *entity.Responsible) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO responsibles (id, name, role, location_id, color, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		responsible.ID, responsible.Name, responsible.Role, responsible.LocationID,
		responsible.Color, responsible.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert responsible: %w", err)
	}
	return nil
}

func (r *ResponsibleRepo) GetByID(id string) (*entity.Responsible, error) {
	var resp entity.Responsible
	err := r.q.QueryRow(context.Background(), `
		SELECT id, name, role, location_id, color, created_at
		FROM responsibles WHERE id = $1`, id,
	).Scan(&resp.ID, &resp.Name, &resp.Role, &resp.LocationID, &resp.Color, &resp.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get responsible: %w", err)
	}
	return &resp, nil
}

func (r *ResponsibleRepo) Update(responsible *entity.Responsible) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE responsibles SET name = $2, role = $3, location_id = $4, color = $5
		WHERE id = $1`,
		responsible.ID, responsible.Name, responsible.Role, responsible.LocationID, responsible.Color,
	)
	if err != nil {
		return fmt.Errorf("update responsible: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ResponsibleRepo) List() ([]*entity.Responsible, error) {
	return r.list(`
		SELECT id, name, role, location_id, color, created_at
		FROM responsibles ORDER BY created_at, id`)
}

func (r *ResponsibleRepo) ListByLocation(locationID string) ([]*entity.Responsible, error) {
	return r.list(`
		SELECT id, name, role, location_id, color, created_at
		FROM responsibles WHERE location_id = $1 ORDER BY created_at, id`, locationID)
}

func (r *ResponsibleRepo) list(query string, args ...any) ([]*entity.Responsible, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list responsibles: %w", err)
	}
	defer rows.Close()

	var out []*entity.Responsible
	for rows.Next() {
		var resp entity.Responsible
		if err := rows.Scan(&resp.ID, &resp.Name, &resp.Role, &resp.LocationID, &resp.Color, &resp.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan responsible: %w", err)
		}
		out = append(out, &resp)
	}
	return out, rows.Err()
}

func (r *ResponsibleRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM responsibles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete responsible: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
