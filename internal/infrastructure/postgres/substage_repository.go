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

var _ repository.SubstageRepository = (*SubstageRepo)(nil)

// SubstageRepo implementación del puerto SubstageRepository sobre PostgreSQL.
type SubstageRepo struct {
	q Querier
}

// NewSubstageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubstageRepository(q Querier) *SubstageRepo {
	return &SubstageRepo{q: q}
}

const substageColumns = `id, name, description, stage_id, expected_duration, responsible, status,
	start_time, end_time, actual_duration, created_at, updated_at`

func scanSubstage(row pgx.Row) (*entity.Substage, error) {
	var s entity.Substage
	err := row.Scan(
		&s.ID, &s.Name, &s.Description, &s.StageID, &s.ExpectedDuration,
		&s.Responsible, &s.Status, &s.StartTime, &s.EndTime, &s.ActualDuration,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubstageRepo) Create(substage *entity.Substage) error {
	query := `
		INSERT INTO substages (` + substageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		substage.ID, substage.Name, substage.Description, substage.StageID, substage.ExpectedDuration,
		substage.Responsible, substage.Status, substage.StartTime, substage.EndTime, substage.ActualDuration,
		substage.CreatedAt, substage.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert substage: %w", err)
	}
	return nil
}

func (r *SubstageRepo) GetByID(id string) (*entity.Substage, error) {
	query := `SELECT ` + substageColumns + ` FROM substages WHERE id = $1`
	s, err := scanSubstage(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get substage: %w", err)
	}
	return s, nil
}

func (r *SubstageRepo) Update(substage *entity.Substage) error {
	query := `
		UPDATE substages
		SET name = $2, description = $3, stage_id = $4, expected_duration = $5,
		    responsible = $6, status = $7, start_time = $8, end_time = $9,
		    actual_duration = $10, updated_at = $11
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		substage.ID, substage.Name, substage.Description, substage.StageID, substage.ExpectedDuration,
		substage.Responsible, substage.Status, substage.StartTime, substage.EndTime, substage.ActualDuration,
		substage.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update substage: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SubstageRepo) List() ([]*entity.Substage, error) {
	return r.list(`SELECT `+substageColumns+` FROM substages ORDER BY created_at, id`)
}

func (r *SubstageRepo) ListByStage(stageID string) ([]*entity.Substage, error) {
	return r.list(`SELECT `+substageColumns+` FROM substages WHERE stage_id = $1 ORDER BY created_at, id`, stageID)
}

func (r *SubstageRepo) list(query string, args ...any) ([]*entity.Substage, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list substages: %w", err)
	}
	defer rows.Close()

	var out []*entity.Substage
	for rows.Next() {
		s, err := scanSubstage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan substage: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SubstageRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM substages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete substage: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetForUpdate obtiene la sub-etapa bloqueando la fila (SELECT FOR UPDATE).
func (r *SubstageRepo) GetForUpdate(id string) (*entity.Substage, error) {
	query := `SELECT ` + substageColumns + ` FROM substages WHERE id = $1 FOR UPDATE`
	s, err := scanSubstage(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get substage for update: %w", err)
	}
	return s, nil
}
