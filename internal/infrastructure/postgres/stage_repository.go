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

var _ repository.StageRepository = (*StageRepo)(nil)

// StageRepo implementación del puerto StageRepository sobre PostgreSQL.
type StageRepo struct {
	q Querier
}

// NewStageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStageRepository(q Querier) *StageRepo {
	return &StageRepo{q: q}
}

const stageColumns = `id, name, description, location_id, expected_duration, responsible, status,
	start_time, end_time, actual_duration, cycle_name, parent_stage_id, created_at, updated_at`

func scanStage(row pgx.Row) (*entity.Stage, error) {
	var s entity.Stage
	err := row.Scan(
		&s.ID, &s.Name, &s.Description, &s.LocationID, &s.ExpectedDuration,
		&s.Responsible, &s.Status, &s.StartTime, &s.EndTime, &s.ActualDuration,
		&s.CycleName, &s.ParentStageID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StageRepo) Create(stage *entity.Stage) error {
	query := `
		INSERT INTO stages (` + stageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		stage.ID, stage.Name, stage.Description, stage.LocationID, stage.ExpectedDuration,
		stage.Responsible, stage.Status, stage.StartTime, stage.EndTime, stage.ActualDuration,
		stage.CycleName, stage.ParentStageID, stage.CreatedAt, stage.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stage: %w", err)
	}
	return nil
}

func (r *StageRepo) GetByID(id string) (*entity.Stage, error) {
	query := `SELECT ` + stageColumns + ` FROM stages WHERE id = $1`
	s, err := scanStage(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get stage: %w", err)
	}
	return s, nil
}

func (r *StageRepo) Update(stage *entity.Stage) error {
	query := `
		UPDATE stages
		SET name = $2, description = $3, location_id = $4, expected_duration = $5,
		    responsible = $6, status = $7, start_time = $8, end_time = $9,
		    actual_duration = $10, cycle_name = $11, parent_stage_id = $12, updated_at = $13
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		stage.ID, stage.Name, stage.Description, stage.LocationID, stage.ExpectedDuration,
		stage.Responsible, stage.Status, stage.StartTime, stage.EndTime, stage.ActualDuration,
		stage.CycleName, stage.ParentStageID, stage.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stage: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StageRepo) List() ([]*entity.Stage, error) {
	query := `SELECT ` + stageColumns + ` FROM stages ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()

	var out []*entity.Stage
	for rows.Next() {
		s, err := scanStage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *StageRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM stages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stage: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindActiveByLocation devuelve las etapas no completadas en la locación,
// excluyendo opcionalmente una etapa (para ediciones).
func (r *StageRepo) FindActiveByLocation(locationID, excludeStageID string) ([]*entity.Stage, error) {
	query := `
		SELECT ` + stageColumns + `
		FROM stages
		WHERE location_id = $1 AND status <> $2 AND id <> $3`
	rows, err := r.q.Query(context.Background(), query, locationID, entity.StatusCompleted, excludeStageID)
	if err != nil {
		return nil, fmt.Errorf("find active stages by location: %w", err)
	}
	defer rows.Close()

	var out []*entity.Stage
	for rows.Next() {
		s, err := scanStage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetForUpdate obtiene la etapa bloqueando la fila (SELECT FOR UPDATE).
func (r *StageRepo) GetForUpdate(id string) (*entity.Stage, error) {
	query := `SELECT ` + stageColumns + ` FROM stages WHERE id = $1 FOR UPDATE`
	s, err := scanStage(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get stage for update: %w", err)
	}
	return s, nil
}
