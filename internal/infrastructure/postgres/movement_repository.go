package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/cultivo-labs/cultivo-api/internal/domain"
	"github.com/cultivo-labs/cultivo-api/internal/domain/entity"
	"github.com/cultivo-labs/cultivo-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del puerto MovementRepository sobre PostgreSQL.
// Un movimiento se persiste en dos tablas: movements (cabecera) y
// movement_lines (líneas con cantidad y precio congelado).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, type, stage_id, substage_id, location_id, location_name,
	from_location_id, to_location_id, responsible, observations, cost, date`

func scanMovement(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	err := row.Scan(
		&m.ID, &m.Type, &m.StageID, &m.SubstageID, &m.LocationID, &m.LocationName,
		&m.FromLocationID, &m.ToLocationID, &m.Responsible, &m.Observations,
		&m.Cost, &m.Date,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MovementRepo) Create(movement *entity.Movement) error {
	ctx := context.Background()
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.Type, movement.StageID, movement.SubstageID,
		movement.LocationID, movement.LocationName, movement.FromLocationID,
		movement.ToLocationID, movement.Responsible, movement.Observations,
		movement.Cost, movement.Date,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movement: %w", err)
	}

	for i, line := range movement.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO movement_lines (movement_id, position, product_id, quantity, unit, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			movement.ID, i, line.ProductID, line.Quantity, line.Unit, line.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert movement line: %w", err)
		}
	}
	return nil
}

func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	if err := r.loadLines(map[string]*entity.Movement{m.ID: m}); err != nil {
		return nil, err
	}
	return m, nil
}

// Update solo persiste los campos de contexto; líneas, costo y fecha son inmutables.
func (r *MovementRepo) Update(movement *entity.Movement) error {
	query := `
		UPDATE movements
		SET stage_id = $2, substage_id = $3, location_id = $4, location_name = $5,
		    responsible = $6, observations = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.StageID, movement.SubstageID, movement.LocationID,
		movement.LocationName, movement.Responsible, movement.Observations,
	)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	var conds []string
	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.Type != "" {
		add("type = $%d", filter.Type)
	}
	if filter.LocationID != "" {
		add("location_id = $%d", filter.LocationID)
	}
	if filter.StageID != "" {
		add("stage_id = $%d", filter.StageID)
	}
	if filter.SubstageID != "" {
		add("substage_id = $%d", filter.SubstageID)
	}
	if filter.From != nil {
		add("date >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("date <= $%d", *filter.To)
	}

	query := `SELECT ` + movementColumns + ` FROM movements`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date DESC, id"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.Movement
	byID := make(map[string]*entity.Movement)
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		out = append(out, m)
		byID[m.ID] = m
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadLines(byID); err != nil {
		return nil, err
	}
	return out, nil
}

// loadLines carga las líneas de los movimientos dados en una sola consulta.
func (r *MovementRepo) loadLines(byID map[string]*entity.Movement) error {
	if len(byID) == 0 {
		return nil
	}
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	rows, err := r.q.Query(context.Background(), `
		SELECT movement_id, product_id, quantity, unit, unit_price
		FROM movement_lines
		WHERE movement_id = ANY($1)
		ORDER BY movement_id, position`, ids)
	if err != nil {
		return fmt.Errorf("load movement lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var movementID string
		var line entity.MovementLine
		if err := rows.Scan(&movementID, &line.ProductID, &line.Quantity, &line.Unit, &line.UnitPrice); err != nil {
			return fmt.Errorf("scan movement line: %w", err)
		}
		if m, ok := byID[movementID]; ok {
			m.Lines = append(m.Lines, line)
		}
	}
	return rows.Err()
}

func (r *MovementRepo) Delete(id string) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM movement_lines WHERE movement_id = $1`, id); err != nil {
		return fmt.Errorf("delete movement lines: %w", err)
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MovementRepo) ExistsByProduct(productID string) (bool, error) {
	return r.exists(`SELECT EXISTS (SELECT 1 FROM movement_lines WHERE product_id = $1)`, productID)
}

func (r *MovementRepo) ExistsByStage(stageID string) (bool, error) {
	return r.exists(`SELECT EXISTS (SELECT 1 FROM movements WHERE stage_id = $1)`, stageID)
}

func (r *MovementRepo) ExistsBySubstage(substageID string) (bool, error) {
	return r.exists(`SELECT EXISTS (SELECT 1 FROM movements WHERE substage_id = $1)`, substageID)
}

func (r *MovementRepo) ExistsByLocation(locationID string) (bool, error) {
	return r.exists(`
		SELECT EXISTS (
			SELECT 1 FROM movements
			WHERE location_id = $1 OR from_location_id = $1 OR to_location_id = $1
		)`, locationID)
}

func (r *MovementRepo) exists(query string, arg any) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(context.Background(), query, arg).Scan(&ok); err != nil {
		return false, fmt.Errorf("check movement references: %w", err)
	}
	return ok, nil
}
