package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/despensa/despensa-api/internal/domain/entity"
	"github.com/despensa/despensa-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL
// (usable con pool o tx). Las líneas se guardan con su posición de captura:
// ese orden es el de listado e impresión.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste el movimiento y sus líneas.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movements (id, type, date, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.Type, movement.Date, nullIfEmpty(movement.Note),
		movement.CreatedAt, movement.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return r.insertLines(movement)
}

// Update reescribe el movimiento: actualiza la cabecera y reemplaza las líneas.
func (r *MovementRepo) Update(movement *entity.Movement) error {
	query := `
		UPDATE movements SET date = $2, note = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.Date, nullIfEmpty(movement.Note), movement.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update movement %s: no existe", movement.ID)
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM movement_lines WHERE movement_id = $1`, movement.ID); err != nil {
		return fmt.Errorf("delete movement lines: %w", err)
	}
	return r.insertLines(movement)
}

// Delete elimina el movimiento y sus líneas.
func (r *MovementRepo) Delete(id string) error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM movement_lines WHERE movement_id = $1`, id); err != nil {
		return fmt.Errorf("delete movement lines: %w", err)
	}
	if _, err := r.q.Exec(context.Background(), `DELETE FROM movements WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento con sus líneas en orden de posición.
// Devuelve nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `
		SELECT id, type, date, note, created_at, updated_at
		FROM movements WHERE id = $1`
	var m entity.Movement
	var note *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Type, &m.Date, &note, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	if note != nil {
		m.Note = *note
	}
	if m.Lines, err = r.loadLines(m.ID); err != nil {
		return nil, err
	}
	return &m, nil
}

// List filtra por tipo (vacío = todos) y rango de fechas de negocio, paginado,
// del más reciente al más antiguo.
func (r *MovementRepo) List(movementType string, from, to *time.Time, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT id, type, date, note, created_at, updated_at
		FROM movements WHERE 1=1`
	args := []any{}
	pos := 1
	if movementType != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, movementType)
		pos++
	}
	if from != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var note *string
		if err := rows.Scan(&m.ID, &m.Type, &m.Date, &note, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if note != nil {
			m.Note = *note
		}
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, m := range list {
		if m.Lines, err = r.loadLines(m.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *MovementRepo) insertLines(movement *entity.Movement) error {
	query := `
		INSERT INTO movement_lines (movement_id, position, ingredient_id, name, unit, price, quantity, origin_quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for i, l := range movement.Lines {
		_, err := r.q.Exec(context.Background(), query,
			movement.ID, i, l.IngredientID, l.Name, l.Unit, l.Price, l.Quantity, l.OriginQuantity,
		)
		if err != nil {
			return fmt.Errorf("insert movement line %d: %w", i, err)
		}
	}
	return nil
}

func (r *MovementRepo) loadLines(movementID string) ([]entity.MovementLine, error) {
	query := `
		SELECT ingredient_id, name, unit, price, quantity, origin_quantity
		FROM movement_lines WHERE movement_id = $1
		ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, movementID)
	if err != nil {
		return nil, fmt.Errorf("load movement lines: %w", err)
	}
	defer rows.Close()

	var lines []entity.MovementLine
	for rows.Next() {
		var l entity.MovementLine
		if err := rows.Scan(&l.IngredientID, &l.Name, &l.Unit, &l.Price, &l.Quantity, &l.OriginQuantity); err != nil {
			return nil, fmt.Errorf("scan movement line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// nullIfEmpty convierte "" a NULL para columnas de texto opcionales.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
