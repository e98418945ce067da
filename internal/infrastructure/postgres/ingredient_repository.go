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

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// IngredientRepo implementación de IngredientRepository sobre PostgreSQL
// (usable con pool o tx).
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

const ingredientColumns = "id, name, unit, price, quantity, created_at, updated_at"

// GetByID obtiene un ingrediente por ID. Devuelve nil si no existe.
func (r *IngredientRepo) GetByID(id string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1`
	return r.scanOne(query, id)
}

// GetByKey busca por la clave natural nombre+unidad (case-insensitive) y
// bloquea la fila si existe, para que el alta en entradas sea serializada
// por la BD dentro del TxRunner.
func (r *IngredientRepo) GetByKey(name, unit string) (*entity.Ingredient, error) {
	query := `
		SELECT ` + ingredientColumns + `
		FROM ingredients
		WHERE lower(name) = lower(trim($1)) AND lower(unit) = lower(trim($2))
		FOR UPDATE`
	return r.scanOne(query, name, unit)
}

// GetForUpdate obtiene el ingrediente y bloquea la fila (SELECT FOR UPDATE).
func (r *IngredientRepo) GetForUpdate(id string) (*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE id = $1 FOR UPDATE`
	return r.scanOne(query, id)
}

// Upsert inserta o actualiza existencia, precio y fecha de actualización.
func (r *IngredientRepo) Upsert(ingredient *entity.Ingredient) error {
	query := `
		INSERT INTO ingredients (id, name, unit, price, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id)
		DO UPDATE SET price = EXCLUDED.price, quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		ingredient.ID, ingredient.Name, ingredient.Unit,
		ingredient.Price, ingredient.Quantity,
		ingredient.CreatedAt, ingredient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert ingredient: %w", err)
	}
	return nil
}

// List pagina el catálogo, opcionalmente acotado por fecha de actualización.
func (r *IngredientRepo) List(from, to *time.Time, limit, offset int) ([]*entity.Ingredient, error) {
	query := `SELECT ` + ingredientColumns + ` FROM ingredients WHERE 1=1`
	args := []any{}
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND updated_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND updated_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY name, unit LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()

	var list []*entity.Ingredient
	for rows.Next() {
		var i entity.Ingredient
		if err := rows.Scan(&i.ID, &i.Name, &i.Unit, &i.Price, &i.Quantity, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

func (r *IngredientRepo) scanOne(query string, args ...any) (*entity.Ingredient, error) {
	var i entity.Ingredient
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&i.ID, &i.Name, &i.Unit, &i.Price, &i.Quantity, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return &i, nil
}
