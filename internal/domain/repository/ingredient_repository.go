package repository

import (
	"time"

	"github.com/despensa/despensa-api/internal/domain/entity"
)

// IngredientRepository define el puerto de catálogo de ingredientes.
// Las escrituras solo las realiza el conciliador dentro de transacciones.
type IngredientRepository interface {
	GetByID(id string) (*entity.Ingredient, error)
	// GetByKey busca por la clave natural nombre+unidad (alta en entradas).
	GetByKey(name, unit string) (*entity.Ingredient, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Ingredient, error)
	Upsert(ingredient *entity.Ingredient) error
	// List pagina el catálogo, opcionalmente acotado por fecha de actualización.
	List(from, to *time.Time, limit, offset int) ([]*entity.Ingredient, error)
}
