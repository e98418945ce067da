package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient representa un insumo del catálogo con su existencia actual.
// La cantidad en bodega solo la muta el conciliador al registrar o revertir
// un movimiento; el alta directa de ingredientes ocurre vía entradas (IMPORT)
// con nombre+unidad nuevos.
type Ingredient struct {
	ID        string
	Name      string
	Unit      string          // unidad de medida: kg, l, unidad, etc.
	Price     decimal.Decimal // precio unitario vigente
	Quantity  decimal.Decimal // existencia actual, nunca negativa
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CatalogKey devuelve la clave natural nombre+unidad con la que el conciliador
// identifica (o crea) el ingrediente en entradas.
func (i *Ingredient) CatalogKey() string {
	return IngredientKey(i.Name, i.Unit)
}

// IngredientKey normaliza nombre+unidad como clave del catálogo.
func IngredientKey(name, unit string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "|" + strings.ToLower(strings.TrimSpace(unit))
}
