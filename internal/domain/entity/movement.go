package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	MovementTypeImport = "IMPORT" // entrada de insumos
	MovementTypeExport = "EXPORT" // salida de insumos
)

// Movement representa un asiento del libro: una entrada o salida de insumos
// con sus líneas en orden de captura (ese orden es el de impresión).
// Una vez registrado solo puede editarse o eliminarse dentro del mes en curso.
type Movement struct {
	ID        string
	Type      string // IMPORT o EXPORT
	Date      time.Time
	Note      string // solo salidas
	Lines     []MovementLine
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MovementLine es una línea del movimiento. Referencia un ingrediente por ID
// (salidas) o lleva nombre/unidad/precio desnormalizados (entradas, donde el
// ingrediente puede ser nuevo).
type MovementLine struct {
	IngredientID   string
	Name           string
	Unit           string
	Price          decimal.Decimal  // precio unitario al momento del movimiento
	Quantity       decimal.Decimal  // siempre > 0
	OriginQuantity *decimal.Decimal // cantidad capturada originalmente, antes de una corrección previa al registro
}

// Subtotal de la línea: cantidad por precio, sin redondeo.
func (l MovementLine) Subtotal() decimal.Decimal {
	return l.Quantity.Mul(l.Price)
}

// TotalPrice suma los subtotales de todas las líneas. Se acumula sin redondear;
// el redondeo es responsabilidad de la capa de presentación.
func (m *Movement) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, l := range m.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// IsImport / IsExport azúcar para legibilidad en validador y conciliador.
func (m *Movement) IsImport() bool { return m.Type == MovementTypeImport }
func (m *Movement) IsExport() bool { return m.Type == MovementTypeExport }
