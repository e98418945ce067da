package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/despensa/despensa-api/internal/domain"
	"github.com/despensa/despensa-api/internal/domain/entity"
)

// OnHandFunc consulta la existencia actual de un ingrediente por ID.
// Permite que el validador siga siendo puro: la lectura del catálogo la
// inyecta el caller (normalmente dentro de la misma transacción que el registro).
type OnHandFunc func(ingredientID string) (decimal.Decimal, error)

// Validate verifica un movimiento candidato contra las reglas del libro.
// No tiene efectos secundarios: acepta o devuelve el primer error encontrado.
//
// Reglas:
//   - tipo IMPORT o EXPORT, al menos una línea
//   - fecha de negocio no futura respecto a now (granularidad de día)
//   - IMPORT: cada línea con nombre y unidad no vacíos, precio >= 0, cantidad > 0
//   - EXPORT: cada línea con ingrediente referenciado y cantidad > 0; la demanda
//     acumulada por ingrediente no puede exceder su existencia actual
func Validate(m *entity.Movement, onHand OnHandFunc, now time.Time) error {
	if m == nil {
		return domain.ErrInvalidInput
	}
	switch m.Type {
	case entity.MovementTypeImport, entity.MovementTypeExport:
	default:
		return domain.ErrInvalidInput
	}
	if len(m.Lines) == 0 {
		return domain.ErrEmptyMovement
	}
	if dateOnly(m.Date).After(dateOnly(now)) {
		return domain.ErrFutureDate
	}

	if m.IsImport() {
		return validateImportLines(m.Lines)
	}
	return validateExportLines(m.Lines, onHand)
}

// ValidateEditWindow aplica la política de fechas para editar o eliminar:
// solo movimientos cuya fecha de negocio cae en el mes calendario de now.
func ValidateEditWindow(date, now time.Time) error {
	if date.Year() != now.Year() || date.Month() != now.Month() {
		return domain.ErrEditWindowClosed
	}
	return nil
}

func validateImportLines(lines []entity.MovementLine) error {
	for i, l := range lines {
		switch {
		case strings.TrimSpace(l.Name) == "":
			return &domain.LineError{Index: i, Field: "name"}
		case strings.TrimSpace(l.Unit) == "":
			return &domain.LineError{Index: i, Field: "unit"}
		case l.Price.IsNegative():
			return &domain.LineError{Index: i, Field: "price"}
		case !l.Quantity.GreaterThan(decimal.Zero):
			return &domain.LineError{Index: i, Field: "quantity"}
		}
	}
	return nil
}

func validateExportLines(lines []entity.MovementLine, onHand OnHandFunc) error {
	// Demanda acumulada por ingrediente: dos líneas sobre el mismo insumo
	// no pueden sumar más que la existencia.
	demand := make(map[string]decimal.Decimal, len(lines))
	for i, l := range lines {
		if l.IngredientID == "" {
			return &domain.LineError{Index: i, Field: "ingredient_id"}
		}
		if !l.Quantity.GreaterThan(decimal.Zero) {
			return &domain.LineError{Index: i, Field: "quantity"}
		}
		if l.Price.IsNegative() {
			return &domain.LineError{Index: i, Field: "price"}
		}
		demand[l.IngredientID] = demand[l.IngredientID].Add(l.Quantity)
	}
	for i, l := range lines {
		q, ok := demand[l.IngredientID]
		if !ok {
			continue // ya verificado por una línea anterior del mismo insumo
		}
		delete(demand, l.IngredientID)
		stock, err := onHand(l.IngredientID)
		if err != nil {
			return err
		}
		if stock.LessThan(q) {
			return fmt.Errorf("%w: %s (línea %d)", domain.ErrInsufficientStock, l.Name, i)
		}
	}
	return nil
}

// dateOnly trunca a medianoche en la zona del propio valor.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
