package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")

	// Validación de movimientos.
	ErrEmptyMovement     = errors.New("el movimiento no tiene líneas")
	ErrInvalidLine       = errors.New("línea de movimiento inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrFutureDate        = errors.New("la fecha del movimiento es futura")
	ErrEditWindowClosed  = errors.New("movimiento fuera del mes en curso: no editable")

	// Persistencia y conciliación.
	ErrPersistenceFailure = errors.New("fallo de persistencia")
	// ErrReconciliationInconsistency indica que el catálogo y el historial de
	// movimientos divergieron durante una edición (reversa aplicada, re-registro
	// fallido). Nunca debe tragarse en silencio: el caller tiene que loguearlo
	// y abortar la transacción.
	ErrReconciliationInconsistency = errors.New("inconsistencia de conciliación entre catálogo y movimientos")
)

// LineError identifica la línea y el campo que no pasó la validación.
// Envuelve ErrInvalidLine para que errors.Is siga funcionando.
type LineError struct {
	Index int    // posición de la línea dentro del movimiento (base 0)
	Field string // name, unit, price, quantity, ingredient_id
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%v: línea %d, campo %q", ErrInvalidLine, e.Index, e.Field)
}

// Unwrap permite errors.Is(err, ErrInvalidLine).
func (e *LineError) Unwrap() error { return ErrInvalidLine }
