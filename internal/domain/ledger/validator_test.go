package ledger_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/despensa/despensa-api/internal/domain"
	"github.com/despensa/despensa-api/internal/domain/entity"
	"github.com/despensa/despensa-api/internal/domain/ledger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// "Hoy" fijo para que la política de fechas sea determinista.
var testNow = time.Date(2026, time.September, 15, 10, 0, 0, 0, time.UTC)

// stockOf construye un OnHandFunc a partir de un mapa id -> existencia.
func stockOf(m map[string]float64) ledger.OnHandFunc {
	return func(id string) (decimal.Decimal, error) {
		return decimal.NewFromFloat(m[id]), nil
	}
}

func importLine(name, unit string, qty, price float64) entity.MovementLine {
	return entity.MovementLine{
		Name:     name,
		Unit:     unit,
		Quantity: decimal.NewFromFloat(qty),
		Price:    decimal.NewFromFloat(price),
	}
}

func exportLine(ingredientID string, qty float64) entity.MovementLine {
	return entity.MovementLine{
		IngredientID: ingredientID,
		Name:         "insumo",
		Quantity:     decimal.NewFromFloat(qty),
	}
}

func movement(mtype string, date time.Time, lines ...entity.MovementLine) *entity.Movement {
	return &entity.Movement{Type: mtype, Date: date, Lines: lines}
}

// ──────────────────────────────────────────────────────────────────────────────
// Reglas generales
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_MovimientoSinLineas(t *testing.T) {
	m := movement(entity.MovementTypeImport, testNow)
	err := ledger.Validate(m, stockOf(nil), testNow)
	assert.ErrorIs(t, err, domain.ErrEmptyMovement,
		"un movimiento sin líneas no puede registrarse")
}

func TestValidate_TipoDesconocido(t *testing.T) {
	m := movement("TRANSFER", testNow, importLine("Harina", "kg", 1, 10))
	err := ledger.Validate(m, stockOf(nil), testNow)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidate_FechaFutura(t *testing.T) {
	m := movement(entity.MovementTypeImport, testNow.AddDate(0, 0, 1),
		importLine("Harina", "kg", 1, 10))
	err := ledger.Validate(m, stockOf(nil), testNow)
	assert.ErrorIs(t, err, domain.ErrFutureDate,
		"la fecha de negocio no puede ser posterior a hoy")
}

// La fecha de hoy (aunque con hora posterior) sí es válida: la política es
// de granularidad de día.
func TestValidate_FechaDeHoyEsValida(t *testing.T) {
	m := movement(entity.MovementTypeImport, testNow.Add(5*time.Hour),
		importLine("Harina", "kg", 1, 10))
	err := ledger.Validate(m, stockOf(nil), testNow)
	assert.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas (IMPORT): forma de las líneas
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_Entrada_LineaInvalida(t *testing.T) {
	cases := []struct {
		name      string
		line      entity.MovementLine
		wantField string
	}{
		{"sin nombre", importLine("", "kg", 5, 100), "name"},
		{"nombre en blanco", importLine("   ", "kg", 5, 100), "name"},
		{"sin unidad", importLine("Harina", "", 5, 100), "unit"},
		{"precio negativo", importLine("Harina", "kg", 5, -1), "price"},
		{"cantidad cero", importLine("Harina", "kg", 0, 100), "quantity"},
		{"cantidad negativa", importLine("Harina", "kg", -3, 100), "quantity"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := movement(entity.MovementTypeImport, testNow,
				importLine("Azúcar", "kg", 1, 50), // línea 0 válida
				tc.line,                           // línea 1 ofensiva
			)
			err := ledger.Validate(m, stockOf(nil), testNow)
			require.ErrorIs(t, err, domain.ErrInvalidLine)

			var lineErr *domain.LineError
			require.ErrorAs(t, err, &lineErr)
			assert.Equal(t, 1, lineErr.Index, "debe señalar la línea ofensiva")
			assert.Equal(t, tc.wantField, lineErr.Field, "debe señalar el campo ofensivo")
		})
	}
}

func TestValidate_Entrada_PrecioCeroEsValido(t *testing.T) {
	// Donaciones o muestras: precio 0 es legal, negativo no.
	m := movement(entity.MovementTypeImport, testNow, importLine("Sal", "kg", 2, 0))
	assert.NoError(t, ledger.Validate(m, stockOf(nil), testNow))
}

// ──────────────────────────────────────────────────────────────────────────────
// Salidas (EXPORT): existencia
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_Salida_StockSuficiente(t *testing.T) {
	m := movement(entity.MovementTypeExport, testNow, exportLine("azucar-1", 10))
	err := ledger.Validate(m, stockOf(map[string]float64{"azucar-1": 10}), testNow)
	assert.NoError(t, err, "sacar exactamente la existencia disponible es válido")
}

func TestValidate_Salida_StockInsuficiente(t *testing.T) {
	m := movement(entity.MovementTypeExport, testNow, exportLine("azucar-1", 11))
	err := ledger.Validate(m, stockOf(map[string]float64{"azucar-1": 10}), testNow)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

// Dos líneas sobre el mismo insumo: la demanda se acumula antes de comparar.
func TestValidate_Salida_DemandaAcumuladaPorInsumo(t *testing.T) {
	m := movement(entity.MovementTypeExport, testNow,
		exportLine("azucar-1", 6),
		exportLine("azucar-1", 6),
	)
	err := ledger.Validate(m, stockOf(map[string]float64{"azucar-1": 10}), testNow)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock,
		"6+6 sobre una existencia de 10 debe rechazarse aunque cada línea quepa sola")
}

func TestValidate_Salida_SinIngrediente(t *testing.T) {
	m := movement(entity.MovementTypeExport, testNow, exportLine("", 1))
	err := ledger.Validate(m, stockOf(nil), testNow)

	var lineErr *domain.LineError
	require.ErrorAs(t, err, &lineErr)
	assert.Equal(t, "ingredient_id", lineErr.Field)
}

func TestValidate_Salida_ErrorDelLookupSePropaga(t *testing.T) {
	lookupErr := errors.New("catálogo caído")
	failing := func(string) (decimal.Decimal, error) { return decimal.Zero, lookupErr }

	m := movement(entity.MovementTypeExport, testNow, exportLine("azucar-1", 1))
	err := ledger.Validate(m, failing, testNow)
	assert.ErrorIs(t, err, lookupErr)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventana de edición: mes calendario en curso
// ──────────────────────────────────────────────────────────────────────────────

func TestValidateEditWindow(t *testing.T) {
	cases := []struct {
		name    string
		date    time.Time
		wantErr bool
	}{
		{"mismo día", testNow, false},
		{"primer día del mes", time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), false},
		{"último día del mes", time.Date(2026, time.September, 30, 23, 59, 0, 0, time.UTC), false},
		{"mes anterior", time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC), true},
		{"mes siguiente", time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), true},
		{"mismo mes, año anterior", time.Date(2025, time.September, 15, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ledger.ValidateEditWindow(tc.date, testNow)
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrEditWindowClosed)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
