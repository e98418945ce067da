package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/despensa/despensa-api/internal/domain/entity"
	"github.com/despensa/despensa-api/internal/domain/ledger"
)

func decp(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

// ──────────────────────────────────────────────────────────────────────────────
// Regla de cantidad de origen
// ──────────────────────────────────────────────────────────────────────────────

// Escenario del libro: entrada de Harina con cantidad efectiva 5 y cantidad
// de origen 8 (el usuario la redujo tras la captura). El comprobante imprime
// 8 (el "tal como se recibió"), pero el subtotal se calcula con 5.
func TestProject_EntradaImprimeCantidadDeOrigen(t *testing.T) {
	m := &entity.Movement{
		Type: entity.MovementTypeImport,
		Date: time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC),
		Lines: []entity.MovementLine{{
			Name:           "Harina",
			Unit:           "kg",
			Price:          decimal.NewFromInt(20000),
			Quantity:       decimal.NewFromInt(5),
			OriginQuantity: decp(8),
		}},
	}

	view := ledger.Project(m)
	require.Len(t, view.Lines, 1)

	assert.True(t, view.Lines[0].Quantity.Equal(decimal.NewFromInt(8)),
		"la cantidad impresa debe ser la de origen (8), no la efectiva (5)")
	assert.True(t, view.Lines[0].Subtotal.Equal(decimal.NewFromInt(100000)),
		"el subtotal se calcula con la cantidad efectiva: 5 x 20000")
	assert.True(t, view.GrandTotal.Equal(decimal.NewFromInt(100000)),
		"el gran total es el total del movimiento")
}

// Si la cantidad de origen no supera la efectiva, se imprime la efectiva.
func TestProject_OrigenMenorOIgualNoAplica(t *testing.T) {
	for _, origin := range []*decimal.Decimal{nil, decp(5), decp(3)} {
		m := &entity.Movement{
			Type: entity.MovementTypeImport,
			Date: time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC),
			Lines: []entity.MovementLine{{
				Name: "Harina", Unit: "kg",
				Price:          decimal.NewFromInt(100),
				Quantity:       decimal.NewFromInt(5),
				OriginQuantity: origin,
			}},
		}
		view := ledger.Project(m)
		assert.True(t, view.Lines[0].Quantity.Equal(decimal.NewFromInt(5)))
	}
}

// La regla es exclusiva de entradas: en salidas siempre manda la efectiva.
func TestProject_SalidaIgnoraCantidadDeOrigen(t *testing.T) {
	m := &entity.Movement{
		Type: entity.MovementTypeExport,
		Date: time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC),
		Lines: []entity.MovementLine{{
			Name: "Azúcar", Unit: "kg",
			Price:          decimal.NewFromInt(100),
			Quantity:       decimal.NewFromInt(4),
			OriginQuantity: decp(9),
		}},
	}
	view := ledger.Project(m)
	assert.True(t, view.Lines[0].Quantity.Equal(decimal.NewFromInt(4)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Totales y orden
// ──────────────────────────────────────────────────────────────────────────────

// El total del movimiento es la suma de subtotales, independiente del orden
// de las líneas.
func TestProject_TotalConmutativo(t *testing.T) {
	a := entity.MovementLine{Name: "Harina", Unit: "kg", Price: decimal.NewFromFloat(20000.5), Quantity: decimal.NewFromInt(3)}
	b := entity.MovementLine{Name: "Azúcar", Unit: "kg", Price: decimal.NewFromInt(15000), Quantity: decimal.NewFromFloat(2.25)}
	c := entity.MovementLine{Name: "Sal", Unit: "g", Price: decimal.NewFromFloat(0.75), Quantity: decimal.NewFromInt(500)}

	m1 := &entity.Movement{Type: entity.MovementTypeImport, Date: testNow, Lines: []entity.MovementLine{a, b, c}}
	m2 := &entity.Movement{Type: entity.MovementTypeImport, Date: testNow, Lines: []entity.MovementLine{c, a, b}}

	v1 := ledger.Project(m1)
	v2 := ledger.Project(m2)

	want := a.Subtotal().Add(b.Subtotal()).Add(c.Subtotal())
	assert.True(t, v1.GrandTotal.Equal(want))
	assert.True(t, v2.GrandTotal.Equal(v1.GrandTotal),
		"reordenar líneas no puede cambiar el total")
}

// Las líneas conservan el orden de captura y se numeran desde 1.
func TestProject_OrdenYNumeracion(t *testing.T) {
	m := &entity.Movement{
		Type: entity.MovementTypeExport,
		Date: time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC),
		Lines: []entity.MovementLine{
			{Name: "Harina", Unit: "kg", Price: decimal.NewFromInt(1), Quantity: decimal.NewFromInt(1)},
			{Name: "Azúcar", Unit: "kg", Price: decimal.NewFromInt(1), Quantity: decimal.NewFromInt(1)},
		},
	}
	view := ledger.Project(m)
	require.Len(t, view.Lines, 2)
	assert.Equal(t, 1, view.Lines[0].Index)
	assert.Equal(t, "Harina", view.Lines[0].Name)
	assert.Equal(t, 2, view.Lines[1].Index)
	assert.Equal(t, "Azúcar", view.Lines[1].Name)
}

func TestProject_Titulo(t *testing.T) {
	entrada := &entity.Movement{
		Type: entity.MovementTypeImport,
		Date: time.Date(2026, time.September, 10, 0, 0, 0, 0, time.UTC),
	}
	salida := &entity.Movement{
		Type: entity.MovementTypeExport,
		Date: time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC),
	}
	assert.Equal(t, "COMPROBANTE DE ENTRADA — Septiembre 2026", ledger.Project(entrada).Title)
	assert.Equal(t, "COMPROBANTE DE SALIDA — Enero 2026", ledger.Project(salida).Title)
}
