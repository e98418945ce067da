package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/despensa/despensa-api/internal/domain/entity"
)

// InvoiceView es la proyección imprimible de un movimiento: título, fecha,
// líneas en orden de captura y gran total. Es una transformación pura; el
// renderizado (PDF) lo consume un colaborador de infraestructura.
type InvoiceView struct {
	Title      string
	Date       time.Time
	Lines      []InvoiceLine
	GrandTotal decimal.Decimal
}

// InvoiceLine es una línea del comprobante con su posición de impresión.
type InvoiceLine struct {
	Index    int
	Name     string
	Quantity decimal.Decimal // cantidad impresa (ver printedQuantity)
	Unit     string
	Price    decimal.Decimal
	Subtotal decimal.Decimal
}

var spanishMonths = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// Project deriva la vista de comprobante de un movimiento registrado.
// El gran total es exactamente el total del movimiento: los subtotales se
// calculan siempre con la cantidad efectiva, aunque la cantidad impresa
// pueda ser la de origen (regla de auditoría, ver printedQuantity).
func Project(m *entity.Movement) InvoiceView {
	view := InvoiceView{
		Title:      invoiceTitle(m),
		Date:       m.Date,
		Lines:      make([]InvoiceLine, 0, len(m.Lines)),
		GrandTotal: m.TotalPrice(),
	}
	for i, l := range m.Lines {
		view.Lines = append(view.Lines, InvoiceLine{
			Index:    i + 1,
			Name:     l.Name,
			Quantity: printedQuantity(m.Type, l),
			Unit:     l.Unit,
			Price:    l.Price,
			Subtotal: l.Subtotal(),
		})
	}
	return view
}

// printedQuantity aplica la regla de cantidad de origen: en entradas, si la
// línea conserva una cantidad original mayor que la efectiva (el usuario la
// redujo tras la captura inicial), el comprobante imprime la de origen para
// preservar el "tal como se recibió". Regla heredada del sistema anterior;
// se mantiene tal cual por su valor de auditoría.
func printedQuantity(movementType string, l entity.MovementLine) decimal.Decimal {
	if movementType == entity.MovementTypeImport &&
		l.OriginQuantity != nil &&
		l.OriginQuantity.GreaterThan(l.Quantity) {
		return *l.OriginQuantity
	}
	return l.Quantity
}

// invoiceTitle arma el título según tipo y mes de la fecha de negocio,
// ej: "COMPROBANTE DE ENTRADA — Septiembre 2026".
func invoiceTitle(m *entity.Movement) string {
	kind := "COMPROBANTE DE SALIDA"
	if m.IsImport() {
		kind = "COMPROBANTE DE ENTRADA"
	}
	return fmt.Sprintf("%s — %s %d", kind, spanishMonths[m.Date.Month()-1], m.Date.Year())
}
