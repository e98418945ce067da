package ledger

import (
	"context"

	domledger "github.com/despensa/despensa-api/internal/domain/ledger"
	"github.com/despensa/despensa-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el conciliador:
// registrar, editar o eliminar un movimiento es una sola transacción.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		ingRepo repository.IngredientRepository,
	) error) error
}

// InvoicePDFGenerator renderiza la vista de comprobante a bytes PDF.
// Implementado en infraestructura (Maroto); el dominio solo produce la vista.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, view domledger.InvoiceView, note string) ([]byte, error)
}
