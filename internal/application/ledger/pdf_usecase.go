package ledger

import (
	"context"
	"fmt"

	"github.com/despensa/despensa-api/internal/domain"
	domledger "github.com/despensa/despensa-api/internal/domain/ledger"
	"github.com/despensa/despensa-api/internal/domain/repository"
)

// PDFUseCase genera el comprobante imprimible (PDF) de un movimiento:
// proyecta la vista con el Projector de dominio y delega el render al generador.
type PDFUseCase struct {
	movRepo   repository.MovementRepository
	generator InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(movRepo repository.MovementRepository, generator InvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{movRepo: movRepo, generator: generator}
}

// DownloadInvoicePDF recupera el movimiento, proyecta su vista de comprobante
// y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si el movimiento no existe.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, movementID string) (pdfBytes []byte, filename string, err error) {
	m, err := uc.movRepo.GetByID(movementID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener movimiento: %w", err)
	}
	if m == nil {
		return nil, "", domain.ErrNotFound
	}

	view := domledger.Project(m)
	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, view, m.Note)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar comprobante: %w", err)
	}

	filename = fmt.Sprintf("comprobante-%s-%s.pdf", m.Type, m.Date.Format("2006-01-02"))
	return pdfBytes, filename, nil
}
