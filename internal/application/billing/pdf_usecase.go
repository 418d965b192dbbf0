package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/facturio/internal/domain"
	"github.com/jhoicas/facturio/internal/domain/repository"
	"github.com/jhoicas/facturio/pkg/logger"
)

// PDFUseCase genera el documento PDF de una factura.
//
// La generación es pura respecto a los datos de la factura: no toca totales ni
// líneas. El único efecto secundario es registrar document_location para que
// el documento sea recuperable después. Este camino no toma ningún lock de
// creación o pago, así que generar PDFs no frena las escrituras.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	businessRepo repository.BusinessRepository
	clientRepo   repository.ClientRepository
	generator    InvoicePDFGenerator
	log          *logger.Logger
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	businessRepo repository.BusinessRepository,
	clientRepo repository.ClientRepository,
	generator InvoicePDFGenerator,
	log *logger.Logger,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		businessRepo: businessRepo,
		clientRepo:   clientRepo,
		generator:    generator,
		log:          log,
	}
}

// DownloadInvoicePDF carga factura, líneas, negocio y cliente, genera el PDF y
// registra la ubicación del documento.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si la factura no existe.
//   - domain.ErrForbidden       si la factura no es del usuario autenticado.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, userID, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	business, err := uc.businessRepo.GetByID(inv.BusinessID)
	if err != nil || business == nil {
		return nil, "", fmt.Errorf("pdf: obtener negocio: %w", domain.ErrNotFound)
	}
	if business.OwnerID != userID {
		return nil, "", domain.ErrForbidden
	}

	client, err := uc.clientRepo.GetByID(inv.ClientID)
	if err != nil || client == nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", domain.ErrNotFound)
	}

	inv.Lines, err = uc.invoiceRepo.GetLinesByInvoiceID(inv.ID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, business, client)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	// Registrar dónde se puede volver a pedir el documento. Si falla no
	// invalida el PDF ya generado, pero queda registrado.
	if locErr := uc.invoiceRepo.SetDocumentLocation(inv.ID, "/api/invoices/"+inv.ID+"/pdf"); locErr != nil {
		uc.log.Warn().Err(locErr).Str("invoice_id", inv.ID).Msg("registrar document_location")
	}

	filename = fmt.Sprintf("facture_%s.pdf", inv.Number)
	return pdfBytes, filename, nil
}
