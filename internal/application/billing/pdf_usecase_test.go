package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturio/internal/application/billing"
	"github.com/jhoicas/facturio/internal/domain"
	"github.com/jhoicas/facturio/internal/domain/entity"
	"github.com/jhoicas/facturio/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

// fakePDFGenerator devuelve bytes fijos y captura la factura recibida.
type fakePDFGenerator struct {
	lastInvoice *entity.Invoice
}

var _ billing.InvoicePDFGenerator = (*fakePDFGenerator)(nil)

func (g *fakePDFGenerator) GenerateInvoicePDF(_ context.Context, inv *entity.Invoice, _ *entity.Business, _ *entity.Client) ([]byte, error) {
	g.lastInvoice = inv
	return []byte("%PDF-fake"), nil
}

func TestDownloadInvoicePDF_GeneraYRegistraUbicacion(t *testing.T) {
	f := newBillingFixture()
	invoiceID := createPaidableInvoice(t, f)

	gen := &fakePDFGenerator{}
	uc := billing.NewPDFUseCase(f.invoiceRepo, f.businessRepo, f.clientRepo, gen, testLogger())

	pdfBytes, filename, err := uc.DownloadInvoicePDF(context.Background(), ownerID, invoiceID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdfBytes)
	assert.Equal(t, "facture_FAC-00001.pdf", filename)

	// El generador recibe la factura con líneas cargadas.
	require.NotNil(t, gen.lastInvoice)
	assert.Len(t, gen.lastInvoice.Lines, 1)

	// La ubicación del documento queda registrada.
	stored, err := f.invoiceRepo.GetByID(invoiceID)
	require.NoError(t, err)
	assert.Equal(t, "/api/invoices/"+invoiceID+"/pdf", stored.DocumentLocation)
}

// failingLocationRepo simula un fallo de escritura al registrar
// document_location. El PDF ya generado no se pierde por eso.
type failingLocationRepo struct {
	*fakeInvoiceRepo
}

func (r *failingLocationRepo) SetDocumentLocation(id, location string) error {
	return errors.New("write timeout")
}

func TestDownloadInvoicePDF_FalloAlRegistrarUbicacion_NoInvalidaElPDF(t *testing.T) {
	f := newBillingFixture()
	invoiceID := createPaidableInvoice(t, f)

	repo := &failingLocationRepo{fakeInvoiceRepo: f.invoiceRepo}
	uc := billing.NewPDFUseCase(repo, f.businessRepo, f.clientRepo, &fakePDFGenerator{}, testLogger())

	pdfBytes, filename, err := uc.DownloadInvoicePDF(context.Background(), ownerID, invoiceID)
	require.NoError(t, err, "el fallo al guardar la ubicación no debe tumbar la descarga")
	assert.Equal(t, []byte("%PDF-fake"), pdfBytes)
	assert.Equal(t, "facture_FAC-00001.pdf", filename)

	// La ubicación no quedó registrada, pero el documento se entregó.
	stored, err := f.invoiceRepo.GetByID(invoiceID)
	require.NoError(t, err)
	assert.Empty(t, stored.DocumentLocation)
}

func TestDownloadInvoicePDF_FacturaInexistente_NotFound(t *testing.T) {
	f := newBillingFixture()
	uc := billing.NewPDFUseCase(f.invoiceRepo, f.businessRepo, f.clientRepo, &fakePDFGenerator{}, testLogger())

	_, _, err := uc.DownloadInvoicePDF(context.Background(), ownerID, "inv-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDownloadInvoicePDF_FacturaAjena_Forbidden(t *testing.T) {
	f := newBillingFixture()
	invoiceID := createPaidableInvoice(t, f)
	uc := billing.NewPDFUseCase(f.invoiceRepo, f.businessRepo, f.clientRepo, &fakePDFGenerator{}, testLogger())

	_, _, err := uc.DownloadInvoicePDF(context.Background(), otherUser, invoiceID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
