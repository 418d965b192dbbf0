package billing

import (
	"context"

	"github.com/jhoicas/facturio/internal/domain/entity"
	"github.com/jhoicas/facturio/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con repositorios de
// facturación atados a ella. Commit si fn retorna nil, rollback si no.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		businessRepo repository.BusinessRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// InvoicePDFGenerator genera el documento PDF de una factura. La factura debe
// llegar con Lines cargadas; el generador no consulta persistencia.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, business *entity.Business, client *entity.Client) ([]byte, error)
}
