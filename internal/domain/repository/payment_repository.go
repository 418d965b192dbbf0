package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturio/internal/domain/entity"
)

// PaymentRepository define el puerto de persistencia para Payment.
// Los pagos son append-only: no hay Update ni Delete.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	ListByInvoiceID(invoiceID string) ([]*entity.Payment, error)
	// SumByInvoiceID devuelve la suma de pagos registrados contra la factura.
	SumByInvoiceID(invoiceID string) (decimal.Decimal, error)
}
