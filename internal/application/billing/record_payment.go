package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/facturio/internal/application/dto"
	"github.com/jhoicas/facturio/internal/domain"
	"github.com/jhoicas/facturio/internal/domain/entity"
	"github.com/jhoicas/facturio/internal/domain/repository"
)

// RecordPaymentUseCase registra un pago contra una factura y dispara la
// transición a "paid" cuando corresponde.
//
// Política de pagos parciales (explícita): la factura pasa a "paid" solo
// cuando la suma de pagos registrados alcanza el total TTC. Un pago menor se
// guarda igual y la factura sigue en "sent".
type RecordPaymentUseCase struct {
	txRunner     TxRunner
	businessRepo repository.BusinessRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewRecordPaymentUseCase construye el caso de uso.
func NewRecordPaymentUseCase(
	txRunner TxRunner,
	businessRepo repository.BusinessRepository,
	invoiceRepo repository.InvoiceRepository,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		txRunner:     txRunner,
		businessRepo: businessRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// RecordPayment inserta el pago y, si la factura queda cubierta, la marca como
// pagada. Inserción y transición ocurren en la misma transacción, con la fila
// de la factura bloqueada (FOR UPDATE) para que dos pagos concurrentes no
// compitan por el check-then-transition.
func (uc *RecordPaymentUseCase) RecordPayment(ctx context.Context, userID, invoiceID string, in dto.RecordPaymentRequest) (*dto.PaymentResponse, error) {
	if invoiceID == "" {
		return nil, fmt.Errorf("%w: id de factura requerido", domain.ErrInvalidInput)
	}
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: el monto del pago debe ser positivo", domain.ErrInvalidInput)
	}

	// Verificación de existencia y pertenencia fuera de la transacción
	// (solo lectura).
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	business, err := uc.businessRepo.GetByID(inv.BusinessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.ErrNotFound
	}
	if business.OwnerID != userID {
		return nil, domain.ErrForbidden
	}

	paidAt := time.Now()
	if in.PaidAt != nil {
		paidAt = *in.PaidAt
	}
	payment := &entity.Payment{
		ID:        uuid.New().String(),
		InvoiceID: invoiceID,
		Amount:    in.Amount,
		Method:    in.Method,
		PaidAt:    paidAt,
		CreatedAt: time.Now(),
	}

	var finalStatus entity.InvoiceStatus
	err = uc.txRunner.RunBilling(ctx, func(
		_ repository.BusinessRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		locked, err := invoiceRepo.GetForUpdate(invoiceID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrNotFound
		}
		if err := paymentRepo.Create(payment); err != nil {
			return err
		}
		total, err := paymentRepo.SumByInvoiceID(invoiceID)
		if err != nil {
			return err
		}
		finalStatus = locked.Status
		if total.GreaterThanOrEqual(locked.TotalTTC) && locked.Status.CanTransitionTo(entity.StatusPaid) {
			if err := invoiceRepo.UpdateStatus(invoiceID, entity.StatusPaid); err != nil {
				return err
			}
			finalStatus = entity.StatusPaid
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &dto.PaymentResponse{
		ID:            payment.ID,
		InvoiceID:     payment.InvoiceID,
		Amount:        payment.Amount,
		Method:        payment.Method,
		PaidAt:        payment.PaidAt,
		InvoiceStatus: string(finalStatus),
	}, nil
}
