package repository

import "github.com/jhoicas/facturio/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateLine(line *entity.InvoiceLine) error
	GetByID(id string) (*entity.Invoice, error)
	// GetForUpdate carga la cabecera tomando el row lock (SELECT ... FOR UPDATE).
	// Solo tiene sentido con un repositorio atado a una transacción; serializa
	// el registro de pagos concurrentes sobre la misma factura.
	GetForUpdate(id string) (*entity.Invoice, error)
	GetLinesByInvoiceID(invoiceID string) ([]*entity.InvoiceLine, error)
	// ListByBusiness devuelve cabeceras del negocio ordenadas de más reciente
	// a más antigua.
	ListByBusiness(businessID string, limit, offset int) ([]*entity.Invoice, error)
	// UpdateStatus aplica una transición de estado. Solo acepta pasos hacia
	// adelante según la tabla de entity.InvoiceStatus; es no-op idempotente si
	// la factura ya está en el estado destino y retorna
	// domain.ErrInvalidTransition en cualquier otro caso.
	UpdateStatus(id string, status entity.InvoiceStatus) error
	SetDocumentLocation(id, location string) error
}
