package repository

import "github.com/jhoicas/facturio/internal/domain/entity"

// BusinessRepository define el puerto de persistencia para Business.
type BusinessRepository interface {
	Create(business *entity.Business) error
	GetByID(id string) (*entity.Business, error)
	GetByOwner(ownerID string) (*entity.Business, error)
	List(limit, offset int) ([]*entity.Business, error)
	// NextInvoiceSeq incrementa y devuelve el contador de numeración del
	// negocio. El UPDATE toma el row lock de la fila, así que dos creaciones
	// concurrentes sobre el mismo negocio quedan serializadas. Debe llamarse
	// con un repositorio atado a la transacción de creación de la factura.
	NextInvoiceSeq(businessID string) (int64, error)
}
