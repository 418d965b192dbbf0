package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment representa un pago registrado contra una factura. Se inserta una vez
// y nunca se modifica ni se borra.
type Payment struct {
	ID        string
	InvoiceID string
	Amount    decimal.Decimal
	Method    string // ej: "virement", "CB", "chèque"; vacío si no se indicó
	PaidAt    time.Time
	CreatedAt time.Time
}
