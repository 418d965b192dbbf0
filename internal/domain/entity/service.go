package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service representa una prestación del catálogo del negocio.
// Se usa para pre-rellenar líneas de factura en el cliente; la factura copia
// los valores, nunca referencia al servicio.
type Service struct {
	ID          string
	BusinessID  string
	Name        string
	DurationMin int
	PriceHT     decimal.Decimal
	VATRate     decimal.Decimal // porcentaje, ej: 20
	CreatedAt   time.Time
}
