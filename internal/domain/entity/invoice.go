package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus estado de una factura. Enumeración cerrada: el único camino
// válido es draft → sent → paid, sin retrocesos ni saltos.
type InvoiceStatus string

const (
	StatusDraft InvoiceStatus = "draft"
	StatusSent  InvoiceStatus = "sent"
	StatusPaid  InvoiceStatus = "paid"
)

// transitions tabla explícita de transiciones permitidas.
var transitions = map[InvoiceStatus][]InvoiceStatus{
	StatusDraft: {StatusSent},
	StatusSent:  {StatusPaid},
	StatusPaid:  {}, // terminal
}

// Valid indica si el valor pertenece a la enumeración.
func (s InvoiceStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo indica si el paso s → next está en la tabla de transiciones.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// IsTerminal indica si no hay transiciones posibles desde s.
func (s InvoiceStatus) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// Invoice representa la cabecera de una factura. Los totales son inmutables
// después de la creación; solo Status y DocumentLocation cambian.
type Invoice struct {
	ID               string
	BusinessID       string
	ClientID         string
	Number           string // "<prefix>-<secuencia %05d>", único por negocio
	IssueDate        time.Time
	DueDate          time.Time
	Status           InvoiceStatus
	TotalHT          decimal.Decimal
	TotalVAT         decimal.Decimal
	TotalTTC         decimal.Decimal
	Notes            string
	DocumentLocation string // ruta del PDF generado; vacío si nunca se generó
	CreatedAt        time.Time
	Lines            []*InvoiceLine
}

// InvoiceLine representa una línea de factura, creada atómicamente con la
// cabecera y nunca mutada.
type InvoiceLine struct {
	ID           string
	InvoiceID    string
	Label        string
	Qty          int64
	UnitPriceHT  decimal.Decimal
	VATRate      decimal.Decimal // porcentaje
	LineTotalHT  decimal.Decimal
	LineTotalVAT decimal.Decimal
}
