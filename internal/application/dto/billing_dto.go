package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemRequest línea de factura tal como llega en la petición.
type InvoiceItemRequest struct {
	Label       string          `json:"label"`
	Qty         int64           `json:"qty"`
	UnitPriceHT decimal.Decimal `json:"unit_price_ht"`
	VATRate     decimal.Decimal `json:"vat_rate"`
}

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	BusinessID string               `json:"business_id"`
	ClientID   string               `json:"client_id"`
	Items      []InvoiceItemRequest `json:"items"`
	Notes      string               `json:"notes,omitempty"`
}

// InvoiceLineResponse línea en la respuesta.
type InvoiceLineResponse struct {
	ID           string          `json:"id"`
	Label        string          `json:"label"`
	Qty          int64           `json:"qty"`
	UnitPriceHT  decimal.Decimal `json:"unit_price_ht"`
	VATRate      decimal.Decimal `json:"vat_rate"`
	LineTotalHT  decimal.Decimal `json:"line_total_ht"`
	LineTotalVAT decimal.Decimal `json:"line_total_vat"`
}

// InvoiceResponse factura con líneas.
type InvoiceResponse struct {
	ID               string                `json:"id"`
	BusinessID       string                `json:"business_id"`
	ClientID         string                `json:"client_id"`
	Number           string                `json:"number"`
	IssueDate        string                `json:"issue_date"` // YYYY-MM-DD
	DueDate          string                `json:"due_date"`
	Status           string                `json:"status"`
	TotalHT          decimal.Decimal       `json:"total_ht"`
	TotalVAT         decimal.Decimal       `json:"total_vat"`
	TotalTTC         decimal.Decimal       `json:"total_ttc"`
	Notes            string                `json:"notes,omitempty"`
	DocumentLocation string                `json:"document_location,omitempty"`
	Lines            []InvoiceLineResponse `json:"lines"`
}

// RecordPaymentRequest body para POST /api/invoices/:id/payments.
// PaidAt es opcional; si falta se usa la hora actual.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method,omitempty"`
	PaidAt *time.Time      `json:"paid_at,omitempty"`
}

// PaymentResponse pago registrado.
type PaymentResponse struct {
	ID        string          `json:"id"`
	InvoiceID string          `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method,omitempty"`
	PaidAt    time.Time       `json:"paid_at"`
	// Estado de la factura después de registrar el pago ("sent" o "paid").
	InvoiceStatus string `json:"invoice_status"`
}
