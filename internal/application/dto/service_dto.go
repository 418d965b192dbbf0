package dto

import "github.com/shopspring/decimal"

// CreateServiceRequest body para POST /api/services.
type CreateServiceRequest struct {
	BusinessID  string          `json:"business_id"`
	Name        string          `json:"name"`
	DurationMin int             `json:"duration_min"`
	PriceHT     decimal.Decimal `json:"price_ht"`
	VATRate     decimal.Decimal `json:"vat_rate"`
}

// ServiceResponse prestación del catálogo en respuestas.
type ServiceResponse struct {
	ID          string          `json:"id"`
	BusinessID  string          `json:"business_id"`
	Name        string          `json:"name"`
	DurationMin int             `json:"duration_min"`
	PriceHT     decimal.Decimal `json:"price_ht"`
	VATRate     decimal.Decimal `json:"vat_rate"`
}
