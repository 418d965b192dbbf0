package dto

// CreateBusinessRequest body para POST /api/businesses.
type CreateBusinessRequest struct {
	Name          string `json:"name"`
	SIREN         string `json:"siren,omitempty"`
	SIRET         string `json:"siret,omitempty"`
	TVAIntra      string `json:"tva_intra,omitempty"`
	VATScheme     string `json:"vat_scheme"`
	InvoicePrefix string `json:"invoice_prefix,omitempty"`
	Address       string `json:"address,omitempty"`
	City          string `json:"city,omitempty"`
	Zip           string `json:"zip,omitempty"`
}

// BusinessResponse negocio en respuestas. El contador de numeración es interno
// y no se expone.
type BusinessResponse struct {
	ID            string `json:"id"`
	OwnerID       string `json:"owner_id"`
	Name          string `json:"name"`
	SIREN         string `json:"siren,omitempty"`
	SIRET         string `json:"siret,omitempty"`
	TVAIntra      string `json:"tva_intra,omitempty"`
	VATScheme     string `json:"vat_scheme"`
	InvoicePrefix string `json:"invoice_prefix"`
	Address       string `json:"address,omitempty"`
	City          string `json:"city,omitempty"`
	Zip           string `json:"zip,omitempty"`
}
