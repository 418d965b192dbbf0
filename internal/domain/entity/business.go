package entity

import "time"

// Regímenes de TVA soportados. Con franquicia (art. 293 B du CGI) la factura
// no lleva línea de TVA y el PDF incluye la mención legal.
const (
	VATSchemeStandard  = "standard"
	VATSchemeFranchise = "franchise"
)

// Business representa el negocio emisor de facturas (micro-entreprise francesa).
// InvoiceSeq es el contador atómico de numeración: se incrementa dentro de la
// misma transacción que inserta la factura, nunca con COUNT(*)+1.
type Business struct {
	ID            string
	OwnerID       string
	Name          string
	SIREN         string
	SIRET         string
	TVAIntra      string // n° TVA intracommunautaire
	VATScheme     string // "standard", "franchise"
	InvoicePrefix string // ej: "FAC"
	InvoiceSeq    int64  // último número de secuencia consumido
	Address       string
	City          string
	Zip           string
	CreatedAt     time.Time
}
