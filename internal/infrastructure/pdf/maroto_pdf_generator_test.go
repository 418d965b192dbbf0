package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturio/internal/domain"
	"github.com/jhoicas/facturio/internal/domain/entity"
	"github.com/jhoicas/facturio/internal/infrastructure/pdf"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del generador de PDF. No validan el render píxel a píxel: validan que
// el documento se produce, que es un PDF y, sobre todo, que el mismo estado de
// factura produce siempre los mismos bytes (la fecha de creación del PDF está
// fijada a la fecha de emisión, no al reloj del sistema).
// ──────────────────────────────────────────────────────────────────────────────

func buildTestInvoice(numLines int) (*entity.Invoice, *entity.Business, *entity.Client) {
	issue := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	inv := &entity.Invoice{
		ID:         "inv-1",
		BusinessID: "biz-1",
		ClientID:   "cli-1",
		Number:     "FAC-00042",
		IssueDate:  issue,
		DueDate:    issue.AddDate(0, 0, 14),
		Status:     entity.StatusSent,
		TotalHT:    decimal.RequireFromString("100.00"),
		TotalVAT:   decimal.RequireFromString("20.00"),
		TotalTTC:   decimal.RequireFromString("120.00"),
		Notes:      "Paiement par virement.",
		CreatedAt:  issue,
	}
	for i := 0; i < numLines; i++ {
		inv.Lines = append(inv.Lines, &entity.InvoiceLine{
			ID:           "line",
			InvoiceID:    inv.ID,
			Label:        "Séance de coaching",
			Qty:          2,
			UnitPriceHT:  decimal.RequireFromString("50.00"),
			VATRate:      decimal.NewFromInt(20),
			LineTotalHT:  decimal.RequireFromString("100.00"),
			LineTotalVAT: decimal.RequireFromString("20.00"),
		})
	}
	business := &entity.Business{
		ID:            "biz-1",
		Name:          "Claire Dupont Coaching",
		SIREN:         "123456789",
		SIRET:         "12345678900011",
		VATScheme:     entity.VATSchemeStandard,
		InvoicePrefix: "FAC",
		Address:       "12 rue des Lilas",
		City:          "Lyon",
		Zip:           "69003",
	}
	client := &entity.Client{
		ID:         "cli-1",
		BusinessID: "biz-1",
		FirstName:  "Marc",
		LastName:   "Durand",
		Email:      "marc.durand@example.fr",
	}
	return inv, business, client
}

func TestGenerateInvoicePDF_ProduceDocumentoValido(t *testing.T) {
	gen := pdf.NewMarotoPDFGenerator()
	inv, business, client := buildTestInvoice(1)

	doc, err := gen.GenerateInvoicePDF(context.Background(), inv, business, client)
	require.NoError(t, err)
	require.NotEmpty(t, doc)
	assert.Equal(t, "%PDF", string(doc[:4]), "el documento debe empezar con la firma PDF")
}

func TestGenerateInvoicePDF_Deterministico(t *testing.T) {
	gen := pdf.NewMarotoPDFGenerator()
	inv, business, client := buildTestInvoice(3)

	doc1, err := gen.GenerateInvoicePDF(context.Background(), inv, business, client)
	require.NoError(t, err)
	doc2, err := gen.GenerateInvoicePDF(context.Background(), inv, business, client)
	require.NoError(t, err)

	assert.Equal(t, doc1, doc2, "el mismo estado de factura debe producir los mismos bytes")
}

func TestGenerateInvoicePDF_FacturaLargaMultipagina(t *testing.T) {
	gen := pdf.NewMarotoPDFGenerator()
	inv, business, client := buildTestInvoice(120)

	doc, err := gen.GenerateInvoicePDF(context.Background(), inv, business, client)
	require.NoError(t, err)
	require.NotEmpty(t, doc)

	// 120 líneas no caben en una página A4: el documento debe ser
	// sustancialmente más grande que el de una sola línea.
	short, _, _ := buildTestInvoice(1)
	docShort, err := gen.GenerateInvoicePDF(context.Background(), short, business, client)
	require.NoError(t, err)
	assert.Greater(t, len(doc), len(docShort))
}

func TestGenerateInvoicePDF_RechazaSinLineas(t *testing.T) {
	gen := pdf.NewMarotoPDFGenerator()
	inv, business, client := buildTestInvoice(0)

	_, err := gen.GenerateInvoicePDF(context.Background(), inv, business, client)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerateInvoicePDF_RechazaExcesoDeLineas(t *testing.T) {
	gen := pdf.NewMarotoPDFGenerator()
	inv, business, client := buildTestInvoice(501)

	_, err := gen.GenerateInvoicePDF(context.Background(), inv, business, client)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
