// Package pdf implementa la generación del documento PDF de la factura
// (layout francés para micro-entreprises).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Negocio + SIRET  │  FACTURE N° + Émise/Échéance    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENT: Nombre + contacto                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Désignation | Qté | PU HT | TVA | Total HT          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total HT / Total TVA / Total TTC                  │
//	│  NOTES + mención legal                                      │
//	└─────────────────────────────────────────────────────────────┘
//
// El mismo estado de factura produce siempre los mismos bytes: la fecha de
// creación del PDF se fija a la fecha de emisión de la factura, no al reloj.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/facturio/internal/application/billing"
	"github.com/jhoicas/facturio/internal/domain"
	"github.com/jhoicas/facturio/internal/domain/entity"
)

// maxLines límite de líneas renderizables. Una factura de micro-entreprise
// real tiene decenas de líneas como mucho; más allá de esto el payload es
// sospechoso y preferimos rechazar a producir un documento gigante.
const maxLines = 500

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 31, Green: 56, Blue: 100}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ billing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes. La factura debe
// llegar con Lines cargadas. Las filas usan el salto de página automático de
// Maroto: una factura larga continúa en la página siguiente sin perder filas
// ni pisar el bloque de totales.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	business *entity.Business,
	client *entity.Client,
) ([]byte, error) {
	if len(invoice.Lines) == 0 {
		return nil, fmt.Errorf("%w: factura sin líneas", domain.ErrInvalidInput)
	}
	if len(invoice.Lines) > maxLines {
		return nil, fmt.Errorf("%w: factura con %d líneas (máximo %d)", domain.ErrInvalidInput, len(invoice.Lines), maxLines)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Facture "+invoice.Number, true).
		WithAuthor(business.Name, true).
		WithCreationDate(invoice.IssueDate).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice, business))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(invoice.Lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice, business))

	for _, r := range footerRows(invoice, business) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del negocio + SIRET (izq) y FACTURE N° + fechas (der).
func headerRow(invoice *entity.Invoice, business *entity.Business) core.Row {
	return row.New(22).Add(
		col.New(7).Add(
			text.New(business.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("SIRET : "+nonEmpty(business.SIRET, "—"), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
			text.New(nonEmpty(addressLine(business), "—"), props.Text{
				Size: 8, Top: 14, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Émise le : "+invoice.IssueDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
			text.New("Échéance : "+invoice.DueDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 18, Color: colorGray,
			}),
		),
	)
}

// clientRow: datos del cliente facturado.
func clientRow(client *entity.Client) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("FACTURÉ À", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(client.FullName(), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email : %s   |   Tél : %s",
				nonEmpty(client.Email, "—"),
				nonEmpty(client.Phone, "—"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Désignation", 5, align.Left),
		h("Qté", 1, align.Center),
		h("PU HT", 2, align.Right),
		h("TVA", 1, align.Center),
		h("Total HT", 3, align.Right),
	)
}

// tableLineRows: una fila por línea de factura.
func tableLineRows(lines []*entity.InvoiceLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(
				l.Label,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Qty),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				formatEUR(l.UnitPriceHT),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				formatRate(l.VATRate),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				formatEUR(l.LineTotalHT),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque Total HT / Total TVA / Total TTC alineado a la derecha.
// Con régimen de franquicia de TVA se muestra la mención del art. 293 B en
// lugar de la línea de TVA.
func totalsRow(invoice *entity.Invoice, business *entity.Business) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	labels := []core.Component{label("Total HT :")}
	values := []core.Component{value(formatEUR(invoice.TotalHT))}
	if business.VATScheme != entity.VATSchemeFranchise {
		labels = append(labels, label("Total TVA :"))
		values = append(values, value(formatEUR(invoice.TotalVAT)))
	}
	labels = append(labels, grandLabel("Total TTC :"))
	values = append(values, grandValue(formatEUR(invoice.TotalTTC)))

	return row.New(26).Add(
		col.New(4),
		col.New(4).Add(labels...),
		col.New(4).Add(values...),
	)
}

// footerRows: notas libres + menciones legales.
func footerRows(invoice *entity.Invoice, business *entity.Business) []core.Row {
	rows := []core.Row{row.New(3)}

	if invoice.Notes != "" {
		rows = append(rows,
			row.New(5).Add(col.New(12).Add(
				text.New("Notes :", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}),
			)),
			row.New(8).Add(col.New(12).Add(
				text.New(invoice.Notes, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 2}),
			)),
		)
	}

	rows = append(rows, line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))

	if business.VATScheme == entity.VATSchemeFranchise {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("TVA non applicable, art. 293 B du CGI.", props.Text{
				Size: 7, Color: colorGray, Top: 1,
			}),
		)))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf(
			"%s — SIREN %s%s. En cas de retard de paiement, indemnité forfaitaire pour frais de recouvrement : 40 €.",
			business.Name,
			nonEmpty(business.SIREN, "—"),
			tvaIntraMention(business),
		), props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	)))
	return rows
}

// ── Formato ───────────────────────────────────────────────────────────────────

// frPrinter formatea números con convenciones francesas (espacio de millar,
// coma decimal).
var frPrinter = message.NewPrinter(language.French)

// formatEUR formatea un monto en euros estilo francés: "1 234,56 €".
func formatEUR(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return frPrinter.Sprintf("%.2f €", f)
}

// formatRate formatea un porcentaje de TVA sin decimales sobrantes: "20 %".
func formatRate(d decimal.Decimal) string {
	s := d.String()
	return s + " %"
}

func addressLine(b *entity.Business) string {
	if b.Address == "" && b.Zip == "" && b.City == "" {
		return ""
	}
	return fmt.Sprintf("%s, %s %s", b.Address, b.Zip, b.City)
}

func tvaIntraMention(b *entity.Business) string {
	if b.TVAIntra == "" {
		return ""
	}
	return ", TVA intracommunautaire " + b.TVAIntra
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
