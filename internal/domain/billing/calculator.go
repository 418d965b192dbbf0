// Package billing contiene la lógica pura de facturación: cálculo de totales
// HT/TVA/TTC a partir de las líneas. Sin efectos secundarios ni persistencia.
package billing

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/facturio/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// LineItem entrada del cálculo: una línea tal como llega en la petición.
type LineItem struct {
	Label       string
	Qty         int64
	UnitPriceHT decimal.Decimal
	VATRate     decimal.Decimal // porcentaje, ej: 20
}

// LineTotals línea con sus importes calculados.
type LineTotals struct {
	LineItem
	LineTotalHT  decimal.Decimal
	LineTotalVAT decimal.Decimal
}

// InvoiceTotals resultado agregado del cálculo.
type InvoiceTotals struct {
	Lines    []LineTotals
	TotalHT  decimal.Decimal
	TotalVAT decimal.Decimal
	TotalTTC decimal.Decimal
}

// Calculator calcula los totales de una factura.
type Calculator struct{}

// NewCalculator construye el servicio.
func NewCalculator() *Calculator { return &Calculator{} }

// Compute calcula línea por línea y luego agrega.
//
// El orden de redondeo es un contrato: la TVA se redondea a 2 decimales POR
// LÍNEA y los totales son sumas de valores ya redondeados. Redondear después
// de sumar da resultados distintos por un céntimo en ciertas combinaciones de
// tasa y cantidad, así que este orden no puede cambiarse.
func (c *Calculator) Compute(items []LineItem) (*InvoiceTotals, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: la factura necesita al menos una línea", domain.ErrInvalidInput)
	}

	totals := &InvoiceTotals{Lines: make([]LineTotals, 0, len(items))}
	var sumHT, sumVAT decimal.Decimal
	for i, it := range items {
		if it.Qty <= 0 {
			return nil, fmt.Errorf("%w: línea %d: cantidad debe ser positiva", domain.ErrInvalidInput, i)
		}
		if it.UnitPriceHT.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d: precio unitario negativo", domain.ErrInvalidInput, i)
		}
		if it.VATRate.IsNegative() {
			return nil, fmt.Errorf("%w: línea %d: tasa de TVA negativa", domain.ErrInvalidInput, i)
		}

		lineHT := it.UnitPriceHT.Mul(decimal.NewFromInt(it.Qty))
		lineVAT := lineHT.Mul(it.VATRate).Div(hundred).Round(2)

		totals.Lines = append(totals.Lines, LineTotals{
			LineItem:     it,
			LineTotalHT:  lineHT,
			LineTotalVAT: lineVAT,
		})
		sumHT = sumHT.Add(lineHT)
		sumVAT = sumVAT.Add(lineVAT)
	}

	totals.TotalHT = sumHT.Round(2)
	totals.TotalVAT = sumVAT.Round(2)
	totals.TotalTTC = totals.TotalHT.Add(totals.TotalVAT).Round(2)
	return totals, nil
}
