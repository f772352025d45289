package valueobject

import (
	"github.com/shopspring/decimal"
)

// StandardVATRate is the Dutch standard VAT (BTW) rate applied to invoice subtotals.
var StandardVATRate = decimal.NewFromFloat(0.21)

// LineTotal computes quantity × unitPrice rounded half away from zero to 2
// decimals. Rounding happens per line; fractional cents never accumulate
// across lines.
func LineTotal(quantity decimal.Decimal, unitPrice Money) Money {
	return unitPrice.Multiply(quantity).Round(2)
}

// VATAmount computes the VAT component of an amount at the given rate,
// rounded to 2 decimals.
func VATAmount(amount Money, rate decimal.Decimal) Money {
	return amount.Multiply(rate).Round(2)
}

// InvoiceTotals is the breakdown of an invoice amount into subtotal, VAT and total.
type InvoiceTotals struct {
	Subtotal Money
	VAT      Money
	Total    Money
}

// Line is one billable line entering a totals computation.
type Line struct {
	Quantity  decimal.Decimal
	UnitPrice Money
}

// ComputeTotals sums per-line rounded totals into a subtotal, applies the
// standard VAT rate, and returns the grand total. Every intermediate value is
// rounded to 2 decimals.
func ComputeTotals(lines []Line) InvoiceTotals {
	subtotal := ZeroEUR()
	if len(lines) > 0 {
		subtotal = Zero(lines[0].UnitPrice.Currency())
	}
	for _, l := range lines {
		subtotal = subtotal.MustAdd(LineTotal(l.Quantity, l.UnitPrice))
	}
	subtotal = subtotal.Round(2)
	return TotalsFromSubtotal(subtotal)
}

// TotalsFromSubtotal derives VAT and total from an already-aggregated subtotal.
func TotalsFromSubtotal(subtotal Money) InvoiceTotals {
	vat := VATAmount(subtotal, StandardVATRate)
	return InvoiceTotals{
		Subtotal: subtotal,
		VAT:      vat,
		Total:    subtotal.MustAdd(vat).Round(2),
	}
}
