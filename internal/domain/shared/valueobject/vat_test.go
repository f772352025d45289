package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name      string
		quantity  string
		unitPrice string
		want      string
	}{
		{"whole hours", "8", "75.00", "600.00"},
		{"fractional cents round per line", "3", "33.335", "100.01"},
		{"zero quantity", "0", "75.00", "0.00"},
		{"sub-cent price", "100", "0.005", "0.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qty, err := decimal.NewFromString(tt.quantity)
			require.NoError(t, err)
			price, err := NewMoneyFromString(tt.unitPrice, EUR)
			require.NoError(t, err)

			assert.Equal(t, tt.want, LineTotal(qty, price).StringFixed(2))
		})
	}
}

func TestVATAmount(t *testing.T) {
	amount := NewMoneyEURFromFloat(600.00)
	vat := VATAmount(amount, StandardVATRate)
	assert.Equal(t, "126.00", vat.StringFixed(2))
}

func TestComputeTotals(t *testing.T) {
	t.Run("rounding is deterministic", func(t *testing.T) {
		qty := decimal.NewFromInt(3)
		price, err := NewMoneyFromString("33.335", EUR)
		require.NoError(t, err)

		totals := ComputeTotals([]Line{{Quantity: qty, UnitPrice: price}})

		// 3 × 33.335 = 100.005 → 100.01 under round-half-away-from-zero
		assert.Equal(t, "100.01", totals.Subtotal.StringFixed(2))
		assert.Equal(t, "21.00", totals.VAT.StringFixed(2))
		assert.Equal(t, "121.01", totals.Total.StringFixed(2))
	})

	t.Run("scenario: one week of hourly work", func(t *testing.T) {
		qty := decimal.NewFromInt(8)
		price := NewMoneyEURFromFloat(75.00)

		totals := ComputeTotals([]Line{{Quantity: qty, UnitPrice: price}})

		assert.Equal(t, "600.00", totals.Subtotal.StringFixed(2))
		assert.Equal(t, "126.00", totals.VAT.StringFixed(2))
		assert.Equal(t, "726.00", totals.Total.StringFixed(2))
	})

	t.Run("empty lines give zero totals", func(t *testing.T) {
		totals := ComputeTotals(nil)
		assert.True(t, totals.Subtotal.IsZero())
		assert.True(t, totals.VAT.IsZero())
		assert.True(t, totals.Total.IsZero())
	})
}

func TestTotalsFromSubtotal(t *testing.T) {
	totals := TotalsFromSubtotal(ZeroEUR())
	assert.Equal(t, "0.00", totals.Total.StringFixed(2))

	totals = TotalsFromSubtotal(NewMoneyEURFromFloat(600.00))
	assert.Equal(t, "726.00", totals.Total.StringFixed(2))
}
