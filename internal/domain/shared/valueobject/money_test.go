package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("valid money", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(100.50), EUR)
		require.NoError(t, err)
		assert.Equal(t, "100.50", m.StringFixed(2))
		assert.Equal(t, EUR, m.Currency())
	})

	t.Run("empty currency rejected", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "")
		assert.Error(t, err)
	})

	t.Run("from string", func(t *testing.T) {
		m, err := NewMoneyFromString("33.335", EUR)
		require.NoError(t, err)
		assert.Equal(t, "33.335", m.Amount().String())
	})

	t.Run("invalid string rejected", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number", EUR)
		assert.Error(t, err)
	})
}

func TestMoney_Add(t *testing.T) {
	a := NewMoneyEURFromFloat(10.10)
	b := NewMoneyEURFromFloat(5.15)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "15.25", sum.StringFixed(2))

	other, _ := NewMoney(decimal.NewFromInt(1), USD)
	_, err = a.Add(other)
	assert.Error(t, err)
}

func TestMoney_Round(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{"half rounds away from zero", "100.005", "100.01"},
		{"below half rounds down", "100.004", "100.00"},
		{"above half rounds up", "100.006", "100.01"},
		{"negative half rounds away from zero", "-100.005", "-100.01"},
		{"exact value unchanged", "600.00", "600.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoneyFromString(tt.amount, EUR)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Round(2).StringFixed(2))
		})
	}
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyEURFromFloat(726.00)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("600.00"))
	assert.Equal(t, "600.00", m.StringFixed(2))
	assert.Equal(t, DefaultCurrency, m.Currency())

	var nilMoney Money
	require.NoError(t, nilMoney.Scan(nil))
	assert.True(t, nilMoney.IsZero())
}
