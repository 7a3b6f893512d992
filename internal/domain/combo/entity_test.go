package combo

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefine(t *testing.T) {
	prices := map[string]decimal.Decimal{
		"cafe": decimal.RequireFromString("5.00"),
		"pao":  decimal.RequireFromString("3.50"),
	}

	tests := []struct {
		name    string
		combo   string
		sale    string
		items   []Item
		wantErr error
	}{
		{"empty name", " ", "10", []Item{{"cafe", 1}}, ErrEmptyName},
		{"negative price", "Café da manhã", "-1", []Item{{"cafe", 1}}, ErrInvalidSalePrice},
		{"no products", "Café da manhã", "10", []Item{{"cafe", 0}}, ErrNoProducts},
		{"negative quantity", "Café da manhã", "10", []Item{{"cafe", -1}}, ErrInvalidQuantity},
		{"unknown product", "Café da manhã", "10", []Item{{"suco", 1}}, ErrUnknownProduct},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCombo()
			err := c.Define(tt.combo, "", decimal.RequireFromString(tt.sale), false, tt.items, prices)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	c := NewCombo()
	err := c.Define("Café da manhã", "", decimal.RequireFromString("10"), true,
		[]Item{{"cafe", 1}, {"pao", 1}, {"pao", 1}}, prices)
	require.NoError(t, err)
	assert.Len(t, c.Items, 2)
	assert.Equal(t, 2, c.Items[1].Quantity)
	assert.True(t, c.ProductsTotal.Equal(decimal.RequireFromString("12.00")))
	assert.True(t, c.Savings().Equal(decimal.RequireFromString("2.00")))
}
