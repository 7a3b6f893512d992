package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProductValidation(t *testing.T) {
	_, err := NewProduct("  ", decimal.NewFromInt(5), false)
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewProduct("Café", decimal.NewFromInt(-1), false)
	assert.ErrorIs(t, err, ErrInvalidPrice)

	p, err := NewProduct(" Café ", decimal.RequireFromString("5.005"), true)
	require.NoError(t, err)
	assert.Equal(t, "Café", p.Name)
	assert.True(t, p.Price.Equal(decimal.RequireFromString("5.01")))
	assert.True(t, p.IsActive())
}

func TestDeactivate(t *testing.T) {
	p, err := NewProduct("Pão de queijo", decimal.NewFromInt(4), true)
	require.NoError(t, err)

	p.Deactivate()
	assert.False(t, p.IsActive())
	p.Activate()
	assert.True(t, p.IsActive())
}
