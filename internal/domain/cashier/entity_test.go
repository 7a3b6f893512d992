package cashier

import (
	"testing"
	"time"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/account"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession(t *testing.T) {
	_, err := NewSession("2026-10-19", decimal.NewFromInt(-1), "u")
	assert.ErrorIs(t, err, ErrInvalidOpeningFloat)

	s, err := NewSession(DateOf(time.Date(2026, 10, 19, 23, 0, 0, 0, time.UTC)), decimal.NewFromInt(100), "u")
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19", s.Date)
	assert.True(t, s.IsOpen())
}

func TestSaleAndEntryTotals(t *testing.T) {
	s, err := NewSession("2026-10-19", decimal.NewFromInt(50), "u")
	require.NoError(t, err)

	cash, err := account.NewPayment("acc", account.MethodCash, decimal.NewFromInt(10), "u")
	require.NoError(t, err)
	pix, err := account.NewPayment("acc", account.MethodPix, decimal.NewFromInt(15), "u")
	require.NoError(t, err)

	sale, err := s.SaleTotals([]*account.Payment{cash, pix}, decimal.NewFromInt(2), decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.True(t, s.TotalCash.IsZero(), "o cálculo não altera o caixa")
	s.Apply(sale)
	assert.True(t, s.TotalCash.Equal(decimal.NewFromInt(10)))
	assert.True(t, s.TotalPix.Equal(decimal.NewFromInt(15)))
	assert.True(t, s.TotalCredit.IsZero())
	assert.True(t, s.TotalSales().Equal(decimal.NewFromInt(25)))
	assert.True(t, s.TotalDiscounts.Equal(decimal.NewFromInt(2)))
	assert.True(t, s.TotalServiceCharge.Equal(decimal.NewFromInt(1)))

	expense, err := NewEntry(s.ID, EntryExpense, "gás", decimal.NewFromInt(20), account.MethodCash, "u")
	require.NoError(t, err)
	delta, err := s.EntryTotals(expense)
	require.NoError(t, err)
	s.Apply(delta)
	assert.True(t, s.ExpectedCash().Equal(decimal.NewFromInt(40)))

	s.Status = StatusClosed
	_, err = s.SaleTotals(nil, decimal.Zero, decimal.Zero)
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestNewEntryValidation(t *testing.T) {
	_, err := NewEntry("s", EntryCancellation, "x", decimal.NewFromInt(1), account.MethodCash, "u")
	assert.ErrorIs(t, err, ErrInvalidEntry)
	_, err = NewEntry("s", EntryExpense, " ", decimal.NewFromInt(1), account.MethodCash, "u")
	assert.ErrorIs(t, err, ErrInvalidEntry)
	_, err = NewEntry("s", EntryDeposit, "troco", decimal.Zero, account.MethodCash, "u")
	assert.ErrorIs(t, err, ErrInvalidEntry)

	audit := NewCancellationEntry("s", "Conta cancelada", "u")
	assert.True(t, audit.Amount.IsZero())
	assert.Nil(t, audit.Method)
}
