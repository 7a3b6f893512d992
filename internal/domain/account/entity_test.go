package account

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newProductItem(t *testing.T, accountID, price string, qty int) *Item {
	t.Helper()
	it, err := NewItem(accountID, KindProduct, "prod-1", "Café", dec(price), qty, "")
	require.NoError(t, err)
	return it
}

func TestItemTransitions(t *testing.T) {
	all := []ItemStatus{ItemPending, ItemInKitchen, ItemReady, ItemDelivered, ItemCancelled}
	allowed := map[[2]ItemStatus]bool{
		{ItemPending, ItemInKitchen}: true,
		{ItemPending, ItemCancelled}: true,
		{ItemInKitchen, ItemReady}:   true,
		{ItemReady, ItemDelivered}:   true,
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]ItemStatus{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestItemLifecycle(t *testing.T) {
	it := newProductItem(t, "acc", "5.00", 2)
	assert.True(t, it.LineTotal.Equal(dec("10.00")))
	assert.Equal(t, ItemPending, it.Status)

	assert.ErrorIs(t, it.MarkReady(), ErrInvalidTransition)

	sent := time.Now().Add(-90 * time.Second)
	require.NoError(t, it.SendToKitchen(sent))
	assert.True(t, it.SentToKitchen)
	assert.ErrorIs(t, it.Cancel("u", "", time.Now()), ErrItemCommitted)
	assert.Equal(t, ItemInKitchen, it.Status)

	require.NoError(t, it.MarkReady())
	require.NoError(t, it.MarkDelivered(sent.Add(90*time.Second)))
	require.NotNil(t, it.ProductionSeconds)
	assert.Equal(t, 90, *it.ProductionSeconds)

	assert.ErrorIs(t, it.SendToKitchen(time.Now()), ErrInvalidTransition)
}

func TestNewItemValidation(t *testing.T) {
	_, err := NewItem("acc", KindProduct, "p", "Café", dec("5"), 0, "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewItem("acc", KindProduct, "", "Café", dec("5"), 1, "")
	assert.ErrorIs(t, err, ErrItemReference)

	it, err := NewItem("acc", KindCombo, "c", "Combo", dec("20"), 1, "sem cebola")
	require.NoError(t, err)
	assert.Nil(t, it.ProductID)
	require.NotNil(t, it.ComboID)
	assert.Equal(t, "c", *it.ComboID)
}

func TestRecalculate(t *testing.T) {
	a := NewTableAccount("table-1", "user", dec("10"))

	coffee := newProductItem(t, a.ID, "5.00", 2)
	bread := newProductItem(t, a.ID, "3.50", 1)
	items := []*Item{coffee, bread}

	a.Recalculate(items)
	assert.True(t, a.Subtotal.Equal(dec("13.50")))
	assert.True(t, a.ServiceChargeAmount.Equal(dec("1.35")))
	assert.True(t, a.FinalTotal.Equal(dec("14.85")))

	require.NoError(t, coffee.Cancel("user", "engano", time.Now()))
	a.Recalculate(items)
	assert.True(t, a.Subtotal.Equal(dec("3.50")))
	assert.True(t, a.FinalTotal.Equal(a.Subtotal.Sub(a.Discount).Add(a.ServiceChargeAmount)))
}

func TestApplyAdjustments(t *testing.T) {
	a := NewTableAccount("table-1", "user", decimal.Zero)
	items := []*Item{newProductItem(t, a.ID, "25.00", 1)}

	assert.ErrorIs(t, a.ApplyAdjustments(dec("30"), decimal.Zero, items), ErrInvalidDiscount)
	assert.ErrorIs(t, a.ApplyAdjustments(decimal.Zero, dec("101"), items), ErrInvalidServiceFee)

	require.NoError(t, a.ApplyAdjustments(dec("5"), dec("10"), items))
	assert.True(t, a.FinalTotal.Equal(dec("22.50")))
}

func TestCheckPayments(t *testing.T) {
	a := NewTableAccount("table-1", "user", decimal.Zero)
	a.Recalculate([]*Item{newProductItem(t, a.ID, "25.00", 1)})

	pay := func(method PaymentMethod, amount string) *Payment {
		p, err := NewPayment(a.ID, method, dec(amount), "user")
		require.NoError(t, err)
		return p
	}

	assert.NoError(t, a.CheckPayments([]*Payment{pay(MethodCash, "10"), pay(MethodPix, "15")}))
	assert.NoError(t, a.CheckPayments([]*Payment{pay(MethodCash, "25.01")}))
	assert.ErrorIs(t, a.CheckPayments([]*Payment{pay(MethodCash, "20")}), ErrPaymentMismatch)
	assert.ErrorIs(t, a.CheckPayments(nil), ErrNoPayments)

	_, err := NewPayment(a.ID, "cheque", dec("10"), "user")
	assert.ErrorIs(t, err, ErrInvalidPayment)
	_, err = NewPayment(a.ID, MethodPix, decimal.Zero, "user")
	assert.ErrorIs(t, err, ErrInvalidPayment)
}

func TestCheckCancellable(t *testing.T) {
	pending := newProductItem(t, "acc", "5", 1)
	delivered := newProductItem(t, "acc", "5", 1)
	require.NoError(t, delivered.SendToKitchen(time.Now()))
	require.NoError(t, delivered.MarkReady())
	require.NoError(t, delivered.MarkDelivered(time.Now()))

	assert.NoError(t, CheckCancellable([]*Item{pending, delivered}))

	ready := newProductItem(t, "acc", "5", 1)
	require.NoError(t, ready.SendToKitchen(time.Now()))
	assert.ErrorIs(t, CheckCancellable([]*Item{pending, ready}), ErrItemsInProduction)
}

func TestAccountTerminalStates(t *testing.T) {
	_, err := NewWalkInAccount("   ", "user", decimal.Zero)
	assert.ErrorIs(t, err, ErrEmptyCustomerName)

	a, err := NewWalkInAccount("Ana", "user", decimal.Zero)
	require.NoError(t, err)
	assert.Nil(t, a.TableID)

	require.NoError(t, a.Close("caixa", time.Now()))
	assert.ErrorIs(t, a.Cancel("caixa", "x", time.Now()), ErrNotOpen)
	assert.ErrorIs(t, a.Close("caixa", time.Now()), ErrNotOpen)
}
