package catalog

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/hugohenrick/pdv-restaurante/internal/adapter/memory"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/account"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/combo"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/product"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/table"
	"github.com/hugohenrick/pdv-restaurante/pkg/apperror"
	"github.com/hugohenrick/pdv-restaurante/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	bucket, filename, content string
}

func (u *fakeUploader) Upload(_ context.Context, bucket, filename string, r io.Reader) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	u.bucket, u.filename, u.content = bucket, filename, string(b)
	return "http://cdn/" + bucket + "/" + filename, nil
}

func newService(t *testing.T) (*Service, *memory.Store, *fakeUploader) {
	t.Helper()
	st := memory.NewStore()
	up := &fakeUploader{}
	svc := NewService(st, up, logger.NewNop())
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return svc, st, up
}

func TestProducts(t *testing.T) {
	ctx := context.Background()
	svc, _, up := newService(t)

	_, err := svc.CreateProduct(ctx, ProductInput{Name: " ", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, product.ErrEmptyName)
	_, err = svc.CreateProduct(ctx, ProductInput{Name: "Pão", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, product.ErrInvalidPrice)

	bread, err := svc.CreateProduct(ctx, ProductInput{Name: "Pão", Price: decimal.RequireFromString("0.75"), Category: "padaria"})
	require.NoError(t, err)
	assert.Equal(t, "padaria", bread.Category)
	_, err = svc.CreateProduct(ctx, ProductInput{Name: "Café", Price: decimal.NewFromInt(5), MadeByKitchen: true})
	require.NoError(t, err)

	all, err := svc.ListProducts(ctx, product.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Café", all[0].Name)

	_, err = svc.DeactivateProduct(ctx, bread.ID)
	require.NoError(t, err)
	active, err := svc.ListProducts(ctx, product.Filter{OnlyActive: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "Café", active[0].Name)

	reactivated, err := svc.ActivateProduct(ctx, bread.ID)
	require.NoError(t, err)
	assert.True(t, reactivated.IsActive())

	updated, err := svc.UpdateProduct(ctx, bread.ID, ProductInput{Name: "Pão francês", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)
	assert.Equal(t, "Pão francês", updated.Name)

	withPhoto, err := svc.UploadProductPhoto(ctx, bread.ID, "foto.png", strings.NewReader("img"))
	require.NoError(t, err)
	assert.Equal(t, "http://cdn/produtos/1700000000000.png", withPhoto.PhotoURL)
	assert.Equal(t, "img", up.content)

	_, err = svc.UploadProductPhoto(ctx, "nao-existe", "foto.png", strings.NewReader(""))
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestCombos(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)
	coffee, err := svc.CreateProduct(ctx, ProductInput{Name: "Café", Price: decimal.NewFromInt(5)})
	require.NoError(t, err)
	cake, err := svc.CreateProduct(ctx, ProductInput{Name: "Bolo", Price: decimal.NewFromInt(15)})
	require.NoError(t, err)

	_, err = svc.CreateCombo(ctx, ComboInput{Name: "Vazio", SalePrice: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, combo.ErrNoProducts)
	_, err = svc.CreateCombo(ctx, ComboInput{Name: "X", SalePrice: decimal.NewFromInt(1),
		Items: []combo.Item{{ProductID: "fantasma", Quantity: 1}}})
	assert.ErrorIs(t, err, combo.ErrUnknownProduct)

	c, err := svc.CreateCombo(ctx, ComboInput{
		Name:      "Café da manhã",
		SalePrice: decimal.NewFromInt(22),
		Items:     []combo.Item{{ProductID: coffee.ID, Quantity: 2}, {ProductID: cake.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "25.00", c.ProductsTotal.StringFixed(2))
	assert.Equal(t, "3.00", c.Savings().StringFixed(2))

	updated, err := svc.UpdateCombo(ctx, c.ID, ComboInput{
		Name:      "Café duplo",
		SalePrice: decimal.NewFromInt(9),
		Items:     []combo.Item{{ProductID: coffee.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, "10.00", updated.ProductsTotal.StringFixed(2))

	stored, err := svc.GetCombo(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 1)

	_, err = svc.DeactivateCombo(ctx, c.ID)
	require.NoError(t, err)
	active, err := svc.ListCombos(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	withPhoto, err := svc.UploadComboPhoto(ctx, c.ID, "combo.jpg", strings.NewReader("img"))
	require.NoError(t, err)
	assert.Equal(t, "http://cdn/combos/1700000000000.jpg", withPhoto.PhotoURL)
}

func TestTables(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := newService(t)

	_, err := svc.CreateTable(ctx, 0, "")
	assert.ErrorIs(t, err, table.ErrInvalidNumber)
	t1, err := svc.CreateTable(ctx, 1, "Varanda")
	require.NoError(t, err)
	_, err = svc.CreateTable(ctx, 1, "")
	assert.ErrorIs(t, err, table.ErrDuplicate)
	t2, err := svc.CreateTable(ctx, 2, "")
	require.NoError(t, err)

	_, err = svc.UpdateTable(ctx, t2.ID, 1, "")
	assert.ErrorIs(t, err, table.ErrDuplicate)
	renamed, err := svc.UpdateTable(ctx, t2.ID, 3, "Janela")
	require.NoError(t, err)
	assert.Equal(t, "Janela", renamed.Name)

	repos := st.Repositories()
	a := account.NewTableAccount(t1.ID, "u", decimal.Zero)
	require.NoError(t, repos.Accounts.Create(ctx, a))
	require.NoError(t, t1.Occupy(a.ID))
	require.NoError(t, repos.Tables.UpdateOccupancy(ctx, t1, 1))

	assert.ErrorIs(t, svc.DeleteTable(ctx, t1.ID), table.ErrNotFree)
	assert.NoError(t, svc.DeleteTable(ctx, t2.ID))
	assert.ErrorIs(t, svc.DeleteTable(ctx, t2.ID), table.ErrNotFound)
}

func TestDeleteTableWithAccountHistory(t *testing.T) {
	ctx := context.Background()
	svc, st, _ := newService(t)
	tb, err := svc.CreateTable(ctx, 4, "")
	require.NoError(t, err)

	a := account.NewTableAccount(tb.ID, "u", decimal.Zero)
	require.NoError(t, a.Close("caixa", time.Now()))
	require.NoError(t, st.Repositories().Accounts.Create(ctx, a))

	err = svc.DeleteTable(ctx, tb.ID)
	assert.ErrorIs(t, err, table.ErrHasAccounts, "mesa livre com contas antigas não é removida")
	assert.Equal(t, apperror.KindPrecondition, apperror.KindOf(err))

	_, err = st.Repositories().Tables.FindByID(ctx, tb.ID)
	assert.NoError(t, err)
}
