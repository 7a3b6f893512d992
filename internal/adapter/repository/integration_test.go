package repository_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/hugohenrick/pdv-restaurante/internal/adapter/repository"
	"github.com/hugohenrick/pdv-restaurante/internal/config"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/account"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/product"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/store"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/table"
	"github.com/hugohenrick/pdv-restaurante/internal/infrastructure/database"
	cashiersvc "github.com/hugohenrick/pdv-restaurante/internal/service/cashier"
	"github.com/hugohenrick/pdv-restaurante/internal/service/order"
	"github.com/hugohenrick/pdv-restaurante/pkg/apperror"
	"github.com/hugohenrick/pdv-restaurante/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Os testes abaixo usam um PostgreSQL real e apagam todos os dados do banco
// informado em PDV_TEST_DATABASE_URL. Sem a variável eles são ignorados.

type pgFixture struct {
	ctx     context.Context
	store   *repository.Store
	orders  *order.Service
	cashier *cashiersvc.Service
	coffee  *product.Product
}

func newPGFixture(t *testing.T) *pgFixture {
	t.Helper()
	url := os.Getenv("PDV_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("PDV_TEST_DATABASE_URL não definida")
	}
	ctx := context.Background()
	cfg := config.DatabaseConfig{URL: url, MigrationsPath: "../../../migrations", MaxConnections: 20}

	mg, err := database.NewMigrator(cfg)
	require.NoError(t, err)
	require.NoError(t, mg.Up())
	require.NoError(t, mg.Close())

	pool, err := database.NewPostgresPool(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	_, err = pool.Exec(ctx, `TRUNCATE caixa_lancamentos, caixas, conta_pagamentos, conta_itens, contas,
		mesas, combo_produtos, combos, produtos, configuracoes, profiles CASCADE`)
	require.NoError(t, err)

	st := repository.NewStore(pool, logger.NewNop())
	coffee, err := product.NewProduct("Café", decimal.RequireFromString("5.00"), true)
	require.NoError(t, err)
	require.NoError(t, st.Repositories().Products.Create(ctx, coffee))

	return &pgFixture{
		ctx:     ctx,
		store:   st,
		orders:  order.NewService(st, logger.NewNop()),
		cashier: cashiersvc.NewService(st, logger.NewNop(), nil),
		coffee:  coffee,
	}
}

func (f *pgFixture) newTable(t *testing.T, number int) *table.Table {
	t.Helper()
	tb, err := table.NewTable(number, "")
	require.NoError(t, err)
	require.NoError(t, f.store.Repositories().Tables.Create(f.ctx, tb))
	return tb
}

// retry repete a operação enquanto o banco pedir nova tentativa
func retry(fn func() error) error {
	var err error
	for i := 0; i < 10; i++ {
		if err = fn(); err == nil || !apperror.IsRetriable(err) {
			return err
		}
	}
	return err
}

func TestPostgresConcurrentClosesSumCashTotals(t *testing.T) {
	f := newPGFixture(t)
	session, _, err := f.cashier.OpenCashSession(f.ctx, decimal.NewFromInt(100), "caixa-1")
	require.NoError(t, err)

	const accounts = 10
	ids := make([]string, accounts)
	for i := range ids {
		a, err := f.orders.OpenWalkInAccount(f.ctx, fmt.Sprintf("Cliente %d", i), "garcom-1")
		require.NoError(t, err)
		_, err = f.orders.AddItem(f.ctx, a.ID, order.ItemRequest{ProductID: f.coffee.ID}, "garcom-1")
		require.NoError(t, err)
		ids[i] = a.ID
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			err := retry(func() error {
				_, err := f.orders.CloseAccountForPayment(f.ctx, id, []order.PaymentInput{
					{Method: account.MethodCash, Amount: decimal.RequireFromString("5.00")},
				}, "caixa-1")
				return err
			})
			assert.NoError(t, err)
		}(id)
	}
	wg.Wait()

	stored, err := f.store.Repositories().Cashiers.FindByDate(f.ctx, session.Date)
	require.NoError(t, err)
	assert.Equal(t, "50.00", stored.TotalCash.StringFixed(2), "nenhum fechamento pode se perder")
	assert.Equal(t, "50.00", stored.TotalSales().StringFixed(2))
}

func TestPostgresCancelAndSendConcurrently(t *testing.T) {
	f := newPGFixture(t)

	for round := 1; round <= 15; round++ {
		tb := f.newTable(t, round)
		a, err := f.orders.OpenTableAccount(f.ctx, tb.ID, "garcom-1")
		require.NoError(t, err)
		it, err := f.orders.AddItem(f.ctx, a.ID, order.ItemRequest{ProductID: f.coffee.ID}, "garcom-1")
		require.NoError(t, err)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = retry(func() error {
				_, err := f.orders.CancelItem(f.ctx, it.ID, "desistiu", "garcom-1")
				return err
			})
		}()
		go func() {
			defer wg.Done()
			_ = retry(func() error {
				_, err := f.orders.SendPendingToKitchen(f.ctx, a.ID)
				return err
			})
		}()
		wg.Wait()

		stored, err := f.store.Repositories().Items.FindByID(f.ctx, it.ID)
		require.NoError(t, err)
		if stored.IsCancelled() {
			assert.False(t, stored.SentToKitchen, "rodada %d: item cancelado foi para a cozinha", round)
		} else {
			assert.Equal(t, account.ItemInKitchen, stored.Status, "rodada %d", round)
		}

		detail, err := f.orders.GetAccount(f.ctx, a.ID)
		require.NoError(t, err)
		sum := decimal.Zero
		for _, i := range detail.Items {
			if !i.IsCancelled() {
				sum = sum.Add(i.LineTotal)
			}
		}
		assert.True(t, sum.Equal(detail.Account.Subtotal), "rodada %d: subtotal %s != %s", round, detail.Account.Subtotal, sum)
	}
}

func TestPostgresOpenTableAccountConcurrent(t *testing.T) {
	f := newPGFixture(t)
	tb := f.newTable(t, 5)

	const workers = 12
	ids := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := retry(func() error {
				a, err := f.orders.OpenTableAccount(f.ctx, tb.ID, "garcom-1")
				if err == nil {
					ids[i] = a.ID
				}
				return err
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, ids[0], id, "todos recebem a mesma conta")
	}
	open, err := f.orders.ListOpenAccounts(f.ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)

	stored, err := f.store.Repositories().Tables.FindByID(f.ctx, tb.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CurrentAccountID)
	assert.Equal(t, open[0].ID, *stored.CurrentAccountID)
}

func TestPostgresDeleteTableWithAccountHistory(t *testing.T) {
	f := newPGFixture(t)
	tb := f.newTable(t, 9)
	a, err := f.orders.OpenTableAccount(f.ctx, tb.ID, "garcom-1")
	require.NoError(t, err)
	_, err = f.orders.ReturnToTableSelection(f.ctx, a.ID, "garcom-1")
	require.NoError(t, err)

	err = f.store.Do(f.ctx, func(ctx context.Context, repos store.Repositories) error {
		return repos.Tables.Delete(ctx, tb.ID)
	})
	assert.ErrorIs(t, err, table.ErrHasAccounts)
}
