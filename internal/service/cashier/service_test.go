package cashier

import (
	"context"
	"testing"
	"time"

	"github.com/hugohenrick/pdv-restaurante/internal/adapter/memory"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/account"
	domain "github.com/hugohenrick/pdv-restaurante/internal/domain/cashier"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/store"
	"github.com/hugohenrick/pdv-restaurante/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *Service {
	now := time.Date(2026, 10, 19, 8, 0, 0, 0, time.Local)
	return NewService(memory.NewStore(), logger.NewNop(), func() time.Time { return now })
}

func TestOpenCashSessionReturnsExisting(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.Today(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = svc.OpenCashSession(ctx, decimal.NewFromInt(-5), "caixa")
	assert.ErrorIs(t, err, domain.ErrInvalidOpeningFloat)

	first, created, err := svc.OpenCashSession(ctx, decimal.NewFromInt(100), "caixa")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "2026-10-19", first.Date)

	second, created, err := svc.OpenCashSession(ctx, decimal.NewFromInt(999), "outro")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "100.00", second.OpeningFloat.StringFixed(2))
}

func TestRecordEntryAndSummary(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.RecordEntry(ctx, domain.EntryExpense, "gás", decimal.NewFromInt(30), account.MethodCash, "caixa")
	assert.ErrorIs(t, err, domain.ErrNotOpen)

	_, _, err = svc.OpenCashSession(ctx, decimal.NewFromInt(100), "caixa")
	require.NoError(t, err)

	_, err = svc.RecordEntry(ctx, domain.EntryExpense, "gás", decimal.NewFromInt(30), account.MethodCash, "caixa")
	require.NoError(t, err)
	_, err = svc.RecordEntry(ctx, domain.EntryDeposit, "troco", decimal.NewFromInt(20), account.MethodCash, "caixa")
	require.NoError(t, err)

	summary, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Len(t, summary.Entries, 2)
	assert.Equal(t, "30.00", summary.Session.TotalExpenses.StringFixed(2))
	assert.Equal(t, "90.00", summary.ExpectedCash.StringFixed(2))
	assert.True(t, summary.TotalSales.IsZero())
	assert.Len(t, summary.ByMethod, 4)
}

// lateStore simula outra requisição abrindo o caixa depois da busca
type lateStore struct {
	*memory.Store
}

type lateCashiers struct {
	domain.Repository
}

func (lateCashiers) FindByDate(context.Context, string) (*domain.Session, error) {
	return nil, domain.ErrNotFound
}

func (s lateStore) Do(ctx context.Context, fn func(context.Context, store.Repositories) error) error {
	return s.Store.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		repos.Cashiers = lateCashiers{repos.Cashiers}
		return fn(ctx, repos)
	})
}

func TestOpenCashSessionLosingWriterGetsExisting(t *testing.T) {
	ctx := context.Background()
	st := memory.NewStore()
	now := func() time.Time { return time.Date(2026, 10, 19, 8, 0, 0, 0, time.Local) }

	first, created, err := NewService(st, logger.NewNop(), now).OpenCashSession(ctx, decimal.NewFromInt(100), "caixa")
	require.NoError(t, err)
	require.True(t, created)

	second, created, err := NewService(lateStore{st}, logger.NewNop(), now).OpenCashSession(ctx, decimal.NewFromInt(50), "outro")
	require.NoError(t, err, "quem perde a corrida recebe o caixa já aberto")
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "100.00", second.OpeningFloat.StringFixed(2))
}
