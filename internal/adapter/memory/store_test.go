package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/account"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/store"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/table"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	mesa, err := table.NewTable(1, "")
	require.NoError(t, err)
	require.NoError(t, s.Repositories().Tables.Create(ctx, mesa))

	boom := errors.New("falha")
	err = s.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		a := account.NewTableAccount(mesa.ID, "u", decimal.Zero)
		require.NoError(t, repos.Accounts.Create(ctx, a))
		require.NoError(t, mesa.Occupy(a.ID))
		require.NoError(t, repos.Tables.UpdateOccupancy(ctx, mesa, 1))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := s.Repositories().Tables.FindByID(ctx, mesa.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsFree())
	assert.Equal(t, int64(1), stored.Version)

	open, err := s.Repositories().Accounts.ListByStatus(ctx, account.StatusOpen)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestUpdateOccupancyRejectsStaleVersion(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()
	mesa, err := table.NewTable(2, "")
	require.NoError(t, err)
	require.NoError(t, repos.Tables.Create(ctx, mesa))

	first := *mesa
	require.NoError(t, first.Occupy("a1"))
	require.NoError(t, repos.Tables.UpdateOccupancy(ctx, &first, 1))
	assert.Equal(t, int64(2), first.Version)

	second := *mesa
	require.NoError(t, second.Occupy("a2"))
	assert.ErrorIs(t, repos.Tables.UpdateOccupancy(ctx, &second, 1), table.ErrAlreadyTaken)
}

func TestUniqueOpenAccountPerTable(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()
	mesa, err := table.NewTable(3, "")
	require.NoError(t, err)
	require.NoError(t, repos.Tables.Create(ctx, mesa))

	require.NoError(t, repos.Accounts.Create(ctx, account.NewTableAccount(mesa.ID, "u", decimal.Zero)))
	err = repos.Accounts.Create(ctx, account.NewTableAccount(mesa.ID, "u", decimal.Zero))
	assert.ErrorIs(t, err, account.ErrTableAccountTaken)

	dup, err := table.NewTable(3, "")
	require.NoError(t, err)
	assert.ErrorIs(t, repos.Tables.Create(ctx, dup), table.ErrDuplicate)
}

func TestAccountUpdateChecksVersion(t *testing.T) {
	ctx := context.Background()
	repos := NewStore().Repositories()
	a, err := account.NewWalkInAccount("Ana", "u", decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, repos.Accounts.Create(ctx, a))

	stale := *a
	require.NoError(t, repos.Accounts.Update(ctx, a))
	assert.Equal(t, int64(2), a.Version)
	assert.ErrorIs(t, repos.Accounts.Update(ctx, &stale), account.ErrStale)
}
