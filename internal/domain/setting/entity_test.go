package setting

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapRepo map[string]string

func (m mapRepo) Get(_ context.Context, key string) (*Setting, error) {
	v, ok := m[key]
	if !ok {
		return nil, ErrNotFound
	}
	return &Setting{Key: key, Value: v}, nil
}

func (m mapRepo) Upsert(_ context.Context, s *Setting) error {
	m[s.Key] = s.Value
	return nil
}

func (m mapRepo) List(context.Context) ([]*Setting, error) { return nil, nil }

func TestDecimalOr(t *testing.T) {
	ctx := context.Background()
	fallback := decimal.NewFromInt(10)

	v, err := DecimalOr(ctx, mapRepo{}, KeyServiceChargePercent, fallback)
	require.NoError(t, err)
	assert.True(t, v.Equal(fallback))

	v, err = DecimalOr(ctx, mapRepo{KeyServiceChargePercent: "12.5"}, KeyServiceChargePercent, fallback)
	require.NoError(t, err)
	assert.Equal(t, "12.5", v.String())

	v, err = DecimalOr(ctx, mapRepo{KeyServiceChargePercent: "abc"}, KeyServiceChargePercent, fallback)
	require.NoError(t, err)
	assert.True(t, v.Equal(fallback))
}
