package auth

import (
	"testing"
	"time"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile(t *testing.T) *user.Profile {
	t.Helper()
	p, err := user.NewProfile("caixa@padaria.com", "Maria", user.RoleCashier, "segredo123")
	require.NoError(t, err)
	return p
}

func TestNewJWTService(t *testing.T) {
	_, err := NewJWTService("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingJWTKey)

	svc, err := NewJWTService("chave", 0)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, svc.expiration)
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc, err := NewJWTService("chave", time.Hour)
	require.NoError(t, err)
	p := testProfile(t)

	token, expiresAt, err := svc.GenerateToken(p)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, p.ID, claims.UserID)
	assert.Equal(t, "caixa", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenRejects(t *testing.T) {
	svc, _ := NewJWTService("chave", time.Hour)
	other, _ := NewJWTService("outra-chave", time.Hour)
	p := testProfile(t)

	token, _, err := other.GenerateToken(p)
	require.NoError(t, err)
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateToken("lixo")
	assert.ErrorIs(t, err, ErrInvalidToken)

	past := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return past }
	expired, _, err := svc.GenerateToken(p)
	require.NoError(t, err)
	svc.now = time.Now
	_, err = svc.ValidateToken(expired)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestRevokeAndRefresh(t *testing.T) {
	svc, _ := NewJWTService("chave", time.Hour)
	p := testProfile(t)

	token, _, err := svc.GenerateToken(p)
	require.NoError(t, err)

	refreshed, _, err := svc.RefreshToken(token, p)
	require.NoError(t, err)
	assert.NotEqual(t, token, refreshed)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrRevokedToken)

	claims, err := svc.ValidateToken(refreshed)
	require.NoError(t, err)
	svc.Revoke(claims)
	_, err = svc.ValidateToken(refreshed)
	assert.ErrorIs(t, err, ErrRevokedToken)
}

func TestRevocationListPrunesExpired(t *testing.T) {
	now := time.Now()
	r := newRevocationList()
	r.add("a", now.Add(-time.Minute), now)
	r.add("b", now.Add(time.Minute), now)

	assert.False(t, r.contains("a", now))
	assert.True(t, r.contains("b", now))
	assert.Len(t, r.ids, 1)
}
