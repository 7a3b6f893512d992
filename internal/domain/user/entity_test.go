package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile(t *testing.T) {
	p, err := NewProfile("  Ana@Padaria.com ", "Ana", RoleWaiter, "segredo1")
	require.NoError(t, err)
	assert.Equal(t, "ana@padaria.com", p.Email)
	assert.True(t, p.Active)
	assert.True(t, p.CheckPassword("segredo1"))
	assert.False(t, p.CheckPassword("outra"))

	_, err = NewProfile("invalido", "Ana", RoleWaiter, "segredo1")
	assert.ErrorIs(t, err, ErrInvalidEmail)
	_, err = NewProfile("a@b.com", " ", RoleWaiter, "segredo1")
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = NewProfile("a@b.com", "Ana", Role("gerente"), "segredo1")
	assert.ErrorIs(t, err, ErrInvalidRole)
	_, err = NewProfile("a@b.com", "Ana", RoleAdmin, "123")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestRolePolicy(t *testing.T) {
	tests := []struct {
		role  Role
		areas []Area
		home  string
	}{
		{RoleAdmin, []Area{AreaPDV, AreaKitchen, AreaCashier, AreaAdmin}, "/admin"},
		{RoleCashier, []Area{AreaPDV, AreaCashier}, "/caixa"},
		{RoleKitchen, []Area{AreaKitchen}, "/cozinha"},
		{RoleWaiter, []Area{AreaPDV}, "/pdv"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.areas, tt.role.Areas())
			assert.Equal(t, tt.home, tt.role.HomePath())
		})
	}
	assert.False(t, RoleWaiter.CanAccess(AreaKitchen))
	assert.Equal(t, "/login", Role("").HomePath())
}
