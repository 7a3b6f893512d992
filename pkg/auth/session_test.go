package auth

import (
	"context"
	"testing"
	"time"

	"github.com/hugohenrick/pdv-restaurante/internal/adapter/memory"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionFixture(t *testing.T) (*SessionService, *user.Profile, user.Repository) {
	t.Helper()
	users := memory.NewStore().Repositories().Users
	p := testProfile(t)
	require.NoError(t, users.Create(context.Background(), p))

	jwtSvc, err := NewJWTService("chave", time.Hour)
	require.NoError(t, err)
	return NewSessionService(users, jwtSvc), p, users
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()
	svc, p, _ := newSessionFixture(t)

	var events []Event
	svc.OnChange(func(e Event) { events = append(events, e) })

	session, err := svc.SignIn(ctx, "CAIXA@padaria.com", "segredo123")
	require.NoError(t, err)
	assert.Equal(t, p.ID, session.Profile.ID)
	assert.NotEmpty(t, session.Token)

	require.Len(t, events, 1)
	assert.Equal(t, EventSignedIn, events[0].Type)
	assert.Equal(t, user.RoleCashier, events[0].Role)
}

func TestSignInFailures(t *testing.T) {
	ctx := context.Background()
	svc, p, users := newSessionFixture(t)

	_, err := svc.SignIn(ctx, "caixa@padaria.com", "errada")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, "ninguem@padaria.com", "segredo123")
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	p.SetActive(false)
	require.NoError(t, users.Update(ctx, p))
	_, err = svc.SignIn(ctx, "caixa@padaria.com", "segredo123")
	assert.ErrorIs(t, err, user.ErrInactive)
}

func TestSignOutRevokesToken(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSessionFixture(t)

	var last Event
	svc.OnChange(func(e Event) { last = e })

	session, err := svc.SignIn(ctx, "caixa@padaria.com", "segredo123")
	require.NoError(t, err)
	claims, err := svc.JWT().ValidateToken(session.Token)
	require.NoError(t, err)

	profile, err := svc.GetSession(ctx, claims)
	require.NoError(t, err)
	assert.Equal(t, session.Profile.ID, profile.ID)

	svc.SignOut(ctx, claims)
	assert.Equal(t, EventSignedOut, last.Type)
	_, err = svc.JWT().ValidateToken(session.Token)
	assert.ErrorIs(t, err, ErrRevokedToken)
}
