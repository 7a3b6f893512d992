package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-restaurante/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(authn Authenticator, area user.Area) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/area", JWTAuthMiddleware(authn), AreaAuthMiddleware(area), func(c *gin.Context) {
		c.String(http.StatusOK, GetCurrentUserID(c))
	})
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	svc, p, _ := newSessionFixture(t)
	token, _, err := svc.JWT().GenerateToken(p)
	require.NoError(t, err)
	r := newRouter(svc, user.AreaCashier)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"sem cabeçalho", "", http.StatusUnauthorized},
		{"formato inválido", "Token " + token, http.StatusUnauthorized},
		{"token inválido", "Bearer abc", http.StatusUnauthorized},
		{"token válido", "Bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/area", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, p.ID, w.Body.String())
			}
		})
	}
}

func TestAreaAuthMiddlewareRedirects(t *testing.T) {
	svc, _, users := newSessionFixture(t)
	kitchen, err := user.NewProfile("cozinha@padaria.com", "João", user.RoleKitchen, "segredo123")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), kitchen))
	token, _, err := svc.JWT().GenerateToken(kitchen)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/area", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	newRouter(svc, user.AreaPDV).ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "/cozinha", body.Redirect)
}

func TestJWTAuthMiddlewareChecksCurrentProfile(t *testing.T) {
	ctx := context.Background()
	svc, p, users := newSessionFixture(t)
	token, _, err := svc.JWT().GenerateToken(p)
	require.NoError(t, err)
	r := newRouter(svc, user.AreaCashier)

	call := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/area", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}
	require.Equal(t, http.StatusOK, call().Code)

	p.SetActive(false)
	require.NoError(t, users.Update(ctx, p))
	w := call()
	assert.Equal(t, http.StatusUnauthorized, w.Code, "perfil desativado perde o acesso")
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Usuário inativo", body.Message)

	p.SetActive(true)
	require.NoError(t, users.Update(ctx, p))
	require.Equal(t, http.StatusOK, call().Code)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, p, users := newSessionFixture(t)
	token, _, err := svc.JWT().GenerateToken(p)
	require.NoError(t, err)

	claims, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, p.ID, claims.UserID)

	tests := []struct {
		name   string
		change func(*user.Profile)
		want   error
	}{
		{"perfil desativado", func(p *user.Profile) { p.SetActive(false) }, user.ErrInactive},
		{"papel alterado", func(p *user.Profile) { p.SetActive(true); p.Role = user.RoleWaiter }, ErrRoleChanged},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.change(p)
			require.NoError(t, users.Update(ctx, p))
			_, err := svc.Authenticate(ctx, token)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err = svc.Authenticate(ctx, "abc")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
