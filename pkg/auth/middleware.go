package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-restaurante/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/user"
)

const (
	claimsKey = "auth_claims"
	tokenKey  = "auth_token"
)

// Authenticator valida o token de uma requisição
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*JWTClaims, error)
}

// JWTAuthMiddleware cria um middleware para autenticação JWT
func JWTAuthMiddleware(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"Autenticação requerida",
				"Use o formato 'Bearer <token>' no cabeçalho Authorization",
			))
			return
		}

		claims, err := authn.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			message := "Token inválido"
			switch {
			case errors.Is(err, ErrExpiredToken):
				message = "Token expirado"
			case errors.Is(err, ErrRevokedToken):
				message = "Sessão encerrada"
			case errors.Is(err, user.ErrInactive):
				message = "Usuário inativo"
			case errors.Is(err, ErrRoleChanged):
				message = "Perfil de acesso alterado, entre novamente"
			case !errors.Is(err, ErrInvalidToken) && !errors.Is(err, ErrInvalidClaims):
				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
					http.StatusInternalServerError,
					"Erro ao validar sessão",
					err.Error(),
				))
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				message,
				err.Error(),
			))
			return
		}

		// Armazenar as claims no contexto
		c.Set(claimsKey, claims)
		c.Set(tokenKey, tokenString)
		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_name", claims.Name)
		c.Set("user_role", claims.Role)

		c.Next()
	}
}

// bearerToken lê o token do cabeçalho Authorization ou, para websockets, do parâmetro token
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if t := c.Query("token"); t != "" && c.IsWebsocket() {
			return t, true
		}
		return "", false
	}
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" || tokenParts[1] == "" {
		return "", false
	}
	return tokenParts[1], true
}

// RoleAuthMiddleware cria um middleware para verificação de papel do usuário
func RoleAuthMiddleware(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := user.Role(c.GetString("user_role"))
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"Autenticação requerida",
				"",
			))
			return
		}

		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewForbiddenResponse(
			http.StatusForbidden,
			"Você não tem permissão para acessar este recurso",
			role.HomePath(),
		))
	}
}

// AreaAuthMiddleware libera a rota para os papéis com acesso à área
func AreaAuthMiddleware(area user.Area) gin.HandlerFunc {
	return RoleAuthMiddleware(user.RolesFor(area)...)
}

// GetClaims obtém as claims do token atual
func GetClaims(c *gin.Context) (*JWTClaims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*JWTClaims)
	return claims, ok
}

// GetToken obtém o token atual
func GetToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}

// GetCurrentUserID obtém o id do usuário atual do contexto
func GetCurrentUserID(c *gin.Context) string {
	return c.GetString("user_id")
}
