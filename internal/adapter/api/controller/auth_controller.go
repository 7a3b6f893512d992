package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-restaurante/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/user"
	"github.com/hugohenrick/pdv-restaurante/pkg/auth"
)

// AuthController gerencia as requisições relacionadas à autenticação
type AuthController struct {
	sessions *auth.SessionService
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(sessions *auth.SessionService) *AuthController {
	return &AuthController{
		sessions: sessions,
	}
}

// Login autentica um usuário e retorna um token JWT
// @Summary Autentica um usuário
// @Description Verifica as credenciais do usuário e retorna um token JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Credenciais de login"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	session, err := c.sessions.SignIn(ctx, request.Email, request.Password)
	if err != nil {
		respondError(ctx, "Erro ao autenticar usuário", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		User:        dto.ToUserResponse(session.Profile),
		AccessToken: session.Token,
		ExpiresAt:   session.ExpiresAt,
		Redirect:    session.Profile.Role.HomePath(),
	})
}

// RefreshToken renova o token da sessão atual
// @Summary Renova um token JWT
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	claims, ok := auth.GetClaims(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Não autenticado", ""))
		return
	}

	session, err := c.sessions.Refresh(ctx, auth.GetToken(ctx), claims)
	if err != nil {
		respondError(ctx, "Erro ao renovar token", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		User:        dto.ToUserResponse(session.Profile),
		AccessToken: session.Token,
		ExpiresAt:   session.ExpiresAt,
		Redirect:    session.Profile.Role.HomePath(),
	})
}

// Me retorna informações do usuário atual
// @Summary Retorna informações do usuário atual
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	claims, ok := auth.GetClaims(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Não autenticado", ""))
		return
	}

	p, err := c.sessions.GetSession(ctx, claims)
	if err != nil {
		respondError(ctx, "Erro ao buscar usuário", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToUserResponse(p))
}

// Logout encerra a sessão atual
// @Summary Encerra a sessão
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.SuccessResponse
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	claims, ok := auth.GetClaims(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, "Não autenticado", ""))
		return
	}

	c.sessions.SignOut(ctx, claims)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("Sessão encerrada", nil))
}

// Policy retorna as áreas liberadas para o usuário atual
// @Summary Áreas liberadas e tela inicial do usuário
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.PolicyResponse
// @Router /auth/policy [get]
func (c *AuthController) Policy(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToPolicyResponse(user.Role(ctx.GetString("user_role"))))
}
