package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-restaurante/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-restaurante/pkg/auth"
)

// SetupAuthRoutes configura as rotas para autenticação
func SetupAuthRoutes(router *gin.RouterGroup, authn auth.Authenticator, authController *controller.AuthController) {
	authRouter := router.Group("/auth")
	{
		// Rota de login (não requer autenticação)
		authRouter.POST("/login", authController.Login)

		authenticated := authRouter.Group("", auth.JWTAuthMiddleware(authn))
		authenticated.GET("/me", authController.Me)
		authenticated.GET("/policy", authController.Policy)
		authenticated.POST("/refresh", authController.RefreshToken)
		authenticated.POST("/logout", authController.Logout)
	}
}
