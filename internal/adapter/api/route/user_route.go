package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-restaurante/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/user"
	"github.com/hugohenrick/pdv-restaurante/pkg/auth"
)

// SetupUserRoutes configura as rotas para o módulo de usuários
func SetupUserRoutes(router *gin.RouterGroup, authn auth.Authenticator, userController *controller.UserController) {
	userRouter := router.Group("/users")
	{
		// Rotas que requerem autenticação e autorização de administrador
		userRouter.Use(auth.JWTAuthMiddleware(authn))
		userRouter.Use(auth.AreaAuthMiddleware(user.AreaAdmin))

		userRouter.POST("", userController.Create)
		userRouter.GET("", userController.List)
		userRouter.GET("/:id", userController.Get)
		userRouter.PUT("/:id", userController.Update)
		userRouter.PATCH("/:id/status", userController.SetStatus)
	}
}
