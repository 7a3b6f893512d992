package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-restaurante/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/user"
	"github.com/hugohenrick/pdv-restaurante/pkg/auth"
)

// SetupProductRoutes configura as rotas de produtos. A leitura é liberada para o PDV.
func SetupProductRoutes(router *gin.RouterGroup, authn auth.Authenticator, productController *controller.ProductController) {
	productRouter := router.Group("/products", auth.JWTAuthMiddleware(authn))
	{
		read := productRouter.Group("", auth.AreaAuthMiddleware(user.AreaPDV))
		read.GET("", productController.List)
		read.GET("/:id", productController.Get)

		admin := productRouter.Group("", auth.AreaAuthMiddleware(user.AreaAdmin))
		admin.POST("", productController.Create)
		admin.PUT("/:id", productController.Update)
		admin.DELETE("/:id", productController.Deactivate)
		admin.POST("/:id/activate", productController.Activate)
		admin.POST("/:id/photo", productController.UploadPhoto)
	}
}

// SetupComboRoutes configura as rotas de combos
func SetupComboRoutes(router *gin.RouterGroup, authn auth.Authenticator, comboController *controller.ComboController) {
	comboRouter := router.Group("/combos", auth.JWTAuthMiddleware(authn))
	{
		read := comboRouter.Group("", auth.AreaAuthMiddleware(user.AreaPDV))
		read.GET("", comboController.List)
		read.GET("/:id", comboController.Get)

		admin := comboRouter.Group("", auth.AreaAuthMiddleware(user.AreaAdmin))
		admin.POST("", comboController.Create)
		admin.PUT("/:id", comboController.Update)
		admin.DELETE("/:id", comboController.Deactivate)
		admin.POST("/:id/activate", comboController.Activate)
		admin.POST("/:id/photo", comboController.UploadPhoto)
	}
}
