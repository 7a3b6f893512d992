package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-restaurante/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/user"
	"github.com/hugohenrick/pdv-restaurante/pkg/auth"
)

// SetupTableRoutes configura as rotas de mesas
func SetupTableRoutes(router *gin.RouterGroup, authn auth.Authenticator, tableController *controller.TableController) {
	tableRouter := router.Group("/tables", auth.JWTAuthMiddleware(authn))
	{
		pdv := tableRouter.Group("", auth.AreaAuthMiddleware(user.AreaPDV))
		pdv.GET("", tableController.List)
		pdv.POST("/:id/account", tableController.OpenAccount)

		// Cadastro de mesas é do administrador
		admin := tableRouter.Group("", auth.AreaAuthMiddleware(user.AreaAdmin))
		admin.POST("", tableController.Create)
		admin.PUT("/:id", tableController.Update)
		admin.DELETE("/:id", tableController.Delete)
	}
}

// SetupAccountRoutes configura as rotas do ciclo de vida das contas
func SetupAccountRoutes(router *gin.RouterGroup, authn auth.Authenticator, accountController *controller.AccountController) {
	accountRouter := router.Group("/accounts", auth.JWTAuthMiddleware(authn))
	{
		pdv := accountRouter.Group("", auth.AreaAuthMiddleware(user.AreaPDV))
		pdv.POST("/walk-in", accountController.OpenWalkIn)
		pdv.GET("", accountController.List)
		pdv.GET("/:id", accountController.Get)
		pdv.POST("/:id/items", accountController.AddItem)
		pdv.POST("/:id/send-to-kitchen", accountController.SendToKitchen)
		pdv.POST("/:id/cancel", accountController.Cancel)
		pdv.POST("/:id/leave", accountController.Leave)

		cashier := accountRouter.Group("", auth.AreaAuthMiddleware(user.AreaCashier))
		cashier.PATCH("/:id/adjustments", accountController.Adjust)
		cashier.POST("/:id/close", accountController.Close)
	}

	itemRouter := router.Group("/items", auth.JWTAuthMiddleware(authn), auth.AreaAuthMiddleware(user.AreaPDV))
	itemRouter.POST("/:id/cancel", accountController.CancelItem)
}

// SetupKitchenRoutes configura as rotas da tela da cozinha
func SetupKitchenRoutes(router *gin.RouterGroup, authn auth.Authenticator, kitchenController *controller.KitchenController) {
	kitchenRouter := router.Group("/kitchen",
		auth.JWTAuthMiddleware(authn),
		auth.AreaAuthMiddleware(user.AreaKitchen),
	)
	{
		kitchenRouter.GET("/tickets", kitchenController.Tickets)
		kitchenRouter.GET("/ws", kitchenController.Stream)
		kitchenRouter.PATCH("/items/:id/ready", kitchenController.MarkReady)
		kitchenRouter.PATCH("/items/:id/delivered", kitchenController.MarkDelivered)
	}
}

// SetupCashierRoutes configura as rotas do caixa
func SetupCashierRoutes(router *gin.RouterGroup, authn auth.Authenticator, cashierController *controller.CashierController) {
	cashierRouter := router.Group("/cashier",
		auth.JWTAuthMiddleware(authn),
		auth.AreaAuthMiddleware(user.AreaCashier),
	)
	{
		cashierRouter.POST("/open", cashierController.Open)
		cashierRouter.GET("/today", cashierController.Today)
		cashierRouter.POST("/entries", cashierController.RecordEntry)
	}
}
