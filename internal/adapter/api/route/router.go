package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-restaurante/internal/adapter/api/controller"
	"github.com/hugohenrick/pdv-restaurante/pkg/auth"
)

// Controllers agrupa os controladores registrados em /api/v1
type Controllers struct {
	Auth    *controller.AuthController
	User    *controller.UserController
	Table   *controller.TableController
	Account *controller.AccountController
	Kitchen *controller.KitchenController
	Cashier *controller.CashierController
	Product *controller.ProductController
	Combo   *controller.ComboController
}

// SetupRoutes registra todas as rotas da API no grupo informado
func SetupRoutes(router *gin.RouterGroup, authn auth.Authenticator, c Controllers) {
	SetupAuthRoutes(router, authn, c.Auth)
	SetupUserRoutes(router, authn, c.User)
	SetupTableRoutes(router, authn, c.Table)
	SetupAccountRoutes(router, authn, c.Account)
	SetupKitchenRoutes(router, authn, c.Kitchen)
	SetupCashierRoutes(router, authn, c.Cashier)
	SetupProductRoutes(router, authn, c.Product)
	SetupComboRoutes(router, authn, c.Combo)
}
