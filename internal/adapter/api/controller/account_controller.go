package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-restaurante/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/account"
	"github.com/hugohenrick/pdv-restaurante/internal/service/order"
	"github.com/hugohenrick/pdv-restaurante/pkg/auth"
)

// AccountController gerencia as requisições do ciclo de vida das contas
type AccountController struct {
	orders *order.Service
}

// NewAccountController cria uma nova instância de AccountController
func NewAccountController(orders *order.Service) *AccountController {
	return &AccountController{
		orders: orders,
	}
}

// OpenWalkIn abre uma conta avulsa
// @Summary Abre uma conta avulsa
// @Tags accounts
// @Accept json
// @Produce json
// @Security Bearer
// @Param account body dto.WalkInRequest true "Nome do cliente"
// @Success 201 {object} account.Account
// @Failure 400 {object} dto.ErrorResponse
// @Router /accounts/walk-in [post]
func (c *AccountController) OpenWalkIn(ctx *gin.Context) {
	var request dto.WalkInRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	a, err := c.orders.OpenWalkInAccount(ctx, request.CustomerName, auth.GetCurrentUserID(ctx))
	if err != nil {
		respondError(ctx, "Erro ao abrir conta avulsa", err)
		return
	}
	ctx.JSON(http.StatusCreated, a)
}

// List lista contas pelo status (padrão: abertas)
// @Summary Lista contas
// @Tags accounts
// @Produce json
// @Security Bearer
// @Param status query string false "Status da conta" Enums(aberta, fechada, cancelada)
// @Success 200 {array} account.Account
// @Router /accounts [get]
func (c *AccountController) List(ctx *gin.Context) {
	status := account.Status(ctx.DefaultQuery("status", string(account.StatusOpen)))
	accounts, err := c.orders.ListAccounts(ctx, status)
	if err != nil {
		respondError(ctx, "Erro ao listar contas", err)
		return
	}
	ctx.JSON(http.StatusOK, accounts)
}

// Get retorna a conta com itens e pagamentos
// @Summary Busca uma conta
// @Tags accounts
// @Produce json
// @Security Bearer
// @Param id path string true "ID da conta"
// @Success 200 {object} order.AccountDetail
// @Failure 404 {object} dto.ErrorResponse
// @Router /accounts/{id} [get]
func (c *AccountController) Get(ctx *gin.Context) {
	detail, err := c.orders.GetAccount(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "Erro ao buscar conta", err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// AddItem lança um produto ou combo na conta
// @Summary Adiciona item à conta
// @Tags accounts
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID da conta"
// @Param item body dto.AddItemRequest true "Produto ou combo"
// @Success 201 {object} account.Item
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /accounts/{id}/items [post]
func (c *AccountController) AddItem(ctx *gin.Context) {
	var request dto.AddItemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	item, err := c.orders.AddItem(ctx, ctx.Param("id"), order.ItemRequest{
		ProductID: request.ProductID,
		ComboID:   request.ComboID,
		Quantity:  request.Quantity,
		Notes:     request.Notes,
	}, auth.GetCurrentUserID(ctx))
	if err != nil {
		respondError(ctx, "Erro ao adicionar item", err)
		return
	}
	ctx.JSON(http.StatusCreated, item)
}

// SendToKitchen envia os itens pendentes para a cozinha
// @Summary Envia pendentes para a cozinha
// @Tags accounts
// @Produce json
// @Security Bearer
// @Param id path string true "ID da conta"
// @Success 200 {object} dto.SendToKitchenResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /accounts/{id}/send-to-kitchen [post]
func (c *AccountController) SendToKitchen(ctx *gin.Context) {
	result, err := c.orders.SendPendingToKitchen(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "Erro ao enviar itens para a cozinha", err)
		return
	}

	message := "Itens enviados para a cozinha"
	if result.SentCount == 0 {
		message = "Nenhum item pendente para enviar"
	}
	ctx.JSON(http.StatusOK, dto.SendToKitchenResponse{
		Message:   message,
		SentCount: result.SentCount,
		Items:     result.Items,
	})
}

// Cancel cancela a conta, os itens pendentes e libera a mesa
// @Summary Cancela uma conta
// @Tags accounts
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID da conta"
// @Param cancel body dto.CancelRequest false "Motivo"
// @Success 200 {object} account.Account
// @Failure 422 {object} dto.ErrorResponse
// @Router /accounts/{id}/cancel [post]
func (c *AccountController) Cancel(ctx *gin.Context) {
	var request dto.CancelRequest
	if err := bindOptionalJSON(ctx, &request); err != nil {
		badRequest(ctx, err)
		return
	}

	a, err := c.orders.CancelAccount(ctx, ctx.Param("id"), request.Reason, auth.GetCurrentUserID(ctx))
	if err != nil {
		respondError(ctx, "Erro ao cancelar conta", err)
		return
	}
	ctx.JSON(http.StatusOK, a)
}

// Leave volta para a seleção de mesas, descartando a conta se estiver vazia
// @Summary Sai da conta
// @Tags accounts
// @Produce json
// @Security Bearer
// @Param id path string true "ID da conta"
// @Success 200 {object} dto.LeaveResponse
// @Router /accounts/{id}/leave [post]
func (c *AccountController) Leave(ctx *gin.Context) {
	discarded, err := c.orders.ReturnToTableSelection(ctx, ctx.Param("id"), auth.GetCurrentUserID(ctx))
	if err != nil {
		respondError(ctx, "Erro ao sair da conta", err)
		return
	}
	ctx.JSON(http.StatusOK, dto.LeaveResponse{Discarded: discarded})
}

// Adjust aplica desconto e taxa de serviço
// @Summary Aplica desconto e taxa de serviço
// @Tags accounts
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID da conta"
// @Param adjustments body dto.AdjustmentsRequest true "Desconto e taxa"
// @Success 200 {object} account.Account
// @Failure 400 {object} dto.ErrorResponse
// @Router /accounts/{id}/adjustments [patch]
func (c *AccountController) Adjust(ctx *gin.Context) {
	var request dto.AdjustmentsRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	a, err := c.orders.ApplyAdjustments(ctx, ctx.Param("id"), order.Adjustments{
		Discount:             request.Discount,
		ServiceChargePercent: request.ServiceChargePercent,
	})
	if err != nil {
		respondError(ctx, "Erro ao aplicar ajustes", err)
		return
	}
	ctx.JSON(http.StatusOK, a)
}

// Close fecha a conta com os pagamentos informados
// @Summary Fecha a conta
// @Tags accounts
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID da conta"
// @Param close body dto.CloseAccountRequest true "Pagamentos"
// @Success 200 {object} order.CloseResult
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /accounts/{id}/close [post]
func (c *AccountController) Close(ctx *gin.Context) {
	var request dto.CloseAccountRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	inputs := make([]order.PaymentInput, len(request.Payments))
	for i, p := range request.Payments {
		inputs[i] = order.PaymentInput{Method: account.PaymentMethod(p.Method), Amount: p.Amount}
	}

	result, err := c.orders.CloseAccountForPayment(ctx, ctx.Param("id"), inputs, auth.GetCurrentUserID(ctx))
	if err != nil {
		respondError(ctx, "Erro ao fechar conta", err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// CancelItem remove um item pendente da conta
// @Summary Cancela um item pendente
// @Tags items
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do item"
// @Param cancel body dto.CancelRequest false "Motivo"
// @Success 200 {object} account.Item
// @Failure 409 {object} dto.ErrorResponse
// @Router /items/{id}/cancel [post]
func (c *AccountController) CancelItem(ctx *gin.Context) {
	var request dto.CancelRequest
	if err := bindOptionalJSON(ctx, &request); err != nil {
		badRequest(ctx, err)
		return
	}

	item, err := c.orders.CancelItem(ctx, ctx.Param("id"), request.Reason, auth.GetCurrentUserID(ctx))
	if err != nil {
		respondError(ctx, "Erro ao cancelar item", err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}
