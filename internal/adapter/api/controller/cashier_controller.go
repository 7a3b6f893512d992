package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-restaurante/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/account"
	domain "github.com/hugohenrick/pdv-restaurante/internal/domain/cashier"
	"github.com/hugohenrick/pdv-restaurante/internal/service/cashier"
	"github.com/hugohenrick/pdv-restaurante/pkg/auth"
)

// CashierController gerencia o caixa do dia
type CashierController struct {
	cashier *cashier.Service
}

// NewCashierController cria uma nova instância de CashierController
func NewCashierController(svc *cashier.Service) *CashierController {
	return &CashierController{
		cashier: svc,
	}
}

// Open abre o caixa do dia
// @Summary Abre o caixa do dia
// @Description Se o caixa do dia já existe, ele é retornado sem alteração
// @Tags cashier
// @Accept json
// @Produce json
// @Security Bearer
// @Param cashier body dto.OpenCashierRequest true "Valor de abertura"
// @Success 200 {object} dto.OpenCashierResponse
// @Success 201 {object} dto.OpenCashierResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /cashier/open [post]
func (c *CashierController) Open(ctx *gin.Context) {
	var request dto.OpenCashierRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	session, created, err := c.cashier.OpenCashSession(ctx, request.OpeningFloat, auth.GetCurrentUserID(ctx))
	if err != nil {
		respondError(ctx, "Erro ao abrir caixa", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ctx.JSON(status, dto.OpenCashierResponse{Session: session, Created: created})
}

// Today retorna o resumo do caixa do dia
// @Summary Resumo do caixa do dia
// @Tags cashier
// @Produce json
// @Security Bearer
// @Success 200 {object} cashier.Summary
// @Failure 404 {object} dto.ErrorResponse
// @Router /cashier/today [get]
func (c *CashierController) Today(ctx *gin.Context) {
	summary, err := c.cashier.Summary(ctx)
	if err != nil {
		respondError(ctx, "Erro ao buscar caixa do dia", err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// RecordEntry registra uma entrada ou saída manual
// @Summary Lançamento manual no caixa
// @Tags cashier
// @Accept json
// @Produce json
// @Security Bearer
// @Param entry body dto.CashEntryRequest true "Lançamento"
// @Success 201 {object} cashier.Entry
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /cashier/entries [post]
func (c *CashierController) RecordEntry(ctx *gin.Context) {
	var request dto.CashEntryRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	entry, err := c.cashier.RecordEntry(ctx,
		domain.EntryKind(request.Kind),
		request.Description,
		request.Amount,
		account.PaymentMethod(request.Method),
		auth.GetCurrentUserID(ctx),
	)
	if err != nil {
		respondError(ctx, "Erro ao registrar lançamento", err)
		return
	}
	ctx.JSON(http.StatusCreated, entry)
}
