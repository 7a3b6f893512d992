package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-restaurante/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-restaurante/internal/service/catalog"
	"github.com/hugohenrick/pdv-restaurante/internal/service/order"
	"github.com/hugohenrick/pdv-restaurante/pkg/auth"
)

// TableController gerencia as requisições relacionadas a mesas
type TableController struct {
	orders  *order.Service
	catalog *catalog.Service
}

// NewTableController cria uma nova instância de TableController
func NewTableController(orders *order.Service, catalog *catalog.Service) *TableController {
	return &TableController{
		orders:  orders,
		catalog: catalog,
	}
}

// List lista as mesas com sua ocupação
// @Summary Lista as mesas
// @Tags tables
// @Produce json
// @Security Bearer
// @Success 200 {array} table.Table
// @Router /tables [get]
func (c *TableController) List(ctx *gin.Context) {
	tables, err := c.orders.ListTables(ctx)
	if err != nil {
		respondError(ctx, "Erro ao listar mesas", err)
		return
	}
	ctx.JSON(http.StatusOK, tables)
}

// Create cadastra uma mesa
// @Summary Cadastra uma mesa
// @Tags tables
// @Accept json
// @Produce json
// @Security Bearer
// @Param table body dto.TableRequest true "Dados da mesa"
// @Success 201 {object} table.Table
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /tables [post]
func (c *TableController) Create(ctx *gin.Context) {
	var request dto.TableRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	t, err := c.catalog.CreateTable(ctx, request.Number, request.Name)
	if err != nil {
		respondError(ctx, "Erro ao cadastrar mesa", err)
		return
	}
	ctx.JSON(http.StatusCreated, t)
}

// Update altera número e nome de uma mesa
// @Summary Atualiza uma mesa
// @Tags tables
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID da mesa"
// @Param table body dto.TableRequest true "Dados da mesa"
// @Success 200 {object} table.Table
// @Failure 404 {object} dto.ErrorResponse
// @Router /tables/{id} [put]
func (c *TableController) Update(ctx *gin.Context) {
	var request dto.TableRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	t, err := c.catalog.UpdateTable(ctx, ctx.Param("id"), request.Number, request.Name)
	if err != nil {
		respondError(ctx, "Erro ao atualizar mesa", err)
		return
	}
	ctx.JSON(http.StatusOK, t)
}

// Delete remove uma mesa livre
// @Summary Remove uma mesa
// @Tags tables
// @Security Bearer
// @Param id path string true "ID da mesa"
// @Success 204
// @Failure 422 {object} dto.ErrorResponse
// @Router /tables/{id} [delete]
func (c *TableController) Delete(ctx *gin.Context) {
	if err := c.catalog.DeleteTable(ctx, ctx.Param("id")); err != nil {
		respondError(ctx, "Erro ao remover mesa", err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// OpenAccount abre ou retoma a conta da mesa
// @Summary Abre a conta da mesa
// @Description Se a mesa já está ocupada, retorna a conta aberta existente
// @Tags tables
// @Produce json
// @Security Bearer
// @Param id path string true "ID da mesa"
// @Success 200 {object} account.Account
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /tables/{id}/account [post]
func (c *TableController) OpenAccount(ctx *gin.Context) {
	a, err := c.orders.OpenTableAccount(ctx, ctx.Param("id"), auth.GetCurrentUserID(ctx))
	if err != nil {
		respondError(ctx, "Erro ao abrir conta da mesa", err)
		return
	}
	ctx.JSON(http.StatusOK, a)
}
