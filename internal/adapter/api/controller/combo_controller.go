package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-restaurante/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/combo"
	"github.com/hugohenrick/pdv-restaurante/internal/service/catalog"
)

// ComboController gerencia as requisições relacionadas a combos
type ComboController struct {
	catalog *catalog.Service
}

// NewComboController cria uma nova instância de ComboController
func NewComboController(catalog *catalog.Service) *ComboController {
	return &ComboController{
		catalog: catalog,
	}
}

func toComboInput(r dto.ComboRequest) catalog.ComboInput {
	items := make([]combo.Item, len(r.Items))
	for i, it := range r.Items {
		items[i] = combo.Item{ProductID: it.ProductID, Quantity: it.Quantity}
	}
	return catalog.ComboInput{
		Name:          r.Name,
		Description:   r.Description,
		SalePrice:     r.SalePrice,
		MadeByKitchen: r.MadeByKitchen,
		Items:         items,
	}
}

// List lista os combos
// @Summary Lista combos
// @Tags combos
// @Produce json
// @Security Bearer
// @Param ativos query bool false "Apenas ativos (padrão true)"
// @Success 200 {array} combo.Combo
// @Router /combos [get]
func (c *ComboController) List(ctx *gin.Context) {
	combos, err := c.catalog.ListCombos(ctx, onlyActive(ctx))
	if err != nil {
		respondError(ctx, "Erro ao listar combos", err)
		return
	}
	ctx.JSON(http.StatusOK, combos)
}

// Get busca um combo
// @Summary Busca um combo
// @Tags combos
// @Produce json
// @Security Bearer
// @Param id path string true "ID do combo"
// @Success 200 {object} combo.Combo
// @Failure 404 {object} dto.ErrorResponse
// @Router /combos/{id} [get]
func (c *ComboController) Get(ctx *gin.Context) {
	cb, err := c.catalog.GetCombo(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "Erro ao buscar combo", err)
		return
	}
	ctx.JSON(http.StatusOK, cb)
}

// Create cadastra um combo
// @Summary Cadastra um combo
// @Tags combos
// @Accept json
// @Produce json
// @Security Bearer
// @Param combo body dto.ComboRequest true "Dados do combo"
// @Success 201 {object} combo.Combo
// @Failure 400 {object} dto.ErrorResponse
// @Router /combos [post]
func (c *ComboController) Create(ctx *gin.Context) {
	var request dto.ComboRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	cb, err := c.catalog.CreateCombo(ctx, toComboInput(request))
	if err != nil {
		respondError(ctx, "Erro ao cadastrar combo", err)
		return
	}
	ctx.JSON(http.StatusCreated, cb)
}

// Update atualiza um combo, substituindo seus produtos
// @Summary Atualiza um combo
// @Tags combos
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do combo"
// @Param combo body dto.ComboRequest true "Dados do combo"
// @Success 200 {object} combo.Combo
// @Failure 400 {object} dto.ErrorResponse
// @Router /combos/{id} [put]
func (c *ComboController) Update(ctx *gin.Context) {
	var request dto.ComboRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	cb, err := c.catalog.UpdateCombo(ctx, ctx.Param("id"), toComboInput(request))
	if err != nil {
		respondError(ctx, "Erro ao atualizar combo", err)
		return
	}
	ctx.JSON(http.StatusOK, cb)
}

// Deactivate desativa um combo
// @Summary Desativa um combo
// @Tags combos
// @Produce json
// @Security Bearer
// @Param id path string true "ID do combo"
// @Success 200 {object} combo.Combo
// @Router /combos/{id} [delete]
func (c *ComboController) Deactivate(ctx *gin.Context) {
	cb, err := c.catalog.DeactivateCombo(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "Erro ao desativar combo", err)
		return
	}
	ctx.JSON(http.StatusOK, cb)
}

// Activate reativa um combo
// @Summary Reativa um combo
// @Tags combos
// @Produce json
// @Security Bearer
// @Param id path string true "ID do combo"
// @Success 200 {object} combo.Combo
// @Router /combos/{id}/activate [post]
func (c *ComboController) Activate(ctx *gin.Context) {
	cb, err := c.catalog.ActivateCombo(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "Erro ao reativar combo", err)
		return
	}
	ctx.JSON(http.StatusOK, cb)
}

// UploadPhoto envia a foto do combo
// @Summary Envia foto do combo
// @Tags combos
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param id path string true "ID do combo"
// @Param foto formData file true "Imagem"
// @Success 200 {object} combo.Combo
// @Router /combos/{id}/photo [post]
func (c *ComboController) UploadPhoto(ctx *gin.Context) {
	name, file, ok := photoFromForm(ctx)
	if !ok {
		return
	}
	defer file.Close()

	cb, err := c.catalog.UploadComboPhoto(ctx, ctx.Param("id"), name, file)
	if err != nil {
		respondError(ctx, "Erro ao enviar foto", err)
		return
	}
	ctx.JSON(http.StatusOK, cb)
}
