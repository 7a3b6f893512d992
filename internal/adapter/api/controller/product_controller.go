package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/pdv-restaurante/internal/adapter/api/dto"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/product"
	"github.com/hugohenrick/pdv-restaurante/internal/service/catalog"
)

// maxPhotoSize limita o tamanho das fotos enviadas
const maxPhotoSize = 5 << 20

// ProductController gerencia as requisições relacionadas a produtos
type ProductController struct {
	catalog *catalog.Service
}

// NewProductController cria uma nova instância de ProductController
func NewProductController(catalog *catalog.Service) *ProductController {
	return &ProductController{
		catalog: catalog,
	}
}

func toProductInput(r dto.ProductRequest) catalog.ProductInput {
	return catalog.ProductInput{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		MadeByKitchen: r.MadeByKitchen,
		Category:      r.Category,
	}
}

// onlyActive lê o filtro ?ativos=; o padrão é listar apenas ativos
func onlyActive(ctx *gin.Context) bool {
	v, err := strconv.ParseBool(ctx.DefaultQuery("ativos", "true"))
	return err != nil || v
}

// List lista os produtos ordenados por nome
// @Summary Lista produtos
// @Tags products
// @Produce json
// @Security Bearer
// @Param ativos query bool false "Apenas ativos (padrão true)"
// @Param busca query string false "Busca pelo nome"
// @Success 200 {array} product.Product
// @Router /products [get]
func (c *ProductController) List(ctx *gin.Context) {
	products, err := c.catalog.ListProducts(ctx, product.Filter{
		OnlyActive: onlyActive(ctx),
		Search:     ctx.Query("busca"),
	})
	if err != nil {
		respondError(ctx, "Erro ao listar produtos", err)
		return
	}
	ctx.JSON(http.StatusOK, products)
}

// Get busca um produto
// @Summary Busca um produto
// @Tags products
// @Produce json
// @Security Bearer
// @Param id path string true "ID do produto"
// @Success 200 {object} product.Product
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id} [get]
func (c *ProductController) Get(ctx *gin.Context) {
	p, err := c.catalog.GetProduct(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "Erro ao buscar produto", err)
		return
	}
	ctx.JSON(http.StatusOK, p)
}

// Create cadastra um produto
// @Summary Cadastra um produto
// @Tags products
// @Accept json
// @Produce json
// @Security Bearer
// @Param product body dto.ProductRequest true "Dados do produto"
// @Success 201 {object} product.Product
// @Failure 400 {object} dto.ErrorResponse
// @Router /products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	var request dto.ProductRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	p, err := c.catalog.CreateProduct(ctx, toProductInput(request))
	if err != nil {
		respondError(ctx, "Erro ao cadastrar produto", err)
		return
	}
	ctx.JSON(http.StatusCreated, p)
}

// Update atualiza um produto
// @Summary Atualiza um produto
// @Tags products
// @Accept json
// @Produce json
// @Security Bearer
// @Param id path string true "ID do produto"
// @Param product body dto.ProductRequest true "Dados do produto"
// @Success 200 {object} product.Product
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	var request dto.ProductRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		badRequest(ctx, err)
		return
	}

	p, err := c.catalog.UpdateProduct(ctx, ctx.Param("id"), toProductInput(request))
	if err != nil {
		respondError(ctx, "Erro ao atualizar produto", err)
		return
	}
	ctx.JSON(http.StatusOK, p)
}

// Deactivate remove o produto do cardápio (exclusão lógica)
// @Summary Desativa um produto
// @Tags products
// @Produce json
// @Security Bearer
// @Param id path string true "ID do produto"
// @Success 200 {object} product.Product
// @Router /products/{id} [delete]
func (c *ProductController) Deactivate(ctx *gin.Context) {
	p, err := c.catalog.DeactivateProduct(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "Erro ao desativar produto", err)
		return
	}
	ctx.JSON(http.StatusOK, p)
}

// Activate devolve o produto ao cardápio
// @Summary Reativa um produto
// @Tags products
// @Produce json
// @Security Bearer
// @Param id path string true "ID do produto"
// @Success 200 {object} product.Product
// @Router /products/{id}/activate [post]
func (c *ProductController) Activate(ctx *gin.Context) {
	p, err := c.catalog.ActivateProduct(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "Erro ao reativar produto", err)
		return
	}
	ctx.JSON(http.StatusOK, p)
}

// UploadPhoto envia a foto do produto
// @Summary Envia foto do produto
// @Tags products
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param id path string true "ID do produto"
// @Param foto formData file true "Imagem"
// @Success 200 {object} product.Product
// @Failure 400 {object} dto.ErrorResponse
// @Router /products/{id}/photo [post]
func (c *ProductController) UploadPhoto(ctx *gin.Context) {
	name, file, ok := photoFromForm(ctx)
	if !ok {
		return
	}
	defer file.Close()

	p, err := c.catalog.UploadProductPhoto(ctx, ctx.Param("id"), name, file)
	if err != nil {
		respondError(ctx, "Erro ao enviar foto", err)
		return
	}
	ctx.JSON(http.StatusOK, p)
}
