package combo

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/product"
	"github.com/hugohenrick/pdv-restaurante/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName        = apperror.New(apperror.KindValidation, "nome do combo é obrigatório")
	ErrInvalidSalePrice = apperror.New(apperror.KindValidation, "valor de venda inválido")
	ErrNoProducts       = apperror.New(apperror.KindValidation, "selecione pelo menos um produto")
	ErrInvalidQuantity  = apperror.New(apperror.KindValidation, "quantidade do produto deve ser positiva")
	ErrUnknownProduct   = apperror.New(apperror.KindValidation, "produto do combo não encontrado")
	ErrNotFound         = apperror.New(apperror.KindNotFound, "combo não encontrado")
	ErrInactive         = apperror.New(apperror.KindPrecondition, "combo está desativado")
)

// Item associa um produto e sua quantidade ao combo
type Item struct {
	ProductID string `json:"produto_id"`
	Quantity  int    `json:"quantidade"`
}

// Combo representa um conjunto de produtos vendido por um preço fechado
type Combo struct {
	ID            string            `json:"id"`
	Name          string            `json:"nome"`
	Description   string            `json:"descricao,omitempty"`
	PhotoURL      string            `json:"foto_url,omitempty"`
	ProductsTotal decimal.Decimal   `json:"valor_total_produtos"`
	SalePrice     decimal.Decimal   `json:"valor_venda"`
	MadeByKitchen bool              `json:"feito_pela_cozinha"`
	Lifecycle     product.Lifecycle `json:"lifecycle"`
	Items         []Item            `json:"produtos"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// NewCombo cria um combo ativo sem produtos
func NewCombo() *Combo {
	now := time.Now()
	return &Combo{
		ID:        uuid.New().String(),
		Lifecycle: product.LifecycleActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Define preenche os dados do combo e recalcula o valor total dos produtos.
// prices deve conter o preço atual de cada produto referenciado.
func (c *Combo) Define(
	name string,
	description string,
	salePrice decimal.Decimal,
	madeByKitchen bool,
	items []Item,
	prices map[string]decimal.Decimal,
) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if salePrice.IsNegative() {
		return ErrInvalidSalePrice
	}

	merged := make([]Item, 0, len(items))
	index := make(map[string]int, len(items))
	for _, it := range items {
		if it.Quantity < 0 {
			return ErrInvalidQuantity
		}
		if it.Quantity == 0 {
			continue
		}
		if i, ok := index[it.ProductID]; ok {
			merged[i].Quantity += it.Quantity
			continue
		}
		index[it.ProductID] = len(merged)
		merged = append(merged, it)
	}
	if len(merged) == 0 {
		return ErrNoProducts
	}

	total := decimal.Zero
	for _, it := range merged {
		price, ok := prices[it.ProductID]
		if !ok {
			return apperror.Wrap(ErrUnknownProduct, "produto %s", it.ProductID)
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	c.Name = name
	c.Description = strings.TrimSpace(description)
	c.SalePrice = salePrice.Round(2)
	c.MadeByKitchen = madeByKitchen
	c.Items = merged
	c.ProductsTotal = total.Round(2)
	c.UpdatedAt = time.Now()
	return nil
}

// Savings retorna a economia do combo em relação aos produtos avulsos
func (c *Combo) Savings() decimal.Decimal {
	return c.ProductsTotal.Sub(c.SalePrice)
}

// IsActive verifica se o combo está ativo
func (c *Combo) IsActive() bool {
	return c.Lifecycle == product.LifecycleActive
}

// Deactivate desativa o combo
func (c *Combo) Deactivate() {
	c.Lifecycle = product.LifecycleInactive
	c.UpdatedAt = time.Now()
}

// Activate reativa o combo
func (c *Combo) Activate() {
	c.Lifecycle = product.LifecycleActive
	c.UpdatedAt = time.Now()
}
