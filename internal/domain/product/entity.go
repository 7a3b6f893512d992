package product

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pdv-restaurante/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName    = apperror.New(apperror.KindValidation, "nome do produto é obrigatório")
	ErrInvalidPrice = apperror.New(apperror.KindValidation, "valor inválido")
	ErrNotFound     = apperror.New(apperror.KindNotFound, "produto não encontrado")
	ErrInactive     = apperror.New(apperror.KindPrecondition, "produto está desativado")
)

// Lifecycle representa o ciclo de vida de um item de catálogo
type Lifecycle string

const (
	LifecycleActive   Lifecycle = "ativo"   // Disponível para venda
	LifecycleInactive Lifecycle = "inativo" // Removido do catálogo (exclusão lógica)
)

// Product representa um produto do cardápio
type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"nome"`
	Description   string          `json:"descricao,omitempty"`
	PhotoURL      string          `json:"foto_url,omitempty"`
	Price         decimal.Decimal `json:"valor"`
	MadeByKitchen bool            `json:"feito_pela_cozinha"`
	Category      string          `json:"categoria,omitempty"`
	Lifecycle     Lifecycle       `json:"lifecycle"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewProduct cria um novo produto ativo
func NewProduct(name string, price decimal.Decimal, madeByKitchen bool) (*Product, error) {
	p := &Product{
		ID:        uuid.New().String(),
		Lifecycle: LifecycleActive,
		CreatedAt: time.Now(),
	}
	if err := p.Update(name, p.Description, price, madeByKitchen, p.Category); err != nil {
		return nil, err
	}
	p.UpdatedAt = p.CreatedAt
	return p, nil
}

// Update atualiza os dados do produto
func (p *Product) Update(name, description string, price decimal.Decimal, madeByKitchen bool, category string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if price.IsNegative() {
		return ErrInvalidPrice
	}

	p.Name = name
	p.Description = strings.TrimSpace(description)
	p.Price = price.Round(2)
	p.MadeByKitchen = madeByKitchen
	p.Category = strings.TrimSpace(category)
	p.UpdatedAt = time.Now()
	return nil
}

// IsActive verifica se o produto está ativo
func (p *Product) IsActive() bool {
	return p.Lifecycle == LifecycleActive
}

// Activate reativa o produto
func (p *Product) Activate() {
	p.Lifecycle = LifecycleActive
	p.UpdatedAt = time.Now()
}

// Deactivate desativa o produto
func (p *Product) Deactivate() {
	p.Lifecycle = LifecycleInactive
	p.UpdatedAt = time.Now()
}
