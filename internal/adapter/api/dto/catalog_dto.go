package dto

import (
	"github.com/shopspring/decimal"
)

// TableRequest representa os dados de uma mesa
type TableRequest struct {
	Number int    `json:"numero" binding:"required,min=1"`
	Name   string `json:"nome"`
}

// ProductRequest representa os dados de um produto para criação ou atualização
type ProductRequest struct {
	Name          string          `json:"nome" binding:"required"`
	Description   string          `json:"descricao"`
	Price         decimal.Decimal `json:"valor"`
	MadeByKitchen bool            `json:"feito_pela_cozinha"`
	Category      string          `json:"categoria"`
}

// ComboItemRequest associa um produto ao combo
type ComboItemRequest struct {
	ProductID string `json:"produto_id" binding:"required"`
	Quantity  int    `json:"quantidade" binding:"required,min=1"`
}

// ComboRequest representa os dados de um combo para criação ou atualização
type ComboRequest struct {
	Name          string             `json:"nome" binding:"required"`
	Description   string             `json:"descricao"`
	SalePrice     decimal.Decimal    `json:"valor_venda"`
	MadeByKitchen bool               `json:"feito_pela_cozinha"`
	Items         []ComboItemRequest `json:"produtos" binding:"required,min=1,dive"`
}
