package dto

import (
	"github.com/hugohenrick/pdv-restaurante/internal/domain/cashier"
	"github.com/shopspring/decimal"
)

// OpenCashierRequest abre o caixa do dia
type OpenCashierRequest struct {
	OpeningFloat decimal.Decimal `json:"valor_abertura"`
}

// OpenCashierResponse devolve o caixa e se ele foi criado agora
type OpenCashierResponse struct {
	Session *cashier.Session `json:"caixa"`
	Created bool             `json:"criado"`
}

// CashEntryRequest registra uma entrada ou saída manual
type CashEntryRequest struct {
	Kind        string          `json:"tipo" binding:"required,oneof=entrada saida"`
	Description string          `json:"descricao" binding:"required"`
	Amount      decimal.Decimal `json:"valor"`
	Method      string          `json:"forma_pagamento"`
}
