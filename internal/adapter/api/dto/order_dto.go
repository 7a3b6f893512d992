package dto

import (
	"github.com/hugohenrick/pdv-restaurante/internal/domain/account"
	"github.com/shopspring/decimal"
)

// WalkInRequest abre uma conta avulsa
type WalkInRequest struct {
	CustomerName string `json:"nome_cliente" binding:"required"`
}

// AddItemRequest adiciona um produto ou combo à conta
type AddItemRequest struct {
	ProductID string `json:"produto_id"`
	ComboID   string `json:"combo_id"`
	Quantity  int    `json:"quantidade" binding:"omitempty,min=1"`
	Notes     string `json:"observacoes"`
}

// CancelRequest informa o motivo de um cancelamento
type CancelRequest struct {
	Reason string `json:"motivo"`
}

// AdjustmentsRequest aplica desconto e taxa de serviço. Campo omitido mantém o valor atual.
type AdjustmentsRequest struct {
	Discount             *decimal.Decimal `json:"valor_desconto"`
	ServiceChargePercent *decimal.Decimal `json:"taxa_servico_percentual"`
}

// PaymentRequest é uma forma de pagamento do fechamento
type PaymentRequest struct {
	Method string          `json:"forma_pagamento" binding:"required"`
	Amount decimal.Decimal `json:"valor"`
}

// CloseAccountRequest fecha a conta com um ou mais pagamentos
type CloseAccountRequest struct {
	Payments []PaymentRequest `json:"pagamentos" binding:"required,min=1,dive"`
}

// SendToKitchenResponse informa quantos itens foram enviados
type SendToKitchenResponse struct {
	Message   string          `json:"message"`
	SentCount int             `json:"enviados"`
	Items     []*account.Item `json:"itens"`
}

// LeaveResponse indica se a conta vazia foi descartada
type LeaveResponse struct {
	Discarded bool `json:"descartada"`
}
