package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod representa a forma de pagamento
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "dinheiro"
	MethodCredit PaymentMethod = "cartao_credito"
	MethodDebit  PaymentMethod = "cartao_debito"
	MethodPix    PaymentMethod = "pix"
)

// Methods lista as formas de pagamento aceitas na ordem de exibição
var Methods = []PaymentMethod{MethodCash, MethodCredit, MethodDebit, MethodPix}

// IsValid verifica se a forma de pagamento é conhecida
func (m PaymentMethod) IsValid() bool {
	for _, v := range Methods {
		if v == m {
			return true
		}
	}
	return false
}

// PaymentTolerance é a diferença máxima aceita entre pagamentos e valor final
var PaymentTolerance = decimal.RequireFromString("0.01")

// Payment representa um pagamento registrado no fechamento da conta
type Payment struct {
	ID         string          `json:"id"`
	AccountID  string          `json:"conta_id"`
	Method     PaymentMethod   `json:"forma_pagamento"`
	Amount     decimal.Decimal `json:"valor"`
	RecordedBy string          `json:"registrado_por"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewPayment cria um pagamento validado
func NewPayment(accountID string, method PaymentMethod, amount decimal.Decimal, recordedBy string) (*Payment, error) {
	if !method.IsValid() || !amount.IsPositive() {
		return nil, ErrInvalidPayment
	}
	return &Payment{
		ID:         uuid.New().String(),
		AccountID:  accountID,
		Method:     method,
		Amount:     amount.Round(2),
		RecordedBy: recordedBy,
		CreatedAt:  time.Now(),
	}, nil
}

// SumPayments soma o valor dos pagamentos
func SumPayments(payments []*Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// TotalsByMethod agrupa o valor dos pagamentos por forma de pagamento
func TotalsByMethod(payments []*Payment) map[PaymentMethod]decimal.Decimal {
	totals := make(map[PaymentMethod]decimal.Decimal, len(Methods))
	for _, p := range payments {
		totals[p.Method] = totals[p.Method].Add(p.Amount)
	}
	return totals
}
