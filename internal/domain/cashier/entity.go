package cashier

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/account"
	"github.com/hugohenrick/pdv-restaurante/pkg/apperror"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidOpeningFloat = apperror.New(apperror.KindValidation, "informe um valor válido para o fundo de caixa")
	ErrNotFound            = apperror.New(apperror.KindNotFound, "caixa do dia não encontrado")
	ErrNotOpen             = apperror.New(apperror.KindPrecondition, "caixa do dia não está aberto")
	ErrAlreadyExists       = apperror.New(apperror.KindConflict, "já existe caixa para esta data")
	ErrInvalidEntry        = apperror.New(apperror.KindValidation, "lançamento inválido")
)

// Status representa o estado do caixa
type Status string

const (
	StatusOpen   Status = "aberto"
	StatusClosed Status = "fechado"
)

// DateLayout é o formato da data do caixa
const DateLayout = "2006-01-02"

// Session representa o caixa de um dia
type Session struct {
	ID                 string          `json:"id"`
	Date               string          `json:"data"`
	Status             Status          `json:"status"`
	OpenedBy           string          `json:"aberto_por"`
	ClosedBy           *string         `json:"fechado_por"`
	OpeningFloat       decimal.Decimal `json:"fundo_de_caixa"`
	OpenedAt           time.Time       `json:"aberto_em"`
	ClosedAt           *time.Time      `json:"fechado_em"`
	TotalCash          decimal.Decimal `json:"total_vendas_dinheiro"`
	TotalCredit        decimal.Decimal `json:"total_vendas_cartao_credito"`
	TotalDebit         decimal.Decimal `json:"total_vendas_cartao_debito"`
	TotalPix           decimal.Decimal `json:"total_vendas_pix"`
	TotalDiscounts     decimal.Decimal `json:"total_descontos"`
	TotalServiceCharge decimal.Decimal `json:"total_taxa_servico"`
	TotalExpenses      decimal.Decimal `json:"total_gastos"`
	Observations       string          `json:"observacoes,omitempty"`
}

// DateOf retorna a data de caixa de um instante
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// NewSession abre o caixa do dia com o fundo informado
func NewSession(date string, openingFloat decimal.Decimal, openedBy string) (*Session, error) {
	if openingFloat.IsNegative() {
		return nil, ErrInvalidOpeningFloat
	}
	return &Session{
		ID:                 uuid.New().String(),
		Date:               date,
		Status:             StatusOpen,
		OpenedBy:           openedBy,
		OpeningFloat:       openingFloat.Round(2),
		OpenedAt:           time.Now(),
		TotalCash:          decimal.Zero,
		TotalCredit:        decimal.Zero,
		TotalDebit:         decimal.Zero,
		TotalPix:           decimal.Zero,
		TotalDiscounts:     decimal.Zero,
		TotalServiceCharge: decimal.Zero,
		TotalExpenses:      decimal.Zero,
	}, nil
}

// IsOpen verifica se o caixa está aberto
func (s *Session) IsOpen() bool {
	return s.Status == StatusOpen
}

// Totals são valores a somar aos acumulados do caixa
type Totals struct {
	Cash          decimal.Decimal
	Credit        decimal.Decimal
	Debit         decimal.Decimal
	Pix           decimal.Decimal
	Discounts     decimal.Decimal
	ServiceCharge decimal.Decimal
	Expenses      decimal.Decimal
}

// SaleTotals calcula o quanto uma conta fechada soma aos totais do caixa
func (s *Session) SaleTotals(payments []*account.Payment, discount, serviceCharge decimal.Decimal) (Totals, error) {
	if !s.IsOpen() {
		return Totals{}, ErrNotOpen
	}
	var t Totals
	for method, amount := range account.TotalsByMethod(payments) {
		switch method {
		case account.MethodCash:
			t.Cash = t.Cash.Add(amount)
		case account.MethodCredit:
			t.Credit = t.Credit.Add(amount)
		case account.MethodDebit:
			t.Debit = t.Debit.Add(amount)
		case account.MethodPix:
			t.Pix = t.Pix.Add(amount)
		}
	}
	t.Discounts = discount
	t.ServiceCharge = serviceCharge
	return t, nil
}

// EntryTotals calcula o quanto um lançamento manual soma aos totais
func (s *Session) EntryTotals(e *Entry) (Totals, error) {
	if !s.IsOpen() {
		return Totals{}, ErrNotOpen
	}
	var t Totals
	if e.Kind == EntryExpense {
		t.Expenses = e.Amount
	}
	return t, nil
}

// Apply soma t aos totais do caixa
func (s *Session) Apply(t Totals) {
	s.TotalCash = s.TotalCash.Add(t.Cash)
	s.TotalCredit = s.TotalCredit.Add(t.Credit)
	s.TotalDebit = s.TotalDebit.Add(t.Debit)
	s.TotalPix = s.TotalPix.Add(t.Pix)
	s.TotalDiscounts = s.TotalDiscounts.Add(t.Discounts)
	s.TotalServiceCharge = s.TotalServiceCharge.Add(t.ServiceCharge)
	s.TotalExpenses = s.TotalExpenses.Add(t.Expenses)
}

// TotalSales soma as vendas de todas as formas de pagamento
func (s *Session) TotalSales() decimal.Decimal {
	return s.TotalCash.Add(s.TotalCredit).Add(s.TotalDebit).Add(s.TotalPix)
}

// ExpectedCash é o dinheiro esperado na gaveta: fundo + vendas em dinheiro - gastos
func (s *Session) ExpectedCash() decimal.Decimal {
	return s.OpeningFloat.Add(s.TotalCash).Sub(s.TotalExpenses)
}

// EntryKind representa o tipo de lançamento do caixa
type EntryKind string

const (
	EntryDeposit      EntryKind = "entrada"
	EntryExpense      EntryKind = "saida"
	EntryCancellation EntryKind = "cancelamento" // Registro de auditoria, sempre com valor zero
)

// Entry representa um lançamento do caixa
type Entry struct {
	ID          string                 `json:"id"`
	SessionID   string                 `json:"caixa_id"`
	Kind        EntryKind              `json:"tipo"`
	Description string                 `json:"descricao"`
	Amount      decimal.Decimal        `json:"valor"`
	Method      *account.PaymentMethod `json:"forma_pagamento"`
	RecordedBy  string                 `json:"registrado_por"`
	CreatedAt   time.Time              `json:"created_at"`
}

// NewEntry cria um lançamento manual de entrada ou saída
func NewEntry(sessionID string, kind EntryKind, description string, amount decimal.Decimal, method account.PaymentMethod, recordedBy string) (*Entry, error) {
	description = strings.TrimSpace(description)
	if kind != EntryDeposit && kind != EntryExpense {
		return nil, apperror.Wrap(ErrInvalidEntry, "tipo %q", kind)
	}
	if description == "" || !amount.IsPositive() || !method.IsValid() {
		return nil, ErrInvalidEntry
	}
	return &Entry{
		ID:          uuid.New().String(),
		SessionID:   sessionID,
		Kind:        kind,
		Description: description,
		Amount:      amount.Round(2),
		Method:      &method,
		RecordedBy:  recordedBy,
		CreatedAt:   time.Now(),
	}, nil
}

// NewCancellationEntry cria o registro de auditoria de uma conta cancelada
func NewCancellationEntry(sessionID, description, recordedBy string) *Entry {
	return &Entry{
		ID:          uuid.New().String(),
		SessionID:   sessionID,
		Kind:        EntryCancellation,
		Description: description,
		Amount:      decimal.Zero,
		RecordedBy:  recordedBy,
		CreatedAt:   time.Now(),
	}
}
