package account

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Status representa o estado da conta
type Status string

const (
	StatusOpen      Status = "aberta"
	StatusClosed    Status = "fechada"
	StatusCancelled Status = "cancelada"
)

// Kind define se a conta é de mesa ou avulsa
type Kind string

const (
	KindTable  Kind = "mesa"   // Conta vinculada a uma mesa
	KindWalkIn Kind = "avulso" // Conta de balcão identificada pelo nome do cliente
)

var hundred = decimal.NewFromInt(100)

// Account representa uma conta (comanda) de mesa ou avulsa
type Account struct {
	ID                   string          `json:"id"`
	TableID              *string         `json:"mesa_id"`
	CustomerName         string          `json:"nome_cliente,omitempty"`
	Kind                 Kind            `json:"tipo"`
	Status               Status          `json:"status"`
	Subtotal             decimal.Decimal `json:"valor_total"`
	Discount             decimal.Decimal `json:"valor_desconto"`
	ServiceChargePercent decimal.Decimal `json:"taxa_servico_percentual"`
	ServiceChargeAmount  decimal.Decimal `json:"valor_taxa_servico"`
	FinalTotal           decimal.Decimal `json:"valor_final"`
	OpenedBy             string          `json:"aberta_por"`
	ClosedBy             *string         `json:"fechada_por"`
	OpenedAt             time.Time       `json:"aberta_em"`
	ClosedAt             *time.Time      `json:"fechada_em"`
	Observations         string          `json:"observacoes,omitempty"`
	Version              int64           `json:"version"`
}

// NewTableAccount cria uma conta aberta para a mesa
func NewTableAccount(tableID, openedBy string, serviceChargePercent decimal.Decimal) *Account {
	a := newAccount(KindTable, openedBy, serviceChargePercent)
	a.TableID = &tableID
	return a
}

// NewWalkInAccount cria uma conta avulsa identificada pelo nome do cliente
func NewWalkInAccount(customerName, openedBy string, serviceChargePercent decimal.Decimal) (*Account, error) {
	customerName = strings.TrimSpace(customerName)
	if customerName == "" {
		return nil, ErrEmptyCustomerName
	}
	a := newAccount(KindWalkIn, openedBy, serviceChargePercent)
	a.CustomerName = customerName
	return a, nil
}

func newAccount(kind Kind, openedBy string, serviceChargePercent decimal.Decimal) *Account {
	return &Account{
		ID:                   uuid.New().String(),
		Kind:                 kind,
		Status:               StatusOpen,
		Subtotal:             decimal.Zero,
		Discount:             decimal.Zero,
		ServiceChargePercent: serviceChargePercent,
		ServiceChargeAmount:  decimal.Zero,
		FinalTotal:           decimal.Zero,
		OpenedBy:             openedBy,
		OpenedAt:             time.Now(),
		Version:              1,
	}
}

// IsOpen verifica se a conta está aberta
func (a *Account) IsOpen() bool {
	return a.Status == StatusOpen
}

// RequireOpen retorna erro quando a conta não aceita mais alterações
func (a *Account) RequireOpen() error {
	if !a.IsOpen() {
		return ErrNotOpen
	}
	return nil
}

// Recalculate recalcula subtotal, taxa de serviço e valor final a partir dos itens.
// Itens cancelados não entram no total.
func (a *Account) Recalculate(items []*Item) {
	subtotal := decimal.Zero
	for _, it := range items {
		if it.IsCancelled() {
			continue
		}
		subtotal = subtotal.Add(it.LineTotal)
	}
	a.Subtotal = subtotal
	if a.Discount.GreaterThan(subtotal) {
		a.Discount = subtotal
	}
	a.ServiceChargeAmount = subtotal.Mul(a.ServiceChargePercent).Div(hundred).Round(2)
	a.FinalTotal = a.Subtotal.Sub(a.Discount).Add(a.ServiceChargeAmount)
}

// ApplyAdjustments altera desconto e percentual de taxa de serviço
func (a *Account) ApplyAdjustments(discount, serviceChargePercent decimal.Decimal, items []*Item) error {
	if err := a.RequireOpen(); err != nil {
		return err
	}
	if serviceChargePercent.IsNegative() || serviceChargePercent.GreaterThan(hundred) {
		return ErrInvalidServiceFee
	}
	a.Recalculate(items)
	if discount.IsNegative() || discount.GreaterThan(a.Subtotal) {
		return ErrInvalidDiscount
	}
	a.Discount = discount.Round(2)
	a.ServiceChargePercent = serviceChargePercent
	a.Recalculate(items)
	return nil
}

// CheckCancellable garante que nada da conta foi comprometido com a produção.
// Itens entregues são tolerados.
func CheckCancellable(items []*Item) error {
	for _, it := range items {
		if it.InProduction() {
			return ErrItemsInProduction
		}
	}
	return nil
}

// CheckPayments verifica se a soma dos pagamentos confere com o valor final
func (a *Account) CheckPayments(payments []*Payment) error {
	if len(payments) == 0 {
		return ErrNoPayments
	}
	diff := SumPayments(payments).Sub(a.FinalTotal).Abs()
	if diff.GreaterThan(PaymentTolerance) {
		return ErrPaymentMismatch
	}
	return nil
}

// Close fecha a conta após o pagamento
func (a *Account) Close(by string, now time.Time) error {
	if err := a.RequireOpen(); err != nil {
		return err
	}
	a.Status = StatusClosed
	a.ClosedBy = &by
	a.ClosedAt = &now
	return nil
}

// Cancel cancela a conta registrando o motivo
func (a *Account) Cancel(by, reason string, now time.Time) error {
	if err := a.RequireOpen(); err != nil {
		return err
	}
	a.Status = StatusCancelled
	a.ClosedBy = &by
	a.ClosedAt = &now
	a.Observations = strings.TrimSpace(reason)
	return nil
}
