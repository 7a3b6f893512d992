package account

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemStatus representa a etapa de um item da conta
type ItemStatus string

const (
	ItemPending   ItemStatus = "pendente"    // Lançado, ainda não enviado à cozinha
	ItemInKitchen ItemStatus = "em_producao" // Enviado à cozinha
	ItemReady     ItemStatus = "pronto"      // Pronto para entrega
	ItemDelivered ItemStatus = "entregue"    // Entregue ao cliente
	ItemCancelled ItemStatus = "cancelado"   // Cancelado antes da produção
)

// ItemKind diferencia produto de combo
type ItemKind string

const (
	KindProduct ItemKind = "produto"
	KindCombo   ItemKind = "combo"
)

// itemTransitions lista os destinos permitidos a partir de cada status.
// Não há retorno nem salto de etapas; entregue e cancelado são terminais.
var itemTransitions = map[ItemStatus][]ItemStatus{
	ItemPending:   {ItemInKitchen, ItemCancelled},
	ItemInKitchen: {ItemReady},
	ItemReady:     {ItemDelivered},
}

// CanTransition verifica se a transição de status é permitida
func CanTransition(from, to ItemStatus) bool {
	for _, s := range itemTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Item representa uma linha (produto ou combo) de uma conta
type Item struct {
	ID                string          `json:"id"`
	AccountID         string          `json:"conta_id"`
	ProductID         *string         `json:"produto_id"`
	ComboID           *string         `json:"combo_id"`
	Kind              ItemKind        `json:"tipo"`
	Name              string          `json:"nome"`
	Quantity          int             `json:"quantidade"`
	UnitPrice         decimal.Decimal `json:"valor_unitario"`
	LineTotal         decimal.Decimal `json:"valor_total"`
	Notes             string          `json:"observacoes,omitempty"`
	Status            ItemStatus      `json:"status"`
	SentToKitchen     bool            `json:"enviado_para_cozinha"`
	SentAt            *time.Time      `json:"enviado_em"`
	DeliveredAt       *time.Time      `json:"entregue_em"`
	ProductionSeconds *int            `json:"tempo_producao_segundos"`
	CancelledBy       *string         `json:"cancelado_por"`
	CancelledAt       *time.Time      `json:"cancelado_em"`
	CancelReason      string          `json:"motivo_cancelamento,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// NewItem cria um item pendente com nome e preço copiados do catálogo
func NewItem(accountID string, kind ItemKind, refID, name string, unitPrice decimal.Decimal, quantity int, notes string) (*Item, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if refID == "" {
		return nil, ErrItemReference
	}

	it := &Item{
		ID:        uuid.New().String(),
		AccountID: accountID,
		Kind:      kind,
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice.Round(2),
		Notes:     strings.TrimSpace(notes),
		Status:    ItemPending,
		CreatedAt: time.Now(),
	}
	switch kind {
	case KindProduct:
		it.ProductID = &refID
	case KindCombo:
		it.ComboID = &refID
	default:
		return nil, ErrItemReference
	}
	it.LineTotal = it.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	return it, nil
}

// IsCancelled verifica se o item foi cancelado
func (i *Item) IsCancelled() bool {
	return i.Status == ItemCancelled
}

// InProduction indica que o item foi comprometido com a cozinha e ainda não saiu
func (i *Item) InProduction() bool {
	return i.Status == ItemInKitchen || i.Status == ItemReady
}

func (i *Item) transition(to ItemStatus) error {
	if !CanTransition(i.Status, to) {
		return ErrInvalidTransition
	}
	i.Status = to
	return nil
}

// SendToKitchen move o item pendente para produção
func (i *Item) SendToKitchen(now time.Time) error {
	if err := i.transition(ItemInKitchen); err != nil {
		return err
	}
	i.SentToKitchen = true
	i.SentAt = &now
	return nil
}

// MarkReady marca o item como pronto
func (i *Item) MarkReady() error {
	return i.transition(ItemReady)
}

// MarkDelivered marca o item como entregue e registra o tempo de produção
func (i *Item) MarkDelivered(now time.Time) error {
	if err := i.transition(ItemDelivered); err != nil {
		return err
	}
	i.DeliveredAt = &now
	if i.SentAt != nil {
		secs := int(now.Sub(*i.SentAt).Seconds())
		i.ProductionSeconds = &secs
	}
	return nil
}

// Cancel cancela um item pendente. Itens já enviados à cozinha não podem ser cancelados.
func (i *Item) Cancel(by, reason string, now time.Time) error {
	if err := i.transition(ItemCancelled); err != nil {
		return ErrItemCommitted
	}
	i.CancelledBy = &by
	i.CancelledAt = &now
	i.CancelReason = strings.TrimSpace(reason)
	return nil
}
