package account

import "time"

// Chaves de roteamento dos eventos publicados no barramento
const (
	EventItemSent        = "kitchen.item.sent"
	EventItemReady       = "kitchen.item.ready"
	EventItemDelivered   = "kitchen.item.delivered"
	EventAccountClosed   = "account.closed"
	EventAccountCanceled = "account.cancelled"
)

// Event é a mensagem publicada após a confirmação de uma mudança de estado
type Event struct {
	Type       string     `json:"type"`
	AccountID  string     `json:"conta_id"`
	ItemID     string     `json:"item_id,omitempty"`
	ItemName   string     `json:"nome,omitempty"`
	Quantity   int        `json:"quantidade,omitempty"`
	Notes      string     `json:"observacoes,omitempty"`
	Status     string     `json:"status"`
	OccurredAt time.Time  `json:"occurred_at"`
	SentAt     *time.Time `json:"enviado_em,omitempty"`
}

// NewItemEvent monta o evento de um item
func NewItemEvent(eventType string, it *Item, now time.Time) Event {
	return Event{
		Type:       eventType,
		AccountID:  it.AccountID,
		ItemID:     it.ID,
		ItemName:   it.Name,
		Quantity:   it.Quantity,
		Notes:      it.Notes,
		Status:     string(it.Status),
		OccurredAt: now,
		SentAt:     it.SentAt,
	}
}

// NewAccountEvent monta o evento de fechamento ou cancelamento de conta
func NewAccountEvent(eventType string, a *Account, now time.Time) Event {
	return Event{
		Type:       eventType,
		AccountID:  a.ID,
		Status:     string(a.Status),
		OccurredAt: now,
	}
}
