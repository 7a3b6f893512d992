package account

import (
	"context"
)

// Repository define a interface para operações de repositório de contas
type Repository interface {
	// Create cria uma nova conta
	Create(ctx context.Context, a *Account) error

	// FindByID busca uma conta pelo ID
	FindByID(ctx context.Context, id string) (*Account, error)

	// Lock busca a conta bloqueando-a até o fim da transação. Todo fluxo que altera
	// itens da conta passa por aqui, o que serializa envio, cancelamento e fechamento.
	Lock(ctx context.Context, id string) (*Account, error)

	// FindOpenByTable busca a conta aberta de uma mesa
	FindOpenByTable(ctx context.Context, tableID string) (*Account, error)

	// ListByStatus lista contas de um status, mais recentes primeiro
	ListByStatus(ctx context.Context, status Status) ([]*Account, error)

	// Update grava status e valores da conta
	Update(ctx context.Context, a *Account) error
}

// ItemRepository define a interface para operações de repositório de itens de conta
type ItemRepository interface {
	Create(ctx context.Context, it *Item) error
	FindByID(ctx context.Context, id string) (*Item, error)

	// ListByAccount lista os itens da conta, incluindo cancelados, em ordem de criação
	ListByAccount(ctx context.Context, accountID string) ([]*Item, error)

	// ListForKitchen lista itens enviados e ainda em produção ou prontos, por envio ascendente
	ListForKitchen(ctx context.Context) ([]*KitchenTicket, error)

	Update(ctx context.Context, it *Item) error
}

// PaymentRepository define a interface para operações de repositório de pagamentos
type PaymentRepository interface {
	Create(ctx context.Context, p *Payment) error
	ListByAccount(ctx context.Context, accountID string) ([]*Payment, error)
}
