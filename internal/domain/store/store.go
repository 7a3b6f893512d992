// Package store define a unidade de trabalho usada pelos fluxos compostos.
package store

import (
	"context"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/account"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/cashier"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/combo"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/product"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/setting"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/table"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/user"
)

// Repositories agrupa os repositórios ligados a uma mesma transação
type Repositories struct {
	Tables   table.Repository
	Accounts account.Repository
	Items    account.ItemRepository
	Payments account.PaymentRepository
	Cashiers cashier.Repository
	Products product.Repository
	Combos   combo.Repository
	Settings setting.Repository
	Users    user.Repository
}

// UnitOfWork executa fn dentro de uma transação. Se fn retornar erro,
// nenhuma escrita feita pelos repositórios recebidos é persistida.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}

// Store expõe os repositórios fora de transação e a unidade de trabalho
type Store interface {
	UnitOfWork
	Repositories() Repositories
}
