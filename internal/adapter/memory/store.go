// Package memory implementa os repositórios em memória, usados nos testes
// e no modo STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"sync"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/account"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/cashier"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/combo"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/product"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/setting"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/store"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/table"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/user"
)

type dataset struct {
	seq      int64
	order    map[string]int64
	tables   map[string]table.Table
	accounts map[string]account.Account
	items    map[string]account.Item
	payments map[string]account.Payment
	sessions map[string]cashier.Session
	entries  map[string]cashier.Entry
	products map[string]product.Product
	combos   map[string]combo.Combo
	settings map[string]setting.Setting
	users    map[string]user.Profile
}

func newDataset() *dataset {
	return &dataset{
		order:    map[string]int64{},
		tables:   map[string]table.Table{},
		accounts: map[string]account.Account{},
		items:    map[string]account.Item{},
		payments: map[string]account.Payment{},
		sessions: map[string]cashier.Session{},
		entries:  map[string]cashier.Entry{},
		products: map[string]product.Product{},
		combos:   map[string]combo.Combo{},
		settings: map[string]setting.Setting{},
		users:    map[string]user.Profile{},
	}
}

func (d *dataset) clone() *dataset {
	c := &dataset{
		seq:      d.seq,
		order:    cloneMap(d.order),
		tables:   cloneMap(d.tables),
		accounts: cloneMap(d.accounts),
		items:    cloneMap(d.items),
		payments: cloneMap(d.payments),
		sessions: cloneMap(d.sessions),
		entries:  cloneMap(d.entries),
		products: cloneMap(d.products),
		combos:   make(map[string]combo.Combo, len(d.combos)),
		settings: cloneMap(d.settings),
		users:    cloneMap(d.users),
	}
	for id, cb := range d.combos {
		cb.Items = append([]combo.Item(nil), cb.Items...)
		c.combos[id] = cb
	}
	return c
}

// track registra a ordem de inserção de um registro
func (d *dataset) track(id string) {
	d.seq++
	d.order[id] = d.seq
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	c := make(map[K]V, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// Store guarda todos os dados do restaurante em memória
type Store struct {
	mu   sync.Mutex
	data *dataset
}

// NewStore cria um Store vazio
func NewStore() *Store {
	return &Store{data: newDataset()}
}

var _ store.Store = (*Store)(nil)

// Do executa fn sobre uma cópia dos dados e só a publica se fn tiver sucesso.
// As transações são serializadas.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, repos store.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(ctx, repositories(view{tx: work})); err != nil {
		return err
	}
	s.data = work
	return nil
}

// Repositories retorna repositórios que gravam imediatamente, sem transação
func (s *Store) Repositories() store.Repositories {
	return repositories(view{store: s})
}

func repositories(v view) store.Repositories {
	return store.Repositories{
		Tables:   tableRepo{v},
		Accounts: accountRepo{v},
		Items:    itemRepo{v},
		Payments: paymentRepo{v},
		Cashiers: cashierRepo{v},
		Products: productRepo{v},
		Combos:   comboRepo{v},
		Settings: settingRepo{v},
		Users:    userRepo{v},
	}
}

// view dá acesso ao dataset da transação corrente ou, fora dela, ao dataset
// publicado sob o lock do Store.
type view struct {
	store *Store
	tx    *dataset
}

func (v view) with(ctx context.Context, fn func(d *dataset) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.data)
}
