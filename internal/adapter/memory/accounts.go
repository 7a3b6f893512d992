package memory

import (
	"context"
	"sort"
	"time"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/account"
)

type accountRepo struct{ view }

func (r accountRepo) Create(ctx context.Context, a *account.Account) error {
	return r.with(ctx, func(d *dataset) error {
		if a.TableID != nil && a.IsOpen() {
			for _, other := range d.accounts {
				if other.IsOpen() && other.TableID != nil && *other.TableID == *a.TableID {
					return account.ErrTableAccountTaken
				}
			}
		}
		d.accounts[a.ID] = *a
		d.track(a.ID)
		return nil
	})
}

func (r accountRepo) FindByID(ctx context.Context, id string) (*account.Account, error) {
	var out *account.Account
	err := r.with(ctx, func(d *dataset) error {
		a, ok := d.accounts[id]
		if !ok {
			return account.ErrNotFound
		}
		out = &a
		return nil
	})
	return out, err
}

// Lock equivale a FindByID: o store em memória já serializa as transações
func (r accountRepo) Lock(ctx context.Context, id string) (*account.Account, error) {
	return r.FindByID(ctx, id)
}

func (r accountRepo) FindOpenByTable(ctx context.Context, tableID string) (*account.Account, error) {
	var out *account.Account
	err := r.with(ctx, func(d *dataset) error {
		for _, a := range d.accounts {
			if a.IsOpen() && a.TableID != nil && *a.TableID == tableID {
				a := a
				out = &a
				return nil
			}
		}
		return account.ErrNotFound
	})
	return out, err
}

func (r accountRepo) ListByStatus(ctx context.Context, status account.Status) ([]*account.Account, error) {
	var out []*account.Account
	err := r.with(ctx, func(d *dataset) error {
		for _, a := range d.accounts {
			if a.Status == status {
				a := a
				out = append(out, &a)
			}
		}
		sort.Slice(out, func(i, j int) bool { return d.order[out[i].ID] > d.order[out[j].ID] })
		return nil
	})
	return out, err
}

func (r accountRepo) Update(ctx context.Context, a *account.Account) error {
	return r.with(ctx, func(d *dataset) error {
		stored, ok := d.accounts[a.ID]
		if !ok {
			return account.ErrNotFound
		}
		if stored.Version != a.Version {
			return account.ErrStale
		}
		a.Version++
		d.accounts[a.ID] = *a
		return nil
	})
}

type itemRepo struct{ view }

func (r itemRepo) Create(ctx context.Context, it *account.Item) error {
	return r.with(ctx, func(d *dataset) error {
		if _, ok := d.accounts[it.AccountID]; !ok {
			return account.ErrNotFound
		}
		d.items[it.ID] = *it
		d.track(it.ID)
		return nil
	})
}

func (r itemRepo) FindByID(ctx context.Context, id string) (*account.Item, error) {
	var out *account.Item
	err := r.with(ctx, func(d *dataset) error {
		it, ok := d.items[id]
		if !ok {
			return account.ErrItemNotFound
		}
		out = &it
		return nil
	})
	return out, err
}

func (r itemRepo) ListByAccount(ctx context.Context, accountID string) ([]*account.Item, error) {
	var out []*account.Item
	err := r.with(ctx, func(d *dataset) error {
		for _, it := range d.items {
			if it.AccountID == accountID {
				it := it
				out = append(out, &it)
			}
		}
		sort.Slice(out, func(i, j int) bool { return d.order[out[i].ID] < d.order[out[j].ID] })
		return nil
	})
	return out, err
}

func (r itemRepo) ListForKitchen(ctx context.Context) ([]*account.KitchenTicket, error) {
	var out []*account.KitchenTicket
	now := time.Now()
	err := r.with(ctx, func(d *dataset) error {
		for _, it := range d.items {
			if !it.SentToKitchen || !it.InProduction() {
				continue
			}
			it := it
			ticket := &account.KitchenTicket{Item: &it}
			if a, ok := d.accounts[it.AccountID]; ok {
				ticket.CustomerName = a.CustomerName
				if a.TableID != nil {
					if t, ok := d.tables[*a.TableID]; ok {
						n := t.Number
						ticket.TableNumber = &n
					}
				}
			}
			if it.SentAt != nil {
				ticket.WaitSeconds = int(now.Sub(*it.SentAt).Seconds())
			}
			out = append(out, ticket)
		}
		sort.Slice(out, func(i, j int) bool {
			a, b := out[i].Item, out[j].Item
			if !a.SentAt.Equal(*b.SentAt) {
				return a.SentAt.Before(*b.SentAt)
			}
			return d.order[a.ID] < d.order[b.ID]
		})
		return nil
	})
	return out, err
}

func (r itemRepo) Update(ctx context.Context, it *account.Item) error {
	return r.with(ctx, func(d *dataset) error {
		if _, ok := d.items[it.ID]; !ok {
			return account.ErrItemNotFound
		}
		d.items[it.ID] = *it
		return nil
	})
}

type paymentRepo struct{ view }

func (r paymentRepo) Create(ctx context.Context, p *account.Payment) error {
	return r.with(ctx, func(d *dataset) error {
		if _, ok := d.accounts[p.AccountID]; !ok {
			return account.ErrNotFound
		}
		d.payments[p.ID] = *p
		d.track(p.ID)
		return nil
	})
}

func (r paymentRepo) ListByAccount(ctx context.Context, accountID string) ([]*account.Payment, error) {
	var out []*account.Payment
	err := r.with(ctx, func(d *dataset) error {
		for _, p := range d.payments {
			if p.AccountID == accountID {
				p := p
				out = append(out, &p)
			}
		}
		sort.Slice(out, func(i, j int) bool { return d.order[out[i].ID] < d.order[out[j].ID] })
		return nil
	})
	return out, err
}
