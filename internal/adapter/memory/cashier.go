package memory

import (
	"context"
	"sort"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/cashier"
)

type cashierRepo struct{ view }

func (r cashierRepo) Create(ctx context.Context, s *cashier.Session) error {
	return r.with(ctx, func(d *dataset) error {
		for _, other := range d.sessions {
			if other.Date == s.Date {
				return cashier.ErrAlreadyExists
			}
		}
		d.sessions[s.ID] = *s
		d.track(s.ID)
		return nil
	})
}

func (r cashierRepo) FindByDate(ctx context.Context, date string) (*cashier.Session, error) {
	var out *cashier.Session
	err := r.with(ctx, func(d *dataset) error {
		for _, s := range d.sessions {
			if s.Date == date {
				s := s
				out = &s
				return nil
			}
		}
		return cashier.ErrNotFound
	})
	return out, err
}

func (r cashierRepo) AddTotals(ctx context.Context, s *cashier.Session, delta cashier.Totals) error {
	return r.with(ctx, func(d *dataset) error {
		stored, ok := d.sessions[s.ID]
		if !ok {
			return cashier.ErrNotFound
		}
		stored.Apply(delta)
		d.sessions[s.ID] = stored
		*s = stored
		return nil
	})
}

func (r cashierRepo) CreateEntry(ctx context.Context, e *cashier.Entry) error {
	return r.with(ctx, func(d *dataset) error {
		if _, ok := d.sessions[e.SessionID]; !ok {
			return cashier.ErrNotFound
		}
		d.entries[e.ID] = *e
		d.track(e.ID)
		return nil
	})
}

func (r cashierRepo) ListEntries(ctx context.Context, sessionID string) ([]*cashier.Entry, error) {
	var out []*cashier.Entry
	err := r.with(ctx, func(d *dataset) error {
		for _, e := range d.entries {
			if e.SessionID == sessionID {
				e := e
				out = append(out, &e)
			}
		}
		sort.Slice(out, func(i, j int) bool { return d.order[out[i].ID] < d.order[out[j].ID] })
		return nil
	})
	return out, err
}
