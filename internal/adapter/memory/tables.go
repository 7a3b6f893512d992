package memory

import (
	"context"
	"sort"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/table"
)

type tableRepo struct{ view }

func (r tableRepo) Create(ctx context.Context, t *table.Table) error {
	return r.with(ctx, func(d *dataset) error {
		if numberTaken(d, t.Number, t.ID) {
			return table.ErrDuplicate
		}
		d.tables[t.ID] = *t
		d.track(t.ID)
		return nil
	})
}

func (r tableRepo) FindByID(ctx context.Context, id string) (*table.Table, error) {
	var out *table.Table
	err := r.with(ctx, func(d *dataset) error {
		t, ok := d.tables[id]
		if !ok {
			return table.ErrNotFound
		}
		out = &t
		return nil
	})
	return out, err
}

func (r tableRepo) List(ctx context.Context) ([]*table.Table, error) {
	var out []*table.Table
	err := r.with(ctx, func(d *dataset) error {
		for _, t := range d.tables {
			t := t
			out = append(out, &t)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, err
}

func (r tableRepo) Update(ctx context.Context, t *table.Table) error {
	return r.with(ctx, func(d *dataset) error {
		stored, ok := d.tables[t.ID]
		if !ok {
			return table.ErrNotFound
		}
		if numberTaken(d, t.Number, t.ID) {
			return table.ErrDuplicate
		}
		stored.Number = t.Number
		stored.Name = t.Name
		d.tables[t.ID] = stored
		return nil
	})
}

func (r tableRepo) UpdateOccupancy(ctx context.Context, t *table.Table, expectedVersion int64) error {
	return r.with(ctx, func(d *dataset) error {
		stored, ok := d.tables[t.ID]
		if !ok {
			return table.ErrNotFound
		}
		if stored.Version != expectedVersion {
			return table.ErrAlreadyTaken
		}
		stored.Status = t.Status
		stored.CurrentAccountID = t.CurrentAccountID
		stored.Version = expectedVersion + 1
		d.tables[t.ID] = stored
		t.Version = stored.Version
		return nil
	})
}

func (r tableRepo) Delete(ctx context.Context, id string) error {
	return r.with(ctx, func(d *dataset) error {
		if _, ok := d.tables[id]; !ok {
			return table.ErrNotFound
		}
		for _, a := range d.accounts {
			if a.TableID != nil && *a.TableID == id {
				return table.ErrHasAccounts
			}
		}
		delete(d.tables, id)
		return nil
	})
}

func numberTaken(d *dataset, number int, exceptID string) bool {
	for id, t := range d.tables {
		if id != exceptID && t.Number == number {
			return true
		}
	}
	return false
}
