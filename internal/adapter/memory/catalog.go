package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/combo"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/product"
)

type productRepo struct{ view }

func (r productRepo) Create(ctx context.Context, p *product.Product) error {
	return r.with(ctx, func(d *dataset) error {
		d.products[p.ID] = *p
		d.track(p.ID)
		return nil
	})
}

func (r productRepo) FindByID(ctx context.Context, id string) (*product.Product, error) {
	var out *product.Product
	err := r.with(ctx, func(d *dataset) error {
		p, ok := d.products[id]
		if !ok {
			return product.ErrNotFound
		}
		out = &p
		return nil
	})
	return out, err
}

func (r productRepo) FindByIDs(ctx context.Context, ids []string) ([]*product.Product, error) {
	var out []*product.Product
	err := r.with(ctx, func(d *dataset) error {
		for _, id := range ids {
			if p, ok := d.products[id]; ok {
				out = append(out, &p)
			}
		}
		return nil
	})
	return out, err
}

func (r productRepo) List(ctx context.Context, f product.Filter) ([]*product.Product, error) {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	var out []*product.Product
	err := r.with(ctx, func(d *dataset) error {
		for _, p := range d.products {
			if f.OnlyActive && !p.IsActive() {
				continue
			}
			if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
				continue
			}
			p := p
			out = append(out, &p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r productRepo) Update(ctx context.Context, p *product.Product) error {
	return r.with(ctx, func(d *dataset) error {
		if _, ok := d.products[p.ID]; !ok {
			return product.ErrNotFound
		}
		d.products[p.ID] = *p
		return nil
	})
}

type comboRepo struct{ view }

func (r comboRepo) Create(ctx context.Context, c *combo.Combo) error {
	return r.with(ctx, func(d *dataset) error {
		d.combos[c.ID] = copyCombo(c)
		d.track(c.ID)
		return nil
	})
}

func (r comboRepo) FindByID(ctx context.Context, id string) (*combo.Combo, error) {
	var out *combo.Combo
	err := r.with(ctx, func(d *dataset) error {
		c, ok := d.combos[id]
		if !ok {
			return combo.ErrNotFound
		}
		cp := copyCombo(&c)
		out = &cp
		return nil
	})
	return out, err
}

func (r comboRepo) List(ctx context.Context, onlyActive bool) ([]*combo.Combo, error) {
	var out []*combo.Combo
	err := r.with(ctx, func(d *dataset) error {
		for _, c := range d.combos {
			if onlyActive && !c.IsActive() {
				continue
			}
			cp := copyCombo(&c)
			out = append(out, &cp)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r comboRepo) Update(ctx context.Context, c *combo.Combo) error {
	return r.with(ctx, func(d *dataset) error {
		if _, ok := d.combos[c.ID]; !ok {
			return combo.ErrNotFound
		}
		d.combos[c.ID] = copyCombo(c)
		return nil
	})
}

func copyCombo(c *combo.Combo) combo.Combo {
	cp := *c
	cp.Items = append([]combo.Item(nil), c.Items...)
	return cp
}
