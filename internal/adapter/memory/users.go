package memory

import (
	"context"
	"sort"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/setting"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/user"
)

type userRepo struct{ view }

func (r userRepo) Create(ctx context.Context, p *user.Profile) error {
	return r.with(ctx, func(d *dataset) error {
		if emailTaken(d, p.Email, p.ID) {
			return user.ErrDuplicateEmail
		}
		d.users[p.ID] = *p
		d.track(p.ID)
		return nil
	})
}

func (r userRepo) FindByID(ctx context.Context, id string) (*user.Profile, error) {
	var out *user.Profile
	err := r.with(ctx, func(d *dataset) error {
		p, ok := d.users[id]
		if !ok {
			return user.ErrNotFound
		}
		out = &p
		return nil
	})
	return out, err
}

func (r userRepo) FindByEmail(ctx context.Context, email string) (*user.Profile, error) {
	email = user.NormalizeEmail(email)
	var out *user.Profile
	err := r.with(ctx, func(d *dataset) error {
		for _, p := range d.users {
			if p.Email == email {
				p := p
				out = &p
				return nil
			}
		}
		return user.ErrNotFound
	})
	return out, err
}

func (r userRepo) List(ctx context.Context) ([]*user.Profile, error) {
	var out []*user.Profile
	err := r.with(ctx, func(d *dataset) error {
		for _, p := range d.users {
			p := p
			out = append(out, &p)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r userRepo) Update(ctx context.Context, p *user.Profile) error {
	return r.with(ctx, func(d *dataset) error {
		if _, ok := d.users[p.ID]; !ok {
			return user.ErrNotFound
		}
		if emailTaken(d, p.Email, p.ID) {
			return user.ErrDuplicateEmail
		}
		d.users[p.ID] = *p
		return nil
	})
}

func (r userRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.with(ctx, func(d *dataset) error {
		n = len(d.users)
		return nil
	})
	return n, err
}

func emailTaken(d *dataset, email, exceptID string) bool {
	for id, p := range d.users {
		if id != exceptID && p.Email == email {
			return true
		}
	}
	return false
}

type settingRepo struct{ view }

func (r settingRepo) Get(ctx context.Context, key string) (*setting.Setting, error) {
	var out *setting.Setting
	err := r.with(ctx, func(d *dataset) error {
		s, ok := d.settings[key]
		if !ok {
			return setting.ErrNotFound
		}
		out = &s
		return nil
	})
	return out, err
}

func (r settingRepo) Upsert(ctx context.Context, s *setting.Setting) error {
	return r.with(ctx, func(d *dataset) error {
		d.settings[s.Key] = *s
		return nil
	})
}

func (r settingRepo) List(ctx context.Context) ([]*setting.Setting, error) {
	var out []*setting.Setting
	err := r.with(ctx, func(d *dataset) error {
		for _, s := range d.settings {
			s := s
			out = append(out, &s)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, err
}
