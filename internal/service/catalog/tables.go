package catalog

import (
	"context"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/store"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/table"
)

// CreateTable cadastra uma mesa livre
func (s *Service) CreateTable(ctx context.Context, number int, name string) (*table.Table, error) {
	t, err := table.NewTable(number, name)
	if err != nil {
		return nil, err
	}
	if err := s.store.Repositories().Tables.Create(ctx, t); err != nil {
		return nil, err
	}
	s.log.Info("Mesa cadastrada", "mesa_id", t.ID, "numero", t.Number)
	return t, nil
}

// UpdateTable altera número e nome de uma mesa
func (s *Service) UpdateTable(ctx context.Context, id string, number int, name string) (*table.Table, error) {
	var out *table.Table
	err := s.store.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		t, err := repos.Tables.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := t.Update(number, name); err != nil {
			return err
		}
		out = t
		return repos.Tables.Update(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteTable remove uma mesa livre que nunca teve contas
func (s *Service) DeleteTable(ctx context.Context, id string) error {
	err := s.store.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		t, err := repos.Tables.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if !t.IsFree() {
			return table.ErrNotFree
		}
		return repos.Tables.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.log.Info("Mesa removida", "mesa_id", id)
	return nil
}
