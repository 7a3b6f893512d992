package catalog

import (
	"context"
	"io"

	"github.com/hugohenrick/pdv-restaurante/internal/adapter/storage"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/combo"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/store"
	"github.com/shopspring/decimal"
)

// ComboInput são os dados editáveis de um combo
type ComboInput struct {
	Name          string
	Description   string
	SalePrice     decimal.Decimal
	MadeByKitchen bool
	Items         []combo.Item
}

// CreateCombo cadastra um combo calculando o valor dos produtos pelos preços atuais
func (s *Service) CreateCombo(ctx context.Context, in ComboInput) (*combo.Combo, error) {
	var out *combo.Combo
	err := s.store.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		c := combo.NewCombo()
		if err := define(ctx, repos, c, in); err != nil {
			return err
		}
		out = c
		return repos.Combos.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Combo cadastrado", "combo_id", out.ID, "nome", out.Name)
	return out, nil
}

// UpdateCombo altera o combo substituindo o conjunto de produtos
func (s *Service) UpdateCombo(ctx context.Context, id string, in ComboInput) (*combo.Combo, error) {
	return s.mutateCombo(ctx, id, func(ctx context.Context, repos store.Repositories, c *combo.Combo) error {
		return define(ctx, repos, c, in)
	})
}

// GetCombo busca um combo com seus produtos
func (s *Service) GetCombo(ctx context.Context, id string) (*combo.Combo, error) {
	return s.store.Repositories().Combos.FindByID(ctx, id)
}

// ListCombos lista os combos ordenados pelo nome
func (s *Service) ListCombos(ctx context.Context, onlyActive bool) ([]*combo.Combo, error) {
	return s.store.Repositories().Combos.List(ctx, onlyActive)
}

// DeactivateCombo remove o combo do cardápio sem apagá-lo
func (s *Service) DeactivateCombo(ctx context.Context, id string) (*combo.Combo, error) {
	return s.mutateCombo(ctx, id, func(_ context.Context, _ store.Repositories, c *combo.Combo) error {
		c.Deactivate()
		return nil
	})
}

// ActivateCombo devolve o combo ao cardápio
func (s *Service) ActivateCombo(ctx context.Context, id string) (*combo.Combo, error) {
	return s.mutateCombo(ctx, id, func(_ context.Context, _ store.Repositories, c *combo.Combo) error {
		c.Activate()
		return nil
	})
}

// UploadComboPhoto grava a foto e atualiza a URL do combo
func (s *Service) UploadComboPhoto(ctx context.Context, id, originalName string, r io.Reader) (*combo.Combo, error) {
	if _, err := s.GetCombo(ctx, id); err != nil {
		return nil, err
	}
	url, err := s.upload(ctx, storage.BucketCombos, originalName, r)
	if err != nil {
		return nil, err
	}
	return s.mutateCombo(ctx, id, func(_ context.Context, _ store.Repositories, c *combo.Combo) error {
		c.PhotoURL = url
		return nil
	})
}

func (s *Service) mutateCombo(ctx context.Context, id string, fn func(context.Context, store.Repositories, *combo.Combo) error) (*combo.Combo, error) {
	var out *combo.Combo
	err := s.store.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		c, err := repos.Combos.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(ctx, repos, c); err != nil {
			return err
		}
		out = c
		return repos.Combos.Update(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func define(ctx context.Context, repos store.Repositories, c *combo.Combo, in ComboInput) error {
	ids := make([]string, 0, len(in.Items))
	for _, it := range in.Items {
		ids = append(ids, it.ProductID)
	}
	products, err := repos.Products.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	prices := make(map[string]decimal.Decimal, len(products))
	for _, p := range products {
		prices[p.ID] = p.Price
	}
	return c.Define(in.Name, in.Description, in.SalePrice, in.MadeByKitchen, in.Items, prices)
}
