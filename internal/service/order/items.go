package order

import (
	"context"
	"strings"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/account"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/combo"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/product"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/store"
)

// ItemRequest descreve um lançamento: exatamente um de ProductID ou ComboID
type ItemRequest struct {
	ProductID string
	ComboID   string
	Quantity  int
	Notes     string
}

// SendResult informa quantos itens foram enviados para a cozinha
type SendResult struct {
	SentCount int             `json:"enviados"`
	Items     []*account.Item `json:"itens"`
}

// AddItem lança um produto ou combo ativo na conta aberta, copiando nome e preço
func (s *Service) AddItem(ctx context.Context, accountID string, req ItemRequest, actor string) (*account.Item, error) {
	req.ProductID = strings.TrimSpace(req.ProductID)
	req.ComboID = strings.TrimSpace(req.ComboID)
	if (req.ProductID == "") == (req.ComboID == "") {
		return nil, account.ErrItemReference
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	var out *account.Item
	err := s.store.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		a, err := repos.Accounts.Lock(ctx, accountID)
		if err != nil {
			return err
		}
		if err := a.RequireOpen(); err != nil {
			return err
		}

		var it *account.Item
		if req.ProductID != "" {
			p, err := repos.Products.FindByID(ctx, req.ProductID)
			if err != nil {
				return err
			}
			if !p.IsActive() {
				return product.ErrInactive
			}
			it, err = account.NewItem(a.ID, account.KindProduct, p.ID, p.Name, p.Price, req.Quantity, req.Notes)
			if err != nil {
				return err
			}
		} else {
			c, err := repos.Combos.FindByID(ctx, req.ComboID)
			if err != nil {
				return err
			}
			if !c.IsActive() {
				return combo.ErrInactive
			}
			it, err = account.NewItem(a.ID, account.KindCombo, c.ID, c.Name, c.SalePrice, req.Quantity, req.Notes)
			if err != nil {
				return err
			}
		}

		if err := repos.Items.Create(ctx, it); err != nil {
			return err
		}
		out = it
		return recalculate(ctx, repos, a)
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("Item lançado", "conta_id", accountID, "item_id", out.ID, "nome", out.Name, "usuario", actor)
	return out, nil
}

// SendPendingToKitchen envia todos os itens pendentes da conta para produção.
// Nenhum item pendente não é erro: o resultado traz SentCount igual a zero.
func (s *Service) SendPendingToKitchen(ctx context.Context, accountID string) (*SendResult, error) {
	now := s.now()
	result := &SendResult{}
	err := s.store.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		a, err := repos.Accounts.Lock(ctx, accountID)
		if err != nil {
			return err
		}
		if err := a.RequireOpen(); err != nil {
			return err
		}
		items, err := repos.Items.ListByAccount(ctx, accountID)
		if err != nil {
			return err
		}

		result.Items = result.Items[:0]
		for _, it := range items {
			if it.Status != account.ItemPending {
				continue
			}
			if err := it.SendToKitchen(now); err != nil {
				return err
			}
			if err := repos.Items.Update(ctx, it); err != nil {
				return err
			}
			result.Items = append(result.Items, it)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.SentCount = len(result.Items)
	if result.SentCount == 0 {
		return result, nil
	}

	events := make([]account.Event, 0, result.SentCount)
	for _, it := range result.Items {
		events = append(events, account.NewItemEvent(account.EventItemSent, it, now))
	}
	s.publish(ctx, events...)
	s.metrics.ItemsSent(result.SentCount)
	s.refreshKitchen()
	s.log.Info("Itens enviados para a cozinha", "conta_id", accountID, "quantidade", result.SentCount)
	return result, nil
}

// CancelItem cancela um item ainda pendente e recalcula os totais da conta
func (s *Service) CancelItem(ctx context.Context, itemID, reason, actor string) (*account.Item, error) {
	var out *account.Item
	err := s.store.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		a, it, err := lockItem(ctx, repos, itemID)
		if err != nil {
			return err
		}
		if err := a.RequireOpen(); err != nil {
			return err
		}
		if err := it.Cancel(actor, reason, s.now()); err != nil {
			return err
		}
		if err := repos.Items.Update(ctx, it); err != nil {
			return err
		}
		out = it
		return recalculate(ctx, repos, a)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Item cancelado", "item_id", itemID, "conta_id", out.AccountID, "usuario", actor)
	return out, nil
}

// MarkReady marca um item em produção como pronto
func (s *Service) MarkReady(ctx context.Context, itemID string) (*account.Item, error) {
	it, err := s.advanceItem(ctx, itemID, func(it *account.Item) error {
		return it.MarkReady()
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, account.NewItemEvent(account.EventItemReady, it, s.now()))
	s.refreshKitchen()
	return it, nil
}

// MarkDelivered marca um item pronto como entregue e registra o tempo de produção
func (s *Service) MarkDelivered(ctx context.Context, itemID string) (*account.Item, error) {
	now := s.now()
	it, err := s.advanceItem(ctx, itemID, func(it *account.Item) error {
		return it.MarkDelivered(now)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, account.NewItemEvent(account.EventItemDelivered, it, now))
	s.metrics.ItemDelivered(it.ProductionSeconds)
	s.refreshKitchen()
	return it, nil
}

func (s *Service) advanceItem(ctx context.Context, itemID string, step func(*account.Item) error) (*account.Item, error) {
	var out *account.Item
	err := s.store.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		_, it, err := lockItem(ctx, repos, itemID)
		if err != nil {
			return err
		}
		if err := step(it); err != nil {
			return err
		}
		out = it
		return repos.Items.Update(ctx, it)
	})
	return out, err
}

// lockItem bloqueia a conta dona do item e relê o item sob o bloqueio, para que
// a transição parta do estado confirmado mais recente
func lockItem(ctx context.Context, repos store.Repositories, itemID string) (*account.Account, *account.Item, error) {
	ref, err := repos.Items.FindByID(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	a, err := repos.Accounts.Lock(ctx, ref.AccountID)
	if err != nil {
		return nil, nil, err
	}
	it, err := repos.Items.FindByID(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	return a, it, nil
}
