package order

import (
	"context"
	"errors"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/account"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/store"
)

// OpenTableAccount abre a conta de uma mesa livre. Se a mesa já está ocupada,
// devolve a conta aberta existente. Uma abertura concorrente que perde a corrida
// recebe um erro de conflito.
func (s *Service) OpenTableAccount(ctx context.Context, tableID, actor string) (*account.Account, error) {
	var (
		out     *account.Account
		created bool
	)
	err := s.store.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		t, err := repos.Tables.FindByID(ctx, tableID)
		if err != nil {
			return err
		}

		if !t.IsFree() {
			existing, err := repos.Accounts.FindOpenByTable(ctx, tableID)
			if err == nil {
				out = existing
				return nil
			}
			if !errors.Is(err, account.ErrNotFound) {
				return err
			}
			// Mesa ocupada sem conta aberta: libera e segue com a abertura
			s.log.Warn("Mesa ocupada sem conta aberta, liberando", "mesa_id", tableID)
			stale := ""
			if t.CurrentAccountID != nil {
				stale = *t.CurrentAccountID
			}
			if err := t.Release(stale); err != nil {
				return err
			}
		}

		pct, err := s.serviceChargePercent(ctx, repos)
		if err != nil {
			return err
		}
		a := account.NewTableAccount(tableID, actor, pct)
		if err := repos.Accounts.Create(ctx, a); err != nil {
			return err
		}

		expected := t.Version
		if err := t.Occupy(a.ID); err != nil {
			return err
		}
		if err := repos.Tables.UpdateOccupancy(ctx, t, expected); err != nil {
			return err
		}
		out = a
		created = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if created {
		s.metrics.AccountOpened(string(account.KindTable))
		s.log.Info("Conta de mesa aberta", "conta_id", out.ID, "mesa_id", tableID, "usuario", actor)
	}
	return out, nil
}

// OpenWalkInAccount abre uma conta avulsa identificada pelo nome do cliente
func (s *Service) OpenWalkInAccount(ctx context.Context, customerName, actor string) (*account.Account, error) {
	var out *account.Account
	err := s.store.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		pct, err := s.serviceChargePercent(ctx, repos)
		if err != nil {
			return err
		}
		a, err := account.NewWalkInAccount(customerName, actor, pct)
		if err != nil {
			return err
		}
		if err := repos.Accounts.Create(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.AccountOpened(string(account.KindWalkIn))
	s.log.Info("Conta avulsa aberta", "conta_id", out.ID, "cliente", out.CustomerName, "usuario", actor)
	return out, nil
}
