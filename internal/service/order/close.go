package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/account"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/cashier"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/store"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/table"
	"github.com/shopspring/decimal"
)

// PaymentInput é um pagamento informado no fechamento da conta
type PaymentInput struct {
	Method account.PaymentMethod
	Amount decimal.Decimal
}

// CloseResult é a conta fechada com os pagamentos registrados
type CloseResult struct {
	Account  *account.Account   `json:"conta"`
	Payments []*account.Payment `json:"pagamentos"`
}

// CancelAccount cancela uma conta aberta sem itens em produção. Na mesma transação
// cancela os itens pendentes, registra a auditoria no caixa do dia e libera a mesa.
func (s *Service) CancelAccount(ctx context.Context, accountID, reason, actor string) (*account.Account, error) {
	var out *account.Account
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
		if err := account.CheckCancellable(items); err != nil {
			return err
		}
		out = a
		return s.cancelInTx(ctx, repos, a, items, reason, actor)
	})
	if err != nil {
		return nil, err
	}
	s.afterCancel(ctx, out, actor)
	return out, nil
}

// ReturnToTableSelection descarta a conta quando ela não tem itens válidos.
// Retorna true se a conta foi cancelada.
func (s *Service) ReturnToTableSelection(ctx context.Context, accountID, actor string) (bool, error) {
	var discarded *account.Account
	err := s.store.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		a, err := repos.Accounts.Lock(ctx, accountID)
		if err != nil {
			return err
		}
		if !a.IsOpen() {
			return nil
		}
		items, err := repos.Items.ListByAccount(ctx, accountID)
		if err != nil {
			return err
		}
		for _, it := range items {
			if !it.IsCancelled() {
				return nil
			}
		}
		discarded = a
		return s.cancelInTx(ctx, repos, a, items, "", actor)
	})
	if err != nil {
		return false, err
	}
	if discarded == nil {
		return false, nil
	}
	s.afterCancel(ctx, discarded, actor)
	return true, nil
}

func (s *Service) cancelInTx(ctx context.Context, repos store.Repositories, a *account.Account, items []*account.Item, reason, actor string) error {
	now := s.now()
	for _, it := range items {
		if it.Status != account.ItemPending {
			continue
		}
		if err := it.Cancel(actor, reason, now); err != nil {
			return err
		}
		if err := repos.Items.Update(ctx, it); err != nil {
			return err
		}
	}

	var t *table.Table
	if a.TableID != nil {
		found, err := repos.Tables.FindByID(ctx, *a.TableID)
		if err != nil && !errors.Is(err, table.ErrNotFound) {
			return err
		}
		t = found
	}

	if err := s.recordCancellation(ctx, repos, a, t, reason, actor, now); err != nil {
		return err
	}

	if err := a.Cancel(actor, reason, now); err != nil {
		return err
	}
	a.Recalculate(items)
	if err := repos.Accounts.Update(ctx, a); err != nil {
		return err
	}
	return s.releaseTable(ctx, repos, t, a.ID)
}

// recordCancellation grava o lançamento de auditoria de valor zero no caixa do dia.
// Sem caixa aberto o registro é omitido.
func (s *Service) recordCancellation(ctx context.Context, repos store.Repositories, a *account.Account, t *table.Table, reason, actor string, now time.Time) error {
	session, err := repos.Cashiers.FindByDate(ctx, cashier.DateOf(now))
	if errors.Is(err, cashier.ErrNotFound) || (err == nil && !session.IsOpen()) {
		s.log.Warn("Cancelamento sem caixa aberto, auditoria não registrada", "conta_id", a.ID)
		return nil
	}
	if err != nil {
		return err
	}

	label := a.CustomerName
	if t != nil {
		label = t.Label()
	}
	description := fmt.Sprintf("Conta cancelada - %s", label)
	if reason != "" {
		description += ": " + reason
	}
	return repos.Cashiers.CreateEntry(ctx, cashier.NewCancellationEntry(session.ID, description, actor))
}

// releaseTable libera a mesa vinculada à conta. Uma mesa já ligada a outra conta não é alterada.
func (s *Service) releaseTable(ctx context.Context, repos store.Repositories, t *table.Table, accountID string) error {
	if t == nil {
		return nil
	}
	expected := t.Version
	if err := t.Release(accountID); err != nil {
		if errors.Is(err, table.ErrAccountDiffers) {
			s.log.Warn("Mesa vinculada a outra conta, mantida ocupada", "mesa_id", t.ID, "conta_id", accountID)
			return nil
		}
		return err
	}
	return repos.Tables.UpdateOccupancy(ctx, t, expected)
}

func (s *Service) afterCancel(ctx context.Context, a *account.Account, actor string) {
	s.publish(ctx, account.NewAccountEvent(account.EventAccountCanceled, a, s.now()))
	s.metrics.AccountFinished(string(account.StatusCancelled))
	s.log.Info("Conta cancelada", "conta_id", a.ID, "motivo", a.Observations, "usuario", actor)
}

// Adjustments são os novos desconto e taxa de serviço; nil mantém o valor atual
type Adjustments struct {
	Discount             *decimal.Decimal
	ServiceChargePercent *decimal.Decimal
}

// ApplyAdjustments altera desconto e taxa de serviço de uma conta aberta
func (s *Service) ApplyAdjustments(ctx context.Context, accountID string, adj Adjustments) (*account.Account, error) {
	var out *account.Account
	err := s.store.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		a, err := repos.Accounts.Lock(ctx, accountID)
		if err != nil {
			return err
		}
		items, err := repos.Items.ListByAccount(ctx, accountID)
		if err != nil {
			return err
		}
		discount, percent := a.Discount, a.ServiceChargePercent
		if adj.Discount != nil {
			discount = *adj.Discount
		}
		if adj.ServiceChargePercent != nil {
			percent = *adj.ServiceChargePercent
		}
		if err := a.ApplyAdjustments(discount, percent, items); err != nil {
			return err
		}
		out = a
		return repos.Accounts.Update(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CloseAccountForPayment fecha a conta com os pagamentos informados. Exige caixa
// aberto no dia e soma dos pagamentos igual ao valor final, com tolerância de um centavo.
// Pagamentos, fechamento, liberação da mesa e totais do caixa são gravados juntos.
func (s *Service) CloseAccountForPayment(ctx context.Context, accountID string, inputs []PaymentInput, actor string) (*CloseResult, error) {
	if len(inputs) == 0 {
		return nil, account.ErrNoPayments
	}
	payments := make([]*account.Payment, 0, len(inputs))
	for _, in := range inputs {
		p, err := account.NewPayment(accountID, in.Method, in.Amount, actor)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}

	now := s.now()
	var out *account.Account
	err := s.store.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		a, err := repos.Accounts.Lock(ctx, accountID)
		if err != nil {
			return err
		}
		if err := a.RequireOpen(); err != nil {
			return err
		}

		session, err := repos.Cashiers.FindByDate(ctx, cashier.DateOf(now))
		if errors.Is(err, cashier.ErrNotFound) {
			return cashier.ErrNotOpen
		}
		if err != nil {
			return err
		}
		if !session.IsOpen() {
			return cashier.ErrNotOpen
		}

		items, err := repos.Items.ListByAccount(ctx, accountID)
		if err != nil {
			return err
		}
		a.Recalculate(items)
		if err := a.CheckPayments(payments); err != nil {
			return err
		}

		for _, p := range payments {
			if err := repos.Payments.Create(ctx, p); err != nil {
				return err
			}
		}
		if err := a.Close(actor, now); err != nil {
			return err
		}
		if err := repos.Accounts.Update(ctx, a); err != nil {
			return err
		}

		if a.TableID != nil {
			t, err := repos.Tables.FindByID(ctx, *a.TableID)
			if err != nil && !errors.Is(err, table.ErrNotFound) {
				return err
			}
			if err := s.releaseTable(ctx, repos, t, a.ID); err != nil {
				return err
			}
		}

		delta, err := session.SaleTotals(payments, a.Discount, a.ServiceChargeAmount)
		if err != nil {
			return err
		}
		out = a
		return repos.Cashiers.AddTotals(ctx, session, delta)
	})
	if err != nil {
		return nil, err
	}

	for _, p := range payments {
		amount, _ := p.Amount.Float64()
		s.metrics.PaymentReceived(string(p.Method), amount)
	}
	s.metrics.AccountFinished(string(account.StatusClosed))
	s.publish(ctx, account.NewAccountEvent(account.EventAccountClosed, out, now))
	s.log.Info("Conta fechada", "conta_id", out.ID, "valor_final", out.FinalTotal.StringFixed(2), "usuario", actor)
	return &CloseResult{Account: out, Payments: payments}, nil
}
