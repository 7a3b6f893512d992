// Package cashier implementa o caixa do dia: abertura, lançamentos manuais e resumo.
package cashier

import (
	"context"
	"errors"
	"time"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/account"
	domain "github.com/hugohenrick/pdv-restaurante/internal/domain/cashier"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/store"
	"github.com/hugohenrick/pdv-restaurante/pkg/logger"
	"github.com/shopspring/decimal"
)

// Service gerencia o caixa do dia
type Service struct {
	store store.Store
	log   logger.Logger
	now   func() time.Time
}

// NewService cria o serviço de caixa. now pode ser nil para usar o relógio do sistema.
func NewService(st store.Store, log logger.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: st, log: log, now: now}
}

// Summary resume o caixa do dia
type Summary struct {
	Session      *domain.Session                           `json:"caixa"`
	ByMethod     map[account.PaymentMethod]decimal.Decimal `json:"por_forma_pagamento"`
	TotalSales   decimal.Decimal                           `json:"total_vendas"`
	ExpectedCash decimal.Decimal                           `json:"dinheiro_esperado"`
	Entries      []*domain.Entry                           `json:"lancamentos"`
}

// OpenCashSession abre o caixa do dia. Se já existe caixa na data, ele é devolvido sem alteração.
func (s *Service) OpenCashSession(ctx context.Context, openingFloat decimal.Decimal, actor string) (*domain.Session, bool, error) {
	date := domain.DateOf(s.now())
	var (
		out     *domain.Session
		created bool
	)
	err := s.store.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		existing, err := repos.Cashiers.FindByDate(ctx, date)
		if err == nil {
			out = existing
			return nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		session, err := domain.NewSession(date, openingFloat, actor)
		if err != nil {
			return err
		}
		if err := repos.Cashiers.Create(ctx, session); err != nil {
			return err
		}
		out = session
		created = true
		return nil
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		// outra requisição abriu o caixa entre a busca e a criação
		existing, err := s.Today(ctx)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if created {
		s.log.Info("Caixa aberto", "data", date, "fundo", out.OpeningFloat.StringFixed(2), "usuario", actor)
	}
	return out, created, nil
}

// Today retorna o caixa do dia
func (s *Service) Today(ctx context.Context) (*domain.Session, error) {
	return s.store.Repositories().Cashiers.FindByDate(ctx, domain.DateOf(s.now()))
}

// RecordEntry registra uma entrada ou saída manual no caixa aberto do dia
func (s *Service) RecordEntry(ctx context.Context, kind domain.EntryKind, description string, amount decimal.Decimal, method account.PaymentMethod, actor string) (*domain.Entry, error) {
	var out *domain.Entry
	err := s.store.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		session, err := repos.Cashiers.FindByDate(ctx, domain.DateOf(s.now()))
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotOpen
		}
		if err != nil {
			return err
		}
		entry, err := domain.NewEntry(session.ID, kind, description, amount, method, actor)
		if err != nil {
			return err
		}
		delta, err := session.EntryTotals(entry)
		if err != nil {
			return err
		}
		if err := repos.Cashiers.CreateEntry(ctx, entry); err != nil {
			return err
		}
		out = entry
		return repos.Cashiers.AddTotals(ctx, session, delta)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("Lançamento no caixa", "tipo", out.Kind, "valor", out.Amount.StringFixed(2), "usuario", actor)
	return out, nil
}

// Summary retorna os totais do caixa do dia por forma de pagamento.
// O dinheiro esperado inclui as entradas manuais em dinheiro.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	session, err := s.Today(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.Repositories().Cashiers.ListEntries(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	expected := session.ExpectedCash()
	for _, e := range entries {
		if e.Kind == domain.EntryDeposit && e.Method != nil && *e.Method == account.MethodCash {
			expected = expected.Add(e.Amount)
		}
	}
	return &Summary{
		Session: session,
		ByMethod: map[account.PaymentMethod]decimal.Decimal{
			account.MethodCash:   session.TotalCash,
			account.MethodCredit: session.TotalCredit,
			account.MethodDebit:  session.TotalDebit,
			account.MethodPix:    session.TotalPix,
		},
		TotalSales:   session.TotalSales(),
		ExpectedCash: expected,
		Entries:      entries,
	}, nil
}
