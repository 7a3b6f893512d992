package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/account"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/cashier"
	"github.com/jackc/pgx/v5"
)

const sessionColumns = `id, to_char(data, 'YYYY-MM-DD'), status, aberto_por, fechado_por, fundo_de_caixa,
	aberto_em, fechado_em, total_vendas_dinheiro, total_vendas_cartao_credito, total_vendas_cartao_debito,
	total_vendas_pix, total_descontos, total_taxa_servico, total_gastos, COALESCE(observacoes, '')`

// CashierRepository implementa cashier.Repository usando PostgreSQL
type CashierRepository struct {
	db DBTX
}

// Create implementa cashier.Repository.Create
func (r *CashierRepository) Create(ctx context.Context, s *cashier.Session) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO caixas (
			id, data, status, aberto_por, fechado_por, fundo_de_caixa, aberto_em, fechado_em,
			total_vendas_dinheiro, total_vendas_cartao_credito, total_vendas_cartao_debito, total_vendas_pix,
			total_descontos, total_taxa_servico, total_gastos, observacoes
		) VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		s.ID, s.Date, string(s.Status), s.OpenedBy, s.ClosedBy, s.OpeningFloat, s.OpenedAt, s.ClosedAt,
		s.TotalCash, s.TotalCredit, s.TotalDebit, s.TotalPix,
		s.TotalDiscounts, s.TotalServiceCharge, s.TotalExpenses, nullString(s.Observations),
	)
	if err != nil {
		if uniqueViolation(err, "uq_caixas_data") {
			return cashier.ErrAlreadyExists
		}
		return fmt.Errorf("falha ao inserir caixa: %w", err)
	}
	return nil
}

// FindByDate implementa cashier.Repository.FindByDate
func (r *CashierRepository) FindByDate(ctx context.Context, date string) (*cashier.Session, error) {
	var s cashier.Session
	var status string
	err := r.db.QueryRow(ctx, `SELECT `+sessionColumns+` FROM caixas WHERE data = $1::date`, date).Scan(
		&s.ID, &s.Date, &status, &s.OpenedBy, &s.ClosedBy, &s.OpeningFloat,
		&s.OpenedAt, &s.ClosedAt, &s.TotalCash, &s.TotalCredit, &s.TotalDebit,
		&s.TotalPix, &s.TotalDiscounts, &s.TotalServiceCharge, &s.TotalExpenses, &s.Observations,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cashier.ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar caixa: %w", err)
	}
	s.Status = cashier.Status(status)
	return &s, nil
}

// AddTotals implementa cashier.Repository.AddTotals
func (r *CashierRepository) AddTotals(ctx context.Context, s *cashier.Session, delta cashier.Totals) error {
	err := r.db.QueryRow(ctx, `
		UPDATE caixas SET
			total_vendas_dinheiro = total_vendas_dinheiro + $2,
			total_vendas_cartao_credito = total_vendas_cartao_credito + $3,
			total_vendas_cartao_debito = total_vendas_cartao_debito + $4,
			total_vendas_pix = total_vendas_pix + $5,
			total_descontos = total_descontos + $6,
			total_taxa_servico = total_taxa_servico + $7,
			total_gastos = total_gastos + $8
		WHERE id = $1
		RETURNING total_vendas_dinheiro, total_vendas_cartao_credito, total_vendas_cartao_debito,
			total_vendas_pix, total_descontos, total_taxa_servico, total_gastos`,
		s.ID, delta.Cash, delta.Credit, delta.Debit, delta.Pix,
		delta.Discounts, delta.ServiceCharge, delta.Expenses,
	).Scan(
		&s.TotalCash, &s.TotalCredit, &s.TotalDebit, &s.TotalPix,
		&s.TotalDiscounts, &s.TotalServiceCharge, &s.TotalExpenses,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return cashier.ErrNotFound
		}
		return fmt.Errorf("falha ao atualizar totais do caixa: %w", err)
	}
	return nil
}

// CreateEntry implementa cashier.Repository.CreateEntry
func (r *CashierRepository) CreateEntry(ctx context.Context, e *cashier.Entry) error {
	var method *string
	if e.Method != nil {
		m := string(*e.Method)
		method = &m
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO caixa_lancamentos (id, caixa_id, tipo, descricao, valor, forma_pagamento, registrado_por, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.SessionID, string(e.Kind), e.Description, e.Amount, method, e.RecordedBy, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao inserir lançamento: %w", err)
	}
	return nil
}

// ListEntries implementa cashier.Repository.ListEntries
func (r *CashierRepository) ListEntries(ctx context.Context, sessionID string) ([]*cashier.Entry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, caixa_id, tipo, descricao, valor, forma_pagamento, registrado_por, created_at
		FROM caixa_lancamentos WHERE caixa_id = $1 ORDER BY created_at, id`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar lançamentos: %w", err)
	}
	defer rows.Close()

	var entries []*cashier.Entry
	for rows.Next() {
		var e cashier.Entry
		var kind string
		var method *string
		if err := rows.Scan(&e.ID, &e.SessionID, &kind, &e.Description, &e.Amount, &method, &e.RecordedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("falha ao ler lançamento: %w", err)
		}
		e.Kind = cashier.EntryKind(kind)
		if method != nil {
			m := account.PaymentMethod(*method)
			e.Method = &m
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
