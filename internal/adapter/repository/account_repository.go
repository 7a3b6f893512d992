package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/account"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `id, mesa_id, COALESCE(nome_cliente, ''), tipo, status,
	valor_total, valor_desconto, taxa_servico_percentual, valor_taxa_servico, valor_final,
	aberta_por, fechada_por, aberta_em, fechada_em, COALESCE(observacoes, ''), version`

// AccountRepository implementa account.Repository usando PostgreSQL
type AccountRepository struct {
	db DBTX
}

func scanAccount(row pgx.Row) (*account.Account, error) {
	var a account.Account
	var kind, status string
	err := row.Scan(
		&a.ID, &a.TableID, &a.CustomerName, &kind, &status,
		&a.Subtotal, &a.Discount, &a.ServiceChargePercent, &a.ServiceChargeAmount, &a.FinalTotal,
		&a.OpenedBy, &a.ClosedBy, &a.OpenedAt, &a.ClosedAt, &a.Observations, &a.Version,
	)
	if err != nil {
		return nil, err
	}
	a.Kind = account.Kind(kind)
	a.Status = account.Status(status)
	return &a, nil
}

// Create implementa account.Repository.Create
func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO contas (
			id, mesa_id, nome_cliente, tipo, status,
			valor_total, valor_desconto, taxa_servico_percentual, valor_taxa_servico, valor_final,
			aberta_por, fechada_por, aberta_em, fechada_em, observacoes, version
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		a.ID, a.TableID, nullString(a.CustomerName), string(a.Kind), string(a.Status),
		a.Subtotal, a.Discount, a.ServiceChargePercent, a.ServiceChargeAmount, a.FinalTotal,
		a.OpenedBy, a.ClosedBy, a.OpenedAt, a.ClosedAt, nullString(a.Observations), a.Version,
	)
	if err != nil {
		if uniqueViolation(err, "uq_contas_mesa_aberta") {
			return account.ErrTableAccountTaken
		}
		return fmt.Errorf("falha ao inserir conta: %w", err)
	}
	return nil
}

// FindByID implementa account.Repository.FindByID
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*account.Account, error) {
	a, err := scanAccount(r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM contas WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar conta: %w", err)
	}
	return a, nil
}

// Lock implementa account.Repository.Lock com SELECT ... FOR UPDATE
func (r *AccountRepository) Lock(ctx context.Context, id string) (*account.Account, error) {
	a, err := scanAccount(r.db.QueryRow(ctx, `SELECT `+accountColumns+` FROM contas WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrNotFound
		}
		return nil, fmt.Errorf("falha ao bloquear conta: %w", err)
	}
	return a, nil
}

// FindOpenByTable implementa account.Repository.FindOpenByTable
func (r *AccountRepository) FindOpenByTable(ctx context.Context, tableID string) (*account.Account, error) {
	a, err := scanAccount(r.db.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM contas WHERE mesa_id = $1 AND status = $2`,
		tableID, string(account.StatusOpen)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar conta aberta da mesa: %w", err)
	}
	return a, nil
}

// ListByStatus implementa account.Repository.ListByStatus
func (r *AccountRepository) ListByStatus(ctx context.Context, status account.Status) ([]*account.Account, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+accountColumns+` FROM contas WHERE status = $1 ORDER BY aberta_em DESC`, string(status))
	if err != nil {
		return nil, fmt.Errorf("falha ao listar contas: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler conta: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// Update implementa account.Repository.Update exigindo a versão lida
func (r *AccountRepository) Update(ctx context.Context, a *account.Account) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE contas SET
			status = $2, valor_total = $3, valor_desconto = $4, taxa_servico_percentual = $5,
			valor_taxa_servico = $6, valor_final = $7, fechada_por = $8, fechada_em = $9,
			observacoes = $10, version = version + 1
		WHERE id = $1 AND version = $11`,
		a.ID, string(a.Status), a.Subtotal, a.Discount, a.ServiceChargePercent,
		a.ServiceChargeAmount, a.FinalTotal, a.ClosedBy, a.ClosedAt,
		nullString(a.Observations), a.Version,
	)
	if err != nil {
		return fmt.Errorf("falha ao atualizar conta: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, findErr := r.FindByID(ctx, a.ID); errors.Is(findErr, account.ErrNotFound) {
			return account.ErrNotFound
		}
		return account.ErrStale
	}
	a.Version++
	return nil
}

const itemColumns = `i.id, i.conta_id, i.produto_id, i.combo_id, i.tipo, i.nome, i.quantidade,
	i.valor_unitario, i.valor_total, COALESCE(i.observacoes, ''), i.status, i.enviado_para_cozinha,
	i.enviado_em, i.entregue_em, i.tempo_producao_segundos, i.cancelado_por, i.cancelado_em,
	COALESCE(i.motivo_cancelamento, ''), i.created_at`

// ItemRepository implementa account.ItemRepository usando PostgreSQL
type ItemRepository struct {
	db DBTX
}

func scanItem(row pgx.Row, extra ...any) (*account.Item, error) {
	var it account.Item
	var kind, status string
	dest := []any{
		&it.ID, &it.AccountID, &it.ProductID, &it.ComboID, &kind, &it.Name, &it.Quantity,
		&it.UnitPrice, &it.LineTotal, &it.Notes, &status, &it.SentToKitchen,
		&it.SentAt, &it.DeliveredAt, &it.ProductionSeconds, &it.CancelledBy, &it.CancelledAt,
		&it.CancelReason, &it.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	it.Kind = account.ItemKind(kind)
	it.Status = account.ItemStatus(status)
	return &it, nil
}

// Create implementa account.ItemRepository.Create
func (r *ItemRepository) Create(ctx context.Context, it *account.Item) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO conta_itens (
			id, conta_id, produto_id, combo_id, tipo, nome, quantidade, valor_unitario, valor_total,
			observacoes, status, enviado_para_cozinha, enviado_em, entregue_em, tempo_producao_segundos,
			cancelado_por, cancelado_em, motivo_cancelamento, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		it.ID, it.AccountID, it.ProductID, it.ComboID, string(it.Kind), it.Name, it.Quantity,
		it.UnitPrice, it.LineTotal, nullString(it.Notes), string(it.Status), it.SentToKitchen,
		it.SentAt, it.DeliveredAt, it.ProductionSeconds, it.CancelledBy, it.CancelledAt,
		nullString(it.CancelReason), it.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao inserir item: %w", err)
	}
	return nil
}

// FindByID implementa account.ItemRepository.FindByID
func (r *ItemRepository) FindByID(ctx context.Context, id string) (*account.Item, error) {
	it, err := scanItem(r.db.QueryRow(ctx, `SELECT `+itemColumns+` FROM conta_itens i WHERE i.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, account.ErrItemNotFound
		}
		return nil, fmt.Errorf("falha ao buscar item: %w", err)
	}
	return it, nil
}

// ListByAccount implementa account.ItemRepository.ListByAccount
func (r *ItemRepository) ListByAccount(ctx context.Context, accountID string) ([]*account.Item, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+itemColumns+` FROM conta_itens i WHERE i.conta_id = $1 ORDER BY i.created_at, i.id`, accountID)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar itens: %w", err)
	}
	defer rows.Close()

	var items []*account.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// ListForKitchen implementa account.ItemRepository.ListForKitchen
func (r *ItemRepository) ListForKitchen(ctx context.Context) ([]*account.KitchenTicket, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+itemColumns+`, m.numero, COALESCE(c.nome_cliente, '')
		FROM conta_itens i
		JOIN contas c ON c.id = i.conta_id
		LEFT JOIN mesas m ON m.id = c.mesa_id
		WHERE i.enviado_para_cozinha AND i.status IN ($1, $2)
		ORDER BY i.enviado_em ASC, i.created_at ASC, i.id ASC`,
		string(account.ItemInKitchen), string(account.ItemReady),
	)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar itens da cozinha: %w", err)
	}
	defer rows.Close()

	now := time.Now()
	var tickets []*account.KitchenTicket
	for rows.Next() {
		ticket := &account.KitchenTicket{}
		it, err := scanItem(rows, &ticket.TableNumber, &ticket.CustomerName)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler item da cozinha: %w", err)
		}
		ticket.Item = it
		if it.SentAt != nil {
			ticket.WaitSeconds = int(now.Sub(*it.SentAt).Seconds())
		}
		tickets = append(tickets, ticket)
	}
	return tickets, rows.Err()
}

// Update implementa account.ItemRepository.Update
func (r *ItemRepository) Update(ctx context.Context, it *account.Item) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE conta_itens SET
			quantidade = $2, valor_total = $3, observacoes = $4, status = $5,
			enviado_para_cozinha = $6, enviado_em = $7, entregue_em = $8, tempo_producao_segundos = $9,
			cancelado_por = $10, cancelado_em = $11, motivo_cancelamento = $12
		WHERE id = $1`,
		it.ID, it.Quantity, it.LineTotal, nullString(it.Notes), string(it.Status),
		it.SentToKitchen, it.SentAt, it.DeliveredAt, it.ProductionSeconds,
		it.CancelledBy, it.CancelledAt, nullString(it.CancelReason),
	)
	if err != nil {
		return fmt.Errorf("falha ao atualizar item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return account.ErrItemNotFound
	}
	return nil
}

// PaymentRepository implementa account.PaymentRepository usando PostgreSQL
type PaymentRepository struct {
	db DBTX
}

// Create implementa account.PaymentRepository.Create
func (r *PaymentRepository) Create(ctx context.Context, p *account.Payment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO conta_pagamentos (id, conta_id, forma_pagamento, valor, registrado_por, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.AccountID, string(p.Method), p.Amount, p.RecordedBy, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao inserir pagamento: %w", err)
	}
	return nil
}

// ListByAccount implementa account.PaymentRepository.ListByAccount
func (r *PaymentRepository) ListByAccount(ctx context.Context, accountID string) ([]*account.Payment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, conta_id, forma_pagamento, valor, registrado_por, created_at
		FROM conta_pagamentos WHERE conta_id = $1 ORDER BY created_at, id`, accountID)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar pagamentos: %w", err)
	}
	defer rows.Close()

	var payments []*account.Payment
	for rows.Next() {
		var p account.Payment
		var method string
		if err := rows.Scan(&p.ID, &p.AccountID, &method, &p.Amount, &p.RecordedBy, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("falha ao ler pagamento: %w", err)
		}
		p.Method = account.PaymentMethod(method)
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}
