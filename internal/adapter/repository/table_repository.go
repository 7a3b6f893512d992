package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/table"
	"github.com/jackc/pgx/v5"
)

const tableColumns = `id, numero, COALESCE(nome, ''), status, conta_atual_id, version, created_at`

// TableRepository implementa table.Repository usando PostgreSQL
type TableRepository struct {
	db DBTX
}

func scanTable(row pgx.Row) (*table.Table, error) {
	var t table.Table
	var status string
	if err := row.Scan(&t.ID, &t.Number, &t.Name, &status, &t.CurrentAccountID, &t.Version, &t.CreatedAt); err != nil {
		return nil, err
	}
	t.Status = table.Status(status)
	return &t, nil
}

// Create implementa table.Repository.Create
func (r *TableRepository) Create(ctx context.Context, t *table.Table) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO mesas (id, numero, nome, status, conta_atual_id, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.Number, nullString(t.Name), string(t.Status), t.CurrentAccountID, t.Version, t.CreatedAt,
	)
	if err != nil {
		if uniqueViolation(err, "uq_mesas_numero") {
			return table.ErrDuplicate
		}
		return fmt.Errorf("falha ao inserir mesa: %w", err)
	}
	return nil
}

// FindByID implementa table.Repository.FindByID
func (r *TableRepository) FindByID(ctx context.Context, id string) (*table.Table, error) {
	t, err := scanTable(r.db.QueryRow(ctx, `SELECT `+tableColumns+` FROM mesas WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, table.ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar mesa: %w", err)
	}
	return t, nil
}

// List implementa table.Repository.List
func (r *TableRepository) List(ctx context.Context) ([]*table.Table, error) {
	rows, err := r.db.Query(ctx, `SELECT `+tableColumns+` FROM mesas ORDER BY numero`)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar mesas: %w", err)
	}
	defer rows.Close()

	var tables []*table.Table
	for rows.Next() {
		t, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler mesa: %w", err)
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

// Update implementa table.Repository.Update
func (r *TableRepository) Update(ctx context.Context, t *table.Table) error {
	tag, err := r.db.Exec(ctx, `UPDATE mesas SET numero = $2, nome = $3 WHERE id = $1`,
		t.ID, t.Number, nullString(t.Name))
	if err != nil {
		if uniqueViolation(err, "uq_mesas_numero") {
			return table.ErrDuplicate
		}
		return fmt.Errorf("falha ao atualizar mesa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return table.ErrNotFound
	}
	return nil
}

// UpdateOccupancy implementa table.Repository.UpdateOccupancy com controle otimista pela versão
func (r *TableRepository) UpdateOccupancy(ctx context.Context, t *table.Table, expectedVersion int64) error {
	var version int64
	err := r.db.QueryRow(ctx, `
		UPDATE mesas
		SET status = $2, conta_atual_id = $3, version = version + 1
		WHERE id = $1 AND version = $4
		RETURNING version`,
		t.ID, string(t.Status), t.CurrentAccountID, expectedVersion,
	).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguir mesa inexistente de versão desatualizada
			if _, findErr := r.FindByID(ctx, t.ID); errors.Is(findErr, table.ErrNotFound) {
				return table.ErrNotFound
			}
			return table.ErrAlreadyTaken
		}
		return fmt.Errorf("falha ao atualizar ocupação da mesa: %w", err)
	}
	t.Version = version
	return nil
}

// Delete implementa table.Repository.Delete
func (r *TableRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM mesas WHERE id = $1`, id)
	if err != nil {
		if foreignKeyViolation(err) {
			return table.ErrHasAccounts
		}
		return fmt.Errorf("falha ao remover mesa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return table.ErrNotFound
	}
	return nil
}
