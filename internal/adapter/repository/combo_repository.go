package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/combo"
	"github.com/jackc/pgx/v5"
)

const comboColumns = `id, nome, COALESCE(descricao, ''), COALESCE(foto_url, ''), valor_total_produtos,
	valor_venda, feito_pela_cozinha, ativo, created_at, updated_at`

// ComboRepository implementa combo.Repository usando PostgreSQL
type ComboRepository struct {
	db DBTX
}

func scanCombo(row pgx.Row) (*combo.Combo, error) {
	var c combo.Combo
	var active bool
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.PhotoURL, &c.ProductsTotal,
		&c.SalePrice, &c.MadeByKitchen, &active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Lifecycle = lifecycleOf(active)
	return &c, nil
}

// Create implementa combo.Repository.Create
func (r *ComboRepository) Create(ctx context.Context, c *combo.Combo) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO combos (id, nome, descricao, foto_url, valor_total_produtos, valor_venda, feito_pela_cozinha, ativo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Name, nullString(c.Description), nullString(c.PhotoURL), c.ProductsTotal,
		c.SalePrice, c.MadeByKitchen, c.IsActive(), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao inserir combo: %w", err)
	}
	return r.insertItems(ctx, c)
}

func (r *ComboRepository) insertItems(ctx context.Context, c *combo.Combo) error {
	for i, it := range c.Items {
		_, err := r.db.Exec(ctx, `
			INSERT INTO combo_produtos (id, combo_id, produto_id, quantidade, posicao)
			VALUES ($1, $2, $3, $4, $5)`,
			uuid.New().String(), c.ID, it.ProductID, it.Quantity, i,
		)
		if err != nil {
			return fmt.Errorf("falha ao inserir produto do combo: %w", err)
		}
	}
	return nil
}

// FindByID implementa combo.Repository.FindByID
func (r *ComboRepository) FindByID(ctx context.Context, id string) (*combo.Combo, error) {
	c, err := scanCombo(r.db.QueryRow(ctx, `SELECT `+comboColumns+` FROM combos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, combo.ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar combo: %w", err)
	}
	if err := r.loadItems(ctx, []*combo.Combo{c}); err != nil {
		return nil, err
	}
	return c, nil
}

// List implementa combo.Repository.List
func (r *ComboRepository) List(ctx context.Context, onlyActive bool) ([]*combo.Combo, error) {
	query := `SELECT ` + comboColumns + ` FROM combos`
	if onlyActive {
		query += ` WHERE ativo`
	}
	query += ` ORDER BY nome`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar combos: %w", err)
	}
	var combos []*combo.Combo
	for rows.Next() {
		c, err := scanCombo(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("falha ao ler combo: %w", err)
		}
		combos = append(combos, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, combos); err != nil {
		return nil, err
	}
	return combos, nil
}

// loadItems preenche os produtos de cada combo com uma única consulta
func (r *ComboRepository) loadItems(ctx context.Context, combos []*combo.Combo) error {
	if len(combos) == 0 {
		return nil
	}
	byID := make(map[string]*combo.Combo, len(combos))
	ids := make([]string, 0, len(combos))
	for _, c := range combos {
		c.Items = []combo.Item{}
		byID[c.ID] = c
		ids = append(ids, c.ID)
	}

	rows, err := r.db.Query(ctx, `
		SELECT combo_id, produto_id, quantidade
		FROM combo_produtos
		WHERE combo_id::text = ANY($1)
		ORDER BY combo_id, posicao`, ids)
	if err != nil {
		return fmt.Errorf("falha ao listar produtos do combo: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var comboID string
		var it combo.Item
		if err := rows.Scan(&comboID, &it.ProductID, &it.Quantity); err != nil {
			return fmt.Errorf("falha ao ler produto do combo: %w", err)
		}
		if c, ok := byID[comboID]; ok {
			c.Items = append(c.Items, it)
		}
	}
	return rows.Err()
}

// Update implementa combo.Repository.Update
func (r *ComboRepository) Update(ctx context.Context, c *combo.Combo) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE combos SET
			nome = $2, descricao = $3, foto_url = $4, valor_total_produtos = $5,
			valor_venda = $6, feito_pela_cozinha = $7, ativo = $8, updated_at = $9
		WHERE id = $1`,
		c.ID, c.Name, nullString(c.Description), nullString(c.PhotoURL), c.ProductsTotal,
		c.SalePrice, c.MadeByKitchen, c.IsActive(), c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao atualizar combo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return combo.ErrNotFound
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM combo_produtos WHERE combo_id = $1`, c.ID); err != nil {
		return fmt.Errorf("falha ao remover produtos do combo: %w", err)
	}
	return r.insertItems(ctx, c)
}
