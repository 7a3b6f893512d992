package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/product"
	"github.com/jackc/pgx/v5"
)

const productColumns = `id, nome, COALESCE(descricao, ''), COALESCE(foto_url, ''), valor,
	feito_pela_cozinha, ativo, COALESCE(categoria, ''), created_at, updated_at`

// ProductRepository implementa product.Repository usando PostgreSQL
type ProductRepository struct {
	db DBTX
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	var p product.Product
	var active bool
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.PhotoURL, &p.Price,
		&p.MadeByKitchen, &active, &p.Category, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Lifecycle = lifecycleOf(active)
	return &p, nil
}

func lifecycleOf(active bool) product.Lifecycle {
	if active {
		return product.LifecycleActive
	}
	return product.LifecycleInactive
}

// Create implementa product.Repository.Create
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO produtos (id, nome, descricao, foto_url, valor, feito_pela_cozinha, ativo, categoria, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		p.ID, p.Name, nullString(p.Description), nullString(p.PhotoURL), p.Price,
		p.MadeByKitchen, p.IsActive(), nullString(p.Category), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao inserir produto: %w", err)
	}
	return nil
}

// FindByID implementa product.Repository.FindByID
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*product.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM produtos WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar produto: %w", err)
	}
	return p, nil
}

// FindByIDs implementa product.Repository.FindByIDs
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []string) ([]*product.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.query(ctx, `SELECT `+productColumns+` FROM produtos WHERE id::text = ANY($1) ORDER BY nome`, ids)
}

// List implementa product.Repository.List
func (r *ProductRepository) List(ctx context.Context, f product.Filter) ([]*product.Product, error) {
	var (
		conds []string
		args  []any
	)
	if f.OnlyActive {
		conds = append(conds, "ativo")
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		conds = append(conds, fmt.Sprintf("nome ILIKE $%d", len(args)))
	}

	query := `SELECT ` + productColumns + ` FROM produtos`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY nome"
	return r.query(ctx, query, args...)
}

func (r *ProductRepository) query(ctx context.Context, query string, args ...any) ([]*product.Product, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar produtos: %w", err)
	}
	defer rows.Close()

	var products []*product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler produto: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Update implementa product.Repository.Update
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE produtos SET
			nome = $2, descricao = $3, foto_url = $4, valor = $5,
			feito_pela_cozinha = $6, ativo = $7, categoria = $8, updated_at = $9
		WHERE id = $1`,
		p.ID, p.Name, nullString(p.Description), nullString(p.PhotoURL), p.Price,
		p.MadeByKitchen, p.IsActive(), nullString(p.Category), p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("falha ao atualizar produto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}
