package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/setting"
	"github.com/jackc/pgx/v5"
)

// SettingRepository implementa setting.Repository usando PostgreSQL
type SettingRepository struct {
	db DBTX
}

// Get implementa setting.Repository.Get
func (r *SettingRepository) Get(ctx context.Context, key string) (*setting.Setting, error) {
	var s setting.Setting
	err := r.db.QueryRow(ctx, `
		SELECT chave, valor, COALESCE(descricao, '') FROM configuracoes WHERE chave = $1`, key,
	).Scan(&s.Key, &s.Value, &s.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, setting.ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar configuração: %w", err)
	}
	return &s, nil
}

// Upsert implementa setting.Repository.Upsert
func (r *SettingRepository) Upsert(ctx context.Context, s *setting.Setting) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO configuracoes (chave, valor, descricao, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (chave) DO UPDATE
		SET valor = EXCLUDED.valor,
		    descricao = COALESCE(EXCLUDED.descricao, configuracoes.descricao),
		    updated_at = NOW()`,
		s.Key, s.Value, nullString(s.Description),
	)
	if err != nil {
		return fmt.Errorf("falha ao gravar configuração: %w", err)
	}
	return nil
}

// List implementa setting.Repository.List
func (r *SettingRepository) List(ctx context.Context) ([]*setting.Setting, error) {
	rows, err := r.db.Query(ctx, `SELECT chave, valor, COALESCE(descricao, '') FROM configuracoes ORDER BY chave`)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar configurações: %w", err)
	}
	defer rows.Close()

	var settings []*setting.Setting
	for rows.Next() {
		var s setting.Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.Description); err != nil {
			return nil, fmt.Errorf("falha ao ler configuração: %w", err)
		}
		settings = append(settings, &s)
	}
	return settings, rows.Err()
}
