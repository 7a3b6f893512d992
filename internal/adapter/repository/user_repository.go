package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/user"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, nome, role, ativo, password_hash, created_at, updated_at`

// UserRepository implementa a interface user.Repository usando PostgreSQL
type UserRepository struct {
	db DBTX
}

// NewUserRepository cria um repositório de perfis fora de uma transação, usado pelo CLI
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*user.Profile, error) {
	var p user.Profile
	var role string
	err := row.Scan(&p.ID, &p.Email, &p.Name, &role, &p.Active, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	p.Role = user.Role(role)
	return &p, nil
}

// Create implementa user.Repository.Create
func (r *UserRepository) Create(ctx context.Context, p *user.Profile) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO profiles (id, email, nome, role, ativo, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.Email, p.Name, string(p.Role), p.Active, p.PasswordHash, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if uniqueViolation(err, "idx_profiles_email") {
			return user.ErrDuplicateEmail
		}
		return fmt.Errorf("falha ao inserir usuário: %w", err)
	}
	return nil
}

// FindByID implementa user.Repository.FindByID
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.Profile, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM profiles WHERE id = $1`, id)
}

// FindByEmail implementa user.Repository.FindByEmail
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.Profile, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM profiles WHERE LOWER(email) = $1`, user.NormalizeEmail(email))
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*user.Profile, error) {
	p, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrNotFound
		}
		return nil, fmt.Errorf("falha ao buscar usuário: %w", err)
	}
	return p, nil
}

// List implementa user.Repository.List
func (r *UserRepository) List(ctx context.Context) ([]*user.Profile, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM profiles ORDER BY nome`)
	if err != nil {
		return nil, fmt.Errorf("falha ao listar usuários: %w", err)
	}
	defer rows.Close()

	var users []*user.Profile
	for rows.Next() {
		p, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("falha ao ler usuário: %w", err)
		}
		users = append(users, p)
	}
	return users, rows.Err()
}

// Update implementa user.Repository.Update
func (r *UserRepository) Update(ctx context.Context, p *user.Profile) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE profiles SET email = $2, nome = $3, role = $4, ativo = $5, password_hash = $6, updated_at = $7
		WHERE id = $1`,
		p.ID, p.Email, p.Name, string(p.Role), p.Active, p.PasswordHash, p.UpdatedAt,
	)
	if err != nil {
		if uniqueViolation(err, "idx_profiles_email") {
			return user.ErrDuplicateEmail
		}
		return fmt.Errorf("falha ao atualizar usuário: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrNotFound
	}
	return nil
}

// Count implementa user.Repository.Count
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("falha ao contar usuários: %w", err)
	}
	return n, nil
}
