package user

import (
	"context"
)

// Repository define a interface para operações de repositório de perfis
type Repository interface {
	// Create cria um novo perfil. Retorna ErrDuplicateEmail se o email já existe.
	Create(ctx context.Context, p *Profile) error

	// FindByID busca um perfil pelo ID
	FindByID(ctx context.Context, id string) (*Profile, error)

	// FindByEmail busca um perfil pelo email normalizado
	FindByEmail(ctx context.Context, email string) (*Profile, error)

	// List lista os perfis ordenados por nome
	List(ctx context.Context) ([]*Profile, error)

	// Update atualiza os dados de um perfil existente, incluindo o hash da senha
	Update(ctx context.Context, p *Profile) error

	// Count conta quantos perfis existem
	Count(ctx context.Context) (int, error)
}
