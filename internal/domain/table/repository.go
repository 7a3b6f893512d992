package table

import (
	"context"
)

// Repository define a interface para operações de repositório de mesas
type Repository interface {
	// Create cria uma nova mesa
	Create(ctx context.Context, t *Table) error

	// FindByID busca uma mesa pelo ID
	FindByID(ctx context.Context, id string) (*Table, error)

	// List lista todas as mesas ordenadas pelo número
	List(ctx context.Context) ([]*Table, error)

	// Update atualiza número e nome da mesa
	Update(ctx context.Context, t *Table) error

	// UpdateOccupancy grava status e conta atual, exigindo a versão lida.
	// Retorna ErrAlreadyTaken quando outra escrita alterou a mesa antes.
	UpdateOccupancy(ctx context.Context, t *Table, expectedVersion int64) error

	// Delete remove uma mesa
	Delete(ctx context.Context, id string) error
}
