package combo

import (
	"context"
)

// Repository define a interface para operações de repositório de combos
type Repository interface {
	// Create grava o combo e seus produtos
	Create(ctx context.Context, c *Combo) error
	FindByID(ctx context.Context, id string) (*Combo, error)
	List(ctx context.Context, onlyActive bool) ([]*Combo, error)
	// Update grava o combo substituindo o conjunto de produtos
	Update(ctx context.Context, c *Combo) error
}
