package product

import (
	"context"
)

// Filter define filtros de listagem de produtos
type Filter struct {
	OnlyActive bool
	Search     string
}

// Repository define a interface para operações de repositório de produtos
type Repository interface {
	Create(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	// FindByIDs busca vários produtos de uma vez; ids inexistentes são ignorados
	FindByIDs(ctx context.Context, ids []string) ([]*Product, error)
	List(ctx context.Context, f Filter) ([]*Product, error)
	Update(ctx context.Context, p *Product) error
}
