package catalog

import (
	"context"
	"io"

	"github.com/hugohenrick/pdv-restaurante/internal/adapter/storage"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/product"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/store"
	"github.com/shopspring/decimal"
)

// ProductInput são os dados editáveis de um produto
type ProductInput struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	MadeByKitchen bool
	Category      string
}

// CreateProduct cadastra um produto ativo
func (s *Service) CreateProduct(ctx context.Context, in ProductInput) (*product.Product, error) {
	p, err := product.NewProduct(in.Name, in.Price, in.MadeByKitchen)
	if err != nil {
		return nil, err
	}
	if err := p.Update(in.Name, in.Description, in.Price, in.MadeByKitchen, in.Category); err != nil {
		return nil, err
	}
	if err := s.store.Repositories().Products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info("Produto cadastrado", "produto_id", p.ID, "nome", p.Name)
	return p, nil
}

// UpdateProduct altera os dados de um produto
func (s *Service) UpdateProduct(ctx context.Context, id string, in ProductInput) (*product.Product, error) {
	return s.mutateProduct(ctx, id, func(p *product.Product) error {
		return p.Update(in.Name, in.Description, in.Price, in.MadeByKitchen, in.Category)
	})
}

// GetProduct busca um produto
func (s *Service) GetProduct(ctx context.Context, id string) (*product.Product, error) {
	return s.store.Repositories().Products.FindByID(ctx, id)
}

// ListProducts lista produtos ordenados pelo nome
func (s *Service) ListProducts(ctx context.Context, f product.Filter) ([]*product.Product, error) {
	return s.store.Repositories().Products.List(ctx, f)
}

// DeactivateProduct remove o produto do cardápio sem apagá-lo
func (s *Service) DeactivateProduct(ctx context.Context, id string) (*product.Product, error) {
	return s.mutateProduct(ctx, id, func(p *product.Product) error {
		p.Deactivate()
		return nil
	})
}

// ActivateProduct devolve o produto ao cardápio
func (s *Service) ActivateProduct(ctx context.Context, id string) (*product.Product, error) {
	return s.mutateProduct(ctx, id, func(p *product.Product) error {
		p.Activate()
		return nil
	})
}

// UploadProductPhoto grava a foto e atualiza a URL do produto
func (s *Service) UploadProductPhoto(ctx context.Context, id, originalName string, r io.Reader) (*product.Product, error) {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return nil, err
	}
	url, err := s.upload(ctx, storage.BucketProducts, originalName, r)
	if err != nil {
		return nil, err
	}
	return s.mutateProduct(ctx, id, func(p *product.Product) error {
		p.PhotoURL = url
		return nil
	})
}

func (s *Service) mutateProduct(ctx context.Context, id string, fn func(*product.Product) error) (*product.Product, error) {
	var out *product.Product
	err := s.store.Do(ctx, func(ctx context.Context, repos store.Repositories) error {
		p, err := repos.Products.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
		out = p
		return repos.Products.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) upload(ctx context.Context, bucket, originalName string, r io.Reader) (string, error) {
	filename, err := storage.FileName(originalName, s.now())
	if err != nil {
		return "", err
	}
	return s.uploader.Upload(ctx, bucket, filename, r)
}
