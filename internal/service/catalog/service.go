// Package catalog mantém o cardápio (produtos e combos) e o cadastro de mesas.
package catalog

import (
	"context"
	"io"
	"time"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/store"
	"github.com/hugohenrick/pdv-restaurante/pkg/logger"
)

// Uploader grava fotos e devolve a URL pública
type Uploader interface {
	Upload(ctx context.Context, bucket, filename string, r io.Reader) (string, error)
}

// Service reúne as operações de retaguarda
type Service struct {
	store    store.Store
	uploader Uploader
	log      logger.Logger
	now      func() time.Time
}

// NewService cria o serviço de catálogo
func NewService(st store.Store, uploader Uploader, log logger.Logger) *Service {
	return &Service{store: st, uploader: uploader, log: log, now: time.Now}
}
