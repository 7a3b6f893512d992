package setting

import (
	"context"
	"errors"

	"github.com/hugohenrick/pdv-restaurante/pkg/apperror"
	"github.com/shopspring/decimal"
)

// Chaves conhecidas da tabela configuracoes
const (
	KeyServiceChargePercent = "taxa_servico_percentual"
)

var ErrNotFound = apperror.New(apperror.KindNotFound, "configuração não encontrada")

// Setting representa um par chave/valor de configuração do estabelecimento
type Setting struct {
	Key         string `json:"chave"`
	Value       string `json:"valor"`
	Description string `json:"descricao,omitempty"`
}

// Repository define a interface para operações de repositório de configurações
type Repository interface {
	Get(ctx context.Context, key string) (*Setting, error)
	// Upsert grava o valor, criando a chave se necessário
	Upsert(ctx context.Context, s *Setting) error
	List(ctx context.Context) ([]*Setting, error)
}

// DecimalOr lê uma configuração numérica, usando fallback quando ausente ou inválida
func DecimalOr(ctx context.Context, repo Repository, key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	s, err := repo.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return fallback, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	v, err := decimal.NewFromString(s.Value)
	if err != nil {
		return fallback, nil
	}
	return v, nil
}
