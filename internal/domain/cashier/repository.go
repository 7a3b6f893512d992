package cashier

import (
	"context"
)

// Repository define a interface para operações de repositório de caixas
type Repository interface {
	// Create cria o caixa do dia. Retorna ErrAlreadyExists se a data já possui caixa.
	Create(ctx context.Context, s *Session) error

	// FindByDate busca o caixa de uma data (formato DateLayout)
	FindByDate(ctx context.Context, date string) (*Session, error)

	// AddTotals soma delta aos totais gravados do caixa e atualiza s com o resultado.
	// A soma é feita pelo banco, então fechamentos simultâneos não se sobrescrevem.
	AddTotals(ctx context.Context, s *Session, delta Totals) error

	// CreateEntry grava um lançamento
	CreateEntry(ctx context.Context, e *Entry) error

	// ListEntries lista os lançamentos de um caixa em ordem cronológica
	ListEntries(ctx context.Context, sessionID string) ([]*Entry, error)
}
