// Package order implementa o ciclo de vida das contas: abertura, lançamento de
// itens, envio à cozinha, cancelamento e fechamento com pagamento.
package order

import (
	"context"
	"time"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/account"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/setting"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/store"
	"github.com/hugohenrick/pdv-restaurante/internal/domain/table"
	"github.com/hugohenrick/pdv-restaurante/pkg/logger"
	"github.com/hugohenrick/pdv-restaurante/pkg/metrics"
	"github.com/shopspring/decimal"
)

// Publisher publica eventos depois que a transação foi confirmada
type Publisher interface {
	Publish(ctx context.Context, evt account.Event) error
}

// KitchenRefresher é avisado quando a fila da cozinha muda
type KitchenRefresher interface {
	Refresh()
}

// Service coordena as operações de conta dentro de uma unidade de trabalho
type Service struct {
	store                store.Store
	log                  logger.Logger
	publisher            Publisher
	kitchen              KitchenRefresher
	metrics              *metrics.Metrics
	now                  func() time.Time
	defaultServiceCharge decimal.Decimal
}

// Option configura o Service
type Option func(*Service)

// WithPublisher define o publicador de eventos
func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithKitchen define quem é avisado das mudanças na fila da cozinha
func WithKitchen(k KitchenRefresher) Option {
	return func(s *Service) { s.kitchen = k }
}

// WithMetrics define os contadores do ciclo de vida
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithClock substitui o relógio, usado nos testes
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithDefaultServiceCharge define o percentual de taxa de serviço quando
// a configuração taxa_servico_percentual não existe
func WithDefaultServiceCharge(pct decimal.Decimal) Option {
	return func(s *Service) { s.defaultServiceCharge = pct }
}

// NewService cria o serviço de contas
func NewService(st store.Store, log logger.Logger, opts ...Option) *Service {
	s := &Service{
		store:                st,
		log:                  log,
		now:                  time.Now,
		defaultServiceCharge: decimal.Zero,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AccountDetail é a conta com seus itens e pagamentos
type AccountDetail struct {
	Account  *account.Account   `json:"conta"`
	Table    *table.Table       `json:"mesa,omitempty"`
	Items    []*account.Item    `json:"itens"`
	Payments []*account.Payment `json:"pagamentos"`
}

// GetAccount busca a conta com itens (incluindo cancelados) e pagamentos
func (s *Service) GetAccount(ctx context.Context, accountID string) (*AccountDetail, error) {
	repos := s.store.Repositories()
	a, err := repos.Accounts.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	items, err := repos.Items.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	payments, err := repos.Payments.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	detail := &AccountDetail{Account: a, Items: items, Payments: payments}
	if a.TableID != nil {
		if t, err := repos.Tables.FindByID(ctx, *a.TableID); err == nil {
			detail.Table = t
		}
	}
	return detail, nil
}

// ListAccounts lista as contas de um status
func (s *Service) ListAccounts(ctx context.Context, status account.Status) ([]*account.Account, error) {
	return s.store.Repositories().Accounts.ListByStatus(ctx, status)
}

// ListOpenAccounts lista as contas abertas, mais recentes primeiro
func (s *Service) ListOpenAccounts(ctx context.Context) ([]*account.Account, error) {
	return s.ListAccounts(ctx, account.StatusOpen)
}

// ListTables lista as mesas com sua ocupação
func (s *Service) ListTables(ctx context.Context) ([]*table.Table, error) {
	return s.store.Repositories().Tables.List(ctx)
}

func (s *Service) serviceChargePercent(ctx context.Context, repos store.Repositories) (decimal.Decimal, error) {
	return setting.DecimalOr(ctx, repos.Settings, setting.KeyServiceChargePercent, s.defaultServiceCharge)
}

// recalculate relê os itens da conta, recalcula os totais e grava a conta
func recalculate(ctx context.Context, repos store.Repositories, a *account.Account) error {
	items, err := repos.Items.ListByAccount(ctx, a.ID)
	if err != nil {
		return err
	}
	a.Recalculate(items)
	return repos.Accounts.Update(ctx, a)
}

// publish envia os eventos sem bloquear o resultado da operação já confirmada
func (s *Service) publish(ctx context.Context, events ...account.Event) {
	if s.publisher == nil {
		return
	}
	for _, evt := range events {
		if err := s.publisher.Publish(ctx, evt); err != nil {
			s.log.Warn("Falha ao publicar evento", "type", evt.Type, "conta_id", evt.AccountID, "error", err)
		}
	}
}

func (s *Service) refreshKitchen() {
	if s.kitchen != nil {
		s.kitchen.Refresh()
	}
}
