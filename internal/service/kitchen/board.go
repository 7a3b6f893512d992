// Package kitchen mantém a fila da cozinha: itens enviados e ainda não entregues,
// com o tempo de espera de cada um.
package kitchen

import (
	"context"
	"sync"
	"time"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/account"
	"github.com/hugohenrick/pdv-restaurante/pkg/logger"
	"github.com/hugohenrick/pdv-restaurante/pkg/metrics"
)

// TicketSource lê a projeção da cozinha
type TicketSource interface {
	ListForKitchen(ctx context.Context) ([]*account.KitchenTicket, error)
}

// Snapshot é o estado da fila entregue às telas
type Snapshot struct {
	Tickets     []account.KitchenTicket `json:"itens"`
	RefreshedAt time.Time               `json:"atualizado_em"`
	GeneratedAt time.Time               `json:"gerado_em"`
}

// Board é a tarefa única que controla as duas cadências da cozinha: a cada tick
// recalcula o tempo de espera e a cada refreshEvery ticks relê os itens.
type Board struct {
	source       TicketSource
	log          logger.Logger
	metrics      *metrics.Metrics
	tick         time.Duration
	refreshEvery int
	now          func() time.Time

	refreshCh chan struct{}

	mu       sync.RWMutex
	snapshot Snapshot

	subsMu sync.Mutex
	subs   map[chan Snapshot]struct{}
}

// Option configura o Board
type Option func(*Board)

// WithTick altera o intervalo do relógio (padrão 1s)
func WithTick(d time.Duration) Option {
	return func(b *Board) { b.tick = d }
}

// WithRefreshEvery define a cada quantos ticks a fila é relida (padrão 10)
func WithRefreshEvery(n int) Option {
	return func(b *Board) {
		if n > 0 {
			b.refreshEvery = n
		}
	}
}

// WithMetrics publica o tamanho da fila
func WithMetrics(m *metrics.Metrics) Option {
	return func(b *Board) { b.metrics = m }
}

// WithClock substitui o relógio, usado nos testes
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// NewBoard cria o quadro da cozinha
func NewBoard(source TicketSource, log logger.Logger, opts ...Option) *Board {
	b := &Board{
		source:       source,
		log:          log,
		tick:         time.Second,
		refreshEvery: 10,
		now:          time.Now,
		refreshCh:    make(chan struct{}, 1),
		subs:         make(map[chan Snapshot]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run executa o laço até o contexto ser cancelado
func (b *Board) Run(ctx context.Context) error {
	b.reload(ctx)
	b.broadcast()

	ticker := time.NewTicker(b.tick)
	defer ticker.Stop()

	ticks := 0
	for {
		select {
		case <-ctx.Done():
			b.closeSubscribers()
			return nil
		case <-b.refreshCh:
			b.reload(ctx)
			ticks = 0
		case <-ticker.C:
			ticks++
			if ticks >= b.refreshEvery {
				b.reload(ctx)
				ticks = 0
			} else {
				b.advance()
			}
		}
		b.broadcast()
	}
}

// Refresh pede uma releitura imediata. Não bloqueia; pedidos acumulados viram um só.
func (b *Board) Refresh() {
	select {
	case b.refreshCh <- struct{}{}:
	default:
	}
}

// Snapshot retorna o estado atual da fila
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return copySnapshot(b.snapshot)
}

// Subscribe recebe um snapshot a cada tick. Assinantes lentos perdem quadros.
// A função retornada cancela a assinatura.
func (b *Board) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)
	b.subsMu.Lock()
	b.subs[ch] = struct{}{}
	b.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.subsMu.Lock()
			if _, ok := b.subs[ch]; ok {
				delete(b.subs, ch)
				close(ch)
			}
			b.subsMu.Unlock()
		})
	}
}

func (b *Board) reload(ctx context.Context) {
	tickets, err := b.source.ListForKitchen(ctx)
	if err != nil {
		if ctx.Err() == nil {
			b.log.Error("Falha ao atualizar fila da cozinha", "error", err)
		}
		return
	}

	now := b.now()
	next := Snapshot{
		Tickets:     make([]account.KitchenTicket, 0, len(tickets)),
		RefreshedAt: now,
		GeneratedAt: now,
	}
	for _, t := range tickets {
		next.Tickets = append(next.Tickets, *t)
	}
	setWaitTimes(next.Tickets, now)

	b.mu.Lock()
	b.snapshot = next
	b.mu.Unlock()
	b.metrics.KitchenTickets(len(next.Tickets))
}

// advance recalcula o tempo de espera a partir do envio, sem consultar a fonte
func (b *Board) advance() {
	now := b.now()
	b.mu.Lock()
	defer b.mu.Unlock()
	next := copySnapshot(b.snapshot)
	next.GeneratedAt = now
	setWaitTimes(next.Tickets, now)
	b.snapshot = next
}

func (b *Board) broadcast() {
	snap := b.Snapshot()
	b.subsMu.Lock()
	defer b.subsMu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

func (b *Board) closeSubscribers() {
	b.subsMu.Lock()
	defer b.subsMu.Unlock()
	for ch := range b.subs {
		delete(b.subs, ch)
		close(ch)
	}
}

func setWaitTimes(tickets []account.KitchenTicket, now time.Time) {
	for i := range tickets {
		if sent := tickets[i].Item.SentAt; sent != nil {
			tickets[i].WaitSeconds = int(now.Sub(*sent).Seconds())
		}
	}
}

func copySnapshot(s Snapshot) Snapshot {
	s.Tickets = append([]account.KitchenTicket(nil), s.Tickets...)
	return s
}
