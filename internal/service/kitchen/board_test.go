package kitchen

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hugohenrick/pdv-restaurante/internal/domain/account"
	"github.com/hugohenrick/pdv-restaurante/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	calls   atomic.Int32
	mu      sync.Mutex
	tickets []*account.KitchenTicket
	err     error
}

func (f *fakeSource) ListForKitchen(context.Context) ([]*account.KitchenTicket, error) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tickets, f.err
}

func (f *fakeSource) set(tickets ...*account.KitchenTicket) {
	f.mu.Lock()
	f.tickets = tickets
	f.mu.Unlock()
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Add(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func ticket(id string, sentAt time.Time) *account.KitchenTicket {
	return &account.KitchenTicket{Item: &account.Item{
		ID: id, Status: account.ItemInKitchen, SentToKitchen: true, SentAt: &sentAt,
	}}
}

func startBoard(t *testing.T, b *Board) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, b.Run(ctx))
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return cancel
}

func TestBoardLoadsOnStartAndComputesWait(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	src := &fakeSource{}
	src.set(ticket("a", clock.now.Add(-90*time.Second)))

	b := NewBoard(src, logger.NewNop(), WithClock(clock.Now), WithTick(time.Hour))
	startBoard(t, b)

	require.Eventually(t, func() bool { return len(b.Snapshot().Tickets) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 90, b.Snapshot().Tickets[0].WaitSeconds)
}

func TestBoardRefreshEveryNTicks(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	src := &fakeSource{}
	src.set(ticket("a", clock.now))

	b := NewBoard(src, logger.NewNop(), WithClock(clock.Now), WithTick(10*time.Millisecond), WithRefreshEvery(5))
	snaps, cancelSub := b.Subscribe()
	defer cancelSub()
	startBoard(t, b)

	<-snaps // carga inicial
	clock.Add(3 * time.Second)
	require.Eventually(t, func() bool {
		s := b.Snapshot()
		return len(s.Tickets) == 1 && s.Tickets[0].WaitSeconds == 3
	}, time.Second, 5*time.Millisecond, "tick avança o tempo de espera sem reler")

	require.Eventually(t, func() bool { return src.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	calls := src.calls.Load()
	assert.Less(t, calls, int32(20), "releitura só a cada 5 ticks")
}

func TestBoardRefreshIsImmediate(t *testing.T) {
	src := &fakeSource{}
	b := NewBoard(src, logger.NewNop(), WithTick(time.Hour))
	startBoard(t, b)
	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	src.set(ticket("novo", time.Now()))
	b.Refresh()
	require.Eventually(t, func() bool { return len(b.Snapshot().Tickets) == 1 }, time.Second, 5*time.Millisecond)
}

func TestBoardKeepsSnapshotOnError(t *testing.T) {
	src := &fakeSource{}
	src.set(ticket("a", time.Now()))
	b := NewBoard(src, logger.NewNop(), WithTick(time.Hour))
	startBoard(t, b)
	require.Eventually(t, func() bool { return len(b.Snapshot().Tickets) == 1 }, time.Second, 5*time.Millisecond)

	src.mu.Lock()
	src.err = errors.New("banco indisponível")
	src.mu.Unlock()
	b.Refresh()
	require.Eventually(t, func() bool { return src.calls.Load() == 2 }, time.Second, 5*time.Millisecond)
	assert.Len(t, b.Snapshot().Tickets, 1)
}

func TestSubscribeCancelAndShutdown(t *testing.T) {
	b := NewBoard(&fakeSource{}, logger.NewNop(), WithTick(time.Hour))
	ch, cancel := b.Subscribe()
	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)

	ch2, cancel2 := b.Subscribe()
	defer cancel2()
	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()
	<-ch2
	stop()
	require.NoError(t, <-done)
	for range ch2 {
	}
}
