package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dm/mongofleet/internal/model"
)

// capturePublisher records every published snapshot.
type capturePublisher struct {
	mu    sync.Mutex
	snaps []*model.FleetSnapshot
}

func (p *capturePublisher) Publish(snap *model.FleetSnapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snaps = append(p.snaps, snap)
	return nil
}

func (p *capturePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.snaps)
}

func TestWatcherPublishesEveryCycle(t *testing.T) {
	m := NewMonitor(&MockDialer{}, NewLedger(), nil)
	pub := &capturePublisher{}
	w := NewWatcher(m, fleet("a"), 10*time.Millisecond, pub, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		return pub.count() >= 3
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	<-done

	pub.mu.Lock()
	defer pub.mu.Unlock()
	for _, snap := range pub.snaps {
		assert.Equal(t, 1, snap.Total)
		assert.Equal(t, model.AllOnline, snap.Status)
	}
}

func TestWatcherRunStopsOnCancel(t *testing.T) {
	m := NewMonitor(&MockDialer{}, NewLedger(), nil)
	w := NewWatcher(m, fleet("a"), time.Hour, &capturePublisher{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop on cancel")
	}
}

// panicPublisher simulates a programming defect inside the cycle.
type panicPublisher struct {
	mu    sync.Mutex
	calls int
}

func (p *panicPublisher) Publish(*model.FleetSnapshot) error {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	panic("defect")
}

func (p *panicPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func TestWatcherSurvivesPanickingCycle(t *testing.T) {
	m := NewMonitor(&MockDialer{}, NewLedger(), nil)
	pub := &panicPublisher{}
	w := NewWatcher(m, fleet("a"), 5*time.Millisecond, pub, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()

	// A crashed cycle must not stop the scheduler: later cycles still run.
	require.Eventually(t, func() bool {
		return pub.count() >= 2
	}, 2*time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestWatcherSingleFlight(t *testing.T) {
	m := NewMonitor(&MockDialer{}, NewLedger(), nil)
	pub := &capturePublisher{}
	w := NewWatcher(m, fleet("a"), time.Hour, pub, nil)

	w.inFlight.Store(true)
	w.runCycle(context.Background())
	assert.Zero(t, pub.count(), "guarded cycle must not run while one is in flight")

	w.inFlight.Store(false)
	w.runCycle(context.Background())
	assert.Equal(t, 1, pub.count())
}
