package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/dm/mongofleet/internal/config"
	"github.com/dm/mongofleet/internal/model"
)

// Publisher receives the snapshot of each completed check cycle and keeps a
// single display surface in sync with it — one evolving view, never a new
// surface per cycle.
type Publisher interface {
	Publish(snap *model.FleetSnapshot) error
}

// Watcher drives check cycles on a fixed cadence. Each cycle is scheduled
// relative to the previous cycle's start: a slow cycle delays the next one
// but never causes a skip or an overlap.
type Watcher struct {
	monitor   *Monitor
	endpoints []config.Endpoint
	interval  time.Duration
	pub       Publisher
	log       hclog.Logger

	inFlight atomic.Bool
}

// NewWatcher constructs a watcher over a monitor and endpoint list.
func NewWatcher(monitor *Monitor, endpoints []config.Endpoint, interval time.Duration, pub Publisher, log hclog.Logger) *Watcher {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Watcher{
		monitor:   monitor,
		endpoints: endpoints,
		interval:  interval,
		pub:       pub,
		log:       log,
	}
}

// Run cycles until ctx is cancelled. The first cycle starts immediately.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		started := time.Now()
		w.runCycle(ctx)

		wait := w.interval - time.Since(started)
		if wait < 0 {
			wait = 0
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// runCycle executes one guarded check cycle. A panic is fatal to the cycle,
// not the process: the previously published snapshot stays standing and the
// next cycle still runs.
func (w *Watcher) runCycle(ctx context.Context) {
	if !w.inFlight.CompareAndSwap(false, true) {
		w.log.Warn("previous check cycle still in flight, skipping")
		return
	}
	defer w.inFlight.Store(false)
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("check cycle failed", "panic", r)
		}
	}()

	snap := w.monitor.CheckAll(ctx, w.endpoints)
	if err := w.pub.Publish(snap); err != nil {
		w.log.Error("failed to publish snapshot", "error", err)
	}
}

// LogPublisher publishes snapshots as structured log lines; the watch-mode
// display surface.
type LogPublisher struct {
	log hclog.Logger
}

// NewLogPublisher constructs a publisher writing to log.
func NewLogPublisher(log hclog.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

// Publish logs the fleet summary and one line per endpoint.
func (p *LogPublisher) Publish(snap *model.FleetSnapshot) error {
	p.log.Info("fleet status",
		"status", snap.Status.String(),
		"online", snap.OnlineCount,
		"total", snap.Total,
		"percentage", snap.Percentage,
	)
	for i := range snap.Results {
		r := &snap.Results[i]
		switch {
		case !r.Online:
			p.log.Warn("endpoint offline", "endpoint", r.Name, "error", r.Err)
		case r.Degraded():
			p.log.Warn("endpoint degraded", "endpoint", r.Name, "ping_ms", *r.PingMillis, "error", r.Err)
		default:
			p.log.Info("endpoint online", "endpoint", r.Name, "ping_ms", *r.PingMillis)
		}
	}
	return nil
}
