package engine

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/dm/mongofleet/internal/client"
	"github.com/dm/mongofleet/internal/config"
	"github.com/dm/mongofleet/internal/model"
)

// Monitor runs the prober across a fleet of endpoints and aggregates the
// results. The dialer and ledger are injected; the monitor owns no
// connections beyond the lifetime of a single probe.
type Monitor struct {
	prober *Prober
	ledger *Ledger
	log    hclog.Logger

	closeOnce sync.Once
}

// NewMonitor constructs a monitor around an injected dialer and ledger.
func NewMonitor(dialer client.Dialer, ledger *Ledger, log hclog.Logger) *Monitor {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Monitor{
		prober: NewProber(dialer, ledger, log),
		ledger: ledger,
		log:    log,
	}
}

// CheckAll probes every endpoint sequentially in configuration order and
// aggregates the results into a snapshot. Sequential probing bounds peak
// load on the fleet and keeps failure attribution simple; one endpoint's
// failure never skips or aborts the rest.
func (m *Monitor) CheckAll(ctx context.Context, endpoints []config.Endpoint) *model.FleetSnapshot {
	started := time.Now()
	results := make([]model.ProbeResult, 0, len(endpoints))
	for _, ep := range endpoints {
		results = append(results, m.prober.Probe(ctx, ep))
	}

	snap := model.NewFleetSnapshot(results)
	m.log.Debug("check cycle complete",
		"total", snap.Total,
		"online", snap.OnlineCount,
		"status", snap.Status.String(),
		"elapsed", time.Since(started),
	)
	return snap
}

// ReconnectSnapshot returns a read-only copy of every endpoint's reconnect
// record, keyed by endpoint name.
func (m *Monitor) ReconnectSnapshot() map[string]model.ReconnectRecord {
	return m.ledger.Snapshot()
}

// Close sweeps any connections a crashed or in-flight cycle left open.
// Idempotent and safe to call concurrently with a running cycle: a probe
// whose connection is swept fails that probe only.
func (m *Monitor) Close(ctx context.Context) error {
	var err error
	m.closeOnce.Do(func() {
		strays := m.prober.tracker.drain()
		if len(strays) == 0 {
			return
		}
		m.log.Info("closing leftover probe connections", "count", len(strays))

		g, gctx := errgroup.WithContext(ctx)
		for _, conn := range strays {
			conn := conn
			g.Go(func() error {
				return conn.Close(gctx)
			})
		}
		err = g.Wait()
	})
	return err
}
