package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/dm/mongofleet/internal/client"
	"github.com/dm/mongofleet/internal/config"
	"github.com/dm/mongofleet/internal/model"
)

// closeGrace bounds how long cleanup of a connection may take once its probe
// is over (deferred close, late-arrival drain, stray sweep).
const closeGrace = 5 * time.Second

// Prober runs the connect → ping → serverStatus → close protocol against one
// endpoint. Probe never returns an error: every failure is captured into the
// result. Outcomes are recorded in the ledger as a side effect.
type Prober struct {
	dialer  client.Dialer
	ledger  *Ledger
	tracker *connTracker
	log     hclog.Logger
}

// NewProber constructs a prober with an injected dialer and ledger.
func NewProber(dialer client.Dialer, ledger *Ledger, log hclog.Logger) *Prober {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Prober{
		dialer:  dialer,
		ledger:  ledger,
		tracker: newConnTracker(),
		log:     log,
	}
}

type dialOutcome struct {
	conn client.Conn
	err  error
}

// Probe checks one endpoint. The endpoint's timeout bounds both connection
// establishment and the probe end-to-end, enforced by a timer race
// independent of whatever timeout knobs the underlying driver honors.
func (p *Prober) Probe(ctx context.Context, ep config.Endpoint) model.ProbeResult {
	res := model.ProbeResult{Name: ep.Name, CheckedAt: time.Now()}
	timeout := ep.Timeout()

	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// The buffered channel lets the dial goroutine complete after the race
	// is lost without blocking; the drain below closes a late handle.
	dialCh := make(chan dialOutcome, 1)
	go func() {
		conn, err := p.dialer.Dial(probeCtx, client.Options{
			URI:        ep.URI,
			AuthSource: ep.AuthSource,
			Timeout:    timeout,
		})
		dialCh <- dialOutcome{conn: conn, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var conn client.Conn
	select {
	case out := <-dialCh:
		if out.err != nil {
			return p.fail(res, fmt.Sprintf("connect failed: %v", out.err))
		}
		conn = out.conn
	case <-timer.C:
		p.drainLateDial(ep.Name, dialCh)
		return p.fail(res, "connection timeout")
	case <-ctx.Done():
		p.drainLateDial(ep.Name, dialCh)
		return p.fail(res, fmt.Sprintf("probe cancelled: %v", ctx.Err()))
	}

	p.tracker.add(conn)
	defer func() {
		p.tracker.remove(conn)
		closeCtx, closeCancel := context.WithTimeout(context.Background(), closeGrace)
		defer closeCancel()
		if err := conn.Close(closeCtx); err != nil {
			p.log.Warn("failed to close probe connection", "endpoint", ep.Name, "error", err)
		}
	}()

	pingStart := time.Now()
	pingErr := conn.Ping(probeCtx)
	pingMs := time.Since(pingStart).Milliseconds()
	res.PingMillis = &pingMs
	if pingErr != nil {
		return p.fail(res, fmt.Sprintf("ping failed: %v", pingErr))
	}

	res.Online = true
	p.ledger.RecordSuccess(ep.Name)

	status, err := conn.ServerStatus(probeCtx)
	if err != nil {
		// Partial success: connectivity is proven, diagnostics are not.
		res.Err = fmt.Sprintf("serverStatus failed: %v", err)
		p.log.Warn("extended diagnostics unavailable", "endpoint", ep.Name, "error", err)
		return res
	}

	applyServerStatus(&res, status)
	return res
}

// fail records the terminal failure in the ledger and returns the offline result.
func (p *Prober) fail(res model.ProbeResult, reason string) model.ProbeResult {
	res.Online = false
	res.Err = reason
	p.ledger.RecordFailure(res.Name, reason)
	p.log.Debug("probe failed", "endpoint", res.Name, "reason", reason)
	return res
}

// drainLateDial waits out a dial whose race was already lost and closes the
// handle if one eventually arrives. The timed-out result has already been
// returned; the late completion must not touch it.
func (p *Prober) drainLateDial(name string, dialCh <-chan dialOutcome) {
	go func() {
		out := <-dialCh
		if out.conn == nil {
			return
		}
		closeCtx, cancel := context.WithTimeout(context.Background(), closeGrace)
		defer cancel()
		if err := out.conn.Close(closeCtx); err != nil {
			p.log.Warn("failed to close late connection", "endpoint", name, "error", err)
		}
	}()
}

// connTracker registers connections for the duration of their probe so a
// shutdown can sweep anything a crashed cycle left open.
type connTracker struct {
	mu    sync.Mutex
	conns map[client.Conn]struct{}
}

func newConnTracker() *connTracker {
	return &connTracker{conns: make(map[client.Conn]struct{})}
}

func (t *connTracker) add(c client.Conn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.conns[c] = struct{}{}
}

func (t *connTracker) remove(c client.Conn) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.conns, c)
}

// drain removes and returns all registered connections.
func (t *connTracker) drain() []client.Conn {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]client.Conn, 0, len(t.conns))
	for c := range t.conns {
		out = append(out, c)
	}
	t.conns = make(map[client.Conn]struct{})
	return out
}
