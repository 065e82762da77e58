package engine

import (
	"sync"
	"time"

	"github.com/dm/mongofleet/internal/model"
)

// Ledger keeps per-endpoint reconnect counters for the process lifetime.
// Records are created lazily on first probe and never evicted; the endpoint
// set is small and static. The mutex is needed because on-demand checks may
// interleave with the scheduled cycle.
type Ledger struct {
	mu      sync.Mutex
	records map[string]*model.ReconnectRecord
}

// NewLedger constructs an empty ledger. The ledger is injected into the
// monitor rather than held as package state so tests get a fresh one each.
func NewLedger() *Ledger {
	return &Ledger{records: make(map[string]*model.ReconnectRecord)}
}

func (l *Ledger) record(name string) *model.ReconnectRecord {
	rec, ok := l.records[name]
	if !ok {
		rec = &model.ReconnectRecord{}
		l.records[name] = rec
	}
	return rec
}

// RecordSuccess marks a successful probe: consecutive failures reset to zero
// and the failure reason clears. Attempts is failure-only and stays put.
func (l *Ledger) RecordSuccess(name string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := l.record(name)
	rec.LastSuccess = time.Now()
	rec.ConsecutiveFailures = 0
	rec.FailureReason = ""
}

// RecordFailure marks a failed probe with its reason.
func (l *Ledger) RecordFailure(name, reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	rec := l.record(name)
	rec.Attempts++
	rec.ConsecutiveFailures++
	rec.LastAttempt = now
	rec.LastFailure = now
	rec.FailureReason = reason
}

// Snapshot returns a copy of every record keyed by endpoint name. Callers
// never see the live mutable records.
func (l *Ledger) Snapshot() map[string]model.ReconnectRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string]model.ReconnectRecord, len(l.records))
	for name, rec := range l.records {
		out[name] = *rec
	}
	return out
}
