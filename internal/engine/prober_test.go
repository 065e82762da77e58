package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/dm/mongofleet/internal/client"
	"github.com/dm/mongofleet/internal/config"
)

func testEndpoint(timeoutMs int64) config.Endpoint {
	return config.Endpoint{
		Name:          "test",
		URI:           "mongodb://db:27017",
		TimeoutMillis: timeoutMs,
	}
}

func TestProbeSuccess(t *testing.T) {
	conn := &MockConn{
		ServerStatusFn: func(ctx context.Context) (bson.M, error) {
			return fullServerStatus(), nil
		},
	}
	dialer := &MockDialer{
		DialFn: func(ctx context.Context, opts client.Options) (client.Conn, error) {
			return conn, nil
		},
	}
	ledger := NewLedger()
	p := NewProber(dialer, ledger, nil)

	res := p.Probe(context.Background(), testEndpoint(1000))

	assert.True(t, res.Online)
	assert.Empty(t, res.Err)
	require.NotNil(t, res.PingMillis)
	assert.GreaterOrEqual(t, *res.PingMillis, int64(0))
	assert.NotNil(t, res.Connections)
	assert.NotNil(t, res.Memory)
	assert.NotNil(t, res.Replication)
	assert.False(t, res.CheckedAt.IsZero())

	assert.Equal(t, int64(1), conn.CloseCount.Load(), "connection closed exactly once")
	rec := ledger.Snapshot()["test"]
	assert.Zero(t, rec.Attempts)
	assert.False(t, rec.LastSuccess.IsZero())
}

func TestProbeConnectFailure(t *testing.T) {
	dialer := &MockDialer{
		DialFn: func(ctx context.Context, opts client.Options) (client.Conn, error) {
			return nil, errors.New("auth error: SASL authentication failed")
		},
	}
	ledger := NewLedger()
	p := NewProber(dialer, ledger, nil)

	res := p.Probe(context.Background(), testEndpoint(1000))

	assert.False(t, res.Online)
	assert.Contains(t, res.Err, "connect failed")
	assert.Contains(t, res.Err, "SASL authentication failed")
	assert.Nil(t, res.PingMillis)
	assert.Nil(t, res.Connections)
	assert.Nil(t, res.UptimeSeconds)

	rec := ledger.Snapshot()["test"]
	assert.Equal(t, int64(1), rec.Attempts)
	assert.Equal(t, res.Err, rec.FailureReason)
}

func TestProbeTimeoutBound(t *testing.T) {
	connected := make(chan *MockConn, 1)
	dialer := &MockDialer{
		DialFn: func(ctx context.Context, opts client.Options) (client.Conn, error) {
			// Never resolves within the probe timeout.
			time.Sleep(300 * time.Millisecond)
			conn := &MockConn{}
			connected <- conn
			return conn, nil
		},
	}
	ledger := NewLedger()
	p := NewProber(dialer, ledger, nil)

	started := time.Now()
	res := p.Probe(context.Background(), testEndpoint(50))
	elapsed := time.Since(started)

	assert.False(t, res.Online)
	assert.Contains(t, res.Err, "timeout")
	assert.Less(t, elapsed, 200*time.Millisecond, "probe must return at the timeout, not the dial duration")
	assert.Equal(t, int64(1), ledger.Snapshot()["test"].Attempts)

	// The late-arriving connection must still be cleaned up.
	conn := <-connected
	assert.Eventually(t, func() bool {
		return conn.CloseCount.Load() == 1
	}, time.Second, 10*time.Millisecond, "late connection must be closed by the drain")
}

func TestProbePingFailure(t *testing.T) {
	statusCalled := false
	conn := &MockConn{
		PingFn: func(ctx context.Context) error {
			return errors.New("server selection timeout")
		},
		ServerStatusFn: func(ctx context.Context) (bson.M, error) {
			statusCalled = true
			return bson.M{}, nil
		},
	}
	dialer := &MockDialer{
		DialFn: func(ctx context.Context, opts client.Options) (client.Conn, error) {
			return conn, nil
		},
	}
	ledger := NewLedger()
	p := NewProber(dialer, ledger, nil)

	res := p.Probe(context.Background(), testEndpoint(1000))

	assert.False(t, res.Online)
	assert.Contains(t, res.Err, "ping failed")
	require.NotNil(t, res.PingMillis, "ping was attempted")
	assert.Nil(t, res.Connections)
	assert.False(t, statusCalled, "no diagnostics fetch after a failed ping")
	assert.Equal(t, int64(1), conn.CloseCount.Load())
	assert.Equal(t, int64(1), ledger.Snapshot()["test"].Attempts)
}

func TestProbePartialSuccess(t *testing.T) {
	conn := &MockConn{
		ServerStatusFn: func(ctx context.Context) (bson.M, error) {
			return nil, errors.New("not authorized on admin")
		},
	}
	dialer := &MockDialer{
		DialFn: func(ctx context.Context, opts client.Options) (client.Conn, error) {
			return conn, nil
		},
	}
	ledger := NewLedger()
	p := NewProber(dialer, ledger, nil)

	res := p.Probe(context.Background(), testEndpoint(1000))

	assert.True(t, res.Online, "connectivity was proven")
	assert.True(t, res.Degraded())
	assert.Contains(t, res.Err, "serverStatus failed")
	require.NotNil(t, res.PingMillis)
	assert.Nil(t, res.Connections)
	assert.Nil(t, res.Memory)
	assert.Nil(t, res.UptimeSeconds)
	assert.Nil(t, res.Replication)
	assert.Equal(t, int64(1), conn.CloseCount.Load())

	// Partial success is an online outcome: success recorder, not failure.
	rec := ledger.Snapshot()["test"]
	assert.Zero(t, rec.Attempts)
	assert.Zero(t, rec.ConsecutiveFailures)
	assert.False(t, rec.LastSuccess.IsZero())
}

func TestProbeCloseFailureDoesNotAffectResult(t *testing.T) {
	conn := &MockConn{
		CloseFn: func(ctx context.Context) error {
			return errors.New("close blew up")
		},
		ServerStatusFn: func(ctx context.Context) (bson.M, error) {
			return fullServerStatus(), nil
		},
	}
	dialer := &MockDialer{
		DialFn: func(ctx context.Context, opts client.Options) (client.Conn, error) {
			return conn, nil
		},
	}
	p := NewProber(dialer, NewLedger(), nil)

	res := p.Probe(context.Background(), testEndpoint(1000))
	assert.True(t, res.Online)
	assert.Empty(t, res.Err)
}

func TestProbeDialOptionsPassedThrough(t *testing.T) {
	var got client.Options
	dialer := &MockDialer{
		DialFn: func(ctx context.Context, opts client.Options) (client.Conn, error) {
			got = opts
			return &MockConn{}, nil
		},
	}
	p := NewProber(dialer, NewLedger(), nil)

	ep := config.Endpoint{Name: "p", URI: "mongodb://u:s@db:27017", AuthSource: "admin", TimeoutMillis: 750}
	p.Probe(context.Background(), ep)

	assert.Equal(t, "mongodb://u:s@db:27017", got.URI)
	assert.Equal(t, "admin", got.AuthSource)
	assert.Equal(t, 750*time.Millisecond, got.Timeout)
}

func TestProbeCancelledContext(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	dialer := &MockDialer{
		DialFn: func(ctx context.Context, opts client.Options) (client.Conn, error) {
			<-block
			return nil, errors.New("never reached")
		},
	}
	p := NewProber(dialer, NewLedger(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := p.Probe(ctx, testEndpoint(10_000))
	assert.False(t, res.Online)
	assert.Contains(t, res.Err, "cancelled")
}
