package engine

import (
	"context"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/dm/mongofleet/internal/client"
)

// MockDialer implements client.Dialer for testing.
type MockDialer struct {
	DialFn func(ctx context.Context, opts client.Options) (client.Conn, error)
}

func (d *MockDialer) Dial(ctx context.Context, opts client.Options) (client.Conn, error) {
	if d.DialFn != nil {
		return d.DialFn(ctx, opts)
	}
	return &MockConn{}, nil
}

// MockConn implements client.Conn for testing. CloseCount tracks resource
// cleanup across probe exit paths.
type MockConn struct {
	PingFn         func(ctx context.Context) error
	ServerStatusFn func(ctx context.Context) (bson.M, error)
	CloseFn        func(ctx context.Context) error

	CloseCount atomic.Int64
}

func (c *MockConn) Ping(ctx context.Context) error {
	if c.PingFn != nil {
		return c.PingFn(ctx)
	}
	return nil
}

func (c *MockConn) ServerStatus(ctx context.Context) (bson.M, error) {
	if c.ServerStatusFn != nil {
		return c.ServerStatusFn(ctx)
	}
	return bson.M{}, nil
}

func (c *MockConn) Close(ctx context.Context) error {
	c.CloseCount.Add(1)
	if c.CloseFn != nil {
		return c.CloseFn(ctx)
	}
	return nil
}
