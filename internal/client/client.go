// Package client provides the diagnostic connection to a single MongoDB
// endpoint. The engine depends only on the Dialer and Conn interfaces; the
// mongo-driver implementation lives in MongoDialer.
package client

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Options configures a single dial attempt.
type Options struct {
	URI        string
	AuthSource string
	Timeout    time.Duration
}

// Dialer opens diagnostic connections. Dial must respect ctx cancellation;
// the returned Conn is exclusively owned by the caller and never pooled.
type Dialer interface {
	Dial(ctx context.Context, opts Options) (Conn, error)
}

// Conn is an open diagnostic connection to one endpoint.
type Conn interface {
	// Ping issues a lightweight liveness probe.
	Ping(ctx context.Context) error
	// ServerStatus fetches the raw serverStatus diagnostic payload.
	ServerStatus(ctx context.Context) (bson.M, error)
	// Close releases the connection. Safe to call more than once.
	Close(ctx context.Context) error
}
